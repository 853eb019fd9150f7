// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	pathIndent  = 4  // spaces to indent path entries
	nameWidth   = 35 // Base width for the path column
	kindWidth   = 12 // Width for the kind column
	statusWidth = 15 // Width for status text
)

// 🎯 PathOperation is one line of a run's console output
type PathOperation struct {
	Path         string // Path before the change
	NewPath      string // Path after a move
	Kind         string // rewritten/moved/moved-dir/regenerated
	Replacements int    // Number of replacements made
	Planned      bool   // Whether this is a dry run line
	Failed       bool   // Whether applying it failed
}

// 📦 RunOperation describes the package being renamed
type RunOperation struct {
	Root      string // Project root
	Target    string // Package directory before the run
	NewTarget string // Package directory after the run
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentRun *RunOperation
	operations []PathOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// Discard is a logger that prints and records nothing.
func Discard() *Logger {
	return &Logger{zlog: zerolog.Nop(), console: io.Discard}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, or Discard when there is none
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return Discard()
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatPathOperation formats a path operation for display
func (l *Logger) formatPathOperation(op PathOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.Failed:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.Planned:
		symbol = '•'
		symbolColor = color.FgCyan
	case op.NewPath != "":
		symbol = '→'
		symbolColor = color.FgGreen
	default:
		symbol = '⟳'
		symbolColor = color.FgBlue
	}

	var kindColor color.Attribute
	switch op.Kind {
	case "moved", "moved-dir":
		kindColor = color.FgGreen
	case "regenerated":
		kindColor = color.FgMagenta
	default:
		kindColor = color.FgBlue
	}

	status := ""
	if op.NewPath != "" {
		status = "-> " + op.NewPath
	} else if op.Replacements > 0 {
		status = fmt.Sprintf("%d replacements", op.Replacements)
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", pathIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(kindColor).Sprint(fmt.Sprintf("%-*s", kindWidth, op.Kind)),
		fmt.Sprintf("%-*s", statusWidth, status))
}

// 📝 LogPathOperation logs a path operation
func (l *Logger) LogPathOperation(ctx context.Context, op PathOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatPathOperation(op))

	l.zlog.Info().
		Str("path", op.Path).
		Str("new_path", op.NewPath).
		Str("kind", op.Kind).
		Bool("planned", op.Planned).
		Bool("failed", op.Failed).
		Int("replacements", op.Replacements).
		Msg("path operation")
}

// 📝 StartRun prints the run header
func (l *Logger) StartRun(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentRun = &op
	l.operations = nil

	fmt.Fprintf(l.console, "[renaming %s]\n",
		color.New(color.FgCyan).Sprint(op.Root))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Target),
		color.New(color.Faint).Sprint("→"),
		color.New(color.FgYellow).Sprint(op.NewTarget))

	l.zlog.Info().
		Str("root", op.Root).
		Str("target", op.Target).
		Str("new_target", op.NewTarget).
		Msg("starting rename")
}

// 📝 EndRun ends the current run
func (l *Logger) EndRun(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentRun == nil {
		return
	}

	l.zlog.Info().
		Str("target", l.currentRun.Target).
		Int("paths", len(l.operations)).
		Msg("rename complete")

	l.currentRun = nil
	l.operations = nil
}

// Operations returns the lines logged since the current run started.
func (l *Logger) Operations() []PathOperation {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]PathOperation(nil), l.operations...)
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("retemplate")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
