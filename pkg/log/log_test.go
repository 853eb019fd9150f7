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
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_run_header",
			op: func(t *testing.T, logger *Logger) {
				logger.StartRun(context.Background(), RunOperation{
					Root:      "/tmp/project",
					Target:    "nickmaltbie.TemplateUnityPackage",
					NewTarget: "acme.Widget",
				})
			},
			wantLogs: []string{
				"[renaming /tmp/project]",
				"◆ nickmaltbie.TemplateUnityPackage → acme.Widget",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("renaming template")
			},
			wantLogs: []string{
				"retemplate • renaming template",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.InfoLevel)

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.InfoLevel)

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	missing := FromContext(context.Background())
	require.NotNil(t, missing, "FromContext should fall back to a discarding logger")
	missing.Info("goes nowhere")
}

func TestPathOperationFormatting(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name   string
		op     PathOperation
		fields []string
	}{
		{
			name: "rewritten_file",
			op: PathOperation{
				Path:         "Assets/foo.cs",
				Kind:         "rewritten",
				Replacements: 2,
			},
			fields: []string{"⟳", "Assets/foo.cs", "rewritten", "2", "replacements"},
		},
		{
			name: "moved_directory",
			op: PathOperation{
				Path:    "Packages/nickmaltbie.Pkg",
				NewPath: "Packages/acme.Pkg",
				Kind:    "moved-dir",
			},
			fields: []string{"→", "Packages/nickmaltbie.Pkg", "moved-dir", "->", "Packages/acme.Pkg"},
		},
		{
			name: "planned_move",
			op: PathOperation{
				Path:    "a.cs",
				NewPath: "b.cs",
				Kind:    "moved",
				Planned: true,
			},
			fields: []string{"•", "a.cs", "moved", "->", "b.cs"},
		},
		{
			name: "failed_write",
			op: PathOperation{
				Path:   "a.cs",
				Kind:   "rewritten",
				Failed: true,
			},
			fields: []string{"✗", "a.cs", "rewritten"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.InfoLevel)

			logger.LogPathOperation(context.Background(), tt.op)

			line := strings.TrimRight(buf.String(), " \n")
			assert.True(t, strings.HasPrefix(line, "    "), "path lines are indented")
			assert.Equal(t, tt.fields, strings.Fields(line))
		})
	}
}

func TestRunTracksOperations(t *testing.T) {
	logger := New(io.Discard, zerolog.InfoLevel)
	ctx := context.Background()

	logger.LogPathOperation(ctx, PathOperation{Path: "stale", Kind: "rewritten"})
	logger.StartRun(ctx, RunOperation{Root: "/r", Target: "a", NewTarget: "b"})
	assert.Empty(t, logger.Operations(), "starting a run clears earlier lines")

	logger.LogPathOperation(ctx, PathOperation{Path: "x.cs", Kind: "rewritten", Replacements: 1})
	logger.LogPathOperation(ctx, PathOperation{Path: "a", NewPath: "b", Kind: "moved-dir"})
	require.Len(t, logger.Operations(), 2)
	assert.Equal(t, "x.cs", logger.Operations()[0].Path)

	logger.EndRun(ctx)
	assert.Empty(t, logger.Operations())

	// a second EndRun is a no-op
	logger.EndRun(ctx)
}
