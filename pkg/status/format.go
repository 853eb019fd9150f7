package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 45 // Base width for filename
	kindWidth  = 12 // Width for change kind
)

// FileFormatter defines how changes and errors are formatted
type FileFormatter interface {
	// FormatChange formats a single change
	FormatChange(c Change) string

	// FormatSummary formats the totals of a run
	FormatSummary(changes []Change) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a plain text implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatChange formats a change with emojis
func (f *DefaultFileFormatter) FormatChange(c Change) string {
	switch c.Kind {
	case ContentRewritten:
		return fmt.Sprintf("📝 Rewrote %s (%d replacements)", c.Path, c.Replacements)
	case FileMoved, DirectoryMoved:
		return fmt.Sprintf("🚚 Moved %s -> %s", c.Path, c.NewPath)
	case IdentifiersRegenerated:
		return fmt.Sprintf("🔑 Regenerated %d identifiers", c.Replacements)
	case Skipped:
		return fmt.Sprintf("👍 Unchanged %s", c.Path)
	default:
		return fmt.Sprintf("❓ %s", c.Path)
	}
}

// FormatSummary counts changes per kind
func (f *DefaultFileFormatter) FormatSummary(changes []Change) string {
	var rewritten, moved, regenerated int
	for _, c := range changes {
		switch c.Kind {
		case ContentRewritten:
			rewritten++
		case FileMoved, DirectoryMoved:
			moved++
		case IdentifiersRegenerated:
			regenerated += c.Replacements
		}
	}
	if rewritten == 0 && moved == 0 && regenerated == 0 {
		return "✅ Nothing to do"
	}
	return fmt.Sprintf("✅ %d files rewritten, %d paths moved, %d identifiers regenerated", rewritten, moved, regenerated)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}

// 🎯 ConsoleFileFormatter renders changes as aligned, colored columns
type ConsoleFileFormatter struct {
	DefaultFileFormatter
}

// NewConsoleFileFormatter creates a new ConsoleFileFormatter
func NewConsoleFileFormatter() *ConsoleFileFormatter {
	return &ConsoleFileFormatter{}
}

// FormatChange formats a change for display
func (f *ConsoleFileFormatter) FormatChange(c Change) string {
	var prefix string
	switch c.Kind {
	case ContentRewritten:
		prefix = color.YellowString("⟳")
	case FileMoved, DirectoryMoved:
		prefix = color.BlueString("→")
	case IdentifiersRegenerated:
		prefix = color.MagentaString("#")
	default:
		prefix = color.HiBlackString("-")
	}

	detail := c.NewPath
	if c.Kind == ContentRewritten || c.Kind == IdentifiersRegenerated {
		detail = fmt.Sprintf("%d replacements", c.Replacements)
	}

	return fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		fmt.Sprintf("%-*s", nameWidth, c.Path),
		color.New(color.Faint).Sprint(fmt.Sprintf("%-*s", kindWidth, c.Kind.String())),
		detail,
	)
}
