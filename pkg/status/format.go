package status

import (
	"fmt"
)

// FileFormatter defines how file status and progress should be formatted
type FileFormatter interface {
	// FormatFileStatus formats a file status message
	FormatFileStatus(info FileInfo) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileStatus formats a file status message with emojis
func (f *DefaultFileFormatter) FormatFileStatus(info FileInfo) string {
	switch info.Status {
	case StatusWritten:
		return fmt.Sprintf("📝 Rewrote %s (%d replacements)", info.Path, info.Replacements)
	case StatusMatched:
		return fmt.Sprintf("🔎 Matched %s (%d replacements)", info.Path, info.Replacements)
	case StatusSkipped:
		return fmt.Sprintf("⏭️  Skipped %s: %s", info.Path, info.Reason)
	case StatusFailed:
		return fmt.Sprintf("❌ Failed %s", info.Path)
	default:
		return fmt.Sprintf("👍 Unchanged %s", info.Path)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
