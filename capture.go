package fireworks

import (
	"fmt"
	"strings"
)

// CaptureFileName returns the PNG file name for a frame captured under
// label: the zero-padded frame number, then the sanitized label.
func CaptureFileName(frame int, label string) string {
	return fmt.Sprintf("%06d_%s.png", frame, sanitizeLabel(label))
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
