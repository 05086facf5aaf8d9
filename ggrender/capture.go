package ggrender

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/phanxgames/fireworks"
)

// Capture writes the last composited frame to Dir, named by
// fireworks.CaptureFileName, and returns the file path.
func (s *Surface) Capture(label string) (string, error) {
	if err := os.MkdirAll(s.opts.Dir, 0o755); err != nil {
		return "", fmt.Errorf("capture: mkdir %s: %w", s.opts.Dir, err)
	}
	path := filepath.Join(s.opts.Dir, fireworks.CaptureFileName(s.frames, label))
	if err := gg.SavePNG(path, s.out); err != nil {
		return "", fmt.Errorf("capture %s: %w", path, err)
	}
	return path, nil
}
