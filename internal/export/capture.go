package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/texsphere/internal/engine/renderer"
)

// Capturer saves renders under timestamped file names.
type Capturer struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewCapturer creates a capturer writing prefix_<timestamp>.<ext> files
// into outputDir (the working directory when empty).
func NewCapturer(outputDir, prefix string) *Capturer {
	return &Capturer{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// Filename returns the next free capture name for ext. A numeric suffix is
// added when several captures land in the same second.
func (c *Capturer) Filename(ext string) string {
	base := fmt.Sprintf("%s_%s", c.prefix, c.now().Format("2006-01-02_15-04-05"))
	name := filepath.Join(c.outputDir, base+ext)
	for i := 1; fileExists(name); i++ {
		name = filepath.Join(c.outputDir, fmt.Sprintf("%s_%d%s", base, i, ext))
	}
	return name
}

// Capture saves out and returns the file name it used.
func (c *Capturer) Capture(out renderer.Output) (string, error) {
	ext := Extension(out.Mode)
	if ext == "" {
		return "", ErrEmptyOutput
	}

	if c.outputDir != "" {
		if err := os.MkdirAll(c.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	name := c.Filename(ext)
	if err := Save(name, out); err != nil {
		return "", err
	}
	return name, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
