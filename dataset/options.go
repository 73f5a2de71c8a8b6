package dataset

import (
	"io"

	"github.com/YuminosukeSato/dataprep/pkg/log"
)

// LoadOption configures Load and LoadFile.
type LoadOption func(*loadConfig)

type loadConfig struct {
	comma         rune
	comment       rune
	trimSpace     bool
	progress      io.Writer
	progressSize  int64
	progressLabel string
	logger        log.Logger
}

func defaultLoadConfig() *loadConfig {
	return &loadConfig{
		comma:     ',',
		trimSpace: true,
	}
}

// WithComma sets the field delimiter. Defaults to ','.
func WithComma(r rune) LoadOption {
	return func(c *loadConfig) {
		c.comma = r
	}
}

// WithComment skips lines starting with r.
func WithComment(r rune) LoadOption {
	return func(c *loadConfig) {
		c.comment = r
	}
}

// WithTrimSpace controls whether surrounding whitespace is stripped from
// fields before parsing. Enabled by default.
func WithTrimSpace(trim bool) LoadOption {
	return func(c *loadConfig) {
		c.trimSpace = trim
	}
}

// WithProgress renders a byte progress bar on w while reading. size is the
// expected input length in bytes, or -1 when unknown.
func WithProgress(w io.Writer, size int64, label string) LoadOption {
	return func(c *loadConfig) {
		c.progress = w
		c.progressSize = size
		c.progressLabel = label
	}
}

// WithLogger overrides the component logger.
func WithLogger(l log.Logger) LoadOption {
	return func(c *loadConfig) {
		c.logger = l
	}
}
