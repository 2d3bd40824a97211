package logging

import (
	"fmt"
	"io"
	"strings"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level is configured
const DefaultLevel = "info"

// ParseLevel maps a level name to a zerolog level
func ParseLevel(level string) (zerolog.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// New creates a logger writing to w at the given level.
// Reports go to stdout, so callers normally pass stderr here.
func New(level string, w io.Writer) (log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewLogger(w,
		log.LevelOption(lvl),
		log.ColorOption(false),
		log.TimeFormatOption("15:04:05"),
	), nil
}

// NewNop returns a logger that discards everything
func NewNop() log.Logger {
	return log.NewNopLogger()
}
