package observability

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger returns the service logger at the given level; unknown levels fall
// back to info.
func NewLogger(w io.Writer, svc, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().
		Str("svc", svc).Logger()
}
