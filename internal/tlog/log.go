// Package tlog is tapegrad's structured logger: a zerolog console
// writer over stderr with caller info attached. tapegrad logs only at
// Debug level, at a couple of non-load-bearing observability seams in
// the tape and backward engine - never for control flow.
package tlog

import (
	"os"

	"github.com/rs/zerolog"
)

// Log is the package-wide logger. Silence it in a caller by raising
// zerolog.SetGlobalLevel above zerolog.DebugLevel.
var Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Caller().Logger()

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}
