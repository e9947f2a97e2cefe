package cli

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// initLogger configures zerolog for text-based output with no coloring.
func initLogger(out io.Writer, debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}).Level(level).With().Timestamp().Logger()
}
