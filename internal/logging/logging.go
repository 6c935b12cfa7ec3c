// Package logging builds the CLI's zerolog logger.
package logging

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/skosovsky/codegen/internal/config"
)

// New returns a logger writing to out: human-readable for the text format,
// one JSON object per line otherwise.
func New(conf config.LoggingConfig, out io.Writer) (zerolog.Logger, error) {
	level, err := conf.ParsedLevel()
	if err != nil {
		return zerolog.Nop(), err
	}

	if conf.Format == config.LogTextFormat {
		out = zerolog.ConsoleWriter{Out: out, NoColor: true}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
