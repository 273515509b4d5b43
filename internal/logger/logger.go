package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. Debug mode gets a human
// readable console writer, everything else gets JSON lines.
func Init(mode, level string) {
	InitWithWriter(os.Stderr, mode, level)
}

func InitWithWriter(w io.Writer, mode, level string) {
	zerolog.TimeFieldFormat = time.RFC3339

	if mode == "debug" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
