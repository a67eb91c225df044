// Package logging configures structured logging for the gateway, scraper
// and loader binaries. It generalizes the teacher's scattered log.Printf
// call-sites into a single zerolog.Logger factory, switching destination and
// level by ENVIRONMENT the same way the Python original's logger.py did.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const logDir = "/app/logs"

// New builds a logger for the given binary name ("gateway", "scraper",
// "loader"). In dev it writes pretty console output to stdout at info
// level; in prod it writes JSON lines to /app/logs/<name>.log at warn
// level.
func New(name, environment string) zerolog.Logger {
	if environment == "prod" {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "logging: could not create log dir %s: %v\n", logDir, err)
			return zerolog.New(os.Stdout).Level(zerolog.WarnLevel).With().Timestamp().Str("name", name).Logger()
		}
		f, err := os.OpenFile(filepath.Join(logDir, name+".log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logging: could not open log file for %s: %v\n", name, err)
			return zerolog.New(os.Stdout).Level(zerolog.WarnLevel).With().Timestamp().Str("name", name).Logger()
		}
		return zerolog.New(f).Level(zerolog.WarnLevel).With().Timestamp().Str("name", name).Logger()
	}

	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	return zerolog.New(console).Level(zerolog.InfoLevel).With().Timestamp().Str("name", name).Logger()
}
