// Package logs sets up the logrus logger shared by the CLI and the build.
package logs

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// New returns a logger writing plain text to w at the named level
// ("debug", "info", "warn", "error"; empty means DefaultLevel).
func New(w io.Writer, level string) (*log.Logger, error) {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	l := log.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.SetFormatter(&log.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		DisableColors:          true,
	})
	return l, nil
}

// Level picks the level from the verbosity flags, falling back to configured.
func Level(verbose, quiet bool, configured string) string {
	switch {
	case verbose:
		return "debug"
	case quiet:
		return "error"
	default:
		return configured
	}
}
