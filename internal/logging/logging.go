// Package logging configures the logrus logger used by the command line tool.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// DefaultLevel is used when the requested level does not parse.
const DefaultLevel = logrus.WarnLevel

// Configure returns a logger writing plain text to w at the given level.
// An unknown level falls back to DefaultLevel and is reported once.
func Configure(w io.Writer, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		FullTimestamp:    true,
		QuoteEmptyFields: true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.SetLevel(DefaultLevel)
		log.WithField("level", level).Warn("invalid logging level, using warn")
		return log
	}
	log.SetLevel(lvl)
	return log
}

// LevelFor maps the debug switch to a level name.
func LevelFor(debug bool) string {
	if debug {
		return logrus.DebugLevel.String()
	}
	return DefaultLevel.String()
}
