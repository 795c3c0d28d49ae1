package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestConfigure_Level(t *testing.T) {
	var buf bytes.Buffer
	log := Configure(&buf, "debug")

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	log.WithField("input", "a.sarif").Debug("resolved")
	assert.Contains(t, buf.String(), "level=debug")
	assert.Contains(t, buf.String(), "input=a.sarif")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestConfigure_InvalidLevelFallsBack(t *testing.T) {
	var buf bytes.Buffer
	log := Configure(&buf, "chatty")

	assert.Equal(t, DefaultLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "invalid logging level")

	buf.Reset()
	log.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, "debug", LevelFor(true))
	assert.Equal(t, "warning", LevelFor(false))
}
