package logging

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.TraceLevel, GetLevel("trace"))
	assert.Equal(t, logrus.DebugLevel, GetLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warning"))
	assert.Equal(t, logrus.ErrorLevel, GetLevel("error"))
	assert.Equal(t, logrus.InfoLevel, GetLevel(""))
	assert.Equal(t, logrus.InfoLevel, GetLevel("verbose"))
}

func TestSetup_logFile(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)
	defer logrus.SetLevel(logrus.InfoLevel)

	logFile := filepath.Join(t.TempDir(), "logs", "service")
	require.NoError(t, Setup(LoggerSetupParams{
		LogFileName: logFile,
		LogLevel:    "debug",
	}))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	logrus.Debugf("dashboard test entry")

	content, err := os.ReadFile(logFile + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(content), "dashboard test entry")
}

func TestSentryHook(t *testing.T) {
	hook := NewSentryHook([]logrus.Level{logrus.ErrorLevel})
	assert.Equal(t, []logrus.Level{logrus.ErrorLevel}, hook.Levels())

	now := time.Now()
	entry := &logrus.Entry{
		Level:   logrus.ErrorLevel,
		Message: "load dashboard failed",
		Time:    now,
		Data: logrus.Fields{
			"profile": "p1",
			"error":   errors.New("gateway down"),
		},
	}

	event := newSentryEvent(entry)
	assert.Equal(t, sentry.LevelError, event.Level)
	assert.Equal(t, "load dashboard failed", event.Message)
	assert.Equal(t, now, event.Timestamp)
	assert.Equal(t, "p1", event.Extra["profile"])
	assert.Equal(t, "gateway down", event.Extra["error"])

	// no sentry client set up, must not fail
	assert.NoError(t, hook.Fire(entry))

	assert.Equal(t, sentry.LevelFatal, sentryLevel(logrus.PanicLevel))
	assert.Equal(t, sentry.LevelWarning, sentryLevel(logrus.WarnLevel))
	assert.Equal(t, sentry.LevelDebug, sentryLevel(logrus.TraceLevel))
}
