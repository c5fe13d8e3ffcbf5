package pkg

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestCombinedWriter_StdoutAndLogFile(t *testing.T) {
	stdout := &bytes.Buffer{}
	logFile := filepath.Join(t.TempDir(), "familyfit.log")
	fileLogger := &lumberjack.Logger{Filename: logFile, MaxSize: 1}

	cw := NewCombinedWriter(stdout, fileLogger)
	require.Len(t, cw.Writers, 2)

	lines := []string{
		"level=info msg=\"dashboard session created\"\n",
		"level=debug msg=\"profile p1 loaded, generation 1\"\n",
	}
	for _, line := range lines {
		n, err := cw.Write([]byte(line))
		require.NoError(t, err)
		assert.Equal(t, 2*len(line), n)
	}
	require.NoError(t, fileLogger.Close())

	fileContent, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Equal(t, lines[0]+lines[1], string(fileContent))
	assert.Equal(t, lines[0]+lines[1], stdout.String())
}

func TestCombinedWriter_FailingWritersDoNotStopOthers(t *testing.T) {
	diskFull := errors.New("no space left on device")
	closedPipe := errors.New("broken pipe")
	stdout := &bytes.Buffer{}

	cw := NewCombinedWriter(failingWriter{err: diskFull}, stdout, failingWriter{err: closedPipe})

	msg := "level=error msg=\"dashboard load failed\"\n"
	n, err := cw.Write([]byte(msg))
	require.Error(t, err)
	assert.ErrorIs(t, err, diskFull)
	assert.ErrorIs(t, err, closedPipe)
	assert.Len(t, multierr.Errors(err), 2)

	// only stdout got it
	assert.Equal(t, len(msg), n)
	assert.Equal(t, msg, stdout.String())
}

func TestNewCombinedWriter_CopiesWriters(t *testing.T) {
	writers := []io.Writer{&bytes.Buffer{}}
	cw := NewCombinedWriter(writers...)
	writers[0] = nil
	assert.NotNil(t, cw.Writers[0])
}

type failingWriter struct {
	err error
}

func (fw failingWriter) Write(p []byte) (int, error) {
	return 0, fw.err
}
