// FILE: lixenwraith/loclog/console_test.go
package loclog

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestNewConsoleSink(t *testing.T) {
	tests := []struct {
		target, color string
		wantErr       bool
		wantColor     *bool
	}{
		{target: "", color: ""},
		{target: "stdout", color: ColorAuto},
		{target: "stderr", color: ColorAlways, wantColor: boolPtr(true)},
		{target: "stdout", color: ColorNever, wantColor: boolPtr(false)},
		{target: "syslog", color: ColorNever, wantErr: true},
		{target: "stdout", color: "rainbow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.target+"/"+tt.color, func(t *testing.T) {
			s, err := NewConsoleSink(tt.target, tt.color)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantColor != nil {
				assert.Equal(t, *tt.wantColor, s.Colored())
			}
			assert.NoError(t, s.Close())
		})
	}
}

func TestConsoleSinkWrite(t *testing.T) {
	var buf bytes.Buffer
	s := newConsoleSinkWriter(&buf, false)

	require.NoError(t, s.WriteLine([]byte("one")))
	require.NoError(t, s.WriteLine([]byte("two")))
	assert.Equal(t, "one\ntwo\n", buf.String())
	assert.False(t, s.Colored())

	// A buffer is never a terminal
	assert.False(t, probeColor(&buf))

	broken := newConsoleSinkWriter(failingWriter{}, false)
	assert.Error(t, broken.WriteLine([]byte("lost")))
}

func TestConsoleWriteFailureIsCounted(t *testing.T) {
	reg := NewRegistry()
	defer reg.Close()

	logger, err := NewBuilder().Name("console").EnableFile(false).InternalErrorsToStderr(false).Build(reg)
	require.NoError(t, err)
	logger.core.console = newConsoleSinkWriter(failingWriter{}, false)

	logger.Info("dropped")
	st := logger.Stats()
	assert.Equal(t, uint64(1), st.Logged)
	assert.Equal(t, uint64(1), st.Dropped)
}

func boolPtr(b bool) *bool { return &b }
