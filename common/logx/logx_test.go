package logx_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/axent-pl/security/common/logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogger(t *testing.T) {
	prev := logx.L()
	t.Cleanup(func() { logx.SetLogger(prev) })

	var buf bytes.Buffer
	logx.SetLogger(logx.New(&buf, slog.LevelInfo))

	logx.L().Debug("hidden", "k", "v")
	logx.L().Info("shown", "subject", "acme")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "subject=acme")
}

func TestSetLogger_NilSilences(t *testing.T) {
	prev := logx.L()
	t.Cleanup(func() { logx.SetLogger(prev) })

	logx.SetLogger(nil)
	require.NotNil(t, logx.L())
	logx.L().Error("dropped")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", want: slog.LevelInfo, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := logx.ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
