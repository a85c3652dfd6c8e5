package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lines decodes the JSON log lines written to buf.
func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestSubsystemFields(t *testing.T) {
	var buf bytes.Buffer
	root := New(&buf, "debug")

	root.Sub("mcp").Info().Str("tool", "log").Msg("tool call")
	root.Sub("jj").With("call", "c-1").Debug().Msg("running jj")

	got := lines(t, &buf)
	require.Len(t, got, 2)
	assert.Equal(t, "mcp", got[0]["subsystem"])
	assert.Equal(t, "log", got[0]["tool"])
	assert.Equal(t, "jj", got[1]["subsystem"])
	assert.Equal(t, "c-1", got[1]["call"])
	assert.Contains(t, got[1], "time")
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level string
		want  []string
	}{
		{"debug", []string{"debug", "info", "warn", "error"}},
		{"info", []string{"info", "warn", "error"}},
		{"warn", []string{"warn", "error"}},
		{"error", []string{"error"}},
		{"silent", nil},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(&buf, tt.level)
			log.Debug().Msg("debug")
			log.Info().Msg("info")
			log.Warn().Msg("warn")
			log.Error().Msg("error")

			var msgs []string
			for _, line := range lines(t, &buf) {
				msgs = append(msgs, line["message"].(string))
			}
			assert.Equal(t, tt.want, msgs)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":  zerolog.TraceLevel,
		"debug":  zerolog.DebugLevel,
		"info":   zerolog.InfoLevel,
		"warn":   zerolog.WarnLevel,
		"error":  zerolog.ErrorLevel,
		"fatal":  zerolog.FatalLevel,
		"silent": zerolog.Disabled,
		"":       zerolog.InfoLevel,
		"loud":   zerolog.InfoLevel,
		"DEBUG":  zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestOpenAppendsJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "jj-mcp-server.log")

	for _, tool := range []string{"status", "diff"} {
		log, closer, err := Open("info", path)
		require.NoError(t, err)
		log.Sub("mcp").Info().Str("tool", tool).Msg("tool call")
		require.NoError(t, closer.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got := lines(t, bytes.NewBuffer(data))
	require.Len(t, got, 2)
	assert.Equal(t, "status", got[0]["tool"])
	assert.Equal(t, "diff", got[1]["tool"])
}

func TestOpenStderrOnly(t *testing.T) {
	log, closer, err := Open("warn", "")
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.NoError(t, closer.Close())
}

func TestStdLoggerBridge(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info").Sub("stdio").StdLogger().Print("read error: EOF")
	assert.Contains(t, buf.String(), "read error: EOF")
	assert.Contains(t, buf.String(), `"subsystem":"stdio"`)

	buf.Reset()
	New(&buf, "silent").StdLogger().Print("dropped")
	assert.Empty(t, buf.String())
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() {
		log.Error().Msg("nothing")
		log.Sub("jj").With("call", "x").Info().Msg("nothing")
	})
}
