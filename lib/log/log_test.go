package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inconshreveable/log15"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := New("test", "key", "value")
	SetLogger(logger, log15.LvlInfo, log15.StreamHandler(&buf, Formatter("json")))

	logger.Debug("hidden")
	assert.Equal(t, 0, buf.Len())

	logger.Info("shown", "n", 3)
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "shown", record["msg"])
	assert.Equal(t, "test", record["module"])
	assert.Equal(t, "value", record["key"])
	assert.Equal(t, float64(3), record["n"])
}

func TestDiscardByDefault(t *testing.T) {
	logger := New("quiet")
	assert.NotPanics(t, func() { logger.Error("nothing") })
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, log15.LvlInfo, lvl)

	lvl, err = ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, log15.LvlDebug, lvl)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	h, closer, err := Handler(Formatter("logfmt"), "")
	require.NoError(t, err)
	assert.NotNil(t, h)
	assert.Nil(t, closer)

	file := filepath.Join(t.TempDir(), "keys.log")
	h, closer, err = Handler(Formatter("json"), file)
	require.NoError(t, err)
	require.NotNil(t, closer)

	logger := New("file")
	SetLogger(logger, log15.LvlInfo, h)
	logger.Info("first")
	require.NoError(t, closer.Close())

	// reopening appends
	h, closer, err = Handler(Formatter("json"), file)
	require.NoError(t, err)
	SetLogger(logger, log15.LvlInfo, h)
	logger.Info("second")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "first")
	assert.Contains(t, lines[1], "second")

	_, _, err = Handler(Formatter("json"), filepath.Join(t.TempDir(), "missing", "keys.log"))
	assert.Error(t, err)
}
