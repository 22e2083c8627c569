package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateConfig(t *testing.T) {
	config := CreateConfig("", DisableTerminalLog, false, "")
	assert.Nil(t, config.Console)
	assert.Empty(t, config.File)
	assert.Equal(t, DefaultLevel, config.Level)

	config = CreateConfig("debug", EnableTerminalLog, true, "clangover.log")
	require.NotNil(t, config.Console)
	assert.True(t, config.Console.JSON)
	assert.Equal(t, "clangover.log", config.File)
	assert.Equal(t, "debug", config.Level)
}

func readLines(t *testing.T, path string) (lines []map[string]interface{}) {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	require.NoError(t, scanner.Err())
	return
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clangover.log")

	log := Create(CreateConfig("warn", DisableTerminalLog, false, path))
	log.Info().Msg("hidden")
	log.Warn().Int("coefficient", 3).Msg("shown")

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Equal(t, "warn", lines[0]["level"])
	assert.Equal(t, "shown", lines[0]["message"])
	assert.Equal(t, float64(3), lines[0]["coefficient"])
	assert.Contains(t, lines[0], "time")

	// append mode
	log = Create(CreateConfig("warn", DisableTerminalLog, false, path))
	log.Error().Msg("again")
	assert.Len(t, readLines(t, path), 2)
}

func TestInvalidLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clangover.log")

	log := Create(CreateConfig("blah", DisableTerminalLog, false, path))
	log.Debug().Msg("hidden")
	log.Info().Msg("shown")

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	assert.Equal(t, "error", lines[0]["level"])
	assert.Contains(t, lines[0]["message"], "blah")
	assert.Equal(t, "shown", lines[1]["message"])
}

func TestMissingLogDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "clangover.log")

	log := Create(CreateConfig("info", DisableTerminalLog, false, path))
	require.NotNil(t, log)
	log.Info().Msg("dropped")

	// the directory is not created
	_, err := os.Stat(filepath.Dir(path))
	require.True(t, os.IsNotExist(err))
}

func TestDefaultLogger(t *testing.T) {
	log := Create(nil)
	require.NotNil(t, log)
	require.Equal(t, "info", log.GetLevel().String())
}
