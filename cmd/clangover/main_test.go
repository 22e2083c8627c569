package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antoonpurnal/clangover/attack"
	"github.com/antoonpurnal/clangover/report"
)

func TestPatterns(t *testing.T) {

	t.Run("Table", func(t *testing.T) {
		var buf bytes.Buffer
		printPatterns(&buf, attack.DefaultDecoder)
		out := buf.String()
		require.True(t, strings.HasPrefix(out, "coefficients in [-3, 3]\n"))
		for _, p := range attack.CanonicalPatterns {
			require.Contains(t, out, p.String())
		}
		require.Equal(t, attack.NbClasses, strings.Count(out, " u="))
	})

	t.Run("Decode", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, decodePatterns(&buf, attack.DefaultDecoder, 0, []string{"0010101", "[1 1 1 1 1 1 1]"}))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		require.True(t, strings.HasSuffix(lines[0], " -3"), lines[0])
		require.True(t, strings.HasSuffix(lines[1], " ??"), lines[1])

		buf.Reset()
		require.NoError(t, decodePatterns(&buf, attack.DefaultDecoder, 1, []string{"0010101"}))
		require.True(t, strings.HasSuffix(strings.TrimSpace(buf.String()), " 3"))
	})

	t.Run("Invalid", func(t *testing.T) {
		var buf bytes.Buffer
		require.Error(t, decodePatterns(&buf, attack.DefaultDecoder, 0, []string{"0120101"}))
		require.Error(t, decodePatterns(&buf, attack.DefaultDecoder, 0, []string{"001"}))
	})
}

func TestWriteDocument(t *testing.T) {

	doc := report.Document{RunID: "3f1c2a"}

	t.Run("Written", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.yaml")
		require.NoError(t, writeDocument(path, doc))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), "run_id: 3f1c2a")
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		require.Error(t, writeDocument(filepath.Join(t.TempDir(), "missing", "run.yaml"), doc))
	})

	t.Run("DiskFull", func(t *testing.T) {
		if _, err := os.Stat("/dev/full"); err != nil {
			t.Skip("no /dev/full")
		}
		require.Error(t, writeDocument("/dev/full", doc))
	})
}
