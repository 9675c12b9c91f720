package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLineSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "actual.txt")
	require.NoError(t, os.WriteFile(path, []byte("1|A|10.00\n\n2|B|5.00"), 0o644))

	lines, err := NewFileLineSource().ReadLines(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"1|A|10.00\n", "\n", "2|B|5.00"}, lines)
}

func TestFileLineSourceMissing(t *testing.T) {
	_, err := NewFileLineSource().ReadLines(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestFileReportWriter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "comparison.txt")

	require.NoError(t, NewFileReportWriter().Write(context.Background(), path, []string{"1|2|0.20", "2|3|0.40"}))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1|2|0.20\n2|3|0.40\n", string(body))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed away")
}

func TestFileReportWriterMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "comparison.txt")
	err := NewFileReportWriter().Write(context.Background(), path, []string{"1|1|0.50"})
	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
