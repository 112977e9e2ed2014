package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paragraph.txt")
	require.NoError(t, os.WriteFile(path, []byte("  The quick brown fox\njumps.\n"), 0o644))

	text, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "  The quick brown fox\njumps.\n", text, "plain text keeps its layout")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInvalidPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.PDF")
	require.NoError(t, os.WriteFile(path, []byte("not really a pdf"), 0o644))

	_, err := Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdf")
}
