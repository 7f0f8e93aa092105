package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomicCreatesDirAndLeavesNoTemp(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	path := filepath.Join(dir, "doc.pdf")
	require.NoError(t, WriteFileAtomic(path, []byte("%PDF-1.3")))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.3", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestWriteJSONAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.json")
	require.NoError(t, WriteJSONAtomic(path, map[string]string{"title": "Fractions"}))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"title":"Fractions"}`, string(b))
}

func TestSHA256Hex(t *testing.T) {
	require.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", SHA256Hex([]byte("hello")))
}

func TestSafeJoinStripsDirectories(t *testing.T) {
	p, err := SafeJoin("/data", "../../etc/x.pdf")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/data", "x.pdf"), p)

	_, err = SafeJoin("/data", "..")
	require.Error(t, err)
}
