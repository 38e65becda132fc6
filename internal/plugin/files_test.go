package plugin

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newFileContext(t *testing.T) *PluginContext {
	t.Helper()
	root := t.TempDir()
	return NewPluginContext(nil, root, filepath.Join(root, "Output"), "test")
}

func TestFile(t *testing.T) {
	pc := newFileContext(t)
	require.NoError(t, os.MkdirAll(filepath.Join(pc.SiteDir, "Resources"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pc.SiteDir, "Resources", "CNAME"), []byte("a.io\n"), 0o644))

	data, err := pc.File("Resources/CNAME")
	require.NoError(t, err)
	require.Equal(t, "a.io\n", string(data))

	_, err = pc.File("Resources/missing")
	require.True(t, errors.Is(err, fs.ErrNotExist), "expected not-exist, got %v", err)
}

func TestPathsMustStayInsideRoot(t *testing.T) {
	pc := newFileContext(t)

	for _, rel := range []string{"../escape", "/etc/hosts", ""} {
		_, err := pc.File(rel)
		require.ErrorIs(t, err, ErrInvalidPath, rel)
		require.ErrorIs(t, pc.CreateOutputFile(rel, []byte("x")), ErrInvalidPath, rel)
	}
}

func TestCreateOutputFileOverwrites(t *testing.T) {
	pc := newFileContext(t)

	require.NoError(t, pc.CreateOutputFile("CNAME", []byte("old.io")))
	require.NoError(t, pc.CreateOutputFile("CNAME", []byte("new.io")))

	data, err := os.ReadFile(filepath.Join(pc.OutputDir, "CNAME"))
	require.NoError(t, err)
	require.Equal(t, "new.io", string(data))

	entries, err := os.ReadDir(pc.OutputDir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestCopyFileToOutputIsByteExact(t *testing.T) {
	pc := newFileContext(t)
	content := []byte("test.io\nwww.test.io\n")
	require.NoError(t, os.MkdirAll(filepath.Join(pc.SiteDir, "Resources"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pc.SiteDir, "Resources", "CNAME"), content, 0o600))

	require.NoError(t, pc.CopyFileToOutput("Resources/CNAME"))

	data, err := os.ReadFile(filepath.Join(pc.OutputDir, "CNAME"))
	require.NoError(t, err)
	require.Equal(t, content, data)

	info, err := os.Stat(filepath.Join(pc.OutputDir, "CNAME"))
	require.NoError(t, err)
	require.Equal(t, fs.FileMode(0o644), info.Mode().Perm())
}

func TestCopyFileToOutputMissingSource(t *testing.T) {
	pc := newFileContext(t)

	err := pc.CopyFileToOutput("Resources/CNAME")
	require.ErrorIs(t, err, fs.ErrNotExist)
	_, statErr := os.Stat(filepath.Join(pc.OutputDir, "CNAME"))
	require.ErrorIs(t, statErr, fs.ErrNotExist)
}

func TestReadText(t *testing.T) {
	pc := newFileContext(t)
	require.NoError(t, os.WriteFile(filepath.Join(pc.SiteDir, "ok"), []byte("bücher.example"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(pc.SiteDir, "bad"), []byte{0xff, 0xfe}, 0o644))

	text, err := pc.ReadText("ok")
	require.NoError(t, err)
	require.Equal(t, "bücher.example", text)

	_, err = pc.ReadText("bad")
	require.ErrorIs(t, err, ErrNotText)
}
