package plugin

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"git.home.luguber.info/inful/cnamepublish/internal/logfields"
)

var (
	// ErrInvalidPath is returned for paths that are absolute or escape their root.
	ErrInvalidPath = errors.New("path must be relative and stay inside its root")
	// ErrNotText is returned by ReadText for content that is not valid UTF-8.
	ErrNotText = errors.New("file is not valid UTF-8 text")
)

const outputFileMode = 0o644

// File reads the file at rel, relative to SiteDir.
// A missing file yields an error matching fs.ErrNotExist.
func (pc *PluginContext) File(rel string) ([]byte, error) {
	path, err := resolve(pc.SiteDir, rel)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rel, err)
	}
	return data, nil
}

// ReadText reads the site file at rel and decodes it as UTF-8 text.
func (pc *PluginContext) ReadText(rel string) (string, error) {
	data, err := pc.File(rel)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read %s: %w", rel, ErrNotText)
	}
	return string(data), nil
}

// CreateOutputFile writes content to rel inside OutputDir, replacing any previous file.
// The write goes through a temporary file and a rename so readers never observe partial content.
func (pc *PluginContext) CreateOutputFile(rel string, content []byte) error {
	dst, err := resolve(pc.OutputDir, rel)
	if err != nil {
		return err
	}
	if err := writeAtomic(dst, func(w io.Writer) error {
		_, werr := w.Write(content)
		return werr
	}); err != nil {
		return fmt.Errorf("create output %s: %w", rel, err)
	}
	pc.Recorder.ObserveOutputBytes(rel, len(content))
	pc.LogDebug("Wrote output file", logfields.Path(rel), logfields.Bytes(len(content)))
	return nil
}

// CopyFileToOutput copies the site file at rel byte-for-byte to the root of OutputDir,
// keeping its base name.
func (pc *PluginContext) CopyFileToOutput(rel string) error {
	src, err := resolve(pc.SiteDir, rel)
	if err != nil {
		return err
	}
	name := filepath.Base(src)
	dst, err := resolve(pc.OutputDir, name)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", rel, err)
	}
	defer in.Close()

	var copied int64
	if err := writeAtomic(dst, func(w io.Writer) error {
		n, cerr := io.Copy(w, in)
		copied = n
		return cerr
	}); err != nil {
		return fmt.Errorf("copy %s to output: %w", rel, err)
	}
	pc.Recorder.ObserveOutputBytes(name, int(copied))
	pc.LogDebug("Copied file to output", logfields.Path(rel), logfields.Output(name), logfields.Bytes(int(copied)))
	return nil
}

func resolve(root, rel string) (string, error) {
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%q: %w", rel, ErrInvalidPath)
	}
	return filepath.Join(root, filepath.FromSlash(rel)), nil
}

// writeAtomic streams fill into a temp file next to dst, then renames it into place.
func writeAtomic(dst string, fill func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = fill(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(outputFileMode); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
