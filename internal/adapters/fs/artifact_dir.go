package fs

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ArtifactDir implements ports.ArtifactStore on a working directory.
type ArtifactDir struct {
	dir string
}

// NewArtifactDir creates an ArtifactDir rooted at dir.
func NewArtifactDir(dir string) *ArtifactDir {
	return &ArtifactDir{dir: dir}
}

// Put writes data under the base name of name. Server-supplied names are
// never allowed to leave the working directory.
func (a *ArtifactDir) Put(ctx context.Context, name string, data []byte) (string, error) {
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." || base == ".." {
		return "", fmt.Errorf("invalid artifact name %q", name)
	}
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(a.dir, base)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return path, nil
}

// Unpack extracts the zip archive at path into the working directory,
// overwriting existing files.
func (a *ArtifactDir) Unpack(ctx context.Context, path string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	root, err := filepath.Abs(a.dir)
	if err != nil {
		return err
	}
	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := extract(root, f); err != nil {
			return err
		}
	}
	return nil
}

func extract(root string, f *zip.File) error {
	target := filepath.Join(root, f.Name)
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return fmt.Errorf("archive entry %q escapes working directory", f.Name)
	}
	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer src.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("extract %s: %w", f.Name, err)
	}
	return dst.Close()
}
