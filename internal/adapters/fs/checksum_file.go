package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/openroberta/oraclient/internal/domain"
)

// ChecksumFileName is the file holding the installed firmware checksum.
const ChecksumFileName = "firmware.hash"

// ChecksumFile implements ports.ChecksumStore using a single file.
type ChecksumFile struct {
	dir string
}

// NewChecksumFile creates a ChecksumFile in dir.
func NewChecksumFile(dir string) *ChecksumFile {
	return &ChecksumFile{dir: dir}
}

// Load returns the stored checksum, or domain.NoHash when the file is absent
// or empty.
func (c *ChecksumFile) Load(ctx context.Context) (domain.Checksum, error) {
	data, err := os.ReadFile(c.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NoHash, nil
		}
		return domain.NoHash, err
	}
	if len(data) == 0 {
		return domain.NoHash, nil
	}
	return domain.Checksum(data), nil
}

// Save overwrites the checksum atomically (temp file, then rename).
func (c *ChecksumFile) Save(ctx context.Context, sum domain.Checksum) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	path := c.Path()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(sum), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Path returns the full path to the checksum file.
func (c *ChecksumFile) Path() string {
	return filepath.Join(c.dir, ChecksumFileName)
}
