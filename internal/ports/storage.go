package ports

import (
	"context"

	"github.com/openroberta/oraclient/internal/domain"
)

// ChecksumStore persists the checksum of the installed firmware.
type ChecksumStore interface {
	// Load returns the stored checksum, or domain.NoHash if none exists.
	Load(ctx context.Context) (domain.Checksum, error)

	// Save overwrites the stored checksum.
	Save(ctx context.Context, sum domain.Checksum) error
}

// ArtifactStore stores downloaded artifacts in the working directory.
type ArtifactStore interface {
	// Put writes data under name and returns the full path.
	Put(ctx context.Context, name string, data []byte) (string, error)

	// Unpack extracts the zip archive at path into the working directory.
	Unpack(ctx context.Context, path string) error
}
