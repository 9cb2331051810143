// internal/storage/allocator.go
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Role is the logical role of a stored file
type Role string

const (
	RoleOriginal  Role = "original"
	RoleThumbnail Role = "thumbnail"
	RolePreview   Role = "preview"
)

// Suffix returns the filename suffix for the role
func (r Role) Suffix() string {
	switch r {
	case RoleThumbnail:
		return "_thumb"
	case RolePreview:
		return "_preview"
	default:
		return ""
	}
}

// Location is a resolved storage placement for one file
type Location struct {
	ID   uuid.UUID
	Role Role
	Path string
}

// Allocator computes time-sharded storage paths under a root directory.
// Paths are {root}/{YYYY}/{MM}/{id}{suffix}{ext}; collision-freedom rests on
// identifier uniqueness, not locking.
type Allocator struct {
	root string
	now  func() time.Time
}

// NewAllocator creates an allocator rooted at root
func NewAllocator(root string) *Allocator {
	return &Allocator{
		root: root,
		now:  time.Now,
	}
}

// Allocate computes the path for (id, role, ext) at the current UTC instant
// and creates any missing directory components.
func (a *Allocator) Allocate(id uuid.UUID, role Role, ext string) (Location, error) {
	now := a.now().UTC()

	dir := filepath.Join(a.root, fmt.Sprintf("%04d", now.Year()), fmt.Sprintf("%02d", int(now.Month())))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Location{}, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}

	filename := id.String() + role.Suffix() + ext

	return Location{
		ID:   id,
		Role: role,
		Path: filepath.Join(dir, filename),
	}, nil
}

// RelPath returns loc's path relative to the storage root, with forward
// slashes, suitable as an object key.
func (a *Allocator) RelPath(loc Location) (string, error) {
	rel, err := filepath.Rel(a.root, loc.Path)
	if err != nil {
		return "", fmt.Errorf("path %s is outside storage root: %w", loc.Path, err)
	}
	return filepath.ToSlash(rel), nil
}

// Root returns the storage root directory
func (a *Allocator) Root() string {
	return a.root
}
