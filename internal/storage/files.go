package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"birthday-home/internal/model"
)

// DiskStore keeps uploads in a flat directory under random names, the way the
// original site stored attachments.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Store writes src under a fresh random name keeping the original extension
// and returns the reference to persist.
func (s *DiskStore) Store(src io.Reader, origName string) (string, error) {
	ref := model.NewID() + filepath.Ext(origName)
	dst, err := os.Create(filepath.Join(s.dir, ref))
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		// don't leave a partial file behind
		os.Remove(dst.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}
	return ref, nil
}

// Remove deletes a stored file. A missing file is not an error: delete flows
// are best-effort.
func (s *DiskStore) Remove(ref string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(ref)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *DiskStore) PublicURL(ref string) string { return "/uploads/" + ref }

func (s *DiskStore) Dir() string { return s.dir }
