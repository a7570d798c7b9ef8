// Package blob stores the files of fills (uploads, outputs and artifacts)
// under slash separated keys such as "fills/<id>/input/TBMT.pdf".
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
)

// Store persists blobs by key.
type Store interface {
	// Put writes r under key, replacing any previous blob, and returns the
	// number of bytes written.
	Put(ctx context.Context, key string, r io.Reader) (int64, error)
	// Open returns the blob stored under key. A missing blob is NOT_FOUND.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// DeletePrefix removes every blob whose key starts with prefix + "/".
	DeletePrefix(ctx context.Context, prefix string) error
}

// FS is a Store on the local filesystem.
type FS struct {
	root string
}

var _ Store = (*FS)(nil)

// NewFS creates the root directory if needed and returns a store on it.
func NewFS(root string) (*FS, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("could not create blob root: %w", err)
	}

	return &FS{root: root}, nil
}

func (s *FS) path(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" || clean != "/"+strings.TrimSuffix(key, "/") {
		return "", serrors.With(serrors.ErrBadRequest, "invalid blob key %q", key)
	}

	return filepath.Join(s.root, filepath.FromSlash(clean[1:])), nil
}

func (s *FS) Put(_ context.Context, key string, r io.Reader) (int64, error) {
	p, err := s.path(key)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return 0, fmt.Errorf("could not create blob dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".blob-*")
	if err != nil {
		return 0, fmt.Errorf("could not create blob: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	n, err := io.Copy(tmp, r)
	if err != nil {
		_ = tmp.Close()

		return 0, fmt.Errorf("could not write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("could not write blob: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return 0, fmt.Errorf("could not store blob: %w", err)
	}

	return n, nil
}

func (s *FS) Open(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, serrors.Wrap(serrors.ErrNotFound, err, "blob %s not found", key)
	}
	if err != nil {
		return nil, fmt.Errorf("could not open blob: %w", err)
	}

	return f, nil
}

func (s *FS) DeletePrefix(_ context.Context, prefix string) error {
	p, err := s.path(prefix)
	if err != nil {
		return err
	}

	if err := os.RemoveAll(p); err != nil {
		return fmt.Errorf("could not delete blobs: %w", err)
	}

	return nil
}

// CopyTo writes the blob stored under key to the local file dst.
func CopyTo(ctx context.Context, s Store, key, dst string) error {
	r, err := s.Open(ctx, key)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", dst, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()

		return fmt.Errorf("could not copy blob: %w", err)
	}

	return f.Close()
}
