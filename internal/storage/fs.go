package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FSStore keeps objects on a filesystem rooted at root.
type FSStore struct {
	fs        afero.Fs
	root      string
	publicURL string
}

func NewFSStore(fs afero.Fs, root, publicURL string) *FSStore {
	return &FSStore{fs: fs, root: root, publicURL: strings.TrimRight(publicURL, "/")}
}

func (s *FSStore) path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(path.Clean("/"+key)))
}

func (s *FSStore) Save(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	p := s.path(key)
	if err := s.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := s.fs.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (s *FSStore) Delete(_ context.Context, key string) error {
	err := s.fs.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *FSStore) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.publicURL + "/" + key
}
