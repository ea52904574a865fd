package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/AranyaAryaman/noJIRA/internal/utils"
)

// ErrNotFound is returned by Get when the blob does not exist.
var ErrNotFound = errors.New("storage: file not found")

// Store is the blob collaborator: opaque paths in, bytes out. Delete of
// an absent blob is not an error.
type Store interface {
	// Put stores the content under a fresh opaque path. pathHint groups
	// related blobs (e.g. "tasks/42") and origName supplies the
	// extension to keep.
	Put(pathHint, origName string, r io.Reader) (string, error)
	Get(path string) (io.ReadCloser, error)
	Delete(path string) error
}

// LocalStore keeps blobs on the local filesystem under a root
// directory. Returned paths are relative to the root so the rows stay
// valid if the root moves.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload root: %w", err)
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Put(pathHint, origName string, r io.Reader) (string, error) {
	name, err := utils.RandomToken(16)
	if err != nil {
		return "", err
	}
	if ext := filepath.Ext(origName); ext != "" {
		name += ext
	}

	rel := filepath.Join(cleanHint(pathHint), name)
	abs := filepath.Join(s.root, rel)

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(abs)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return rel, nil
}

func (s *LocalStore) Get(path string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.root, filepath.Clean("/"+path)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *LocalStore) Delete(path string) error {
	err := os.Remove(filepath.Join(s.root, filepath.Clean("/"+path)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	// try to drop the now-possibly-empty parent, best effort
	_ = os.Remove(filepath.Join(s.root, filepath.Dir(filepath.Clean("/"+path))))
	return nil
}

// cleanHint strips traversal from the caller-supplied grouping prefix.
func cleanHint(hint string) string {
	hint = strings.TrimLeft(filepath.Clean("/"+hint), "/")
	if hint == "" || hint == "." {
		return "misc"
	}
	return hint
}
