package covers

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Store persists cover images on disk, one per catalog entry, named
// {isbn}.jpg. Uploads overwrite any existing cover for the same ISBN.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory covers are written to; the server mounts it as a
// static route so the UI can fetch /covers/{isbn}.jpg by convention.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the on-disk location of the cover for the given ISBN, whether
// or not one exists yet.
func (s *Store) Path(isbn string) string {
	return filepath.Join(s.dir, isbn+".jpg")
}

// Exists reports whether a cover has been uploaded for the given ISBN.
func (s *Store) Exists(isbn string) bool {
	_, err := os.Stat(s.Path(isbn))
	return err == nil
}

// Save writes an uploaded cover file to {dir}/{isbn}.jpg, replacing any
// previous cover.
func (s *Store) Save(isbn string, fh *multipart.FileHeader) error {
	src, err := fh.Open()
	if err != nil {
		return errors.WithStack(err)
	}
	defer src.Close()

	dst, err := os.Create(s.Path(isbn))
	if err != nil {
		return errors.WithStack(err)
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return errors.WithStack(err)
}

// Remove deletes the cover for the given ISBN if present. Missing covers are
// not an error.
func (s *Store) Remove(isbn string) error {
	err := os.Remove(s.Path(isbn))
	if err != nil && !os.IsNotExist(err) {
		return errors.WithStack(err)
	}
	return nil
}

// Init creates the covers directory and verifies it is writable.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create covers directory: %s", s.dir)
	}

	testFile := filepath.Join(s.dir, ".write_test")
	f, err := os.Create(testFile)
	if err != nil {
		return errors.Wrapf(err, "covers directory is not writable: %s", s.dir)
	}
	f.Close()

	if err := os.Remove(testFile); err != nil {
		return errors.Wrapf(err, "failed to clean up write test file: %s", testFile)
	}

	return nil
}
