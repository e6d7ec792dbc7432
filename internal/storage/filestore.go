package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrOutsideRoot = errors.New("path is outside the upload root")
	ErrEmptyPath   = errors.New("no file path recorded")
	ErrFileMissing = errors.New("file not found on disk")
)

const genericMimeType = "application/octet-stream"

// StoredFile describes bytes written by Save.
type StoredFile struct {
	StoredName string
	Path       string
	Size       int64
	MimeType   string
}

// FileStore keeps document bytes under a single root directory.
type FileStore struct {
	root string
	now  func() time.Time
}

func NewFileStore(root string) (*FileStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve upload root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}
	return &FileStore{root: abs, now: time.Now}, nil
}

func (s *FileStore) Root() string {
	return s.root
}

// Save copies r to <root>/<yyyy>/<mm>/<uuid><ext>, where ext comes from the
// original file name. When declaredType is empty or generic the type is
// sniffed from the written bytes.
func (s *FileStore) Save(r io.Reader, originalName, declaredType string) (*StoredFile, error) {
	now := s.now()
	dir := filepath.Join(s.root, now.Format("2006"), now.Format("01"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	storedName := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	path := filepath.Join(dir, storedName)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	size, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write file: %w", err)
	}

	mimeType := strings.TrimSpace(declaredType)
	if mimeType == "" || mimeType == genericMimeType {
		detected, err := mimetype.DetectFile(path)
		if err == nil {
			mimeType = detected.String()
		} else {
			mimeType = genericMimeType
		}
	}

	return &StoredFile{
		StoredName: storedName,
		Path:       path,
		Size:       size,
		MimeType:   mimeType,
	}, nil
}

// Resolve turns a recorded path into an absolute path and rejects anything
// that does not lie under the root. Relative paths are taken from the root.
func (s *FileStore) Resolve(recorded string) (string, error) {
	if strings.TrimSpace(recorded) == "" {
		return "", ErrEmptyPath
	}
	path := recorded
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", ErrOutsideRoot
	}
	rel, err := filepath.Rel(s.root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return abs, nil
}

// Open resolves and opens a recorded path for reading.
func (s *FileStore) Open(recorded string) (*os.File, os.FileInfo, error) {
	path, err := s.Resolve(recorded)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrFileMissing
		}
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, nil, ErrFileMissing
	}
	return f, info, nil
}

// Remove deletes a recorded file. A file that is already gone is reported
// with ErrFileMissing so callers can choose to ignore it.
func (s *FileStore) Remove(recorded string) error {
	path, err := s.Resolve(recorded)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrFileMissing
		}
		return err
	}
	return nil
}
