package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ImageStore persists uploaded images on a file volume under a media
// directory. Stored names are uuids so client-controlled filenames never
// touch the filesystem.
type ImageStore struct {
	dir string
}

// NewImageStore creates the media directory if needed.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating media dir: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// Dir returns the media root, for static file serving.
func (s *ImageStore) Dir() string {
	return s.dir
}

// SaveUpload writes the uploaded file under subdir (e.g. "products") and
// returns the stored path relative to the media root.
func (s *ImageStore) SaveUpload(fh *multipart.FileHeader, subdir string) (string, error) {
	if err := os.MkdirAll(filepath.Join(s.dir, subdir), 0o755); err != nil {
		return "", err
	}

	ext := filepath.Ext(fh.Filename)
	name := uuid.NewString() + ext
	relPath := path.Join(subdir, name)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, subdir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return relPath, nil
}

// Remove deletes a stored image by its relative path. A missing file is not
// an error.
func (s *ImageStore) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(relPath)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// AbsoluteURL rebuilds a media URL relative to the request's host, the way
// storefront clients expect image links.
func AbsoluteURL(c *gin.Context, relPath string) string {
	if relPath == "" {
		return ""
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/media/%s", scheme, c.Request.Host, relPath)
}
