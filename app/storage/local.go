package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"griddle/app/models"
	"griddle/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocalStore stores media files on the local filesystem and serves them
// from a public base URL.
type LocalStore struct {
	basePath string
	baseURL  string
}

// NewLocalStore creates a disk-backed media store rooted at basePath.
func NewLocalStore(basePath, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &LocalStore{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload copies the file to disk under a fresh name.
func (s *LocalStore) Upload(file *multipart.FileHeader) (models.Image, error) {
	src, err := file.Open()
	if err != nil {
		return models.Image{}, err
	}
	defer src.Close()

	name := uuid.NewString() + filepath.Ext(file.Filename)
	fullPath := filepath.Join(s.basePath, name)

	dst, err := os.Create(fullPath)
	if err != nil {
		return models.Image{}, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return models.Image{}, fmt.Errorf("failed to save file: %w", err)
	}

	util.Logger.Info("media file stored", zap.String("path", fullPath))
	return models.Image{
		PublicID: name,
		URL:      s.baseURL + "/" + name,
	}, nil
}

// Delete removes the stored file. Deleting a missing file is not an error.
func (s *LocalStore) Delete(publicID string) error {
	err := os.Remove(filepath.Join(s.basePath, filepath.Base(publicID)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
