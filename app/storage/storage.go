package storage

import (
	"mime/multipart"

	"griddle/app/models"
)

// MediaStore is the media-host client used for blog images. Upload and
// Delete may each fail independently per call.
type MediaStore interface {
	Upload(file *multipart.FileHeader) (models.Image, error)
	Delete(publicID string) error
}
