package storage

import (
	"fmt"
	"mime/multipart"
	"path/filepath"

	"griddle/app/models"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// S3Store stores media objects in an S3 bucket.
type S3Store struct {
	s3     *s3.S3
	bucket string
}

// NewS3Store creates an S3-backed media store.
func NewS3Store(region, bucket string) (*S3Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}

	return &S3Store{
		s3:     s3.New(sess),
		bucket: bucket,
	}, nil
}

// Upload stores the file under a fresh key and returns its media reference.
func (c *S3Store) Upload(file *multipart.FileHeader) (models.Image, error) {
	f, err := file.Open()
	if err != nil {
		return models.Image{}, err
	}
	defer f.Close()

	key := fmt.Sprintf("blog/%s%s", uuid.NewString(), filepath.Ext(file.Filename))

	_, err = c.s3.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(file.Size),
		ContentType:   aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		return models.Image{}, err
	}

	return models.Image{
		PublicID: key,
		URL:      fmt.Sprintf("https://%s.s3.amazonaws.com/%s", c.bucket, key),
	}, nil
}

// Delete removes the object identified by publicID from the bucket.
func (c *S3Store) Delete(publicID string) error {
	_, err := c.s3.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(publicID),
	})
	return err
}
