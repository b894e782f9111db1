package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "http://localhost:8080/media/")
	require.NoError(t, err)

	t.Run("upload writes the file and keeps the extension", func(t *testing.T) {
		img, err := store.Upload(fileHeader(t, "cover.jpg", "image data"))
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(img.PublicID, ".jpg"))
		assert.Equal(t, "http://localhost:8080/media/"+img.PublicID, img.URL)

		data, err := os.ReadFile(filepath.Join(dir, img.PublicID))
		require.NoError(t, err)
		assert.Equal(t, "image data", string(data))
	})

	t.Run("delete removes the file", func(t *testing.T) {
		img, err := store.Upload(fileHeader(t, "gone.png", "x"))
		require.NoError(t, err)

		require.NoError(t, store.Delete(img.PublicID))
		_, err = os.Stat(filepath.Join(dir, img.PublicID))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("deleting a missing file is not an error", func(t *testing.T) {
		assert.NoError(t, store.Delete("never-existed.jpg"))
	})

	t.Run("delete ignores path segments", func(t *testing.T) {
		img, err := store.Upload(fileHeader(t, "kept.png", "x"))
		require.NoError(t, err)

		require.NoError(t, store.Delete("../"+img.PublicID))
		_, err = os.Stat(filepath.Join(dir, img.PublicID))
		assert.True(t, os.IsNotExist(err))
	})
}
