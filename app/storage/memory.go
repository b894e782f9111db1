package storage

import (
	"errors"
	"fmt"
	"mime/multipart"
	"sync"

	"griddle/app/models"
)

// MemoryStore is an in-memory MediaStore used in tests. FailUploads and
// FailDeletes inject upstream failures.
type MemoryStore struct {
	mutex       sync.Mutex
	objects     map[string]string
	nextID      int
	FailUploads bool
	FailDeletes bool
}

// NewMemoryStore creates an empty in-memory media store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]string)}
}

func (s *MemoryStore) Upload(file *multipart.FileHeader) (models.Image, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.FailUploads {
		return models.Image{}, errors.New("upload failed")
	}

	s.nextID++
	id := fmt.Sprintf("mem-%d", s.nextID)
	s.objects[id] = file.Filename
	return models.Image{
		PublicID: id,
		URL:      "https://media.test/" + id,
	}, nil
}

func (s *MemoryStore) Delete(publicID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.FailDeletes {
		return errors.New("delete failed")
	}
	delete(s.objects, publicID)
	return nil
}

// Len reports how many objects the store currently holds.
func (s *MemoryStore) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.objects)
}

// Has reports whether the store holds an object with the given public id.
func (s *MemoryStore) Has(publicID string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	_, ok := s.objects[publicID]
	return ok
}
