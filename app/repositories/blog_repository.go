package repositories

import (
	"fmt"
	"sort"

	"griddle/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerBlogRepository implements BlogRepository using BadgerDB
type BadgerBlogRepository struct {
	db *badger.DB
}

// NewBadgerBlogRepository creates a new BadgerBlogRepository
func NewBadgerBlogRepository(db *badger.DB) *BadgerBlogRepository {
	return &BadgerBlogRepository{db: db}
}

func blogKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%d", BlogKeyPrefix, id))
}

// viewKey marks that a viewer identifier has been counted for a blog.
// Markers live outside the document so viewer identities never serialize
// into API responses.
func viewKey(id int, viewer string) []byte {
	return []byte(fmt.Sprintf("%s%d:%s", ViewKeyPrefix, id, viewer))
}

// Create creates a new blog post
func (r *BadgerBlogRepository) Create(blog *models.Blog) error {
	return update(r.db, func(txn *badger.Txn) error {
		id, err := getNextID(txn, BlogSeqKey)
		if err != nil {
			return err
		}
		blog.ID = id

		data, err := marshalEntity(blog)
		if err != nil {
			return err
		}

		return txn.Set(blogKey(blog.ID), data)
	})
}

// GetByID retrieves a blog by ID
func (r *BadgerBlogRepository) GetByID(id int) (*models.Blog, error) {
	var blog models.Blog

	err := r.db.View(func(txn *badger.Txn) error {
		return getBlog(txn, id, &blog)
	})
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// List retrieves all blogs. Filtering, sorting and pagination happen in the
// service layer; the stored order of badger keys is not meaningful.
func (r *BadgerBlogRepository) List() ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(BlogKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var blog models.Blog
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &blog)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal blog: %v", err)
			}
			blogs = append(blogs, &blog)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

// ListByAuthor retrieves an author's most recent blogs, newest first.
// A limit of 0 means no limit.
func (r *BadgerBlogRepository) ListByAuthor(authorID, limit int) ([]*models.Blog, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}

	var blogs []*models.Blog
	for _, blog := range all {
		if blog.AuthorID == authorID {
			blogs = append(blogs, blog)
		}
	}
	sort.Slice(blogs, func(i, j int) bool {
		return blogs[i].CreatedAt.After(blogs[j].CreatedAt)
	})
	if limit > 0 && len(blogs) > limit {
		blogs = blogs[:limit]
	}
	return blogs, nil
}

// UpdateOwned applies mutate to the blog matching both id and authorID and
// writes the result in the same transaction. A wrong id and a wrong author
// are both reported as ErrNotFound.
func (r *BadgerBlogRepository) UpdateOwned(id, authorID int, mutate func(*models.Blog) error) (*models.Blog, error) {
	var blog models.Blog
	err := update(r.db, func(txn *badger.Txn) error {
		if err := getOwnedBlog(txn, id, authorID, &blog); err != nil {
			return err
		}
		if err := mutate(&blog); err != nil {
			return err
		}

		data, err := marshalEntity(&blog)
		if err != nil {
			return err
		}
		return txn.Set(blogKey(id), data)
	})
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// DeleteOwned deletes the blog matching id and authorID, along with its view
// markers, and returns it.
func (r *BadgerBlogRepository) DeleteOwned(id, authorID int) (*models.Blog, error) {
	var blog models.Blog
	err := update(r.db, func(txn *badger.Txn) error {
		if err := getOwnedBlog(txn, id, authorID, &blog); err != nil {
			return err
		}
		if err := txn.Delete(blogKey(id)); err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(fmt.Sprintf("%s%d:", ViewKeyPrefix, id))
		var markers [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			markers = append(markers, it.Item().KeyCopy(nil))
		}
		for _, key := range markers {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// RegisterView records a viewer identifier and increments the view counter
// when the identifier is new. The marker check and the counter write share
// one transaction, so a viewer is counted exactly once.
func (r *BadgerBlogRepository) RegisterView(id int, viewer string) (*models.Blog, error) {
	var blog models.Blog
	err := update(r.db, func(txn *badger.Txn) error {
		if err := getBlog(txn, id, &blog); err != nil {
			return err
		}

		marker := viewKey(id, viewer)
		_, err := txn.Get(marker)
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		if err := txn.Set(marker, nil); err != nil {
			return err
		}
		blog.Views++

		data, err := marshalEntity(&blog)
		if err != nil {
			return err
		}
		return txn.Set(blogKey(id), data)
	})
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// React applies a like or dislike for userID in one write, keeping the two
// sets mutually exclusive.
func (r *BadgerBlogRepository) React(id, userID int, reaction string) (*models.Blog, error) {
	var blog models.Blog
	err := update(r.db, func(txn *badger.Txn) error {
		if err := getBlog(txn, id, &blog); err != nil {
			return err
		}
		if err := blog.React(userID, reaction); err != nil {
			return err
		}

		data, err := marshalEntity(&blog)
		if err != nil {
			return err
		}
		return txn.Set(blogKey(id), data)
	})
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func getBlog(txn *badger.Txn, id int, blog *models.Blog) error {
	item, err := txn.Get(blogKey(id))
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, blog)
	})
}

func getOwnedBlog(txn *badger.Txn, id, authorID int, blog *models.Blog) error {
	if err := getBlog(txn, id, blog); err != nil {
		return err
	}
	// Authorization mismatch is indistinguishable from a missing record.
	if blog.AuthorID != authorID {
		return ErrNotFound
	}
	return nil
}
