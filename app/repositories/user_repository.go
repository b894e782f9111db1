package repositories

import (
	"fmt"

	"griddle/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

func userKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%d", UserKeyPrefix, id))
}

// userRecord is the stored shape of a user. The model keeps the password
// hash out of JSON so it never serializes into API responses; the record
// reintroduces it for the database document.
type userRecord struct {
	*models.User
	PasswordHash string `json:"passwordHash"`
}

func marshalUser(user *models.User) ([]byte, error) {
	return marshalEntity(&userRecord{User: user, PasswordHash: user.PasswordHash})
}

func unmarshalUser(data []byte, user *models.User) error {
	rec := userRecord{User: user}
	if err := unmarshalEntity(data, &rec); err != nil {
		return err
	}
	user.PasswordHash = rec.PasswordHash
	return nil
}

// Create creates a new user
func (r *BadgerUserRepository) Create(user *models.User) error {
	return update(r.db, func(txn *badger.Txn) error {
		id, err := getNextID(txn, UserSeqKey)
		if err != nil {
			return err
		}
		user.ID = id

		data, err := marshalUser(user)
		if err != nil {
			return err
		}

		return txn.Set(userKey(user.ID), data)
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id int) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalUser(val, &user)
		})
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email address
func (r *BadgerUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	var found bool

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(UserKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				if err := unmarshalUser(val, &user); err != nil {
					return err
				}
				if user.Email == email {
					found = true
				}
				return nil
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal user: %v", err)
			}
			if found {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &user, nil
}
