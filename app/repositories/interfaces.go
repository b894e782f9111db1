package repositories

import "griddle/app/models"

// BlogRepository defines the interface for blog post data access
type BlogRepository interface {
	Create(blog *models.Blog) error
	GetByID(id int) (*models.Blog, error)
	List() ([]*models.Blog, error)
	ListByAuthor(authorID, limit int) ([]*models.Blog, error)
	// UpdateOwned applies mutate to the blog matching both id and authorID
	// in a single write. ErrNotFound covers wrong id and wrong author alike.
	UpdateOwned(id, authorID int, mutate func(*models.Blog) error) (*models.Blog, error)
	// DeleteOwned deletes the blog matching id and authorID and returns it.
	DeleteOwned(id, authorID int) (*models.Blog, error)
	// RegisterView atomically records a viewer identifier and increments the
	// view counter if the identifier is new.
	RegisterView(id int, viewer string) (*models.Blog, error)
	// React atomically applies a like or dislike for userID.
	React(id, userID int, reaction string) (*models.Blog, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	ListByBlog(blogID int) ([]*models.Comment, error)
	// DeleteByBlog removes all comments on a blog and returns how many.
	DeleteByBlog(blogID int) (int, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}
