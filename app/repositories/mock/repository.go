package mock

import (
	"sort"
	"sync"

	"griddle/app/models"
	"griddle/app/repositories"
)

type BlogRepository struct {
	blogs  map[int]*models.Blog
	nextID int
	mutex  sync.RWMutex
}

type CommentRepository struct {
	comments map[int]*models.Comment
	nextID   int
	mutex    sync.RWMutex
}

type UserRepository struct {
	users  map[int]*models.User
	nextID int
	mutex  sync.RWMutex
}

func NewBlogRepository() *BlogRepository {
	return &BlogRepository{
		blogs:  make(map[int]*models.Blog),
		nextID: 1,
	}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[int]*models.Comment),
		nextID:   1,
	}
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:  make(map[int]*models.User),
		nextID: 1,
	}
}

// BlogRepository implementation

func (m *BlogRepository) Create(blog *models.Blog) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	blog.ID = m.nextID
	m.nextID++
	m.blogs[blog.ID] = blog
	return nil
}

func (m *BlogRepository) GetByID(id int) (*models.Blog, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	blog, exists := m.blogs[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *blog
	return &copied, nil
}

func (m *BlogRepository) List() ([]*models.Blog, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var blogs []*models.Blog
	for id := 1; id < m.nextID; id++ {
		if blog, exists := m.blogs[id]; exists {
			copied := *blog
			blogs = append(blogs, &copied)
		}
	}
	return blogs, nil
}

func (m *BlogRepository) ListByAuthor(authorID, limit int) ([]*models.Blog, error) {
	all, err := m.List()
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

func (m *BlogRepository) UpdateOwned(id, authorID int, mutate func(*models.Blog) error) (*models.Blog, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	blog, exists := m.blogs[id]
	if !exists || blog.AuthorID != authorID {
		return nil, repositories.ErrNotFound
	}
	copied := *blog
	if err := mutate(&copied); err != nil {
		return nil, err
	}
	m.blogs[id] = &copied
	result := copied
	return &result, nil
}

func (m *BlogRepository) DeleteOwned(id, authorID int) (*models.Blog, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	blog, exists := m.blogs[id]
	if !exists || blog.AuthorID != authorID {
		return nil, repositories.ErrNotFound
	}
	delete(m.blogs, id)
	return blog, nil
}

func (m *BlogRepository) RegisterView(id int, viewer string) (*models.Blog, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	blog, exists := m.blogs[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	blog.RegisterView(viewer)
	copied := *blog
	return &copied, nil
}

func (m *BlogRepository) React(id, userID int, reaction string) (*models.Blog, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	blog, exists := m.blogs[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	if err := blog.React(userID, reaction); err != nil {
		return nil, err
	}
	copied := *blog
	return &copied, nil
}

// CommentRepository implementation

func (m *CommentRepository) Create(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment.ID = m.nextID
	m.nextID++
	m.comments[comment.ID] = comment
	return nil
}

func (m *CommentRepository) ListByBlog(blogID int) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var comments []*models.Comment
	for id := 1; id < m.nextID; id++ {
		if comment, exists := m.comments[id]; exists && comment.BlogID == blogID {
			copied := *comment
			comments = append(comments, &copied)
		}
	}
	return comments, nil
}

func (m *CommentRepository) DeleteByBlog(blogID int) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	deleted := 0
	for id, comment := range m.comments {
		if comment.BlogID == blogID {
			delete(m.comments, id)
			deleted++
		}
	}
	return deleted, nil
}

// UserRepository implementation

func (m *UserRepository) Create(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *UserRepository) GetByID(id int) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (m *UserRepository) GetByEmail(email string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}
