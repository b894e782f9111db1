package services

import (
	"griddle/app/apperrors"
	"griddle/app/models"
	"griddle/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	blogRepo    repositories.BlogRepository
	userRepo    repositories.UserRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentRepo repositories.CommentRepository,
	blogRepo repositories.BlogRepository,
	userRepo repositories.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		blogRepo:    blogRepo,
		userRepo:    userRepo,
	}
}

// AddComment creates a comment on an existing blog.
func (s *CommentService) AddComment(blogID, userID int, content string) (*models.Comment, error) {
	if _, err := s.blogRepo.GetByID(blogID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.New(apperrors.ErrNotFound, "Blog not found")
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "Failed to fetch blog", err)
	}

	comment := &models.Comment{
		BlogID:  blogID,
		UserID:  userID,
		Content: content,
	}
	comment.BeforeCreate()
	if err := comment.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "Invalid comment data", err)
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "Failed to create comment", err)
	}
	return comment, nil
}

// ListComments returns all comments on a blog with commenter data joined in.
func (s *CommentService) ListComments(blogID int) ([]*models.Comment, error) {
	if _, err := s.blogRepo.GetByID(blogID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.New(apperrors.ErrNotFound, "Blog not found")
		}
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "Failed to fetch blog", err)
	}

	comments, err := s.commentRepo.ListByBlog(blogID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "Failed to fetch comments", err)
	}
	for _, comment := range comments {
		if user, err := s.userRepo.GetByID(comment.UserID); err == nil {
			comment.User = user.CommenterBrief()
		}
	}
	return comments, nil
}
