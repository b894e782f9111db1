package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Image is a media-host reference for an uploaded file.
type Image struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// Blog represents a blog post document.
// Author and Comments are populated on read and never stored.
type Blog struct {
	ID         int        `json:"id" validate:"gte=0"`
	Title      string     `json:"title" validate:"required,min=3,max=100"`
	Content    string     `json:"content" validate:"required,min=10"`
	Tags       []string   `json:"tags"`
	AuthorID   int        `json:"authorId" validate:"required,gte=1"`
	CoverImage *Image     `json:"coverImage,omitempty"`
	Images     []Image    `json:"images"`
	Likes      []int      `json:"likes"`
	Dislikes   []int      `json:"dislikes"`
	Views      int        `json:"views"`
	ViewedBy   []string   `json:"-"`
	CreatedAt  time.Time  `json:"createdAt" validate:"required"`
	Author     *Author    `json:"author,omitempty"`
	Comments   []*Comment `json:"comments,omitempty"`
}

// Comment represents a comment on a blog post.
// BlogID is omitted from JSON when the comment is nested under its post.
type Comment struct {
	ID        int       `json:"id" validate:"gte=0"`
	BlogID    int       `json:"blogId,omitempty" validate:"required,gte=1"`
	UserID    int       `json:"userId" validate:"required,gte=1"`
	Content   string    `json:"content" validate:"required,min=1,max=500"`
	Likes     []int     `json:"likes"`
	Replies   []Reply   `json:"replies"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
	User      *Author   `json:"user,omitempty"`
}

// Reply is a nested reply inside a comment.
type Reply struct {
	UserID    int       `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// User represents a registered author or reader.
type User struct {
	ID           int       `json:"id" validate:"gte=0"`
	Name         string    `json:"name" validate:"required,min=2,max=50"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar,omitempty"`
	Role         string    `json:"role,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Author is the trimmed user view attached to posts and comments.
type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Role   string `json:"role,omitempty"`
	Bio    string `json:"bio,omitempty"`
}
