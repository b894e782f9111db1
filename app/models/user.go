package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Validate checks if the user meets all validation requirements
func (u *User) Validate() error {
	return validate.Struct(u)
}

// BeforeCreate sets up any necessary fields before creation
func (u *User) BeforeCreate() {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	if u.Role == "" {
		u.Role = "author"
	}
}

// SetPassword hashes and stores the given password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// AuthorCard is the author view attached to listed posts.
func (u *User) AuthorCard() *Author {
	return &Author{Name: u.Name, Avatar: u.Avatar, Role: u.Role, Bio: u.Bio}
}

// AuthorBrief is the author view attached to a single post.
func (u *User) AuthorBrief() *Author {
	return &Author{Name: u.Name, Avatar: u.Avatar, Role: u.Role}
}

// CommenterBrief is the author view attached to comments.
func (u *User) CommenterBrief() *Author {
	return &Author{Name: u.Name, Avatar: u.Avatar}
}
