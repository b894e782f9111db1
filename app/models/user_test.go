package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserPassword(t *testing.T) {
	user := &User{Name: "Alice", Email: "alice@example.com"}

	assert.NoError(t, user.SetPassword("hunter22"))
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.True(t, user.CheckPassword("hunter22"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestUserBeforeCreate(t *testing.T) {
	user := &User{Name: "Alice", Email: "alice@example.com"}
	user.BeforeCreate()

	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, "author", user.Role)

	editor := &User{Name: "Bob", Email: "bob@example.com", Role: "editor"}
	editor.BeforeCreate()
	assert.Equal(t, "editor", editor.Role)
}

func TestUserAuthorViews(t *testing.T) {
	user := &User{
		ID:        1,
		Name:      "Alice",
		Email:     "alice@example.com",
		Avatar:    "avatar.png",
		Role:      "editor",
		Bio:       "Writes about things",
		CreatedAt: time.Now(),
	}

	card := user.AuthorCard()
	assert.Equal(t, "Alice", card.Name)
	assert.Equal(t, "Writes about things", card.Bio)

	brief := user.AuthorBrief()
	assert.Equal(t, "editor", brief.Role)
	assert.Empty(t, brief.Bio)

	commenter := user.CommenterBrief()
	assert.Equal(t, "avatar.png", commenter.Avatar)
	assert.Empty(t, commenter.Role)
	assert.Empty(t, commenter.Bio)
}

func TestCommentValidate(t *testing.T) {
	t.Run("valid comment", func(t *testing.T) {
		comment := &Comment{
			BlogID:    1,
			UserID:    2,
			Content:   "Nice post",
			CreatedAt: time.Now(),
		}
		assert.NoError(t, comment.Validate())
	})

	t.Run("empty content", func(t *testing.T) {
		comment := &Comment{
			BlogID:    1,
			UserID:    2,
			CreatedAt: time.Now(),
		}
		assert.Error(t, comment.Validate())
	})
}

func TestCommentAddReply(t *testing.T) {
	comment := &Comment{BlogID: 1, UserID: 2, Content: "Nice post"}
	comment.AddReply(3, "Agreed")

	assert.Len(t, comment.Replies, 1)
	assert.Equal(t, 3, comment.Replies[0].UserID)
	assert.Equal(t, "Agreed", comment.Replies[0].Content)
	assert.False(t, comment.Replies[0].CreatedAt.IsZero())
}
