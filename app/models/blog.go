package models

import (
	"errors"
	"time"
)

// Reaction values accepted by React.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// ErrInvalidReaction is returned for reaction values outside the vocabulary.
var ErrInvalidReaction = errors.New("invalid reaction")

// Validate checks if the blog meets all validation requirements
func (b *Blog) Validate() error {
	if err := validate.Struct(b); err != nil {
		return err
	}

	if b.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (b *Blog) BeforeCreate() {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	if b.Images == nil {
		b.Images = []Image{}
	}
	if b.Likes == nil {
		b.Likes = []int{}
	}
	if b.Dislikes == nil {
		b.Dislikes = []int{}
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
}

// React applies a like or dislike for userID. A user is never in both sets:
// liking removes any dislike and vice versa. Reacting is idempotent.
func (b *Blog) React(userID int, reaction string) error {
	switch reaction {
	case ReactionLike:
		b.Dislikes = removeID(b.Dislikes, userID)
		b.Likes = addID(b.Likes, userID)
	case ReactionDislike:
		b.Likes = removeID(b.Likes, userID)
		b.Dislikes = addID(b.Dislikes, userID)
	default:
		return ErrInvalidReaction
	}
	return nil
}

// HasLiked reports whether userID is in the likes set.
func (b *Blog) HasLiked(userID int) bool {
	return containsID(b.Likes, userID)
}

// HasDisliked reports whether userID is in the dislikes set.
func (b *Blog) HasDisliked(userID int) bool {
	return containsID(b.Dislikes, userID)
}

// RegisterView records a viewer identifier and increments the view counter
// if the identifier has not been seen before. Returns whether it counted.
func (b *Blog) RegisterView(viewer string) bool {
	for _, v := range b.ViewedBy {
		if v == viewer {
			return false
		}
	}
	b.ViewedBy = append(b.ViewedBy, viewer)
	b.Views++
	return true
}

// HasTag reports whether the blog carries any of the given tags.
func (b *Blog) HasTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range b.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

func addID(set []int, id int) []int {
	if containsID(set, id) {
		return set
	}
	return append(set, id)
}

func removeID(set []int, id int) []int {
	for i, v := range set {
		if v == id {
			return append(set[:i], set[i+1:]...)
		}
	}
	return set
}

func containsID(set []int, id int) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}
