package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"griddle/app/apperrors"
	"griddle/app/middleware"
	"griddle/app/services"

	"github.com/gorilla/mux"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// Index handles listing comments for a post
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	blogID, err := strconv.Atoi(mux.Vars(r)["blogId"])
	if err != nil {
		apperrors.Write(w, apperrors.New(apperrors.ErrBadRequest, "Invalid blog ID"))
		return
	}

	comments, err := cc.commentService.ListComments(blogID)
	if err != nil {
		apperrors.Write(w, err)
		return
	}

	sendJSON(w, http.StatusOK, envelope{
		"status":  "success",
		"results": len(comments),
		"data":    comments,
	})
}

// Create handles adding a comment to a post
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		apperrors.Write(w, apperrors.New(apperrors.ErrUnauthorized, "Authentication required"))
		return
	}
	blogID, err := strconv.Atoi(mux.Vars(r)["blogId"])
	if err != nil {
		apperrors.Write(w, apperrors.New(apperrors.ErrBadRequest, "Invalid blog ID"))
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apperrors.Write(w, apperrors.Wrap(apperrors.ErrBadRequest, "Invalid JSON", err))
		return
	}

	comment, err := cc.commentService.AddComment(blogID, user.ID, body.Content)
	if err != nil {
		apperrors.Write(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, envelope{
		"status":  "success",
		"message": "Comment created",
		"data":    comment,
	})
}
