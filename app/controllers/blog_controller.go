package controllers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"griddle/app/apperrors"
	"griddle/app/middleware"
	"griddle/app/models"
	"griddle/app/services"

	"github.com/gorilla/mux"
)

const maxUploadSize = 32 << 20 // 32 MB

// BlogController handles HTTP requests for blog posts
type BlogController struct {
	blogService *services.BlogService
}

// NewBlogController creates a new BlogController
func NewBlogController(blogService *services.BlogService) *BlogController {
	return &BlogController{blogService: blogService}
}

// Index handles listing, filtering and sorting blog posts
func (bc *BlogController) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	opts := services.ListOptions{
		Title:  query.Get("title"),
		SortBy: query.Get("sortBy"),
		Page:   1,
		Limit:  10,
	}
	if tags := query.Get("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				opts.Tags = append(opts.Tags, tag)
			}
		}
	}
	// Non-numeric page and limit values fall back to the defaults.
	if page, err := strconv.Atoi(query.Get("page")); err == nil && page > 0 {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}

	blogs, err := bc.blogService.ListBlogs(opts)
	if err != nil {
		apperrors.Write(w, err)
		return
	}

	sendJSON(w, http.StatusOK, envelope{
		"status":  "success",
		"results": len(blogs),
		"data":    blogs,
	})
}

// Show handles fetching a single post, counting the view once per viewer
func (bc *BlogController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.Write(w, apperrors.New(apperrors.ErrBadRequest, "Invalid blog ID"))
		return
	}

	blog, err := bc.blogService.GetBlog(id, viewerIdentity(r))
	if err != nil {
		apperrors.Write(w, err)
		return
	}

	sendJSON(w, http.StatusOK, envelope{
		"status":   "success",
		"likes":    len(blog.Likes),
		"dislikes": len(blog.Dislikes),
		"views":    blog.Views,
		"data":     blog,
	})
}

// Create handles creating a new post with optional cover and gallery uploads
func (bc *BlogController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		apperrors.Write(w, apperrors.New(apperrors.ErrUnauthorized, "Authentication required"))
		return
	}

	blog := &models.Blog{AuthorID: user.ID}
	var cover *multipart.FileHeader
	var gallery []*multipart.FileHeader

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			apperrors.Write(w, apperrors.Wrap(apperrors.ErrBadRequest, "Failed to parse form", err))
			return
		}
		blog.Title = r.FormValue("title")
		blog.Content = r.FormValue("content")
		blog.Tags = splitTags(r.FormValue("tags"))
		cover, gallery = formFiles(r)
	} else {
		var body struct {
			Title   string   `json:"title"`
			Content string   `json:"content"`
			Tags    []string `json:"tags"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			apperrors.Write(w, apperrors.Wrap(apperrors.ErrBadRequest, "Invalid JSON", err))
			return
		}
		blog.Title = body.Title
		blog.Content = body.Content
		blog.Tags = body.Tags
	}

	created, err := bc.blogService.CreateBlog(blog, cover, gallery)
	if err != nil {
		apperrors.Write(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, envelope{
		"status":  "success",
		"message": "Blog created",
		"data":    created,
	})
}

// Update handles updating a post the caller owns
func (bc *BlogController) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		apperrors.Write(w, apperrors.New(apperrors.ErrUnauthorized, "Authentication required"))
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.Write(w, apperrors.New(apperrors.ErrBadRequest, "Invalid blog ID"))
		return
	}

	var upd services.BlogUpdate
	var cover *multipart.FileHeader
	var gallery []*multipart.FileHeader

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			apperrors.Write(w, apperrors.Wrap(apperrors.ErrBadRequest, "Failed to parse form", err))
			return
		}
		// Only fields present in the form are updated.
		if values, exists := r.MultipartForm.Value["title"]; exists && len(values) > 0 {
			upd.Title = &values[0]
		}
		if values, exists := r.MultipartForm.Value["content"]; exists && len(values) > 0 {
			upd.Content = &values[0]
		}
		if values, exists := r.MultipartForm.Value["tags"]; exists && len(values) > 0 {
			tags := splitTags(values[0])
			upd.Tags = &tags
		}
		cover, gallery = formFiles(r)
	} else {
		var body struct {
			Title   *string   `json:"title"`
			Content *string   `json:"content"`
			Tags    *[]string `json:"tags"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			apperrors.Write(w, apperrors.Wrap(apperrors.ErrBadRequest, "Invalid JSON", err))
			return
		}
		upd.Title = body.Title
		upd.Content = body.Content
		upd.Tags = body.Tags
	}

	updated, err := bc.blogService.UpdateBlog(id, user.ID, upd, cover, gallery)
	if err != nil {
		apperrors.Write(w, err)
		return
	}

	sendJSON(w, http.StatusOK, envelope{
		"status":  "success",
		"message": "Blog updated",
		"data":    updated,
	})
}

// Delete handles deleting a post the caller owns
func (bc *BlogController) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		apperrors.Write(w, apperrors.New(apperrors.ErrUnauthorized, "Authentication required"))
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperrors.Write(w, apperrors.New(apperrors.ErrBadRequest, "Invalid blog ID"))
		return
	}

	if err := bc.blogService.DeleteBlog(id, user.ID); err != nil {
		apperrors.Write(w, err)
		return
	}

	sendJSON(w, http.StatusOK, envelope{
		"status":  "success",
		"message": "Blog deleted",
	})
}

// React handles toggling the caller's like or dislike on a post
func (bc *BlogController) React(w http.ResponseWriter, r *http.Request) {
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
		Reaction string `json:"reaction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apperrors.Write(w, apperrors.Wrap(apperrors.ErrBadRequest, "Invalid JSON", err))
		return
	}

	blog, err := bc.blogService.React(blogID, user.ID, body.Reaction)
	if err != nil {
		apperrors.Write(w, err)
		return
	}

	sendJSON(w, http.StatusOK, envelope{
		"status":     "success",
		"message":    "Reaction applied",
		"likes":      blog.Likes,
		"dislikes":   blog.Dislikes,
		"isLiked":    blog.HasLiked(user.ID),
		"isDisliked": blog.HasDisliked(user.ID),
	})
}

// AuthorPosts handles fetching the seed post author's most recent posts
func (bc *BlogController) AuthorPosts(w http.ResponseWriter, r *http.Request) {
	blogID, err := strconv.Atoi(mux.Vars(r)["blogId"])
	if err != nil {
		apperrors.Write(w, apperrors.New(apperrors.ErrBadRequest, "Invalid blog ID"))
		return
	}

	blogs, err := bc.blogService.AuthorBlogs(blogID)
	if err != nil {
		apperrors.Write(w, err)
		return
	}

	sendJSON(w, http.StatusOK, envelope{
		"status":  "success",
		"results": len(blogs),
		"data":    blogs,
	})
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func formFiles(r *http.Request) (cover *multipart.FileHeader, gallery []*multipart.FileHeader) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	if files := r.MultipartForm.File["coverImage"]; len(files) > 0 {
		cover = files[0]
	}
	gallery = r.MultipartForm.File["images"]
	return cover, gallery
}
