package services

import (
	"mime/multipart"
	"sort"
	"strings"
	"sync"

	"griddle/app/apperrors"
	"griddle/app/models"
	"griddle/app/repositories"
	"griddle/app/storage"
	"griddle/util"

	"go.uber.org/zap"
)

// Sort keys accepted by ListBlogs. The zero value sorts newest first.
const (
	SortMostViewed = "mostViewed"
	SortMostLiked  = "mostLiked"
)

const defaultPageLimit = 10

// ListOptions are the filter, sort and pagination inputs for ListBlogs.
type ListOptions struct {
	Tags   []string
	Title  string
	SortBy string
	Page   int
	Limit  int
}

// BlogUpdate carries the optional field changes of an update request.
type BlogUpdate struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// BlogService handles business logic for blog posts
type BlogService struct {
	blogRepo    repositories.BlogRepository
	commentRepo repositories.CommentRepository
	userRepo    repositories.UserRepository
	media       storage.MediaStore
	allowedTags map[string]bool
}

// NewBlogService creates a new BlogService
func NewBlogService(
	blogRepo repositories.BlogRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
	media storage.MediaStore,
	allowedTags []string,
) *BlogService {
	allowed := make(map[string]bool, len(allowedTags))
	for _, tag := range allowedTags {
		allowed[tag] = true
	}
	return &BlogService{
		blogRepo:    blogRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		media:       media,
		allowedTags: allowed,
	}
}

// ListBlogs returns one page of blogs matching the filter, with author data
// joined in. An empty result page is reported as not found.
func (s *BlogService) ListBlogs(opts ListOptions) ([]*models.Blog, error) {
	if err := s.validateTags(opts.Tags); err != nil {
		return nil, err
	}
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = defaultPageLimit
	}

	all, err := s.blogRepo.List()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "Failed to fetch blogs", err)
	}

	var blogs []*models.Blog
	title := strings.ToLower(opts.Title)
	for _, blog := range all {
		if len(opts.Tags) > 0 && !blog.HasTag(opts.Tags) {
			continue
		}
		if title != "" && !strings.Contains(strings.ToLower(blog.Title), title) {
			continue
		}
		blogs = append(blogs, blog)
	}

	switch opts.SortBy {
	case SortMostViewed:
		sort.SliceStable(blogs, func(i, j int) bool {
			return blogs[i].Views > blogs[j].Views
		})
	case SortMostLiked:
		// Ranked by the live size of the likes set, not a stored counter.
		sort.SliceStable(blogs, func(i, j int) bool {
			return len(blogs[i].Likes) > len(blogs[j].Likes)
		})
	default:
		sort.SliceStable(blogs, func(i, j int) bool {
			return blogs[i].CreatedAt.After(blogs[j].CreatedAt)
		})
	}

	offset := (opts.Page - 1) * opts.Limit
	if offset >= len(blogs) {
		return nil, apperrors.New(apperrors.ErrNotFound, "No blogs found")
	}
	end := offset + opts.Limit
	if end > len(blogs) {
		end = len(blogs)
	}
	blogs = blogs[offset:end]
	if len(blogs) == 0 {
		return nil, apperrors.New(apperrors.ErrNotFound, "No blogs found")
	}

	for _, blog := range blogs {
		if author, err := s.userRepo.GetByID(blog.AuthorID); err == nil {
			blog.Author = author.AuthorCard()
		}
	}
	return blogs, nil
}

// GetBlog fetches one blog with author and comments attached, counting the
// view for the given viewer identifier exactly once.
func (s *BlogService) GetBlog(id int, viewer string) (*models.Blog, error) {
	blog, err := s.blogRepo.RegisterView(id, viewer)
	if err == repositories.ErrNotFound {
		return nil, apperrors.New(apperrors.ErrNotFound, "Blog not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "Failed to fetch blog", err)
	}

	if author, err := s.userRepo.GetByID(blog.AuthorID); err == nil {
		blog.Author = author.AuthorBrief()
	}

	comments, err := s.commentRepo.ListByBlog(id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "Failed to fetch comments", err)
	}
	for _, comment := range comments {
		// Omit the back-reference when nested under the post.
		comment.BlogID = 0
		if user, err := s.userRepo.GetByID(comment.UserID); err == nil {
			comment.User = user.CommenterBrief()
		}
	}
	blog.Comments = comments

	return blog, nil
}

// CreateBlog persists a new blog for the author, then attaches uploaded
// media. A cover upload failure rolls the whole creation back; gallery
// uploads are best effort.
func (s *BlogService) CreateBlog(blog *models.Blog, cover *multipart.FileHeader, gallery []*multipart.FileHeader) (*models.Blog, error) {
	if err := s.validateTags(blog.Tags); err != nil {
		return nil, err
	}
	blog.BeforeCreate()
	if err := blog.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "Invalid blog data", err)
	}

	if err := s.blogRepo.Create(blog); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "Failed to create blog", err)
	}

	var coverImage *models.Image
	if cover != nil {
		img, err := s.media.Upload(cover)
		if err != nil {
			// Compensating rollback: the blog must not survive without
			// the cover the caller asked for.
			if _, delErr := s.blogRepo.DeleteOwned(blog.ID, blog.AuthorID); delErr != nil {
				util.Logger.Error("rollback of blog creation failed",
					zap.Int("blogId", blog.ID), zap.Error(delErr))
			}
			return nil, apperrors.Wrap(apperrors.ErrUpstream, "Failed to upload cover image", err)
		}
		coverImage = &img
	}

	images := s.uploadGallery(gallery)

	if coverImage != nil || len(images) > 0 {
		updated, err := s.blogRepo.UpdateOwned(blog.ID, blog.AuthorID, func(b *models.Blog) error {
			if coverImage != nil {
				b.CoverImage = coverImage
			}
			b.Images = append(b.Images, images...)
			return nil
		})
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrDatabase, "Failed to attach images", err)
		}
		return updated, nil
	}

	return blog, nil
}

// UpdateBlog applies field changes and image uploads to a blog the caller
// owns. Ownership is checked before anything is uploaded, and every change
// lands through the same authorized write.
func (s *BlogService) UpdateBlog(id, authorID int, upd BlogUpdate, cover *multipart.FileHeader, gallery []*multipart.FileHeader) (*models.Blog, error) {
	if upd.Tags != nil {
		if err := s.validateTags(*upd.Tags); err != nil {
			return nil, err
		}
	}

	current, err := s.blogRepo.GetByID(id)
	if err == repositories.ErrNotFound {
		return nil, apperrors.New(apperrors.ErrNotFound, "Blog not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "Failed to fetch blog", err)
	}
	if current.AuthorID != authorID {
		// Reported as not found so non-owners learn nothing.
		return nil, apperrors.New(apperrors.ErrNotFound, "Blog not found")
	}

	var newCover *models.Image
	if cover != nil {
		if current.CoverImage != nil {
			if err := s.media.Delete(current.CoverImage.PublicID); err != nil {
				util.Logger.Warn("failed to delete previous cover image",
					zap.String("publicId", current.CoverImage.PublicID), zap.Error(err))
			}
		}
		img, err := s.media.Upload(cover)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrUpstream, "Failed to upload cover image", err)
		}
		newCover = &img
	}

	images := s.uploadGallery(gallery)

	updated, err := s.blogRepo.UpdateOwned(id, authorID, func(b *models.Blog) error {
		if upd.Title != nil {
			b.Title = *upd.Title
		}
		if upd.Content != nil {
			b.Content = *upd.Content
		}
		if upd.Tags != nil {
			b.Tags = *upd.Tags
		}
		if newCover != nil {
			b.CoverImage = newCover
		}
		b.Images = append(b.Images, images...)
		return b.Validate()
	})
	if err == repositories.ErrNotFound {
		return nil, apperrors.New(apperrors.ErrNotFound, "Blog not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "Invalid blog data", err)
	}
	return updated, nil
}

// DeleteBlog deletes a blog the caller owns, cascades its comments and
// cleans up its media best-effort.
func (s *BlogService) DeleteBlog(id, authorID int) error {
	blog, err := s.blogRepo.DeleteOwned(id, authorID)
	if err == repositories.ErrNotFound {
		return apperrors.New(apperrors.ErrNotFound, "Blog not found")
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrDatabase, "Failed to delete blog", err)
	}

	if _, err := s.commentRepo.DeleteByBlog(id); err != nil {
		return apperrors.Wrap(apperrors.ErrDatabase, "Failed to delete comments", err)
	}

	// Release media references. Failures are logged and never block the
	// deletion that already happened.
	var publicIDs []string
	if blog.CoverImage != nil {
		publicIDs = append(publicIDs, blog.CoverImage.PublicID)
	}
	for _, img := range blog.Images {
		publicIDs = append(publicIDs, img.PublicID)
	}
	for _, publicID := range publicIDs {
		if err := s.media.Delete(publicID); err != nil {
			util.Logger.Warn("failed to delete media object",
				zap.String("publicId", publicID), zap.Error(err))
		}
	}

	return nil
}

// React toggles the caller's like or dislike on a blog. The two sets stay
// mutually exclusive.
func (s *BlogService) React(blogID, userID int, reaction string) (*models.Blog, error) {
	if reaction != models.ReactionLike && reaction != models.ReactionDislike {
		return nil, apperrors.New(apperrors.ErrValidation, "Invalid reaction")
	}

	blog, err := s.blogRepo.React(blogID, userID, reaction)
	if err == repositories.ErrNotFound {
		return nil, apperrors.New(apperrors.ErrNotFound, "Blog not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "Failed to apply reaction", err)
	}
	return blog, nil
}

// AuthorBlogs returns the 4 most recent blogs by the author of the seed
// blog, newest first.
func (s *BlogService) AuthorBlogs(seedID int) ([]*models.Blog, error) {
	seed, err := s.blogRepo.GetByID(seedID)
	if err == repositories.ErrNotFound {
		return nil, apperrors.New(apperrors.ErrNotFound, "Blog not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "Failed to fetch blog", err)
	}

	blogs, err := s.blogRepo.ListByAuthor(seed.AuthorID, 4)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDatabase, "Failed to fetch author blogs", err)
	}
	if len(blogs) == 0 {
		return nil, apperrors.New(apperrors.ErrNotFound, "No blogs found for author")
	}

	for _, blog := range blogs {
		if author, err := s.userRepo.GetByID(blog.AuthorID); err == nil {
			blog.Author = author.AuthorCard()
		}
	}
	return blogs, nil
}

// uploadGallery uploads gallery files concurrently. A failed upload is
// logged and dropped; the surviving images keep their request order.
func (s *BlogService) uploadGallery(files []*multipart.FileHeader) []models.Image {
	if len(files) == 0 {
		return nil
	}

	results := make([]*models.Image, len(files))
	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file *multipart.FileHeader) {
			defer wg.Done()
			img, err := s.media.Upload(file)
			if err != nil {
				util.Logger.Warn("gallery image upload failed",
					zap.String("filename", file.Filename), zap.Error(err))
				return
			}
			results[i] = &img
		}(i, file)
	}
	wg.Wait()

	var images []models.Image
	for _, img := range results {
		if img != nil {
			images = append(images, *img)
		}
	}
	return images
}

func (s *BlogService) validateTags(tags []string) error {
	for _, tag := range tags {
		if !s.allowedTags[tag] {
			return apperrors.New(apperrors.ErrValidation, "Invalid tags")
		}
	}
	return nil
}
