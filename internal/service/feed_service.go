package service

import (
	"context"
	"io"
	"log"

	"feedblog/internal/apperr"
	"feedblog/internal/models"
	"feedblog/internal/repository"
	"feedblog/internal/storage"
	"feedblog/internal/validation"
)

// Notifier broadcasts post change events to connected clients.
// Fire-and-forget: implementations must never block the request and a lost
// event is not an error the caller sees.
type Notifier interface {
	PostCreated(post *models.Post)
	PostUpdated(post *models.Post)
	PostDeleted(postID string)
}

// ImageUpload is an incoming image attachment.
type ImageUpload struct {
	FileName string
	File     io.Reader
	Size     int64
}

type FeedService interface {
	ListPosts(ctx context.Context, page int) ([]models.Post, int, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	StoreImage(ctx context.Context, image *ImageUpload) (string, error)
	CreatePost(ctx context.Context, creatorID string, in validation.PostInput, image *ImageUpload) (*models.Post, error)
	CreatePostFromURL(ctx context.Context, creatorID string, in validation.PostInput, imageURL string) (*models.Post, error)
	UpdatePost(ctx context.Context, requesterID, postID string, in validation.PostInput, image *ImageUpload) (*models.Post, error)
	UpdatePostFromURL(ctx context.Context, requesterID, postID string, in validation.PostInput, imageURL string) (*models.Post, error)
	DeletePost(ctx context.Context, requesterID, postID string) error
}

type feedService struct {
	postRepo  repository.PostRepository
	userRepo  repository.UserRepository
	storage   storage.Storage
	notifier  Notifier
	validator *validation.Validator
	pageSize  int
}

func NewFeedService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	store storage.Storage,
	notifier Notifier,
	validator *validation.Validator,
	pageSize int,
) FeedService {
	return &feedService{
		postRepo:  postRepo,
		userRepo:  userRepo,
		storage:   store,
		notifier:  notifier,
		validator: validator,
		pageSize:  pageSize,
	}
}

// authorizeOwner is the ownership guard: only the creator of a post may
// mutate or delete it.
func authorizeOwner(requesterID string, post *models.Post) error {
	if post.CreatorID != requesterID {
		return apperr.New(apperr.Forbidden, "not authorized")
	}
	return nil
}

// ListPosts returns the requested 1-indexed page, newest first, and the
// total post count computed independently of the page slice.
func (s *feedService) ListPosts(ctx context.Context, page int) ([]models.Post, int, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	posts, err := s.postRepo.List(ctx, s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (s *feedService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// StoreImage uploads an attachment and returns its public URL. The caller
// binds it to a post afterwards; until then the object is unreferenced.
func (s *feedService) StoreImage(ctx context.Context, image *ImageUpload) (string, error) {
	if image == nil {
		return "", apperr.Validation("No image provided.", []apperr.FieldError{
			{Field: "image", Message: "An image attachment is required."},
		})
	}

	imageURL, err := s.storage.UploadImage(ctx, image.FileName, image.File, image.Size)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "failed to store image", err)
	}

	return imageURL, nil
}

func (s *feedService) CreatePost(ctx context.Context, creatorID string, in validation.PostInput, image *ImageUpload) (*models.Post, error) {
	if err := s.validator.Post(&in); err != nil {
		return nil, err
	}

	imageURL, err := s.StoreImage(ctx, image)
	if err != nil {
		return nil, err
	}

	post, err := s.CreatePostFromURL(ctx, creatorID, in, imageURL)
	if err != nil {
		s.discardImage(imageURL)
		return nil, err
	}

	return post, nil
}

// CreatePostFromURL is the GraphQL-facing variant: the image was uploaded
// separately and arrives as a URL.
func (s *feedService) CreatePostFromURL(ctx context.Context, creatorID string, in validation.PostInput, imageURL string) (*models.Post, error) {
	if err := s.validator.Post(&in); err != nil {
		return nil, err
	}

	if imageURL == "" {
		return nil, apperr.Validation("No image provided.", []apperr.FieldError{
			{Field: "image", Message: "An image attachment is required."},
		})
	}

	creator, err := s.userRepo.GetUserByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		CreatorID:   creatorID,
		CreatorName: creator.Name,
		Title:       in.Title,
		Content:     in.Content,
		ImageURL:    imageURL,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.notifier.PostCreated(post)

	return post, nil
}

func (s *feedService) UpdatePost(ctx context.Context, requesterID, postID string, in validation.PostInput, image *ImageUpload) (*models.Post, error) {
	if err := s.validator.Post(&in); err != nil {
		return nil, err
	}

	imageURL := ""
	if image != nil {
		var err error
		imageURL, err = s.StoreImage(ctx, image)
		if err != nil {
			return nil, err
		}
	}

	post, err := s.UpdatePostFromURL(ctx, requesterID, postID, in, imageURL)
	if err != nil {
		if imageURL != "" {
			s.discardImage(imageURL)
		}
		return nil, err
	}

	return post, nil
}

// UpdatePostFromURL rewrites a post. An empty imageURL keeps the current
// image; a different one replaces it and releases the old object once the
// row is committed.
func (s *feedService) UpdatePostFromURL(ctx context.Context, requesterID, postID string, in validation.PostInput, imageURL string) (*models.Post, error) {
	if err := s.validator.Post(&in); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := authorizeOwner(requesterID, post); err != nil {
		return nil, err
	}

	oldImageURL := post.ImageURL
	if imageURL != "" {
		post.ImageURL = imageURL
	}

	post.Title = in.Title
	post.Content = in.Content

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	// The replaced object is released only after the row is committed.
	// A failed removal leaves an orphan object, not a broken post.
	if post.ImageURL != oldImageURL {
		s.discardImage(oldImageURL)
	}

	s.notifier.PostUpdated(post)

	return post, nil
}

func (s *feedService) DeletePost(ctx context.Context, requesterID, postID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := authorizeOwner(requesterID, post); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	s.discardImage(post.ImageURL)

	s.notifier.PostDeleted(postID)

	return nil
}

// discardImage removes a stored object outside the request outcome: the
// mutation is already committed (or abandoned), so a failure here is only
// logged.
func (s *feedService) discardImage(imageURL string) {
	if err := s.storage.DeleteImage(context.Background(), imageURL); err != nil {
		log.Printf("internal: failed to release image %s: %v", imageURL, err)
	}
}
