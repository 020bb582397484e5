package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"feedblog/internal/models"
	"feedblog/internal/service"
	"feedblog/internal/validation"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, in validation.SignupInput) (*models.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, in validation.LoginInput) (string, string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) GetStatus(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) UpdateStatus(ctx context.Context, userID string, in validation.StatusInput) (string, error) {
	args := m.Called(ctx, userID, in)
	return args.String(0), args.Error(1)
}

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) ListPosts(ctx context.Context, page int) ([]models.Post, int, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Post), args.Int(1), args.Error(2)
}

func (m *MockFeedService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockFeedService) StoreImage(ctx context.Context, image *service.ImageUpload) (string, error) {
	args := m.Called(ctx, image)
	return args.String(0), args.Error(1)
}

func (m *MockFeedService) CreatePost(ctx context.Context, creatorID string, in validation.PostInput, image *service.ImageUpload) (*models.Post, error) {
	args := m.Called(ctx, creatorID, in, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockFeedService) CreatePostFromURL(ctx context.Context, creatorID string, in validation.PostInput, imageURL string) (*models.Post, error) {
	args := m.Called(ctx, creatorID, in, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockFeedService) UpdatePost(ctx context.Context, requesterID, postID string, in validation.PostInput, image *service.ImageUpload) (*models.Post, error) {
	args := m.Called(ctx, requesterID, postID, in, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockFeedService) UpdatePostFromURL(ctx context.Context, requesterID, postID string, in validation.PostInput, imageURL string) (*models.Post, error) {
	args := m.Called(ctx, requesterID, postID, in, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockFeedService) DeletePost(ctx context.Context, requesterID, postID string) error {
	args := m.Called(ctx, requesterID, postID)
	return args.Error(0)
}
