package service

import (
	"context"
	"fmt"

	"feedblog/internal/models"
	"feedblog/internal/repository"
	"feedblog/internal/validation"
)

type AuthService interface {
	Signup(ctx context.Context, in validation.SignupInput) (*models.User, error)
	Login(ctx context.Context, in validation.LoginInput) (string, string, error)
	GetStatus(ctx context.Context, userID string) (string, error)
	UpdateStatus(ctx context.Context, userID string, in validation.StatusInput) (string, error)
}

type authService struct {
	userRepo  repository.UserRepository
	tokens    TokenService
	validator *validation.Validator
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenService, validator *validation.Validator) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokens:    tokens,
		validator: validator,
	}
}

func (s *authService) Signup(ctx context.Context, in validation.SignupInput) (*models.User, error) {
	if err := s.validator.Signup(ctx, &in); err != nil {
		return nil, err
	}

	user := &models.User{
		Email:  in.Email,
		Name:   in.Name,
		Status: "I am new!",
	}

	if err := s.userRepo.CreateUser(ctx, user, in.Password); err != nil {
		return nil, err
	}

	return user, nil
}

// Login returns the signed token and the user id it embeds.
func (s *authService) Login(ctx context.Context, in validation.LoginInput) (string, string, error) {
	if err := s.validator.Login(&in); err != nil {
		return "", "", err
	}

	user, err := s.userRepo.VerifyPassword(ctx, in.Email, in.Password)
	if err != nil {
		return "", "", err
	}

	token, err := s.tokens.Issue(user.UserID, user.Email)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, user.UserID, nil
}

func (s *authService) GetStatus(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Status, nil
}

func (s *authService) UpdateStatus(ctx context.Context, userID string, in validation.StatusInput) (string, error) {
	if err := s.validator.Status(&in); err != nil {
		return "", err
	}

	if err := s.userRepo.UpdateStatus(ctx, userID, in.Status); err != nil {
		return "", err
	}

	return in.Status, nil
}
