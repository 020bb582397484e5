package service

import (
	"feedblog/internal/config"
	"feedblog/internal/repository"
	"feedblog/internal/storage"
	"feedblog/internal/validation"
)

type Service struct {
	Token TokenService
	Auth  AuthService
	Feed  FeedService
}

func NewService(repo *repository.Repository, cfg *config.Config, store storage.Storage, notifier Notifier) *Service {
	validator := validation.New(repo.User)
	tokens := NewTokenService(cfg.JWTSecretKey, cfg.TokenTTL)

	return &Service{
		Token: tokens,
		Auth:  NewAuthService(repo.User, tokens, validator),
		Feed:  NewFeedService(repo.Post, repo.User, store, notifier, validator, cfg.PageSize),
	}
}
