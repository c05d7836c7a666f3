package service

import (
	"github.com/slashrage/jalapeno-business/internal/config"
	"github.com/slashrage/jalapeno-business/internal/repository"
	"github.com/slashrage/jalapeno-business/internal/storage"
)

type Service struct {
	Post  PostService
	Query QueryService
	Auth  AuthService
}

func NewService(repo *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	post := NewPostService(repo.Post, storage, cfg)

	return &Service{
		Post:  post,
		Query: NewQueryService(repo.Post, repo.User, post),
		Auth:  NewAuthService(repo.User, cfg),
	}
}
