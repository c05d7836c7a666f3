package repository

import (
	"context"

	"github.com/slashrage/jalapeno-business/internal/database"
	"github.com/slashrage/jalapeno-business/internal/models"
)

type ListFilter struct {
	Status   string
	Category string
	Tag      string
	Search   string
	Page     int
	PageSize int
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
	IncrementViews(ctx context.Context, slug string) (*models.Post, error)
	List(ctx context.Context, filter ListFilter) ([]*models.Post, int64, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctTags(ctx context.Context) ([]string, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Count(ctx context.Context) (int64, error)
}

type Repository struct {
	Post PostRepository
	User UserRepository
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{
		Post: NewPostRepository(db),
		User: NewUserRepository(db),
	}
}
