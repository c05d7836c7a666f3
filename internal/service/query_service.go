package service

import (
	"context"

	"github.com/slashrage/jalapeno-business/internal/models"
	"github.com/slashrage/jalapeno-business/internal/repository"
)

const defaultPageSize = 10

type QueryService interface {
	List(ctx context.Context, filter repository.ListFilter) ([]*models.Post, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	Categories(ctx context.Context) ([]string, error)
	Tags(ctx context.Context) ([]string, error)
}

type queryService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	posts    PostService
}

func NewQueryService(postRepo repository.PostRepository, userRepo repository.UserRepository, posts PostService) QueryService {
	return &queryService{
		postRepo: postRepo,
		userRepo: userRepo,
		posts:    posts,
	}
}

func (s *queryService) List(ctx context.Context, filter repository.ListFilter) ([]*models.Post, int64, error) {
	// public listing defaults to published only
	if filter.Status == "" {
		filter.Status = models.StatusPublished
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}

	posts, total, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	s.attachAuthors(ctx, posts)
	return posts, total, nil
}

// public read, counts a view
func (s *queryService) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	post, err := s.posts.RecordView(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.attachAuthors(ctx, []*models.Post{post})
	return post, nil
}

// read for editing, no view counted
func (s *queryService) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	s.attachAuthors(ctx, []*models.Post{post})
	return post, nil
}

// attachAuthors resolves the author name and email for the responses,
// a missing user leaves the field empty
func (s *queryService) attachAuthors(ctx context.Context, posts []*models.Post) {
	cache := make(map[string]*models.Author)
	for _, post := range posts {
		if post == nil || post.AuthorID.IsZero() {
			continue
		}
		id := post.AuthorID.Hex()
		author, seen := cache[id]
		if !seen {
			user, err := s.userRepo.GetByID(ctx, id)
			if err == nil {
				author = &models.Author{ID: user.UserID, Name: user.Name, Email: user.Email}
			}
			cache[id] = author
		}
		post.Author = author
	}
}

func (s *queryService) Categories(ctx context.Context) ([]string, error) {
	return s.postRepo.DistinctCategories(ctx)
}

func (s *queryService) Tags(ctx context.Context) ([]string, error) {
	return s.postRepo.DistinctTags(ctx)
}
