package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/slashrage/jalapeno-business/internal/apperrors"
	"github.com/slashrage/jalapeno-business/internal/models"
	"github.com/slashrage/jalapeno-business/internal/repository"
)

// fakePostRepo - репозиторий постов в памяти для тестов сервисов
type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]*models.Post

	createErr error
	updateErr error
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*models.Post)}
}

func (r *fakePostRepo) Create(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.posts {
		if existing.Slug == post.Slug {
			return apperrors.Conflict(fmt.Sprintf("пост со slug %q уже существует", post.Slug))
		}
	}
	clone := *post
	r.posts[post.PostID.Hex()] = &clone
	return nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[postID]
	if !ok {
		return nil, apperrors.NotFound("пост не найден")
	}
	clone := *post
	return &clone, nil
}

func (r *fakePostRepo) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, post := range r.posts {
		if post.Slug == slug {
			clone := *post
			return &clone, nil
		}
	}
	return nil, apperrors.NotFound("пост не найден")
}

func (r *fakePostRepo) Update(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.posts[post.PostID.Hex()]; !ok {
		return apperrors.NotFound("пост не найден")
	}
	for id, existing := range r.posts {
		if id != post.PostID.Hex() && existing.Slug == post.Slug {
			return apperrors.Conflict(fmt.Sprintf("пост со slug %q уже существует", post.Slug))
		}
	}
	clone := *post
	r.posts[post.PostID.Hex()] = &clone
	return nil
}

func (r *fakePostRepo) Delete(ctx context.Context, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[postID]; !ok {
		return apperrors.NotFound("пост не найден")
	}
	delete(r.posts, postID)
	return nil
}

func (r *fakePostRepo) IncrementViews(ctx context.Context, slug string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, post := range r.posts {
		if post.Slug == slug {
			post.Views++
			clone := *post
			return &clone, nil
		}
	}
	return nil, apperrors.NotFound("пост не найден")
}

func (r *fakePostRepo) List(ctx context.Context, filter repository.ListFilter) ([]*models.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*models.Post
	for _, post := range r.posts {
		if filter.Status != "" && post.Status != filter.Status {
			continue
		}
		if filter.Category != "" && post.Category != filter.Category {
			continue
		}
		if filter.Tag != "" && !contains(post.Tags, filter.Tag) {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(post.Title), needle) &&
				!strings.Contains(strings.ToLower(post.Content), needle) {
				continue
			}
		}
		clone := *post
		matched = append(matched, &clone)
	}

	// сортировка как в реальном репозитории: новые публикации первыми
	sort.Slice(matched, func(i, j int) bool {
		pi, pj := matched[i].PublishedAt, matched[j].PublishedAt
		switch {
		case pi == nil && pj == nil:
			return matched[i].PostID.Hex() < matched[j].PostID.Hex()
		case pi == nil:
			return false
		case pj == nil:
			return true
		case !pi.Equal(*pj):
			return pi.After(*pj)
		default:
			return matched[i].PostID.Hex() < matched[j].PostID.Hex()
		}
	})

	total := int64(len(matched))

	start := (filter.Page - 1) * filter.PageSize
	if start >= len(matched) {
		return []*models.Post{}, total, nil
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakePostRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool)
	var categories []string
	for _, post := range r.posts {
		if post.Category != "" && !seen[post.Category] {
			seen[post.Category] = true
			categories = append(categories, post.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *fakePostRepo) DistinctTags(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool)
	var tags []string
	for _, post := range r.posts {
		for _, tag := range post.Tags {
			if tag != "" && !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

// fakeStorage запоминает сохраненные и удаленные пути
type fakeStorage struct {
	mu       sync.Mutex
	stored   []string
	deleted  []string
	storeErr error
}

func (s *fakeStorage) Store(ctx context.Context, localPath, mimeType string) (string, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.storeErr != nil {
		return "", 0, s.storeErr
	}
	s.stored = append(s.stored, localPath)
	return localPath, 1024, nil
}

func (s *fakeStorage) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleted = append(s.deleted, path)
	return nil
}

func (s *fakeStorage) deletedPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.deleted...)
}

// fakeUserRepo - репозиторий пользователей в памяти
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperrors.Conflict(fmt.Sprintf("пользователь с email %q уже существует", user.Email))
		}
	}
	if user.UserID.IsZero() {
		user.UserID = primitive.NewObjectID()
	}
	clone := *user
	r.users[user.UserID.Hex()] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, apperrors.NotFound("пользователь не найден")
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.NotFound("пользователь не найден")
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.UserID.Hex()]; !ok {
		return apperrors.NotFound("пользователь не найден")
	}
	for id, existing := range r.users {
		if id != user.UserID.Hex() && existing.Email == user.Email {
			return apperrors.Conflict(fmt.Sprintf("пользователь с email %q уже существует", user.Email))
		}
	}
	clone := *user
	r.users[user.UserID.Hex()] = &clone
	return nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.users)), nil
}
