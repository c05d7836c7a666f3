package service

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/slashrage/jalapeno-business/internal/apperrors"
	"github.com/slashrage/jalapeno-business/internal/config"
	"github.com/slashrage/jalapeno-business/internal/imageproc"
	"github.com/slashrage/jalapeno-business/internal/logger"
	"github.com/slashrage/jalapeno-business/internal/models"
	"github.com/slashrage/jalapeno-business/internal/repository"
	"github.com/slashrage/jalapeno-business/internal/slug"
	"github.com/slashrage/jalapeno-business/internal/storage"
)

const (
	SlotThumbnail = "thumbnail"
	SlotVideo     = "video"
	SlotAudio     = "audio"
)

// accepted request files per slot
type MediaUploads map[string]storage.StoredFile

type CreatePostRequest struct {
	Title         string   `validate:"required,max=200"`
	Content       string   `validate:"required"`
	Excerpt       string   `validate:"max=500"`
	Status        string   `validate:"omitempty,oneof=draft published"`
	Category      string
	Tags          []string
	AuthorID      string `validate:"required"`
	AudioDuration float64
}

// partial update: nil fields stay untouched
type UpdatePostRequest struct {
	Title         *string `validate:"omitempty,max=200"`
	Content       *string
	Excerpt       *string `validate:"omitempty,max=500"`
	Status        *string `validate:"omitempty,oneof=draft published"`
	Category      *string
	Tags          []string
	AudioDuration *float64
}

type PostService interface {
	CreatePost(ctx context.Context, req CreatePostRequest, uploads MediaUploads) (*models.Post, error)
	UpdatePost(ctx context.Context, postID string, req UpdatePostRequest, uploads MediaUploads) (*models.Post, error)
	DeletePost(ctx context.Context, postID string) error
	RecordView(ctx context.Context, slug string) (*models.Post, error)
}

type postService struct {
	postRepo     repository.PostRepository
	storage      storage.Storage
	validate     *validator.Validate
	imgOpts      imageproc.Options
	processImage func(string, imageproc.Options) (imageproc.Result, error)
}

func NewPostService(postRepo repository.PostRepository, storage storage.Storage, cfg *config.Config) PostService {
	return &postService{
		postRepo: postRepo,
		storage:  storage,
		validate: validator.New(),
		imgOpts: imageproc.Options{
			MaxWidth: cfg.Image.MaxWidth,
			Quality:  cfg.Image.Quality,
			Format:   cfg.Image.Format,
		},
		processImage: imageproc.Process,
	}
}

func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest, uploads MediaUploads) (*models.Post, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("неверные данные поста: " + err.Error())
	}

	authorID, err := primitive.ObjectIDFromHex(req.AuthorID)
	if err != nil {
		return nil, apperrors.Validation("неверный идентификатор автора")
	}

	if req.Status == "" {
		req.Status = models.StatusDraft
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}

	now := time.Now()
	post := &models.Post{
		PostID:    primitive.NewObjectID(),
		Title:     req.Title,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		AuthorID:  authorID,
		Status:    req.Status,
		Tags:      req.Tags,
		Category:  req.Category,
		Views:     0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// fixed order: slug -> publish timestamp -> persist
	post.Slug = slug.Derive(post.Title)
	if post.Slug == "" {
		// the title was nothing but stripped characters, use the id
		post.Slug = post.PostID.Hex()
	}

	if post.Status == models.StatusPublished {
		publishedAt := now
		post.PublishedAt = &publishedAt
	}

	for slot, upload := range uploads {
		if err := s.attachUpload(ctx, post, slot, upload); err != nil {
			s.cleanupFiles(ctx, post.MediaFiles())
			return nil, err
		}
	}
	if req.AudioDuration > 0 && post.Media.Audio != nil {
		post.Media.Audio.Duration = req.AudioDuration
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		// the post was not persisted, the files belong to nobody
		s.cleanupFiles(ctx, post.MediaFiles())
		return nil, err
	}

	return post, nil
}

func (s *postService) UpdatePost(ctx context.Context, postID string, req UpdatePostRequest, uploads MediaUploads) (*models.Post, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("неверные данные поста: " + err.Error())
	}
	if req.Title != nil && *req.Title == "" {
		return nil, apperrors.Validation("заголовок не может быть пустым")
	}
	if req.Content != nil && *req.Content == "" {
		return nil, apperrors.Validation("содержимое не может быть пустым")
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != post.Title {
		post.Title = *req.Title
		post.Slug = slug.Derive(post.Title)
		if post.Slug == "" {
			post.Slug = post.PostID.Hex()
		}
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Category != nil {
		post.Category = *req.Category
	}
	if req.Tags != nil {
		post.Tags = req.Tags
	}

	if req.Status != nil && *req.Status != post.Status {
		post.Status = *req.Status
		// published_at is set once and never rewritten, going back
		// to draft does not touch it
		if post.Status == models.StatusPublished && post.PublishedAt == nil {
			publishedAt := time.Now()
			post.PublishedAt = &publishedAt
		}
	}

	for slot, upload := range uploads {
		// the old slot file is superseded, delete it best-effort
		if old := refForSlot(post, slot); old != nil && old.Path != "" {
			if err := s.storage.Delete(ctx, old.Path); err != nil {
				logger.Error("не удалось удалить прежний файл", "slot", slot, "path", old.Path, "error", err)
			}
		}
		if err := s.attachUpload(ctx, post, slot, upload); err != nil {
			return nil, err
		}
	}
	if req.AudioDuration != nil && post.Media.Audio != nil {
		post.Media.Audio.Duration = *req.AudioDuration
	}

	post.UpdatedAt = time.Now()

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, postID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	// files are deleted best-effort, errors do not block the record delete
	s.cleanupFiles(ctx, post.MediaFiles())

	return s.postRepo.Delete(ctx, postID)
}

func (s *postService) RecordView(ctx context.Context, slug string) (*models.Post, error) {
	return s.postRepo.IncrementViews(ctx, slug)
}

// attachUpload runs images through normalization, publishes the file to
// storage and binds the reference to the post slot
func (s *postService) attachUpload(ctx context.Context, post *models.Post, slot string, upload storage.StoredFile) error {
	if slot == SlotThumbnail && storage.IsImage(upload.MimeType) {
		processed, err := s.processImage(upload.Path, s.imgOpts)
		if err != nil {
			return err
		}
		upload.Path = processed.Path
		upload.Size = processed.Size
		upload.Filename = filepath.Base(processed.Path)
	}

	path, size, err := s.storage.Store(ctx, upload.Path, upload.MimeType)
	if err != nil {
		// the local file is not bound to the post yet, nobody else will clean it up
		_ = os.Remove(upload.Path)
		return err
	}

	ref := &models.MediaRef{
		Filename: upload.Filename,
		Path:     path,
		MimeType: upload.MimeType,
		Size:     size,
	}

	switch slot {
	case SlotThumbnail:
		post.Thumbnail = ref
	case SlotVideo:
		post.Media.Video = ref
	case SlotAudio:
		post.Media.Audio = ref
	}

	return nil
}

func (s *postService) cleanupFiles(ctx context.Context, paths []string) {
	for _, path := range paths {
		if err := s.storage.Delete(ctx, path); err != nil {
			logger.Error("не удалось удалить файл", "path", path, "error", err)
		}
	}
}

func refForSlot(post *models.Post, slot string) *models.MediaRef {
	switch slot {
	case SlotThumbnail:
		return post.Thumbnail
	case SlotVideo:
		return post.Media.Video
	case SlotAudio:
		return post.Media.Audio
	}
	return nil
}
