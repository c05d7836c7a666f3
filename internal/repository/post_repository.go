package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/slashrage/jalapeno-business/internal/apperrors"
	"github.com/slashrage/jalapeno-business/internal/database"
	"github.com/slashrage/jalapeno-business/internal/models"
)

type PostRepositoryImpl struct {
	collection *mongo.Collection
}

func NewPostRepository(db *database.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{collection: db.Collection("posts")}
}

func wrapStorageErr(err error, message string) error {
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return apperrors.StorageUnavailable(err)
	}
	return fmt.Errorf("%s: %w", message, err)
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	if post.PostID.IsZero() {
		post.PostID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict(fmt.Sprintf("пост со slug %q уже существует", post.Slug))
		}
		return wrapStorageErr(err, "ошибка при создании поста")
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	objectID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, apperrors.NotFound(fmt.Sprintf("пост с ID %s не найден", postID))
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound(fmt.Sprintf("пост с ID %s не найден", postID))
		}
		return nil, wrapStorageErr(err, "ошибка при получении поста")
	}

	return &post, nil
}

func (r *PostRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound(fmt.Sprintf("пост со slug %q не найден", slug))
		}
		return nil, wrapStorageErr(err, "ошибка при получении поста")
	}

	return &post, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": post.PostID}, post)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict(fmt.Sprintf("пост со slug %q уже существует", post.Slug))
		}
		return wrapStorageErr(err, "ошибка при обновлении поста")
	}

	if result.MatchedCount == 0 {
		return apperrors.NotFound(fmt.Sprintf("пост с ID %s не найден", post.PostID.Hex()))
	}

	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	objectID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return apperrors.NotFound(fmt.Sprintf("пост с ID %s не найден", postID))
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return wrapStorageErr(err, "ошибка при удалении поста")
	}

	if result.DeletedCount == 0 {
		return apperrors.NotFound(fmt.Sprintf("пост с ID %s не найден", postID))
	}

	return nil
}

// atomic increment on the storage side, no read-modify-write here
func (r *PostRepositoryImpl) IncrementViews(ctx context.Context, slug string) (*models.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"slug": slug},
		bson.M{"$inc": bson.M{"views": 1}},
		opts,
	).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound(fmt.Sprintf("пост со slug %q не найден", slug))
		}
		return nil, wrapStorageErr(err, "ошибка при обновлении счетчика просмотров")
	}

	return &post, nil
}

func buildListQuery(filter ListFilter) bson.M {
	query := bson.M{}

	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = []bson.M{
			{"title": pattern},
			{"content": pattern},
		}
	}

	return query
}

func (r *PostRepositoryImpl) List(ctx context.Context, filter ListFilter) ([]*models.Post, int64, error) {
	query := buildListQuery(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, wrapStorageErr(err, "ошибка при подсчете постов")
	}

	// newest first, insertion order on ties
	opts := options.Find().
		SetSort(bson.D{{Key: "published_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.PageSize)).
		SetLimit(int64(filter.PageSize))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, wrapStorageErr(err, "ошибка при получении постов")
	}
	defer cursor.Close(ctx)

	posts := make([]*models.Post, 0)
	for cursor.Next(ctx) {
		var post models.Post
		if err := cursor.Decode(&post); err != nil {
			return nil, 0, fmt.Errorf("ошибка при декодировании поста: %w", err)
		}
		posts = append(posts, &post)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, wrapStorageErr(err, "ошибка при получении постов")
	}

	return posts, total, nil
}

func (r *PostRepositoryImpl) DistinctCategories(ctx context.Context) ([]string, error) {
	return r.distinctStrings(ctx, "category")
}

func (r *PostRepositoryImpl) DistinctTags(ctx context.Context) ([]string, error) {
	return r.distinctStrings(ctx, "tags")
}

func (r *PostRepositoryImpl) distinctStrings(ctx context.Context, field string) ([]string, error) {
	values, err := r.collection.Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, wrapStorageErr(err, fmt.Sprintf("ошибка при получении значений %s", field))
	}

	result := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			result = append(result, s)
		}
	}

	return result, nil
}
