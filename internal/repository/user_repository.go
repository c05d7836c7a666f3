package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/slashrage/jalapeno-business/internal/apperrors"
	"github.com/slashrage/jalapeno-business/internal/database"
	"github.com/slashrage/jalapeno-business/internal/models"
)

type UserRepositoryImpl struct {
	collection *mongo.Collection
}

func NewUserRepository(db *database.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{collection: db.Collection("users")}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	if user.UserID.IsZero() {
		user.UserID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict(fmt.Sprintf("пользователь с email %s уже существует", user.Email))
		}
		return wrapStorageErr(err, "ошибка при создании пользователя")
	}

	return nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, userID string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.NotFound(fmt.Sprintf("пользователь с ID %s не найден", userID))
	}

	var user models.User
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound(fmt.Sprintf("пользователь с ID %s не найден", userID))
		}
		return nil, wrapStorageErr(err, "ошибка при получении пользователя")
	}

	return &user, nil
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound(fmt.Sprintf("пользователь с email %s не найден", email))
		}
		return nil, wrapStorageErr(err, "ошибка при получении пользователя")
	}

	return &user, nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *models.User) error {
	update := bson.M{"$set": bson.M{
		"name":          user.Name,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.UserID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict(fmt.Sprintf("пользователь с email %s уже существует", user.Email))
		}
		return wrapStorageErr(err, "ошибка при обновлении пользователя")
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound(fmt.Sprintf("пользователь с ID %s не найден", user.UserID.Hex()))
	}

	return nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, wrapStorageErr(err, "ошибка при подсчете пользователей")
	}
	return count, nil
}
