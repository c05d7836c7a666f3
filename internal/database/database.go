package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/slashrage/jalapeno-business/internal/config"
	"github.com/slashrage/jalapeno-business/internal/logger"
)

type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func ConnectDB(cfg *config.Config) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("Подключаемся к MongoDB", "uri", cfg.Mongo.URI, "db", cfg.Mongo.DbNAME)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ошибка при проверке подключения к MongoDB: %w", err)
	}

	db := &DB{
		Client:   client,
		Database: client.Database(cfg.Mongo.DbNAME),
	}

	if err := db.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("ошибка при создании индексов: %w", err)
	}

	logger.Info("Успешное подключение к MongoDB")
	return db, nil
}

// unique indexes for slug and email plus the listing query indexes
func (db *DB) ensureIndexes(ctx context.Context) error {
	posts := db.Database.Collection("posts")
	_, err := posts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "published_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "tags", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
	})
	if err != nil {
		return err
	}

	users := db.Database.Collection("users")
	_, err = users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (db *DB) Collection(name string) *mongo.Collection {
	return db.Database.Collection(name)
}

func (db *DB) HealthCheck(ctx context.Context) error {
	if db == nil || db.Client == nil {
		return fmt.Errorf("подключение к БД не инициализировано")
	}
	return db.Client.Ping(ctx, nil)
}

func (db *DB) CloseDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.Client.Disconnect(ctx)
}
