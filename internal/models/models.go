package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

type User struct {
	UserID       primitive.ObjectID `json:"userId" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"password_hash"`
	Role         string             `json:"role" bson:"role"`
	CreatedAt    time.Time          `json:"createdAt" bson:"created_at"`
}

// author identity attached to API responses, resolved at read time
type Author struct {
	ID    primitive.ObjectID `json:"id" bson:"-"`
	Name  string             `json:"name" bson:"-"`
	Email string             `json:"email" bson:"-"`
}

// reference to one stored binary owned by a post, Duration is audio only
type MediaRef struct {
	Filename string  `json:"filename" bson:"filename"`
	Path     string  `json:"path" bson:"path"`
	MimeType string  `json:"mimetype" bson:"mimetype"`
	Size     int64   `json:"size" bson:"size"`
	Duration float64 `json:"duration,omitempty" bson:"duration,omitempty"`
}

type PostMedia struct {
	Video *MediaRef `json:"video,omitempty" bson:"video,omitempty"`
	Audio *MediaRef `json:"audio,omitempty" bson:"audio,omitempty"`
}

type Post struct {
	PostID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Slug        string             `json:"slug" bson:"slug"`
	Content     string             `json:"content" bson:"content"`
	Excerpt     string             `json:"excerpt,omitempty" bson:"excerpt,omitempty"`
	AuthorID    primitive.ObjectID `json:"authorId" bson:"author"`
	Author      *Author            `json:"author,omitempty" bson:"-"`
	Status      string             `json:"status" bson:"status"`
	Thumbnail   *MediaRef          `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Media       PostMedia          `json:"media" bson:"media"`
	Tags        []string           `json:"tags" bson:"tags"`
	Category    string             `json:"category,omitempty" bson:"category,omitempty"`
	Views       int64              `json:"views" bson:"views"`
	PublishedAt *time.Time         `json:"publishedAt,omitempty" bson:"published_at,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// all file paths the post references
func (p *Post) MediaFiles() []string {
	var paths []string
	if p.Thumbnail != nil && p.Thumbnail.Path != "" {
		paths = append(paths, p.Thumbnail.Path)
	}
	if p.Media.Video != nil && p.Media.Video.Path != "" {
		paths = append(paths, p.Media.Video.Path)
	}
	if p.Media.Audio != nil && p.Media.Audio.Path != "" {
		paths = append(paths, p.Media.Audio.Path)
	}
	return paths
}
