// internal/domain/models/blog.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog is a published post. Content is stored already sanitized.
type Blog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"`
	Content     string             `bson:"content" json:"content"`
	Excerpt     string             `bson:"excerpt" json:"excerpt"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Author      string             `bson:"author" json:"author"`
	Tags        []string           `bson:"tags" json:"tags"`
	PublishedAt time.Time          `bson:"published_at" json:"publishedAt"`

	Engagement `bson:",inline"`

	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}
