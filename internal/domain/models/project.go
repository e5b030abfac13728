// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is a club project with its contributors and tech stack.
type Project struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	TitleCI      string             `bson:"title_ci" json:"-"`
	Description  string             `bson:"description" json:"description"`
	Images       []string           `bson:"images" json:"images"`
	CoverImage   string             `bson:"cover_image,omitempty" json:"coverImage,omitempty"`
	Technologies []string           `bson:"technologies" json:"technologies"`
	Contributors []string           `bson:"contributors" json:"contributors"`
	Date         time.Time          `bson:"date" json:"date"`

	Engagement `bson:",inline"`

	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}
