// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a club event shown on the public events page.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"`
	Date        time.Time          `bson:"date" json:"date"`
	Description string             `bson:"description" json:"description"`
	Images      []string           `bson:"images" json:"images"`
	CoverImage  string             `bson:"cover_image,omitempty" json:"coverImage,omitempty"`
	VideoURL    string             `bson:"video_url,omitempty" json:"videoUrl,omitempty"`
	Organizer   string             `bson:"organizer" json:"organizer"`

	Engagement `bson:",inline"`

	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}
