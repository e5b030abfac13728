// internal/domain/models/engagement.go
package models

import "time"

// Comment is appended to an event, project, or blog post. There is no edit
// or delete; the list only grows.
type Comment struct {
	ID        string    `bson:"id" json:"id"`
	Author    string    `bson:"author" json:"author"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Engagement is embedded in documents that can be liked and commented on.
// LikedBy holds visitor ids or keyed digests of principal emails; it is a
// best-effort counter, not an identity record.
type Engagement struct {
	Likes    int       `bson:"likes" json:"likes"`
	LikedBy  []string  `bson:"liked_by" json:"likedBy"`
	Comments []Comment `bson:"comments" json:"comments"`
}

// EngageableCollections lists the collections that carry Engagement fields.
var EngageableCollections = []string{"events", "projects", "blogs"}

// IsEngageable reports whether likes and comments are supported on coll.
func IsEngageable(coll string) bool {
	for _, c := range EngageableCollections {
		if c == coll {
			return true
		}
	}
	return false
}

// ResolveCover returns cover if it is one of images, otherwise the first
// image, or "" when there are no images.
func ResolveCover(images []string, cover string) string {
	for _, img := range images {
		if img == cover && cover != "" {
			return cover
		}
	}
	if len(images) > 0 {
		return images[0]
	}
	return ""
}
