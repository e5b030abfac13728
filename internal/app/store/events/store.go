// internal/app/store/events/store.go
package events

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/dalemusser/clubhub/internal/app/store/docstore"
	"github.com/dalemusser/clubhub/internal/app/system/cache"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	collection  = "events"
	cachePrefix = "events:"
	listTTL     = 30 * time.Second
)

type Store struct {
	c     *mongo.Collection
	cache *cache.Cache
}

// New returns an events store. cache may be nil.
func New(db *mongo.Database, c *cache.Cache) *Store {
	return &Store{c: db.Collection(collection), cache: c}
}

// Patch holds the fields an update may change. Nil fields are left as is.
type Patch struct {
	Title       *string    `json:"title"`
	Date        *time.Time `json:"date"`
	Description *string    `json:"description"`
	Images      *[]string  `json:"images"`
	CoverImage  *string    `json:"coverImage"`
	VideoURL    *string    `json:"videoUrl"`
	Organizer   *string    `json:"organizer"`
}

func validate(e models.Event) error {
	return inputval.First(
		inputval.Required("title", e.Title),
		inputval.MaxLen("title", e.Title, 200),
		dateRequired(e.Date),
		inputval.URL("videoUrl", e.VideoURL),
	)
}

func dateRequired(d time.Time) error {
	if d.IsZero() {
		return inputval.New("date", "is required")
	}
	return nil
}

// List returns events newest date first. limit <= 0 lists all. Results are
// cached for a short time.
func (s *Store) List(ctx context.Context, limit int64) ([]models.Event, error) {
	key := fmt.Sprintf("%slist:%d", cachePrefix, limit)
	return cache.Remember(s.cache, key, listTTL, func() ([]models.Event, error) {
		return docstore.FindAll[models.Event](ctx, s.c, docstore.ListOptions{
			Sort:  "date",
			Desc:  true,
			Limit: limit,
		})
	})
}

// GetByID returns the event or docstore.ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id string) (models.Event, error) {
	return docstore.FindByID[models.Event](ctx, s.c, id)
}

// Create validates and inserts e, returning it with its id.
func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	e.Title = normalize.Name(e.Title)
	e.Images = normalize.List(e.Images)
	if err := validate(e); err != nil {
		return models.Event{}, err
	}
	e.ID = primitive.NewObjectID()
	e.TitleCI = text.Fold(e.Title)
	e.CoverImage = models.ResolveCover(e.Images, e.CoverImage)
	e.Engagement = models.Engagement{LikedBy: []string{}, Comments: []models.Comment{}}
	e.CreatedAt = time.Now().UTC()
	e.UpdatedAt = nil

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Event{}, fmt.Errorf("insert event: %w", err)
	}
	s.invalidate()
	return e, nil
}

// Update applies p. Likes and comments are never touched here.
func (s *Store) Update(ctx context.Context, id string, p Patch) error {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	set := bson.M{}
	if p.Title != nil {
		cur.Title = normalize.Name(*p.Title)
		set["title"] = cur.Title
		set["title_ci"] = text.Fold(cur.Title)
	}
	if p.Date != nil {
		cur.Date = *p.Date
		set["date"] = cur.Date
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.VideoURL != nil {
		cur.VideoURL = *p.VideoURL
		set["video_url"] = cur.VideoURL
	}
	if p.Organizer != nil {
		set["organizer"] = *p.Organizer
	}
	if p.Images != nil {
		cur.Images = normalize.List(*p.Images)
		set["images"] = cur.Images
	}
	if p.CoverImage != nil {
		cur.CoverImage = *p.CoverImage
	}
	if p.Images != nil || p.CoverImage != nil {
		set["cover_image"] = models.ResolveCover(cur.Images, cur.CoverImage)
	}
	if err := validate(cur); err != nil {
		return err
	}

	set["updated_at"] = time.Now().UTC()
	if err := docstore.UpdateByID(ctx, s.c, id, bson.M{"$set": set}); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// Delete removes the event.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := docstore.DeleteByID(ctx, s.c, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// SearchTitle returns events whose title contains q, case-insensitively.
func (s *Store) SearchTitle(ctx context.Context, q string, limit int64) ([]models.Event, error) {
	return docstore.FindAll[models.Event](ctx, s.c, docstore.ListOptions{
		Filter: bson.M{"title_ci": bson.M{"$regex": regexp.QuoteMeta(text.Fold(q))}},
		Sort:   "date",
		Desc:   true,
		Limit:  limit,
	})
}

func (s *Store) invalidate() {
	if s.cache != nil {
		s.cache.DeletePrefix(cachePrefix)
	}
}
