// internal/app/store/projects/store.go
package projects

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
	collection  = "projects"
	cachePrefix = "projects:"
	listTTL     = 30 * time.Second
)

type Store struct {
	c     *mongo.Collection
	cache *cache.Cache
}

func New(db *mongo.Database, c *cache.Cache) *Store {
	return &Store{c: db.Collection(collection), cache: c}
}

type Patch struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Images       *[]string  `json:"images"`
	CoverImage   *string    `json:"coverImage"`
	Technologies *[]string  `json:"technologies"`
	Contributors *[]string  `json:"contributors"`
	Date         *time.Time `json:"date"`
}

func validate(p models.Project) error {
	return inputval.First(
		inputval.Required("title", p.Title),
		inputval.MaxLen("title", p.Title, 200),
	)
}

// List returns projects newest first. limit <= 0 lists all.
func (s *Store) List(ctx context.Context, limit int64) ([]models.Project, error) {
	key := fmt.Sprintf("%slist:%d", cachePrefix, limit)
	return cache.Remember(s.cache, key, listTTL, func() ([]models.Project, error) {
		return docstore.FindAll[models.Project](ctx, s.c, docstore.ListOptions{
			Sort:  "date",
			Desc:  true,
			Limit: limit,
		})
	})
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Project, error) {
	return docstore.FindByID[models.Project](ctx, s.c, id)
}

// Create inserts p. A zero Date is set to now.
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	p.Title = normalize.Name(p.Title)
	p.Images = normalize.List(p.Images)
	p.Technologies = normalize.List(p.Technologies)
	p.Contributors = normalize.List(p.Contributors)
	if err := validate(p); err != nil {
		return models.Project{}, err
	}
	now := time.Now().UTC()
	if p.Date.IsZero() {
		p.Date = now
	}
	p.ID = primitive.NewObjectID()
	p.TitleCI = text.Fold(p.Title)
	p.CoverImage = models.ResolveCover(p.Images, p.CoverImage)
	p.Engagement = models.Engagement{LikedBy: []string{}, Comments: []models.Comment{}}
	p.CreatedAt = now
	p.UpdatedAt = nil

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}
	s.invalidate()
	return p, nil
}

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
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Technologies != nil {
		set["technologies"] = normalize.List(*p.Technologies)
	}
	if p.Contributors != nil {
		set["contributors"] = normalize.List(*p.Contributors)
	}
	if p.Date != nil {
		set["date"] = *p.Date
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

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := docstore.DeleteByID(ctx, s.c, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// SearchTitle returns projects whose title contains q, case-insensitively.
func (s *Store) SearchTitle(ctx context.Context, q string, limit int64) ([]models.Project, error) {
	return docstore.FindAll[models.Project](ctx, s.c, docstore.ListOptions{
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
