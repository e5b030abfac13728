// internal/app/store/blogs/store.go
package blogs

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/dalemusser/clubhub/internal/app/store/docstore"
	"github.com/dalemusser/clubhub/internal/app/system/cache"
	"github.com/dalemusser/clubhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	collection  = "blogs"
	cachePrefix = "blogs:"
	listTTL     = 30 * time.Second

	// ExcerptLength is the rune length of a derived excerpt.
	ExcerptLength = 160
)

type Store struct {
	c     *mongo.Collection
	cache *cache.Cache
}

func New(db *mongo.Database, c *cache.Cache) *Store {
	return &Store{c: db.Collection(collection), cache: c}
}

type Patch struct {
	Title       *string    `json:"title"`
	Content     *string    `json:"content"`
	Excerpt     *string    `json:"excerpt"`
	Image       *string    `json:"image"`
	Author      *string    `json:"author"`
	Tags        *[]string  `json:"tags"`
	PublishedAt *time.Time `json:"publishedAt"`
}

func validate(b models.Blog) error {
	return inputval.First(
		inputval.Required("title", b.Title),
		inputval.MaxLen("title", b.Title, 200),
		inputval.Required("content", htmlsanitize.StripAll(b.Content)),
		inputval.Required("author", b.Author),
	)
}

// List returns posts newest first. When tag is set only posts carrying it
// are returned.
func (s *Store) List(ctx context.Context, tag string, limit int64) ([]models.Blog, error) {
	key := fmt.Sprintf("%slist:%s:%d", cachePrefix, tag, limit)
	return cache.Remember(s.cache, key, listTTL, func() ([]models.Blog, error) {
		opts := docstore.ListOptions{Sort: "published_at", Desc: true, Limit: limit}
		if tag != "" {
			opts.Filter = bson.M{"tags": tag}
		}
		return docstore.FindAll[models.Blog](ctx, s.c, opts)
	})
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Blog, error) {
	return docstore.FindByID[models.Blog](ctx, s.c, id)
}

// Create sanitizes and inserts b. An empty excerpt is derived from the
// content; a zero PublishedAt is set to now.
func (s *Store) Create(ctx context.Context, b models.Blog) (models.Blog, error) {
	b.Title = normalize.Name(b.Title)
	b.Author = normalize.Name(b.Author)
	b.Content = htmlsanitize.Sanitize(b.Content)
	b.Tags = normalize.List(b.Tags)
	if err := validate(b); err != nil {
		return models.Blog{}, err
	}
	b.Excerpt = excerptFor(b.Excerpt, b.Content)

	now := time.Now().UTC()
	if b.PublishedAt.IsZero() {
		b.PublishedAt = now
	}
	b.ID = primitive.NewObjectID()
	b.TitleCI = text.Fold(b.Title)
	b.Engagement = models.Engagement{LikedBy: []string{}, Comments: []models.Comment{}}
	b.CreatedAt = now
	b.UpdatedAt = nil

	if _, err := s.c.InsertOne(ctx, b); err != nil {
		return models.Blog{}, fmt.Errorf("insert blog: %w", err)
	}
	s.invalidate()
	return b, nil
}

func excerptFor(excerpt, content string) string {
	if e := htmlsanitize.StripAll(excerpt); e != "" {
		return e
	}
	return htmlsanitize.Excerpt(content, ExcerptLength)
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
	if p.Author != nil {
		cur.Author = normalize.Name(*p.Author)
		set["author"] = cur.Author
	}
	if p.Content != nil {
		cur.Content = htmlsanitize.Sanitize(*p.Content)
		set["content"] = cur.Content
	}
	if p.Excerpt != nil {
		set["excerpt"] = excerptFor(*p.Excerpt, cur.Content)
	} else if p.Content != nil {
		set["excerpt"] = htmlsanitize.Excerpt(cur.Content, ExcerptLength)
	}
	if p.Image != nil {
		set["image"] = *p.Image
	}
	if p.Tags != nil {
		set["tags"] = normalize.List(*p.Tags)
	}
	if p.PublishedAt != nil {
		set["published_at"] = *p.PublishedAt
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

// SearchTitle returns posts whose title contains q, case-insensitively.
func (s *Store) SearchTitle(ctx context.Context, q string, limit int64) ([]models.Blog, error) {
	return docstore.FindAll[models.Blog](ctx, s.c, docstore.ListOptions{
		Filter: bson.M{"title_ci": bson.M{"$regex": regexp.QuoteMeta(text.Fold(q))}},
		Sort:   "published_at",
		Desc:   true,
		Limit:  limit,
	})
}

func (s *Store) invalidate() {
	if s.cache != nil {
		s.cache.DeletePrefix(cachePrefix)
	}
}
