// internal/app/store/merchandise/store.go
package merchandise

import (
	"context"
	"fmt"
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
	collection  = "merchandise"
	cachePrefix = "merch:"
	catalogTTL  = 5 * time.Minute
)

type Store struct {
	c     *mongo.Collection
	cache *cache.Cache
}

func New(db *mongo.Database, c *cache.Cache) *Store {
	return &Store{c: db.Collection(collection), cache: c}
}

// Filter narrows the public catalog.
type Filter struct {
	Category     string
	FeaturedOnly bool
}

func (f Filter) key() string {
	// Category matches exactly in the query, so the key keeps its case.
	return fmt.Sprintf("%slist:%q:%t", cachePrefix, f.Category, f.FeaturedOnly)
}

type Patch struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Price         *float64  `json:"price"`
	Images        *[]string `json:"images"`
	CoverImage    *string   `json:"coverImage"`
	Category      *string   `json:"category"`
	Sizes         *[]string `json:"sizes"`
	Colors        *[]string `json:"colors"`
	InStock       *bool     `json:"inStock"`
	StockQuantity *int      `json:"stockQuantity"`
	Featured      *bool     `json:"featured"`
}

func validate(m models.Merchandise) error {
	errs := []error{
		inputval.Required("name", m.Name),
		inputval.MaxLen("name", m.Name, 200),
	}
	if m.Price <= 0 {
		errs = append(errs, inputval.New("price", "must be greater than zero"))
	}
	if m.StockQuantity != nil && *m.StockQuantity < 0 {
		errs = append(errs, inputval.New("stockQuantity", "must not be negative"))
	}
	return inputval.First(errs...)
}

// withImages applies the placeholder and cover rules.
func withImages(m *models.Merchandise) {
	m.Images = normalize.List(m.Images)
	if len(m.Images) == 0 {
		m.Images = []string{models.PlaceholderImage}
	}
	m.CoverImage = models.ResolveCover(m.Images, m.CoverImage)
}

// List returns the catalog, newest first. Results are cached for five
// minutes per filter.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Merchandise, error) {
	return cache.Remember(s.cache, f.key(), catalogTTL, func() ([]models.Merchandise, error) {
		q := bson.M{}
		if f.Category != "" {
			q["category"] = f.Category
		}
		if f.FeaturedOnly {
			q["featured"] = true
		}
		return docstore.FindAll[models.Merchandise](ctx, s.c, docstore.ListOptions{
			Filter: q,
			Sort:   "created_at",
			Desc:   true,
		})
	})
}

// GetByID always reads the store. Checkout relies on this for current
// prices and stock.
func (s *Store) GetByID(ctx context.Context, id string) (models.Merchandise, error) {
	return docstore.FindByID[models.Merchandise](ctx, s.c, id)
}

func (s *Store) Create(ctx context.Context, m models.Merchandise) (models.Merchandise, error) {
	m.Name = normalize.Name(m.Name)
	m.Category = normalize.Name(m.Category)
	m.Sizes = normalize.List(m.Sizes)
	m.Colors = normalize.List(m.Colors)
	if err := validate(m); err != nil {
		return models.Merchandise{}, err
	}
	withImages(&m)
	m.ID = primitive.NewObjectID()
	m.NameCI = text.Fold(m.Name)
	m.CreatedAt = time.Now().UTC()
	m.UpdatedAt = nil

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Merchandise{}, fmt.Errorf("insert merchandise: %w", err)
	}
	s.invalidate()
	return m, nil
}

func (s *Store) Update(ctx context.Context, id string, p Patch) error {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	set := bson.M{}
	if p.Name != nil {
		cur.Name = normalize.Name(*p.Name)
		set["name"] = cur.Name
		set["name_ci"] = text.Fold(cur.Name)
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Price != nil {
		cur.Price = *p.Price
		set["price"] = cur.Price
	}
	if p.Category != nil {
		set["category"] = normalize.Name(*p.Category)
	}
	if p.Sizes != nil {
		set["sizes"] = normalize.List(*p.Sizes)
	}
	if p.Colors != nil {
		set["colors"] = normalize.List(*p.Colors)
	}
	if p.InStock != nil {
		set["in_stock"] = *p.InStock
	}
	if p.StockQuantity != nil {
		cur.StockQuantity = p.StockQuantity
		set["stock_quantity"] = *p.StockQuantity
	}
	if p.Featured != nil {
		set["featured"] = *p.Featured
	}
	if p.Images != nil || p.CoverImage != nil {
		if p.Images != nil {
			cur.Images = *p.Images
		}
		if p.CoverImage != nil {
			cur.CoverImage = *p.CoverImage
		}
		withImages(&cur)
		set["images"] = cur.Images
		set["cover_image"] = cur.CoverImage
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

func (s *Store) invalidate() {
	if s.cache != nil {
		s.cache.DeletePrefix(cachePrefix)
	}
}
