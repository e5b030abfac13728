// internal/app/store/messages/store.go
package messages

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/clubhub/internal/app/store/docstore"
	"github.com/dalemusser/clubhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	collection = "messages"
	maxMessage = 5000
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(collection)}
}

// Create stores a contact form submission. Markup is stripped.
func (s *Store) Create(ctx context.Context, m models.ContactMessage) (models.ContactMessage, error) {
	m.Name = normalize.Name(htmlsanitize.StripAll(m.Name))
	m.Email = normalize.Email(m.Email)
	m.Message = htmlsanitize.StripAll(m.Message)
	if err := inputval.First(
		inputval.Required("name", m.Name),
		inputval.MaxLen("name", m.Name, 120),
		inputval.Email("email", m.Email),
		inputval.Required("message", m.Message),
		inputval.MaxLen("message", m.Message, maxMessage),
	); err != nil {
		return models.ContactMessage{}, err
	}
	m.ID = primitive.NewObjectID()
	m.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.ContactMessage{}, fmt.Errorf("insert message: %w", err)
	}
	return m, nil
}

// List returns messages newest first.
func (s *Store) List(ctx context.Context, limit int64) ([]models.ContactMessage, error) {
	return docstore.FindAll[models.ContactMessage](ctx, s.c, docstore.ListOptions{
		Sort:  "created_at",
		Desc:  true,
		Limit: limit,
	})
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return docstore.DeleteByID(ctx, s.c, id)
}
