// internal/app/store/orders/store.go
package orders

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/clubhub/internal/app/store/docstore"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collection = "orders"

// TransitionError is returned when a status change is not allowed from
// the order's current status.
type TransitionError struct {
	From, To models.OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change order status from %s to %s", e.From, e.To)
}

func (e *TransitionError) HTTPStatus() int { return http.StatusConflict }

func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }

var (
	// ErrInvalidTransition matches any *TransitionError via errors.Is.
	ErrInvalidTransition = errors.New("invalid order status transition")
	// ErrUnknownStatus is returned for a status outside the lifecycle.
	ErrUnknownStatus     = inputval.New("status", "unknown order status")
)

// maxStatusAttempts bounds retries when another admin changes the status
// between our read and our conditional write.
const maxStatusAttempts = 3

// Orders are never cached; every read goes to the store.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(collection)}
}

// Create inserts a pending order. The returned ObjectID identifies the
// order; OrderNumber is for display and may collide.
func (s *Store) Create(ctx context.Context, items []models.OrderItem, customer models.CustomerInfo, total float64) (models.Order, error) {
	now := time.Now().UTC()
	o := models.Order{
		ID:           primitive.NewObjectID(),
		OrderNumber:  models.NewOrderNumber(now),
		Items:        items,
		Total:        total,
		Status:       models.OrderPending,
		CustomerInfo: customer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.c.InsertOne(ctx, o); err != nil {
		return models.Order{}, fmt.Errorf("insert order: %w", err)
	}
	return o, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Order, error) {
	return docstore.FindByID[models.Order](ctx, s.c, id)
}

// List returns orders newest first, optionally limited to one status.
func (s *Store) List(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return docstore.FindAll[models.Order](ctx, s.c, docstore.ListOptions{
		Filter: filter,
		Sort:   "created_at",
		Desc:   true,
	})
}

// ListByCustomerEmail matches customer_info.email exactly, newest first.
func (s *Store) ListByCustomerEmail(ctx context.Context, email string) ([]models.Order, error) {
	if email == "" {
		return []models.Order{}, nil
	}
	return docstore.FindAll[models.Order](ctx, s.c, docstore.ListOptions{
		Filter: bson.M{"customer_info.email": email},
		Sort:   "created_at",
		Desc:   true,
	})
}

// FindByNumberAndEmail looks up an order for anonymous tracking. Both
// values must match; when a number is shared the newest order wins.
func (s *Store) FindByNumberAndEmail(ctx context.Context, number, email string) (models.Order, error) {
	var o models.Order
	if number == "" || email == "" {
		return o, docstore.ErrNotFound
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	err := s.c.FindOne(ctx, bson.M{"order_number": number, "customer_info.email": email}, opts).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return o, docstore.ErrNotFound
	}
	if err != nil {
		return o, fmt.Errorf("find order %s: %w", number, err)
	}
	return o, nil
}

// UpdateStatus moves the order to status. The write is conditioned on the
// status just read, so two admins racing cannot skip a step. Setting the
// current status again succeeds without a write.
func (s *Store) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, ErrUnknownStatus
	}
	oid, err := docstore.ParseID(id)
	if err != nil {
		return models.Order{}, err
	}

	for attempt := 0; attempt < maxStatusAttempts; attempt++ {
		cur, err := s.GetByID(ctx, id)
		if err != nil {
			return models.Order{}, err
		}
		if cur.Status == status {
			return cur, nil
		}
		if !models.CanTransition(cur.Status, status) {
			return cur, &TransitionError{From: cur.Status, To: status}
		}

		var updated models.Order
		err = s.c.FindOneAndUpdate(ctx,
			bson.M{"_id": oid, "status": cur.Status},
			bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return models.Order{}, fmt.Errorf("update order %s status: %w", id, err)
		}
		// Status moved underneath us, or the order was deleted; re-read.
	}
	return models.Order{}, fmt.Errorf("update order %s status: too much contention", id)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return docstore.DeleteByID(ctx, s.c, id)
}
