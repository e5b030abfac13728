package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures inserts test documents directly, bypassing store validation.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures for db.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database.
func (f *Fixtures) DB() *mongo.Database { return f.db }

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("insert %s fixture: %v", coll, err)
	}
}

// CreateMerchandise inserts an in-stock item with the given variants.
func (f *Fixtures) CreateMerchandise(ctx context.Context, name string, price float64, sizes, colors []string) models.Merchandise {
	f.t.Helper()
	now := time.Now().UTC()
	m := models.Merchandise{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Description: name + " description",
		Price:       price,
		Images:      []string{"https://img.test/" + text.Fold(name) + ".png"},
		Category:    "apparel",
		Sizes:       sizes,
		Colors:      colors,
		InStock:     true,
		CreatedAt:   now,
	}
	m.CoverImage = m.Images[0]
	f.insert(ctx, "merchandise", m)
	return m
}

// CreateEvent inserts an event dated date.
func (f *Fixtures) CreateEvent(ctx context.Context, title string, date time.Time) models.Event {
	f.t.Helper()
	e := models.Event{
		ID:          primitive.NewObjectID(),
		Title:       title,
		TitleCI:     text.Fold(title),
		Date:        date,
		Description: title + " description",
		Organizer:   "Club",
		Engagement:  models.Engagement{LikedBy: []string{}, Comments: []models.Comment{}},
		CreatedAt:   time.Now().UTC(),
	}
	f.insert(ctx, "events", e)
	return e
}

// CreateProject inserts a project.
func (f *Fixtures) CreateProject(ctx context.Context, title string) models.Project {
	f.t.Helper()
	p := models.Project{
		ID:          primitive.NewObjectID(),
		Title:       title,
		TitleCI:     text.Fold(title),
		Description: title + " description",
		Date:        time.Now().UTC(),
		Engagement:  models.Engagement{LikedBy: []string{}, Comments: []models.Comment{}},
		CreatedAt:   time.Now().UTC(),
	}
	f.insert(ctx, "projects", p)
	return p
}

// CreateMember inserts a member with the given approval state.
func (f *Fixtures) CreateMember(ctx context.Context, name, email string, approved bool) models.Member {
	f.t.Helper()
	m := models.Member{
		ID:                   primitive.NewObjectID(),
		Name:                 name,
		NameCI:               text.Fold(name),
		Email:                email,
		Team:                 "Core",
		Position:             "Member",
		Badges:               []models.Badge{},
		Approved:             approved,
		SubmittedForApproval: !approved,
		CreatedAt:            time.Now().UTC(),
	}
	f.insert(ctx, "members", m)
	return m
}

// CreateOrder inserts an order in status for customer email.
func (f *Fixtures) CreateOrder(ctx context.Context, email string, status models.OrderStatus) models.Order {
	f.t.Helper()
	now := time.Now().UTC()
	items := []models.OrderItem{{
		ProductID: primitive.NewObjectID(),
		Name:      "Club Tee",
		Price:     500,
		Quantity:  1,
	}}
	o := models.Order{
		ID:          primitive.NewObjectID(),
		OrderNumber: models.NewOrderNumber(now),
		Items:       items,
		Total:       models.ItemsTotal(items),
		Status:      status,
		CustomerInfo: models.CustomerInfo{
			Name:    "Test Customer",
			Email:   email,
			Phone:   "5550100",
			Address: "1 Test Street",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "orders", o)
	return o
}

// CreateRoles inserts the roles document.
func (f *Fixtures) CreateRoles(ctx context.Context, owner string, admins ...string) models.Roles {
	f.t.Helper()
	now := time.Now().UTC()
	folded := make([]string, 0, len(admins))
	for _, a := range admins {
		folded = append(folded, normalize.Email(a))
	}
	r := models.Roles{
		ID:        models.RolesDocID,
		Owner:     owner,
		OwnerCI:   normalize.Email(owner),
		Admins:    folded,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "roles", r)
	return r
}
