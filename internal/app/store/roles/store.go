// Package roles persists the single site_roles document: the owner email
// and the admin list.
package roles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/clubhub/internal/app/store/docstore"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("roles")}
}

// Get returns the roles document, or docstore.ErrNotFound before the owner
// has been initialized.
func (s *Store) Get(ctx context.Context) (models.Roles, error) {
	var r models.Roles
	err := s.c.FindOne(ctx, bson.M{"_id": models.RolesDocID}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return r, docstore.ErrNotFound
	}
	if err != nil {
		return r, fmt.Errorf("get roles: %w", err)
	}
	return r, nil
}

// InitOwner creates the roles document with owner and no admins. It never
// modifies an existing document; created is false when one already exists.
func (s *Store) InitOwner(ctx context.Context, owner string) (bool, error) {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": models.RolesDocID},
		bson.M{"$setOnInsert": bson.M{
			"owner":      owner,
			"owner_ci":   normalize.Email(owner),
			"admins":     []string{},
			"created_at": now,
			"updated_at": now,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		// Two concurrent upserts on the same _id: the loser sees a dup key.
		if wafflemongo.IsDup(err) {
			return false, nil
		}
		return false, fmt.Errorf("init owner: %w", err)
	}
	return res.UpsertedCount == 1, nil
}

// AddAdmin adds the folded email to admins if absent.
func (s *Store) AddAdmin(ctx context.Context, email string) error {
	return s.updateAdmins(ctx, bson.M{"$addToSet": bson.M{"admins": normalize.Email(email)}})
}

// RemoveAdmin removes the folded email from admins if present.
func (s *Store) RemoveAdmin(ctx context.Context, email string) error {
	return s.updateAdmins(ctx, bson.M{"$pull": bson.M{"admins": normalize.Email(email)}})
}

func (s *Store) updateAdmins(ctx context.Context, op bson.M) error {
	op["$set"] = bson.M{"updated_at": time.Now().UTC()}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": models.RolesDocID}, op)
	if err != nil {
		return fmt.Errorf("update admins: %w", err)
	}
	if res.MatchedCount == 0 {
		return docstore.ErrNotFound
	}
	return nil
}
