// Package docstore holds the helpers every collection store shares: id
// parsing, the not-found sentinel, list options, and typed find/update/
// delete wrappers over the mongo driver.
package docstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no document matches an id.
var ErrNotFound = errors.New("not found")

// ListOptions narrows and orders a List call. Zero value lists everything
// in store order.
type ListOptions struct {
	Filter bson.M
	Sort   string
	Desc   bool
	Limit  int64
}

// ParseID converts a hex id. A malformed id is reported as ErrNotFound,
// since no document can have it.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

// FindOptions turns opts into driver options.
func (o ListOptions) FindOptions() *options.FindOptions {
	fo := options.Find()
	if o.Sort != "" {
		dir := 1
		if o.Desc {
			dir = -1
		}
		fo.SetSort(bson.D{{Key: o.Sort, Value: dir}, {Key: "_id", Value: dir}})
	}
	if o.Limit > 0 {
		fo.SetLimit(o.Limit)
	}
	return fo
}

func (o ListOptions) filter() bson.M {
	if o.Filter == nil {
		return bson.M{}
	}
	return o.Filter
}

// FindAll runs a find with opts and decodes every document.
func FindAll[T any](ctx context.Context, c *mongo.Collection, opts ListOptions) ([]T, error) {
	cur, err := c.Find(ctx, opts.filter(), opts.FindOptions())
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.Name(), err)
	}
	defer cur.Close(ctx)

	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.Name(), err)
	}
	return out, nil
}

// FindByID loads one document by hex id.
func FindByID[T any](ctx context.Context, c *mongo.Collection, id string) (T, error) {
	var doc T
	oid, err := ParseID(id)
	if err != nil {
		return doc, err
	}
	if err := c.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return doc, ErrNotFound
		}
		return doc, fmt.Errorf("find %s %s: %w", c.Name(), id, err)
	}
	return doc, nil
}

// UpdateByID applies update to the document with id.
func UpdateByID(ctx context.Context, c *mongo.Collection, id string, update bson.M) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	res, err := c.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update %s %s: %w", c.Name(), id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID removes the document with id.
func DeleteByID(ctx context.Context, c *mongo.Collection, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	res, err := c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", c.Name(), id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
