// internal/app/store/engagement/store.go
package engagement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/clubhub/internal/app/store/docstore"
	"github.com/dalemusser/clubhub/internal/app/system/cache"
	"github.com/dalemusser/clubhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	maxLikeAttempts = 3
	maxAuthor       = 100
	maxComment      = 2000
)

// ErrUnsupported is returned for a collection without likes and comments.
var ErrUnsupported = errors.New("collection does not support engagement")

// LikeResult is the state of a document's likes after a toggle.
type LikeResult struct {
	Likes   int      `json:"likes"`
	LikedBy []string `json:"likedBy"`
	Liked   bool     `json:"liked"`
}

// Store updates the engagement fields embedded in events, projects and
// blogs. Each operation is a single-document atomic update.
type Store struct {
	db    *mongo.Database
	cache *cache.Cache
}

// New returns an engagement store. When c is set, the collection's cached
// lists are dropped after every change.
func New(db *mongo.Database, c *cache.Cache) *Store {
	return &Store{db: db, cache: c}
}

func (s *Store) collection(name string) (*mongo.Collection, error) {
	if !models.IsEngageable(name) {
		return nil, ErrUnsupported
	}
	return s.db.Collection(name), nil
}

type likeDoc struct {
	Likes   int      `bson:"likes"`
	LikedBy []string `bson:"liked_by"`
}

// ToggleLike flips userID's like on the document. If userID already liked
// it the like is removed and the count decremented, never below zero;
// otherwise it is added and the count incremented.
func (s *Store) ToggleLike(ctx context.Context, coll, id, userID string) (LikeResult, error) {
	c, err := s.collection(coll)
	if err != nil {
		return LikeResult{}, err
	}
	if userID == "" {
		return LikeResult{}, inputval.New("user", "is required")
	}
	oid, err := docstore.ParseID(id)
	if err != nil {
		return LikeResult{}, err
	}

	after := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"likes": 1, "liked_by": 1})

	unlike := bson.A{bson.M{"$set": bson.M{
		"liked_by": bson.M{"$filter": bson.M{
			"input": bson.M{"$ifNull": bson.A{"$liked_by", bson.A{}}},
			"cond":  bson.M{"$ne": bson.A{"$$this", bson.M{"$literal": userID}}},
		}},
		"likes": bson.M{"$max": bson.A{0, bson.M{"$subtract": bson.A{bson.M{"$ifNull": bson.A{"$likes", 0}}, 1}}}},
	}}}
	like := bson.M{
		"$push": bson.M{"liked_by": userID},
		"$inc":  bson.M{"likes": 1},
	}

	for attempt := 0; attempt < maxLikeAttempts; attempt++ {
		var doc likeDoc

		err := c.FindOneAndUpdate(ctx, bson.M{"_id": oid, "liked_by": userID}, unlike, after).Decode(&doc)
		if err == nil {
			s.invalidate(coll)
			return result(doc, false), nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return LikeResult{}, fmt.Errorf("unlike %s %s: %w", coll, id, err)
		}

		err = c.FindOneAndUpdate(ctx, bson.M{"_id": oid, "liked_by": bson.M{"$ne": userID}}, like, after).Decode(&doc)
		if err == nil {
			s.invalidate(coll)
			return result(doc, true), nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return LikeResult{}, fmt.Errorf("like %s %s: %w", coll, id, err)
		}

		// Neither matched: the document is gone, or a concurrent toggle
		// from the same user landed between the two updates.
		n, err := c.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return LikeResult{}, fmt.Errorf("count %s %s: %w", coll, id, err)
		}
		if n == 0 {
			return LikeResult{}, docstore.ErrNotFound
		}
	}
	return LikeResult{}, fmt.Errorf("toggle like %s %s: too much contention", coll, id)
}

func result(doc likeDoc, liked bool) LikeResult {
	if doc.LikedBy == nil {
		doc.LikedBy = []string{}
	}
	return LikeResult{Likes: doc.Likes, LikedBy: doc.LikedBy, Liked: liked}
}

// AddComment appends a comment to the document. Author and content are
// reduced to plain text.
func (s *Store) AddComment(ctx context.Context, coll, id, author, content string) (models.Comment, error) {
	c, err := s.collection(coll)
	if err != nil {
		return models.Comment{}, err
	}
	author = htmlsanitize.StripAll(author)
	content = htmlsanitize.StripAll(content)
	if err := inputval.First(
		inputval.Required("author", author),
		inputval.MaxLen("author", author, maxAuthor),
		inputval.Required("content", content),
		inputval.MaxLen("content", content, maxComment),
	); err != nil {
		return models.Comment{}, err
	}

	cm := models.Comment{
		ID:        uuid.NewString(),
		Author:    author,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := docstore.UpdateByID(ctx, c, id, bson.M{"$push": bson.M{"comments": cm}}); err != nil {
		return models.Comment{}, err
	}
	s.invalidate(coll)
	return cm, nil
}

func (s *Store) invalidate(coll string) {
	if s.cache != nil {
		s.cache.DeletePrefix(coll + ":")
	}
}
