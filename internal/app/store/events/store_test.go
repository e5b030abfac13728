package events_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/clubhub/internal/app/store/docstore"
	"github.com/dalemusser/clubhub/internal/app/store/events"
	"github.com/dalemusser/clubhub/internal/app/system/cache"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/clubhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strp(s string) *string { return &s }

func TestCreate_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := events.New(db, nil)

	tests := []struct {
		name  string
		in    models.Event
		field string
	}{
		{"missing title", models.Event{Date: time.Now()}, "title"},
		{"missing date", models.Event{Title: "Hack Night"}, "date"},
		{"bad video", models.Event{Title: "Hack Night", Date: time.Now(), VideoURL: "javascript:x"}, "videoUrl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(ctx, tt.in)
			var ve *inputval.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Errorf("expected validation error on %q, got %v", tt.field, err)
			}
		})
	}
}

func TestCreate_CoverInvariant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := events.New(db, nil)

	e, err := s.Create(ctx, models.Event{
		Title:      "  Hack   Night ",
		Date:       time.Now(),
		Images:     []string{"a.png", "b.png"},
		CoverImage: "not-in-images.png",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.ID.IsZero() {
		t.Error("expected an id")
	}
	if e.Title != "Hack Night" {
		t.Errorf("title not normalized: %q", e.Title)
	}
	if e.CoverImage != "a.png" {
		t.Errorf("cover: got %q, want a.png", e.CoverImage)
	}

	got, err := s.GetByID(ctx, e.ID.Hex())
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Likes != 0 || got.LikedBy == nil || got.Comments == nil {
		t.Errorf("engagement not initialized: %+v", got.Engagement)
	}
}

func TestUpdate_Partial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := events.New(db, nil)

	e, _ := s.Create(ctx, models.Event{Title: "Orig", Date: time.Now(), Organizer: "Core", Images: []string{"a.png", "b.png"}, CoverImage: "b.png"})

	if err := s.Update(ctx, e.ID.Hex(), events.Patch{Title: strp("Renamed")}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := s.GetByID(ctx, e.ID.Hex())
	if got.Title != "Renamed" || got.Organizer != "Core" || got.CoverImage != "b.png" {
		t.Errorf("partial update changed other fields: %+v", got)
	}
	if got.UpdatedAt == nil {
		t.Error("updated_at should be set")
	}

	imgs := []string{"c.png"}
	if err := s.Update(ctx, e.ID.Hex(), events.Patch{Images: &imgs}); err != nil {
		t.Fatalf("Update images: %v", err)
	}
	got, _ = s.GetByID(ctx, e.ID.Hex())
	if got.CoverImage != "c.png" {
		t.Errorf("cover should follow images, got %q", got.CoverImage)
	}

	if err := s.Update(ctx, e.ID.Hex(), events.Patch{Title: strp("  ")}); !inputval.IsValidation(err) {
		t.Errorf("blank title: expected validation error, got %v", err)
	}
	if err := s.Update(ctx, primitive.NewObjectID().Hex(), events.Patch{Title: strp("x")}); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("missing id: expected ErrNotFound, got %v", err)
	}
}

func TestList_OrderAndCache(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	c := cache.New()
	s := events.New(db, c)

	now := time.Now().UTC()
	f := testutil.NewFixtures(t, db)
	f.CreateEvent(ctx, "Old", now.Add(-48*time.Hour))
	f.CreateEvent(ctx, "New", now)

	list, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Title != "New" {
		t.Fatalf("expected newest first, got %+v", list)
	}

	// Written behind the store's back: the cached list is served.
	f.CreateEvent(ctx, "Sneaky", now.Add(time.Hour))
	list, _ = s.List(ctx, 0)
	if len(list) != 2 {
		t.Errorf("expected cached list of 2, got %d", len(list))
	}

	// Written through the store: cache is invalidated.
	if _, err := s.Create(ctx, models.Event{Title: "Through", Date: now}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	list, _ = s.List(ctx, 0)
	if len(list) != 4 {
		t.Errorf("expected fresh list of 4, got %d", len(list))
	}
}

func TestDeleteAndSearch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := events.New(db, nil)

	e, _ := s.Create(ctx, models.Event{Title: "Robotics Workshop", Date: time.Now()})
	_, _ = s.Create(ctx, models.Event{Title: "Music Night", Date: time.Now()})

	hits, err := s.SearchTitle(ctx, "ROBOT", 10)
	if err != nil {
		t.Fatalf("SearchTitle: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != e.ID {
		t.Errorf("search: got %+v", hits)
	}
	if hits, _ := s.SearchTitle(ctx, "(.*", 10); len(hits) != 0 {
		t.Errorf("regex metacharacters should be literal, got %d hits", len(hits))
	}

	if err := s.Delete(ctx, e.ID.Hex()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, e.ID.Hex()); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("second Delete: expected ErrNotFound, got %v", err)
	}
}
