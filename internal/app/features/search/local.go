// internal/app/features/search/local.go
package search

import (
	"context"

	blogstore "github.com/dalemusser/clubhub/internal/app/store/blogs"
	eventstore "github.com/dalemusser/clubhub/internal/app/store/events"
	projectstore "github.com/dalemusser/clubhub/internal/app/store/projects"
)

// Hit is one local search result.
type Hit struct {
	Kind  string `json:"kind"`
	ID    string `json:"id"`
	Title string `json:"title"`
}

// LocalIndex searches the site's own content.
type LocalIndex interface {
	Search(ctx context.Context, q string, limit int64) ([]Hit, error)
}

// StoreIndex searches event, project, and blog titles.
type StoreIndex struct {
	Events   *eventstore.Store
	Projects *projectstore.Store
	Blogs    *blogstore.Store
}

// Search returns up to limit hits per kind, events first.
func (s StoreIndex) Search(ctx context.Context, q string, limit int64) ([]Hit, error) {
	var hits []Hit

	events, err := s.Events.SearchTitle(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		hits = append(hits, Hit{Kind: "event", ID: e.ID.Hex(), Title: e.Title})
	}

	projects, err := s.Projects.SearchTitle(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		hits = append(hits, Hit{Kind: "project", ID: p.ID.Hex(), Title: p.Title})
	}

	blogs, err := s.Blogs.SearchTitle(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	for _, b := range blogs {
		hits = append(hits, Hit{Kind: "blog", ID: b.ID.Hex(), Title: b.Title})
	}
	return hits, nil
}
