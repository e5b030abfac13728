package blogs_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/features/blogs"
	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/clubhub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := blogs.NewHandler(db, nil, nil, uierrors.NewErrorLogger(logger), logger)
	gate := testutil.NewGate(t, db)

	r := chi.NewRouter()
	r.Route("/api/blogs", func(r chi.Router) { h.MountRoutes(r, gate.RequireAdmin) })
	return r
}

func post(t *testing.T, router http.Handler, body map[string]any) models.Blog {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.WithUser(testutil.JSONRequest(t, http.MethodPost, "/api/blogs", body), testutil.AdminEmail))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var b models.Blog
	testutil.DecodeJSON(t, rec, &b)
	return b
}

func TestCreate_SanitizesContent(t *testing.T) {
	router := newRouter(t)

	b := post(t, router, map[string]any{
		"title":   "Robots",
		"author":  "Team",
		"content": `<p>Hello <strong>world</strong></p><script>alert(1)</script>`,
	})
	if strings.Contains(b.Content, "<script") {
		t.Errorf("script survived sanitization: %q", b.Content)
	}
	if !strings.Contains(b.Content, "<strong>world</strong>") {
		t.Errorf("formatting was dropped: %q", b.Content)
	}
	if b.Excerpt != "Hello world" {
		t.Errorf("excerpt = %q", b.Excerpt)
	}
}

func TestList_ByTag(t *testing.T) {
	router := newRouter(t)
	post(t, router, map[string]any{"title": "A", "author": "x", "content": "a", "tags": []string{"ai"}})
	post(t, router, map[string]any{"title": "B", "author": "x", "content": "b", "tags": []string{"web"}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/blogs?tag=ai", nil))
	var list []models.Blog
	testutil.DecodeJSON(t, rec, &list)
	if len(list) != 1 || list[0].Title != "A" {
		t.Errorf("tag=ai: %+v", list)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/blogs", nil))
	testutil.DecodeJSON(t, rec, &list)
	if len(list) != 2 {
		t.Errorf("all: %d, want 2", len(list))
	}
}
