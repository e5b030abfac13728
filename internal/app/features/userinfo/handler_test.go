package userinfo_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/features/userinfo"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/clubhub/internal/testutil"
	"github.com/go-chi/chi/v5"
)

type me struct {
	IsAuthenticated bool        `json:"isAuthenticated"`
	Email           string      `json:"email"`
	Name            string      `json:"name"`
	Role            models.Role `json:"role"`
}

func newRouter(t *testing.T) chi.Router {
	t.Helper()
	db := testutil.SetupTestDB(t)
	r := chi.NewRouter()
	userinfo.MountRoutes(r, userinfo.NewHandler(testutil.NewGate(t, db)))
	return r
}

func TestServeUserInfo_Unauthenticated(t *testing.T) {
	router := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json")
	}
	var got me
	testutil.DecodeJSON(t, rec, &got)
	if got.IsAuthenticated || got.Email != "" || got.Role != models.RoleMember {
		t.Errorf("anonymous response = %+v", got)
	}
}

func TestServeUserInfo_Roles(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		email string
		want  models.Role
	}{
		{testutil.OwnerEmail, models.RoleOwner},
		{"ADMIN@club.test", models.RoleAdmin},
		{testutil.MemberEmail, models.RoleMember},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, testutil.WithUser(httptest.NewRequest(http.MethodGet, "/api/me", nil), tt.email))

		var got me
		testutil.DecodeJSON(t, rec, &got)
		if !got.IsAuthenticated || got.Email != tt.email || got.Role != tt.want {
			t.Errorf("%s: got %+v, want role %q", tt.email, got, tt.want)
		}
	}
}
