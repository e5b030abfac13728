package engagement_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/clubhub/internal/app/features/engagement"
	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	engagementstore "github.com/dalemusser/clubhub/internal/app/store/engagement"
	"github.com/dalemusser/clubhub/internal/app/system/visitor"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/clubhub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var hashKey = []byte("0123456789abcdef0123456789abcdef")

func passThrough(next http.Handler) http.Handler { return next }

func newRouter(t *testing.T) (http.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := engagement.NewHandler(db, nil, visitor.New(hashKey, false), uierrors.NewErrorLogger(logger), logger)

	r := chi.NewRouter()
	r.Route("/api/events", func(r chi.Router) { h.MountRoutes(r, "events", passThrough) })
	return r, db
}

func like(t *testing.T, router http.Handler, req *http.Request) (*httptest.ResponseRecorder, engagementstore.LikeResult) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("like: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var res engagementstore.LikeResult
	testutil.DecodeJSON(t, rec, &res)
	return rec, res
}

func TestLike_AnonymousVisitorToggles(t *testing.T) {
	router, db := newRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	e := testutil.NewFixtures(t, db).CreateEvent(ctx, "Expo", time.Now())
	path := "/api/events/" + e.ID.Hex() + "/like"

	rec, res := like(t, router, httptest.NewRequest(http.MethodPost, path, nil))
	if res.Likes != 1 || !res.Liked {
		t.Fatalf("first like: %+v", res)
	}
	var issued bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == visitor.CookieName {
			issued = true
		}
	}
	if !issued {
		t.Fatal("visitor cookie not issued")
	}

	// Same visitor again: the like is withdrawn.
	req := testutil.CarryCookies(rec, httptest.NewRequest(http.MethodPost, path, nil))
	_, res = like(t, router, req)
	if res.Likes != 0 || res.Liked {
		t.Errorf("second like from same visitor: %+v", res)
	}
}

func TestLike_SignedInDoesNotExposeEmail(t *testing.T) {
	router, db := newRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	e := testutil.NewFixtures(t, db).CreateEvent(ctx, "Talk", time.Now())
	path := "/api/events/" + e.ID.Hex() + "/like"

	rec, res := like(t, router, testutil.WithUser(httptest.NewRequest(http.MethodPost, path, nil), testutil.MemberEmail))
	want := visitor.New(hashKey, false).PrincipalID(testutil.MemberEmail)
	if len(res.LikedBy) != 1 || res.LikedBy[0] != want {
		t.Errorf("likedBy = %v, want [%s]", res.LikedBy, want)
	}
	if strings.Contains(rec.Body.String(), testutil.MemberEmail) {
		t.Errorf("like response contains the email: %s", rec.Body.String())
	}

	var stored bson.M
	if err := db.Collection("events").FindOne(ctx, bson.M{"_id": e.ID}).Decode(&stored); err != nil {
		t.Fatalf("load event: %v", err)
	}
	if raw, _ := bson.MarshalExtJSON(stored, false, false); strings.Contains(string(raw), testutil.MemberEmail) {
		t.Errorf("stored event contains the email: %s", raw)
	}

	// The same principal toggles the like off.
	_, res = like(t, router, testutil.WithUser(httptest.NewRequest(http.MethodPost, path, nil), testutil.MemberEmail))
	if res.Likes != 0 || res.Liked {
		t.Errorf("second like from same principal: %+v", res)
	}
}

func TestComment(t *testing.T) {
	router, db := newRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	e := testutil.NewFixtures(t, db).CreateEvent(ctx, "Panel", time.Now())
	path := "/api/events/" + e.ID.Hex() + "/comments"

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.JSONRequest(t, http.MethodPost, path, map[string]string{"author": "Lee", "content": "Nice"}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var c models.Comment
	testutil.DecodeJSON(t, rec, &c)
	if c.Author != "Lee" || c.Content != "Nice" || c.ID == "" {
		t.Errorf("comment = %+v", c)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.JSONRequest(t, http.MethodPost, path, map[string]string{"author": "Lee"}))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty content: status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.WithUser(testutil.JSONRequest(t, http.MethodPost, path, map[string]string{"content": "Signed"}), testutil.MemberEmail))
	if rec.Code != http.StatusCreated {
		t.Fatalf("signed-in: status = %d", rec.Code)
	}
	testutil.DecodeJSON(t, rec, &c)
	if c.Author != testutil.MemberEmail {
		t.Errorf("author = %q, want profile name", c.Author)
	}
}
