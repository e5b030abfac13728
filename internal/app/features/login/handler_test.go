package login_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/features/login"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/testutil"
	"go.uber.org/zap"
)

const testSecret = "test-jwt-secret-for-testing-only-0123456789"

func newTestHandler(t *testing.T, withBearer bool) (*login.Handler, *auth.BearerVerifier) {
	t.Helper()
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	var bv *auth.BearerVerifier
	if withBearer {
		bv, err = auth.NewBearerVerifier(testSecret, "clubhub")
		if err != nil {
			t.Fatalf("NewBearerVerifier failed: %v", err)
		}
	}
	return login.NewHandler(sm, bv, uierrors.NewErrorLogger(logger), nil, logger), bv
}

func TestDevLogin_SetsSession(t *testing.T) {
	h, _ := newTestHandler(t, false)

	rec := httptest.NewRecorder()
	h.HandleDevLogin(rec, testutil.JSONRequest(t, http.MethodPost, "/auth/dev-login", map[string]string{"email": " Dev@Club.TEST "}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got *auth.SessionUser
	inspect := h.SessionMgr.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))
	inspect.ServeHTTP(httptest.NewRecorder(), testutil.CarryCookies(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	if got == nil || got.Email != "dev@club.test" || got.Name != "dev@club.test" {
		t.Fatalf("session user = %+v", got)
	}
}

func TestDevLogin_IssuesVerifiableToken(t *testing.T) {
	h, bv := newTestHandler(t, true)

	rec := httptest.NewRecorder()
	h.HandleDevLogin(rec, testutil.JSONRequest(t, http.MethodPost, "/auth/dev-login", map[string]string{"email": "dev@club.test", "name": "Dev"}))
	var resp struct {
		Token string `json:"token"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	u, err := bv.Verify(resp.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if u.Email != "dev@club.test" || u.Name != "Dev" || u.Source != auth.SourceBearer {
		t.Errorf("token principal = %+v", u)
	}
}

func TestDevLogin_InvalidEmail(t *testing.T) {
	h, _ := newTestHandler(t, false)
	rec := httptest.NewRecorder()
	h.HandleDevLogin(rec, testutil.JSONRequest(t, http.MethodPost, "/auth/dev-login", map[string]string{"email": "not-an-email"}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
