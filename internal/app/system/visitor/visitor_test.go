package visitor_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/system/visitor"
)

var hashKey = []byte("test-visitor-hash-key-32-bytes!!")

func TestEnsure_IssuesThenReuses(t *testing.T) {
	iss := visitor.New(hashKey, false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/events/x/like", nil)
	id, err := iss.Ensure(rec, req)
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if id == "" {
		t.Fatal("expected a new id")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != visitor.CookieName {
		t.Fatalf("expected one %s cookie, got %v", visitor.CookieName, cookies)
	}

	req2 := httptest.NewRequest(http.MethodPost, "/api/events/x/like", nil)
	req2.AddCookie(cookies[0])
	rec2 := httptest.NewRecorder()
	id2, err := iss.Ensure(rec2, req2)
	if err != nil {
		t.Fatalf("Ensure (second): %v", err)
	}
	if id2 != id {
		t.Errorf("expected same id, got %q then %q", id, id2)
	}
	if len(rec2.Result().Cookies()) != 0 {
		t.Error("existing cookie should not be rewritten")
	}
}

func TestPeek_TamperedCookie(t *testing.T) {
	iss := visitor.New(hashKey, false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: visitor.CookieName, Value: "forged"})

	if _, ok := iss.Peek(req); ok {
		t.Error("forged cookie should not verify")
	}
}

func TestPrincipalID_OpaqueAndStable(t *testing.T) {
	iss := visitor.New(hashKey, false)

	id := iss.PrincipalID("Member@Club.Test")
	if id != iss.PrincipalID("member@club.test") {
		t.Error("case variants should map to one id")
	}
	if strings.Contains(strings.ToLower(id), "member") || strings.Contains(id, "@") {
		t.Errorf("id %q leaks the email", id)
	}
	if id == iss.PrincipalID("other@club.test") {
		t.Error("distinct emails should not collide")
	}
	other := visitor.New([]byte("another-visitor-hash-key-32bytes"), false)
	if id == other.PrincipalID("member@club.test") {
		t.Error("id should depend on the hash key")
	}
}
