// Package auth establishes who is making a request.
//
// A principal comes from one of two places: the session cookie written by
// the Google sign-in flow, or a Bearer token minted by the hosted auth
// provider. Either way the handler sees the same *SessionUser through
// CurrentUser. What the principal may do is decided by rolegate.
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// Principal sources.
const (
	SourceSession = "session"
	SourceBearer  = "bearer"
)

// SessionUser is the signed-in principal.
type SessionUser struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
	Source  string `json:"source"`
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the principal and whether one is present.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	return FromContext(r.Context())
}

// FromContext is CurrentUser for code that only has a context.
func FromContext(ctx context.Context) (*SessionUser, bool) {
	u, ok := ctx.Value(currentUserKey).(*SessionUser)
	return u, ok && u != nil && u.Email != ""
}

// CurrentEmail returns the principal's email, lowercased, or "".
func CurrentEmail(r *http.Request) string {
	if u, ok := CurrentUser(r); ok {
		return strings.ToLower(strings.TrimSpace(u.Email))
	}
	return ""
}

// WithUser returns r carrying u. Tests use it to act as a signed-in user.
func WithUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(WithUserContext(r.Context(), u))
}

// WithUserContext returns ctx carrying u.
func WithUserContext(ctx context.Context, u *SessionUser) context.Context {
	return context.WithValue(ctx, currentUserKey, u)
}

// RequireSignedIn answers 401 when no principal is present.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			WriteUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WriteUnauthorized writes the JSON 401 body shared by the auth middlewares.
func WriteUnauthorized(w http.ResponseWriter) {
	writeJSONError(w, http.StatusUnauthorized, "sign in required")
}

// WriteForbidden writes the JSON 403 body.
func WriteForbidden(w http.ResponseWriter) {
	writeJSONError(w, http.StatusForbidden, "forbidden")
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
