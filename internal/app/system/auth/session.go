package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey   = "is_authenticated"
	userEmail   = "user_email"
	userName    = "user_name"
	userPicture = "user_picture"
)

// SessionManager owns the session cookie store and, optionally, the
// verifier for Bearer tokens.
type SessionManager struct {
	store  *sessions.CookieStore
	name   string
	bearer *BearerVerifier
	logger *zap.Logger
}

// NewSessionManager builds the cookie store. sessionKey must be at least 32
// bytes. In production (secure=true) cookies are Secure and SameSite=None;
// in local dev over http, secure=false selects Lax.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if len(sessionKey) < 32 {
		return nil, fmt.Errorf("session key must be at least 32 characters, got %d", len(sessionKey))
	}
	if name == "" {
		return nil, errors.New("session name is empty")
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, logger: logger}, nil
}

// UseBearer enables Authorization: Bearer tokens verified by v.
func (sm *SessionManager) UseBearer(v *BearerVerifier) {
	sm.bearer = v
}

// LoadSessionUser puts the principal, if any, into the request context.
// A Bearer header takes precedence over the cookie. A bad token or a
// corrupt cookie leaves the request anonymous rather than failing it.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sm.bearer != nil {
			if tok, ok := bearerToken(r); ok {
				u, err := sm.bearer.Verify(tok)
				if err != nil {
					sm.logger.Debug("bearer token rejected", zap.Error(err))
				} else {
					r = WithUser(r, u)
				}
				next.ServeHTTP(w, r)
				return
			}
		}

		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			sm.logger.Debug("session decode failed", zap.Error(err))
		}
		if sess != nil {
			if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
				u := &SessionUser{
					Email:   getString(sess, userEmail),
					Name:    getString(sess, userName),
					Picture: getString(sess, userPicture),
					Source:  SourceSession,
				}
				if u.Email != "" {
					r = WithUser(r, u)
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// SignIn writes u into a fresh session.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u SessionUser) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values = map[interface{}]interface{}{}
	sess.Values[isAuthKey] = true
	sess.Values[userEmail] = strings.TrimSpace(u.Email)
	sess.Values[userName] = u.Name
	sess.Values[userPicture] = u.Picture
	return sess.Save(r, w)
}

// SignOut expires the session cookie.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// Name returns the session cookie name.
func (sm *SessionManager) Name() string { return sm.name }

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(h[7:])
	return tok, tok != ""
}
