// Package visitor issues a signed, long-lived anonymous identifier cookie.
// The identifier keys likes for visitors who are not signed in. Signed-in
// principals get a keyed digest of their email instead.
package visitor

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

const (
	CookieName = "clubhub_vid"
	maxAge     = 365 * 24 * time.Hour
)

// Issuer reads and writes the visitor cookie.
type Issuer struct {
	sc     *securecookie.SecureCookie
	key    []byte
	secure bool
}

// New builds an Issuer. hashKey signs the cookie; it need not be secret
// from the browser, only unforgeable.
func New(hashKey []byte, secure bool) *Issuer {
	sc := securecookie.New(hashKey, nil)
	sc.MaxAge(int(maxAge.Seconds()))
	return &Issuer{sc: sc, key: hashKey, secure: secure}
}

// Peek returns the visitor id carried by r, if any.
func (i *Issuer) Peek(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	var id string
	if err := i.sc.Decode(CookieName, c.Value, &id); err != nil || id == "" {
		return "", false
	}
	return id, true
}

// Ensure returns the visitor id carried by r, issuing a new one (and
// setting the cookie on w) when r has none or it does not verify.
func (i *Issuer) Ensure(w http.ResponseWriter, r *http.Request) (string, error) {
	if id, ok := i.Peek(r); ok {
		return id, nil
	}
	id := uuid.NewString()
	enc, err := i.sc.Encode(CookieName, id)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    enc,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   i.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

// PrincipalID returns a stable opaque id for a signed-in email. The same
// address in any case maps to the same id, and the id cannot be reversed
// without the hash key.
func (i *Issuer) PrincipalID(email string) string {
	mac := hmac.New(sha256.New, i.key)
	mac.Write([]byte(normalize.Email(email)))
	return "p:" + hex.EncodeToString(mac.Sum(nil)[:16])
}
