package cart

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// CookieName is the name of the cart cookie.
const CookieName = "clubhub_cart"

// cookieVersion is bumped whenever the encoded shape changes; cookies of any
// other version load as an empty cart.
const cookieVersion = 1

const maxAge = 30 * 24 * time.Hour

type envelope struct {
	V    int  `json:"v"`
	Cart Cart `json:"cart"`
}

// Codec reads and writes the cart cookie.
type Codec struct {
	sc     *securecookie.SecureCookie
	secure bool
}

// NewCodec builds a Codec. hashKey must be 32 or 64 bytes; blockKey, when
// set, must be 16, 24, or 32 bytes and turns on encryption.
func NewCodec(hashKey, blockKey []byte, secure bool) (*Codec, error) {
	if len(hashKey) < 32 {
		return nil, errors.New("cart hash key must be at least 32 bytes")
	}
	switch len(blockKey) {
	case 0, 16, 24, 32:
	default:
		return nil, fmt.Errorf("cart block key must be 16, 24, or 32 bytes, got %d", len(blockKey))
	}
	if len(blockKey) == 0 {
		blockKey = nil
	}
	sc := securecookie.New(hashKey, blockKey)
	sc.SetSerializer(securecookie.JSONEncoder{})
	sc.MaxAge(int(maxAge.Seconds()))
	return &Codec{sc: sc, secure: secure}, nil
}

// Load rehydrates the cart from r. A missing, tampered, expired, or
// old-shaped cookie yields an empty cart.
func (c *Codec) Load(r *http.Request) Cart {
	ck, err := r.Cookie(CookieName)
	if err != nil {
		return Cart{}
	}
	var env envelope
	if err := c.sc.Decode(CookieName, ck.Value, &env); err != nil {
		return Cart{}
	}
	if env.V != cookieVersion {
		return Cart{}
	}
	valid := Cart{}
	for _, it := range env.Cart.Items {
		if it.ProductID == "" || it.Quantity < 1 {
			continue
		}
		_ = valid.Add(it)
	}
	return valid
}

// Save writes cart to w, or clears the cookie when cart is empty.
func (c *Codec) Save(w http.ResponseWriter, cart Cart) error {
	if cart.IsEmpty() {
		c.Clear(w)
		return nil
	}
	enc, err := c.sc.Encode(CookieName, envelope{V: cookieVersion, Cart: cart})
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    enc,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the cart cookie.
func (c *Codec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
