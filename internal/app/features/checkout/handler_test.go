package checkout_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/features/checkout"
	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/system/cart"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/clubhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	hashKey  = []byte("0123456789abcdef0123456789abcdef")
	blockKey = []byte("abcdef0123456789abcdef0123456789")
)

// requestWithCart returns a POST carrying c in the cart cookie.
func requestWithCart(t *testing.T, codec *cart.Codec, c cart.Cart, body any) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := codec.Save(rec, c); err != nil {
		t.Fatal(err)
	}
	return testutil.CarryCookies(rec, testutil.JSONRequest(t, http.MethodPost, "/api/orders", body))
}

func cartCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == cart.CookieName {
			return c
		}
	}
	return nil
}

func TestHandler_ClearsCartOnlyOnSuccess(t *testing.T) {
	codec, err := cart.NewCodec(hashKey, blockKey, false)
	if err != nil {
		t.Fatal(err)
	}
	mug := models.Merchandise{ID: primitive.NewObjectID(), Name: "Mug", Price: 8, InStock: true}
	svc, orders := newService(mug)
	logger := zap.NewNop()
	h := checkout.NewHandler(svc, codec, uierrors.NewErrorLogger(logger), logger)

	c := cartOf(cart.Item{ProductID: mug.ID.Hex(), Quantity: 2})

	// Invalid customer: 400 and the cookie is left alone.
	rec := httptest.NewRecorder()
	h.Checkout(rec, requestWithCart(t, codec, c, map[string]any{"customerInfo": map[string]string{"name": "Kai"}}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if cartCookie(rec) != nil {
		t.Error("cart cookie touched on failure")
	}

	rec = httptest.NewRecorder()
	h.Checkout(rec, requestWithCart(t, codec, c, map[string]any{"customerInfo": validCustomer()}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	ck := cartCookie(rec)
	if ck == nil || ck.MaxAge >= 0 {
		t.Errorf("cart cookie not cleared: %+v", ck)
	}
	if len(orders.created) != 1 || orders.created[0].Total != 16 {
		t.Errorf("orders = %+v", orders.created)
	}
}

func TestHandler_EmptyCart(t *testing.T) {
	codec, _ := cart.NewCodec(hashKey, blockKey, false)
	svc, _ := newService()
	logger := zap.NewNop()
	h := checkout.NewHandler(svc, codec, uierrors.NewErrorLogger(logger), logger)

	rec := httptest.NewRecorder()
	h.Checkout(rec, testutil.JSONRequest(t, http.MethodPost, "/api/orders", map[string]any{"customerInfo": validCustomer()}))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
