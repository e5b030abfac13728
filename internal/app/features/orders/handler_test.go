package orders_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/features/orders"
	"github.com/dalemusser/clubhub/internal/app/store/audit"
	orderstore "github.com/dalemusser/clubhub/internal/app/store/orders"
	"github.com/dalemusser/clubhub/internal/app/system/auditlog"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/clubhub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (http.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	al := auditlog.New(audit.New(db), logger, auditlog.Config{Auth: "all", Admin: "all"})
	h := orders.NewHandler(orderstore.New(db), uierrors.NewErrorLogger(logger), al, logger)
	gate := testutil.NewGate(t, db)

	r := chi.NewRouter()
	r.Route("/api/orders", func(r chi.Router) { h.MountRoutes(r, gate.RequireAdmin) })
	return r, db
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestTrack_Anonymous(t *testing.T) {
	router, db := newRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	o := testutil.NewFixtures(t, db).CreateOrder(ctx, "buyer@club.test", models.OrderPending)

	q := url.Values{"orderNumber": {o.OrderNumber}, "email": {"Buyer@Club.test"}}
	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/orders/track?"+q.Encode(), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var list []models.Order
	testutil.DecodeJSON(t, rec, &list)
	if len(list) != 1 || list[0].ID != o.ID {
		t.Errorf("tracked = %+v", list)
	}

	q.Set("email", "someone@else.test")
	if rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/orders/track?"+q.Encode(), nil)); rec.Code != http.StatusNotFound {
		t.Errorf("wrong email: status = %d, want 404", rec.Code)
	}
	if rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/orders/track?orderNumber="+o.OrderNumber, nil)); rec.Code != http.StatusBadRequest {
		t.Errorf("number without email: status = %d, want 400", rec.Code)
	}
	if rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/orders/track", nil)); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous without params: status = %d, want 401", rec.Code)
	}
}

func TestTrack_SignedInSeesOwnOrders(t *testing.T) {
	router, db := newRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	fx.CreateOrder(ctx, testutil.MemberEmail, models.OrderPending)
	fx.CreateOrder(ctx, testutil.MemberEmail, models.OrderShipped)
	fx.CreateOrder(ctx, "stranger@club.test", models.OrderPending)

	rec := serve(router, testutil.WithUser(httptest.NewRequest(http.MethodGet, "/api/orders/track", nil), testutil.MemberEmail))
	var list []models.Order
	testutil.DecodeJSON(t, rec, &list)
	if len(list) != 2 {
		t.Errorf("own orders = %d, want 2", len(list))
	}
}

func TestUpdateStatus(t *testing.T) {
	router, db := newRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	o := testutil.NewFixtures(t, db).CreateOrder(ctx, "x@club.test", models.OrderPending)
	path := "/api/orders/" + o.ID.Hex()

	put := func(email string, status models.OrderStatus) *httptest.ResponseRecorder {
		req := testutil.JSONRequest(t, http.MethodPut, path, map[string]any{"status": status})
		if email != "" {
			req = testutil.WithUser(req, email)
		}
		return serve(router, req)
	}

	if rec := put(testutil.MemberEmail, models.OrderConfirmed); rec.Code != http.StatusForbidden {
		t.Errorf("member: status = %d, want 403", rec.Code)
	}
	if rec := put(testutil.AdminEmail, models.OrderDelivered); rec.Code != http.StatusConflict {
		t.Errorf("pending → delivered: status = %d, want 409", rec.Code)
	}
	if rec := put(testutil.AdminEmail, "teleported"); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown status: status = %d, want 400", rec.Code)
	}
	rec := put(testutil.AdminEmail, models.OrderConfirmed)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got models.Order
	testutil.DecodeJSON(t, rec, &got)
	if got.Status != models.OrderConfirmed {
		t.Errorf("status = %s", got.Status)
	}

	events, err := audit.New(db).Query(ctx, audit.QueryFilter{EventType: audit.EventOrderStatusChanged})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Actor != testutil.AdminEmail || events[0].Details["to"] != "confirmed" {
		t.Errorf("audit = %+v", events)
	}
}

func TestListAndDelete_AdminOnly(t *testing.T) {
	router, db := newRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	o := fx.CreateOrder(ctx, "a@club.test", models.OrderPending)
	fx.CreateOrder(ctx, "b@club.test", models.OrderShipped)

	if rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/orders", nil)); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous list: status = %d, want 401", rec.Code)
	}
	rec := serve(router, testutil.WithUser(httptest.NewRequest(http.MethodGet, "/api/orders?status=shipped", nil), testutil.AdminEmail))
	var list []models.Order
	testutil.DecodeJSON(t, rec, &list)
	if len(list) != 1 || list[0].Status != models.OrderShipped {
		t.Errorf("shipped = %+v", list)
	}

	rec = serve(router, testutil.WithUser(httptest.NewRequest(http.MethodDelete, "/api/orders/"+o.ID.Hex(), nil), testutil.AdminEmail))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", rec.Code)
	}
	rec = serve(router, testutil.WithUser(httptest.NewRequest(http.MethodGet, "/api/orders/"+o.ID.Hex(), nil), testutil.AdminEmail))
	if rec.Code != http.StatusNotFound {
		t.Errorf("get deleted: status = %d, want 404", rec.Code)
	}
}
