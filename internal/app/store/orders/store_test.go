package orders_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/store/docstore"
	"github.com/dalemusser/clubhub/internal/app/store/orders"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/clubhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func customer(email string) models.CustomerInfo {
	return models.CustomerInfo{Name: "Ravi", Email: email, Phone: "555-0100", Address: "1 Main St"}
}

func TestCreate_DistinctIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := orders.New(db)

	items := []models.OrderItem{{ProductID: primitive.NewObjectID(), Name: "Tee", Price: 10, Quantity: 2}}
	a, err := s.Create(ctx, items, customer("a@club.test"), 20)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := s.Create(ctx, items, customer("a@club.test"), 20)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID == b.ID {
		t.Fatal("orders must have distinct ids")
	}
	if a.Status != models.OrderPending {
		t.Errorf("status = %s, want pending", a.Status)
	}
	if len(a.OrderNumber) <= len(models.OrderNumberPrefix) {
		t.Errorf("order number = %q", a.OrderNumber)
	}
}

func TestUpdateStatus_Lifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := orders.New(db)

	o := testutil.NewFixtures(t, db).CreateOrder(ctx, "b@club.test", models.OrderPending)
	id := o.ID.Hex()

	if _, err := s.UpdateStatus(ctx, id, models.OrderShipped); !errors.Is(err, orders.ErrInvalidTransition) {
		t.Fatalf("pending → shipped: expected ErrInvalidTransition, got %v", err)
	}
	for _, next := range []models.OrderStatus{models.OrderConfirmed, models.OrderShipped, models.OrderDelivered} {
		got, err := s.UpdateStatus(ctx, id, next)
		if err != nil {
			t.Fatalf("→ %s: %v", next, err)
		}
		if got.Status != next {
			t.Fatalf("status = %s, want %s", got.Status, next)
		}
	}
	if _, err := s.UpdateStatus(ctx, id, models.OrderCancelled); !errors.Is(err, orders.ErrInvalidTransition) {
		t.Errorf("delivered is terminal, got %v", err)
	}
	if got, err := s.UpdateStatus(ctx, id, models.OrderDelivered); err != nil || got.Status != models.OrderDelivered {
		t.Errorf("same status should be a no-op, got (%v, %v)", got.Status, err)
	}
}

func TestUpdateStatus_Errors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := orders.New(db)

	if _, err := s.UpdateStatus(ctx, primitive.NewObjectID().Hex(), models.OrderConfirmed); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("missing order: expected ErrNotFound, got %v", err)
	}
	o := testutil.NewFixtures(t, db).CreateOrder(ctx, "c@club.test", models.OrderPending)
	if _, err := s.UpdateStatus(ctx, o.ID.Hex(), "lost"); !errors.Is(err, orders.ErrUnknownStatus) {
		t.Errorf("bogus status: expected ErrUnknownStatus, got %v", err)
	}
}

func TestUpdateStatus_ConcurrentAdmins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := orders.New(db)

	o := testutil.NewFixtures(t, db).CreateOrder(ctx, "d@club.test", models.OrderPending)

	// One admin confirms while another cancels. Either order of arrival is
	// legal; the final status must be one a legal path reaches.
	var wg sync.WaitGroup
	for _, st := range []models.OrderStatus{models.OrderConfirmed, models.OrderCancelled} {
		wg.Add(1)
		go func(st models.OrderStatus) {
			defer wg.Done()
			_, _ = s.UpdateStatus(ctx, o.ID.Hex(), st)
		}(st)
	}
	wg.Wait()

	got, err := s.GetByID(ctx, o.ID.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.OrderCancelled && got.Status != models.OrderConfirmed {
		t.Errorf("final status = %s", got.Status)
	}
}

func TestTracking(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := orders.New(db)
	fx := testutil.NewFixtures(t, db)

	mine := fx.CreateOrder(ctx, "e@club.test", models.OrderPending)
	fx.CreateOrder(ctx, "other@club.test", models.OrderPending)

	list, err := s.ListByCustomerEmail(ctx, "e@club.test")
	if err != nil || len(list) != 1 || list[0].ID != mine.ID {
		t.Fatalf("ListByCustomerEmail = (%v, %v)", list, err)
	}
	if list, _ := s.ListByCustomerEmail(ctx, "E@club.test"); len(list) != 0 {
		t.Errorf("email match is exact, got %d", len(list))
	}

	got, err := s.FindByNumberAndEmail(ctx, mine.OrderNumber, "e@club.test")
	if err != nil || got.ID != mine.ID {
		t.Errorf("FindByNumberAndEmail = (%v, %v)", got.ID, err)
	}
	if _, err := s.FindByNumberAndEmail(ctx, mine.OrderNumber, "other@club.test"); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("wrong email: expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := orders.New(db)

	o := testutil.NewFixtures(t, db).CreateOrder(ctx, "f@club.test", models.OrderPending)
	if err := s.Delete(ctx, o.ID.Hex()); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, o.ID.Hex()); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}
