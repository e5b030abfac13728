package checkout_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/features/checkout"
	"github.com/dalemusser/clubhub/internal/app/store/docstore"
	"github.com/dalemusser/clubhub/internal/app/system/cart"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeCatalog map[string]models.Merchandise

func (f fakeCatalog) GetByID(_ context.Context, id string) (models.Merchandise, error) {
	m, ok := f[id]
	if !ok {
		return models.Merchandise{}, docstore.ErrNotFound
	}
	return m, nil
}

type fakeOrders struct {
	created []models.Order
	err     error
}

func (f *fakeOrders) Create(_ context.Context, items []models.OrderItem, customer models.CustomerInfo, total float64) (models.Order, error) {
	if f.err != nil {
		return models.Order{}, f.err
	}
	o := models.Order{ID: primitive.NewObjectID(), Items: items, CustomerInfo: customer, Total: total, Status: models.OrderPending}
	f.created = append(f.created, o)
	return o, nil
}

func validCustomer() models.CustomerInfo {
	return models.CustomerInfo{Name: "Kai", Email: "Kai@Example.com", Phone: "555-0101", Address: "9 Elm"}
}

func newService(products ...models.Merchandise) (*checkout.Service, *fakeOrders) {
	cat := fakeCatalog{}
	for _, p := range products {
		cat[p.ID.Hex()] = p
	}
	orders := &fakeOrders{}
	return checkout.NewService(cat, orders), orders
}

func tee() models.Merchandise {
	return models.Merchandise{ID: primitive.NewObjectID(), Name: "Tee", Price: 20, InStock: true, Sizes: []string{"S", "M"}, Colors: []string{"red"}}
}

func cartOf(items ...cart.Item) cart.Cart {
	var c cart.Cart
	for _, it := range items {
		_ = c.Add(it)
	}
	return c
}

func fieldOf(err error) string {
	var ve *inputval.ValidationError
	if errors.As(err, &ve) {
		return ve.Field
	}
	return ""
}

func TestCheckout_VariantValidation(t *testing.T) {
	p := tee()
	svc, orders := newService(p)
	id := p.ID.Hex()

	tests := []struct {
		name  string
		item  cart.Item
		field string
	}{
		{"missing size", cart.Item{ProductID: id, Color: "red", Quantity: 1}, "size"},
		{"undeclared size", cart.Item{ProductID: id, Size: "XXL", Color: "red", Quantity: 1}, "size"},
		{"missing color", cart.Item{ProductID: id, Size: "M", Quantity: 1}, "color"},
		{"undeclared color", cart.Item{ProductID: id, Size: "M", Color: "blue", Quantity: 1}, "color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Checkout(context.Background(), cartOf(tt.item), validCustomer())
			if !inputval.IsValidation(err) || fieldOf(err) != tt.field {
				t.Errorf("err = %v, want validation error on %q", err, tt.field)
			}
		})
	}
	if len(orders.created) != 0 {
		t.Errorf("no order should be created, got %d", len(orders.created))
	}

	o, err := svc.Checkout(context.Background(), cartOf(cart.Item{ProductID: id, Size: "M", Color: "red", Quantity: 2}), validCustomer())
	if err != nil {
		t.Fatalf("valid variant: %v", err)
	}
	if o.Items[0].Size != "M" || o.Items[0].Color != "red" {
		t.Errorf("line = %+v", o.Items[0])
	}
}

func TestCheckout_PricesFromCatalog(t *testing.T) {
	mug := models.Merchandise{ID: primitive.NewObjectID(), Name: "Mug", Price: 8.5, InStock: true}
	svc, _ := newService(mug)

	// The cookie claims a stale price; the catalog wins.
	c := cartOf(cart.Item{ProductID: mug.ID.Hex(), Name: "Mug", Price: 0.01, Quantity: 3})
	o, err := svc.Checkout(context.Background(), c, validCustomer())
	if err != nil {
		t.Fatal(err)
	}
	if o.Total != 25.5 || o.Items[0].Price != 8.5 {
		t.Errorf("total = %v line price = %v", o.Total, o.Items[0].Price)
	}
	if o.CustomerInfo.Email != "kai@example.com" {
		t.Errorf("email = %q", o.CustomerInfo.Email)
	}
}

func TestCheckout_CustomerValidation(t *testing.T) {
	mug := models.Merchandise{ID: primitive.NewObjectID(), Name: "Mug", Price: 8, InStock: true}
	svc, orders := newService(mug)
	c := cartOf(cart.Item{ProductID: mug.ID.Hex(), Quantity: 1})

	for _, field := range []string{"name", "email", "phone", "address"} {
		cust := validCustomer()
		switch field {
		case "name":
			cust.Name = " "
		case "email":
			cust.Email = "nope"
		case "phone":
			cust.Phone = ""
		case "address":
			cust.Address = ""
		}
		_, err := svc.Checkout(context.Background(), c, cust)
		if fieldOf(err) != field {
			t.Errorf("%s: err = %v", field, err)
		}
	}
	if _, err := svc.Checkout(context.Background(), cart.Cart{}, validCustomer()); fieldOf(err) != "items" {
		t.Errorf("empty cart: err = %v", err)
	}
	if len(orders.created) != 0 {
		t.Errorf("orders created on invalid input: %d", len(orders.created))
	}
}

func TestCheckout_LineErrors(t *testing.T) {
	sold := models.Merchandise{ID: primitive.NewObjectID(), Name: "Pin", Price: 2, InStock: false}
	limited := models.Merchandise{ID: primitive.NewObjectID(), Name: "Poster", Price: 5, InStock: true, StockQuantity: new(int)}
	*limited.StockQuantity = 1
	svc, _ := newService(sold, limited)

	cases := map[string]cart.Item{
		"missing":      {ProductID: primitive.NewObjectID().Hex(), Name: "Ghost", Quantity: 1},
		"out of stock": {ProductID: sold.ID.Hex(), Quantity: 1},
		"over stock":   {ProductID: limited.ID.Hex(), Quantity: 2},
	}
	for name, it := range cases {
		_, err := svc.Checkout(context.Background(), cartOf(it), validCustomer())
		if fieldOf(err) != "items[0]" {
			t.Errorf("%s: err = %v", name, err)
		}
	}
}

func TestCheckout_StoreFailureIsNotValidation(t *testing.T) {
	mug := models.Merchandise{ID: primitive.NewObjectID(), Name: "Mug", Price: 8, InStock: true}
	cat := fakeCatalog{mug.ID.Hex(): mug}
	svc := checkout.NewService(cat, &fakeOrders{err: fmt.Errorf("connection reset")})

	_, err := svc.Checkout(context.Background(), cartOf(cart.Item{ProductID: mug.ID.Hex(), Quantity: 1}), validCustomer())
	if err == nil || inputval.IsValidation(err) {
		t.Errorf("err = %v, want transport error", err)
	}
}

func TestCheckout_StockCoversAllVariants(t *testing.T) {
	shirt := tee()
	shirt.StockQuantity = new(int)
	*shirt.StockQuantity = 3
	svc, orders := newService(shirt)

	small := cart.Item{ProductID: shirt.ID.Hex(), Size: "S", Color: "red", Quantity: 2}
	medium := cart.Item{ProductID: shirt.ID.Hex(), Size: "M", Color: "red", Quantity: 2}
	_, err := svc.Checkout(context.Background(), cartOf(small, medium), validCustomer())
	if fieldOf(err) != "items[1]" {
		t.Fatalf("err = %v, want stock error on items[1]", err)
	}
	if len(orders.created) != 0 {
		t.Errorf("order created despite stock error")
	}

	medium.Quantity = 1
	if _, err := svc.Checkout(context.Background(), cartOf(small, medium), validCustomer()); err != nil {
		t.Errorf("within stock: %v", err)
	}
}
