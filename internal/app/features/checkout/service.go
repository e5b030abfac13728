// internal/app/features/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dalemusser/clubhub/internal/app/store/docstore"
	"github.com/dalemusser/clubhub/internal/app/system/cart"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductReader reads the live catalog. Checkout never reads through the
// list cache.
type ProductReader interface {
	GetByID(ctx context.Context, id string) (models.Merchandise, error)
}

// OrderCreator persists a new pending order.
type OrderCreator interface {
	Create(ctx context.Context, items []models.OrderItem, customer models.CustomerInfo, total float64) (models.Order, error)
}

// Service turns a cart into an order.
type Service struct {
	Products ProductReader
	Orders   OrderCreator
}

func NewService(products ProductReader, orders OrderCreator) *Service {
	return &Service{Products: products, Orders: orders}
}

// ValidateCustomer checks the shipping block. Fields are trimmed and the
// email lowercased so tracking by the signed-in email matches.
func ValidateCustomer(c models.CustomerInfo) (models.CustomerInfo, error) {
	c.Name = normalize.Name(c.Name)
	c.Email = normalize.Email(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	c.City = strings.TrimSpace(c.City)
	c.State = strings.TrimSpace(c.State)
	c.Pincode = strings.TrimSpace(c.Pincode)
	c.Notes = strings.TrimSpace(c.Notes)
	err := inputval.First(
		inputval.Required("name", c.Name),
		inputval.Email("email", c.Email),
		inputval.Required("phone", c.Phone),
		inputval.Required("address", c.Address),
		inputval.MaxLen("notes", c.Notes, 1000),
	)
	return c, err
}

// Checkout validates the customer and every cart line against the current
// catalog, then creates a pending order priced from the catalog. The cart
// itself is not modified; the caller clears it on success.
func (s *Service) Checkout(ctx context.Context, c cart.Cart, customer models.CustomerInfo) (models.Order, error) {
	customer, err := ValidateCustomer(customer)
	if err != nil {
		return models.Order{}, err
	}
	if c.IsEmpty() {
		return models.Order{}, inputval.New("items", "cart is empty")
	}

	items := make([]models.OrderItem, 0, len(c.Items))
	// Variants of one product draw on the same stock.
	wanted := make(map[string]int, len(c.Items))
	for i, line := range c.Items {
		wanted[line.ProductID] += line.Quantity
		it, err := s.priceLine(ctx, i, line, wanted[line.ProductID])
		if err != nil {
			return models.Order{}, err
		}
		items = append(items, it)
	}

	total := math.Round(models.ItemsTotal(items)*100) / 100
	o, err := s.Orders.Create(ctx, items, customer, total)
	if err != nil {
		return models.Order{}, fmt.Errorf("create order: %w", err)
	}
	return o, nil
}

// priceLine checks one cart line. wanted is the quantity of this product
// across the cart up to and including the line.
func (s *Service) priceLine(ctx context.Context, i int, line cart.Item, wanted int) (models.OrderItem, error) {
	field := fmt.Sprintf("items[%d]", i)
	if line.Quantity < 1 {
		return models.OrderItem{}, inputval.New(field, "quantity must be at least 1")
	}
	p, err := s.Products.GetByID(ctx, line.ProductID)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.OrderItem{}, inputval.New(field, "%s is no longer available", line.Name)
	}
	if err != nil {
		return models.OrderItem{}, err
	}
	if !p.InStock {
		return models.OrderItem{}, inputval.New(field, "%s is out of stock", p.Name)
	}
	if p.StockQuantity != nil && wanted > *p.StockQuantity {
		return models.OrderItem{}, inputval.New(field, "only %d of %s left", *p.StockQuantity, p.Name)
	}

	size := strings.TrimSpace(line.Size)
	if p.HasSizes() && !p.OffersSize(size) {
		return models.OrderItem{}, inputval.New("size", "choose a size for %s (%s)", p.Name, strings.Join(p.Sizes, ", "))
	}
	color := strings.TrimSpace(line.Color)
	if p.HasColors() && !p.OffersColor(color) {
		return models.OrderItem{}, inputval.New("color", "choose a color for %s (%s)", p.Name, strings.Join(p.Colors, ", "))
	}
	if !p.HasSizes() {
		size = ""
	}
	if !p.HasColors() {
		color = ""
	}

	pid, _ := primitive.ObjectIDFromHex(line.ProductID)
	return models.OrderItem{
		ProductID: pid,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.CoverImage,
		Size:      size,
		Color:     color,
		Quantity:  line.Quantity,
	}, nil
}
