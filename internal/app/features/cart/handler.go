// internal/app/features/cart/handler.go
package cart

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/system/cart"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// ProductReader is the catalog lookup the cart needs.
type ProductReader interface {
	GetByID(ctx context.Context, id string) (models.Merchandise, error)
}

// Handler serves the cookie-backed cart.
type Handler struct {
	Codec    *cart.Codec
	Products ProductReader
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(codec *cart.Codec, products ProductReader, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Codec:    codec,
		Products: products,
		ErrLog:   errLog,
		Log:      logger,
	}
}

// View is the cart as the client sees it.
type View struct {
	Items []cart.Item `json:"items"`
	Total float64     `json:"total"`
	Count int         `json:"count"`
}

func viewOf(c cart.Cart) View {
	items := c.Items
	if items == nil {
		items = []cart.Item{}
	}
	return View{Items: items, Total: c.Total(), Count: c.Count()}
}

// save persists c and writes it back.
func (h *Handler) save(w http.ResponseWriter, r *http.Request, c cart.Cart) {
	if err := h.Codec.Save(w, c); err != nil {
		h.ErrLog.WriteStoreError(w, r, "save cart", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, viewOf(c))
}

// Show handles GET /api/cart.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	uierrors.WriteJSON(w, http.StatusOK, viewOf(h.Codec.Load(r)))
}

// Clear handles DELETE /api/cart.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	h.Codec.Clear(w)
	uierrors.WriteJSON(w, http.StatusOK, viewOf(cart.Cart{}))
}

type lineRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

func (l lineRequest) key() cart.Key {
	return cart.Item{ProductID: l.ProductID, Size: l.Size, Color: l.Color}.Key()
}

// AddItem handles POST /api/cart/items. Name, price and image are copied
// from the catalog; checkout re-reads them.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var in lineRequest
	if err := uierrors.DecodeJSON(w, r, &in); err != nil {
		h.ErrLog.WriteStoreError(w, r, "decode cart item", err)
		return
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if err := inputval.Required("productId", in.ProductID); err != nil {
		h.ErrLog.WriteStoreError(w, r, "add cart item", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "load product", err)
		return
	}
	if !p.InStock {
		h.ErrLog.WriteStoreError(w, r, "add cart item", inputval.New("productId", "%s is out of stock", p.Name))
		return
	}

	c := h.Codec.Load(r)
	err = c.Add(cart.Item{
		ProductID: p.ID.Hex(),
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.CoverImage,
		Size:      in.Size,
		Color:     in.Color,
		Quantity:  in.Quantity,
	})
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "add cart item", err)
		return
	}
	h.save(w, r, c)
}

// UpdateItem handles PUT /api/cart/items. A quantity of zero or less
// removes the line. Updating a line the cart does not hold is a 404.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var in lineRequest
	if err := uierrors.DecodeJSON(w, r, &in); err != nil {
		h.ErrLog.WriteStoreError(w, r, "decode cart item", err)
		return
	}
	c := h.Codec.Load(r)
	if _, ok := c.Find(in.key()); !ok {
		uierrors.WriteError(w, http.StatusNotFound, "item is not in the cart")
		return
	}
	c.UpdateQuantity(in.key(), in.Quantity)
	h.save(w, r, c)
}

// RemoveItem handles DELETE /api/cart/items?productId=&size=&color=.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	in := lineRequest{
		ProductID: query.Get(r, "productId"),
		Size:      query.Get(r, "size"),
		Color:     query.Get(r, "color"),
	}
	c := h.Codec.Load(r)
	c.Remove(in.key())
	h.save(w, r, c)
}
