// internal/app/features/checkout/handler.go
package checkout

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/system/cart"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves POST /api/orders.
type Handler struct {
	Service *Service
	Codec   *cart.Codec
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(svc *Service, codec *cart.Codec, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Service: svc, Codec: codec, ErrLog: errLog, Log: logger}
}

type checkoutRequest struct {
	CustomerInfo models.CustomerInfo `json:"customerInfo"`
}

// Checkout places an order for the cart carried in the cookie. The cart
// cookie is cleared only when the order was created.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var in checkoutRequest
	if err := uierrors.DecodeJSON(w, r, &in); err != nil {
		h.ErrLog.WriteStoreError(w, r, "decode checkout", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	o, err := h.Service.Checkout(ctx, h.Codec.Load(r), in.CustomerInfo)
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "checkout", err)
		return
	}
	h.Codec.Clear(w)
	h.Log.Info("order placed",
		zap.String("order_id", o.ID.Hex()),
		zap.String("order_number", o.OrderNumber),
		zap.Int("lines", len(o.Items)),
		zap.Float64("total", o.Total))
	uierrors.WriteJSON(w, http.StatusCreated, o)
}
