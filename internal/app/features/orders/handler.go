// internal/app/features/orders/handler.go
package orders

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/store/audit"
	"github.com/dalemusser/clubhub/internal/app/store/docstore"
	orderstore "github.com/dalemusser/clubhub/internal/app/store/orders"
	"github.com/dalemusser/clubhub/internal/app/system/auditlog"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves order tracking and the admin order console.
type Handler struct {
	Store    *orderstore.Store
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

func NewHandler(store *orderstore.Store, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, ErrLog: errLog, AuditLog: audit, Log: logger}
}

// List handles GET /api/orders?status= (admin).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status := models.OrderStatus(query.Get(r, "status"))
	if status != "" && !status.Valid() {
		h.ErrLog.WriteStoreError(w, r, "list orders", orderstore.ErrUnknownStatus)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Store.List(ctx, status)
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "list orders", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, list)
}

// Track handles GET /api/orders/track.
//
// With ?orderNumber=&email= it returns the matching order to anyone who
// knows both. Otherwise a signed-in caller gets every order placed with
// their email, newest first.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	number := query.Get(r, "orderNumber")
	email := normalize.Email(query.Get(r, "email"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if number != "" || email != "" {
		if err := inputval.First(
			inputval.Required("orderNumber", number),
			inputval.Required("email", email),
		); err != nil {
			h.ErrLog.WriteStoreError(w, r, "track order", err)
			return
		}
		o, err := h.Store.FindByNumberAndEmail(ctx, number, email)
		if errors.Is(err, docstore.ErrNotFound) {
			uierrors.WriteError(w, http.StatusNotFound, "no order matches that number and email")
			return
		}
		if err != nil {
			h.ErrLog.WriteStoreError(w, r, "track order", err)
			return
		}
		uierrors.WriteJSON(w, http.StatusOK, []models.Order{o})
		return
	}

	mine := auth.CurrentEmail(r)
	if mine == "" {
		auth.WriteUnauthorized(w)
		return
	}
	list, err := h.Store.ListByCustomerEmail(ctx, mine)
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "list my orders", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, list)
}

// Get handles GET /api/orders/{id} (admin).
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	o, err := h.Store.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "get order", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, o)
}

type statusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// UpdateStatus handles PUT /api/orders/{id} (admin). Only the status may
// change; illegal moves answer 409.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var in statusRequest
	if err := uierrors.DecodeJSON(w, r, &in); err != nil {
		h.ErrLog.WriteStoreError(w, r, "decode order status", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	before, err := h.Store.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "get order", err)
		return
	}
	o, err := h.Store.UpdateStatus(ctx, id, in.Status)
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "update order status", err)
		return
	}
	if before.Status != o.Status {
		h.AuditLog.OrderStatusChanged(ctx, r, id, string(before.Status), string(o.Status))
	}
	uierrors.WriteJSON(w, http.StatusOK, o)
}

// Delete handles DELETE /api/orders/{id} (admin).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(ctx, id); err != nil {
		h.ErrLog.WriteStoreError(w, r, "delete order", err)
		return
	}
	h.AuditLog.Admin(ctx, r, audit.EventOrderDeleted, "orders", id, nil)
	uierrors.WriteSuccess(w)
}
