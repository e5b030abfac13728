// internal/app/features/auditlog/list.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/store/audit"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
)

const pageSize = 50

// ServeList handles GET /api/audit with optional category, eventType,
// actor, startDate and endDate (YYYY-MM-DD) filters and a page number.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := strings.TrimSpace(q.Get("category"))
	eventType := strings.TrimSpace(q.Get("eventType"))
	actor := normalize.Email(q.Get("actor"))

	page := 1
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}

	if category != "" && !knownCategory(category) {
		h.ErrLog.WriteStoreError(w, r, "audit log list", inputval.New("category", "must be one of auth, admin"))
		return
	}

	filter := audit.QueryFilter{
		Actor:     actor,
		Category:  category,
		EventType: eventType,
		Limit:     pageSize,
		Offset:    int64((page - 1) * pageSize),
	}

	if s := strings.TrimSpace(q.Get("startDate")); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			h.ErrLog.WriteStoreError(w, r, "audit log list", inputval.New("startDate", "must be YYYY-MM-DD"))
			return
		}
		filter.StartTime = &t
	}
	if s := strings.TrimSpace(q.Get("endDate")); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			h.ErrLog.WriteStoreError(w, r, "audit log list", inputval.New("endDate", "must be YYYY-MM-DD"))
			return
		}
		// End of day
		endOfDay := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndTime = &endOfDay
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	events, err := h.Store.Query(ctx, filter)
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "query audit events", err)
		return
	}
	total, err := h.Store.Count(ctx, filter)
	if err != nil {
		h.ErrLog.WriteStoreError(w, r, "count audit events", err)
		return
	}

	uierrors.WriteJSON(w, http.StatusOK, listResponse{
		Events:   events,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasNext:  int64(page*pageSize) < total,
	})
}
