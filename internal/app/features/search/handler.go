// internal/app/features/search/handler.go
package search

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// LookupTimeout bounds one summary lookup.
const LookupTimeout = 5 * time.Second

const (
	maxQueryLen  = 200
	perKindLimit = 5
)

// Source values.
const (
	SourceEncyclopedia = "encyclopedia"
	SourceLocal        = "local"
)

type Handler struct {
	Summaries *SummaryClient
	Local     LocalIndex
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger
}

// NewHandler builds a search handler. An empty summaryURL disables the
// encyclopedia lookup.
func NewHandler(summaryURL string, client *http.Client, local LocalIndex, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	h := &Handler{Local: local, ErrLog: errLog, Log: logger}
	if u := strings.TrimSpace(summaryURL); u != "" {
		h.Summaries = &SummaryClient{BaseURL: u, Client: client}
	}
	return h
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Query   string   `json:"query"`
	Source  string   `json:"source"`
	Summary *Summary `json:"summary,omitempty"`
	Results []Hit    `json:"results"`
}

// Search handles POST /api/search. Only an empty or oversized query is an
// error; lookup and local failures degrade to fewer results.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var in searchRequest
	if err := uierrors.DecodeJSON(w, r, &in); err != nil {
		h.ErrLog.WriteStoreError(w, r, "decode search", err)
		return
	}
	q := strings.TrimSpace(in.Query)
	if err := inputval.First(
		inputval.Required("query", q),
		inputval.MaxLen("query", q, maxQueryLen),
	); err != nil {
		h.ErrLog.WriteStoreError(w, r, "search", err)
		return
	}

	resp := searchResponse{Query: q, Results: []Hit{}}

	if h.Summaries != nil {
		ctx, cancel := context.WithTimeout(r.Context(), LookupTimeout)
		s, err := h.Summaries.Lookup(ctx, q)
		cancel()
		switch {
		case err == nil:
			resp.Source = SourceEncyclopedia
			resp.Summary = &s
			uierrors.WriteJSON(w, http.StatusOK, resp)
			return
		case errors.Is(err, errNoSummary):
			h.Log.Debug("no summary; searching locally", zap.String("query", q))
		default:
			h.Log.Warn("summary lookup failed; searching locally", zap.String("query", q), zap.Error(err))
		}
	}

	resp.Source = SourceLocal
	if h.Local != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		hits, err := h.Local.Search(ctx, q, perKindLimit)
		cancel()
		if err != nil {
			h.Log.Warn("local search failed", zap.String("query", q), zap.Error(err))
		} else if hits != nil {
			resp.Results = hits
		}
	}
	uierrors.WriteJSON(w, http.StatusOK, resp)
}
