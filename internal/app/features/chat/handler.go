// internal/app/features/chat/handler.go
package chat

import (
	"context"
	"net/http"
	"strings"
	"time"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"go.uber.org/zap"
)

// ResponderTimeout bounds one call to the external responder.
const ResponderTimeout = 5 * time.Second

const maxMessageLen = 1000

// Handler answers chat messages, preferring the responder when one is
// configured.
type Handler struct {
	Responder *Responder
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger
}

// NewHandler builds a chat handler. An empty responderURL means canned
// replies only.
func NewHandler(responderURL string, client *http.Client, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	h := &Handler{ErrLog: errLog, Log: logger}
	if u := strings.TrimSpace(responderURL); u != "" {
		h.Responder = &Responder{URL: u, Client: client}
	}
	return h
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply  string `json:"reply"`
	Source string `json:"source"`
}

// Chat handles POST /api/chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var in chatRequest
	if err := uierrors.DecodeJSON(w, r, &in); err != nil {
		h.ErrLog.WriteStoreError(w, r, "decode chat", err)
		return
	}
	msg := strings.TrimSpace(in.Message)
	if err := inputval.First(
		inputval.Required("message", msg),
		inputval.MaxLen("message", msg, maxMessageLen),
	); err != nil {
		h.ErrLog.WriteStoreError(w, r, "chat", err)
		return
	}

	if h.Responder != nil {
		ctx, cancel := context.WithTimeout(r.Context(), ResponderTimeout)
		reply, err := h.Responder.Reply(ctx, msg)
		cancel()
		if err == nil {
			uierrors.WriteJSON(w, http.StatusOK, chatResponse{Reply: reply, Source: SourceResponder})
			return
		}
		h.Log.Warn("chat responder failed; using canned reply", zap.Error(err))
	}
	uierrors.WriteJSON(w, http.StatusOK, chatResponse{Reply: CannedReply(msg), Source: SourceCanned})
}
