// internal/app/features/login/handler.go
package login

import (
	"net/http"
	"strings"
	"time"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/system/auditlog"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"go.uber.org/zap"
)

// TokenTTL is the lifetime of tokens minted by the dev login.
const TokenTTL = 12 * time.Hour

// Handler signs a principal in without a provider. It is mounted only when
// dev_login is enabled.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Bearer     *auth.BearerVerifier // optional; when set a token is returned too
	ErrLog     *uierrors.ErrorLogger
	AuditLog   *auditlog.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, bearer *auth.BearerVerifier, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Bearer:     bearer,
		ErrLog:     errLog,
		AuditLog:   audit,
	}
}

type devLoginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type devLoginResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token,omitempty"`
}

// HandleDevLogin handles POST /auth/dev-login {email, name}.
func (h *Handler) HandleDevLogin(w http.ResponseWriter, r *http.Request) {
	var in devLoginRequest
	if err := uierrors.DecodeJSON(w, r, &in); err != nil {
		h.ErrLog.WriteStoreError(w, r, "decode dev login", err)
		return
	}
	email := normalize.Email(in.Email)
	if err := inputval.Email("email", email); err != nil {
		h.ErrLog.WriteStoreError(w, r, "dev login", err)
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}

	u := auth.SessionUser{Email: email, Name: name}
	if err := h.SessionMgr.SignIn(w, r, u); err != nil {
		h.ErrLog.WriteStoreError(w, r, "save session", err)
		return
	}

	resp := devLoginResponse{Email: email, Name: name}
	if h.Bearer != nil {
		tok, err := h.Bearer.Issue(u, TokenTTL)
		if err != nil {
			h.ErrLog.WriteStoreError(w, r, "issue token", err)
			return
		}
		resp.Token = tok
	}

	h.AuditLog.LoginSuccess(r.Context(), r, email, "dev")
	h.Log.Warn("dev login used", zap.String("email", email))
	uierrors.WriteJSON(w, http.StatusOK, resp)
}
