// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/store/audit"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for sign-in and sign-out events.
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Auth string
	// Admin controls logging for admin mutations (orders, roles, content).
	// Values as for Auth.
	Admin string
}

// Logger writes audit events to MongoDB and to zap, per Config.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.Actor != "" {
		fields = append(fields, zap.String("actor", event.Actor))
	}
	if event.Collection != "" {
		fields = append(fields, zap.String("collection", event.Collection))
	}
	if event.TargetID != "" {
		fields = append(fields, zap.String("target_id", event.TargetID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// A nil Logger is a no-op so tests can pass nil.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	}
	if setting == "" {
		setting = "all"
	}
	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}
	if (setting == "all" || setting == "db") && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func fromRequest(r *http.Request, category, eventType string) audit.Event {
	return audit.Event{
		Category:  category,
		EventType: eventType,
		Actor:     auth.CurrentEmail(r),
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	}
}

// --- Authentication Events ---

// LoginSuccess logs a completed sign-in for email via method.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, email, method string) {
	e := fromRequest(r, audit.CategoryAuth, audit.EventLoginSuccess)
	e.Actor = email
	e.Details = map[string]string{"method": method}
	l.Log(ctx, e)
}

// LoginFailed logs a refused sign-in.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, method, reason string) {
	e := fromRequest(r, audit.CategoryAuth, audit.EventLoginFailed)
	e.Success = false
	e.FailureReason = reason
	e.Details = map[string]string{"method": method}
	l.Log(ctx, e)
}

// Logout logs a sign-out.
func (l *Logger) Logout(ctx context.Context, r *http.Request) {
	l.Log(ctx, fromRequest(r, audit.CategoryAuth, audit.EventLogout))
}

// --- Admin Events ---

// Admin logs an admin mutation by the signed-in principal on
// collection/targetID. details may be nil.
func (l *Logger) Admin(ctx context.Context, r *http.Request, eventType, collection, targetID string, details map[string]string) {
	e := fromRequest(r, audit.CategoryAdmin, eventType)
	e.Collection = collection
	e.TargetID = targetID
	e.Details = details
	l.Log(ctx, e)
}

// OrderStatusChanged logs an order moving from one status to another.
func (l *Logger) OrderStatusChanged(ctx context.Context, r *http.Request, orderID, from, to string) {
	l.Admin(ctx, r, audit.EventOrderStatusChanged, "orders", orderID, map[string]string{
		"from": from,
		"to":   to,
	})
}

// AdminListChanged logs an admin grant or revocation.
func (l *Logger) AdminListChanged(ctx context.Context, r *http.Request, eventType, email string) {
	l.Admin(ctx, r, eventType, "roles", email, nil)
}
