package auditlog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/store/audit"
	"github.com/dalemusser/clubhub/internal/app/system/auditlog"
	"github.com/dalemusser/clubhub/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNilLogger_NoPanic(t *testing.T) {
	var l *auditlog.Logger
	l.Log(context.Background(), audit.Event{Category: audit.CategoryAdmin})
}

func TestLog_LogOnly_WritesZap(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := auditlog.New(nil, zap.New(core), auditlog.Config{Admin: "log"})

	req := testutil.WithUser(httptest.NewRequest(http.MethodPut, "/api/orders/x", nil), testutil.AdminEmail)
	l.OrderStatusChanged(context.Background(), req, "o1", "pending", "confirmed")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	ctx := logs.All()[0].ContextMap()
	if ctx["actor"] != testutil.AdminEmail || ctx["detail_to"] != "confirmed" {
		t.Errorf("unexpected fields: %v", ctx)
	}
}

func TestLog_Off(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := auditlog.New(nil, zap.New(core), auditlog.Config{Auth: "off", Admin: "off"})
	l.Logout(context.Background(), httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	if logs.Len() != 0 {
		t.Errorf("expected nothing logged, got %d", logs.Len())
	}
}

func TestLog_DB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := audit.New(db)
	l := auditlog.New(store, zap.NewNop(), auditlog.Config{Admin: "db"})

	req := testutil.WithUser(httptest.NewRequest(http.MethodPost, "/api/roles/admins", nil), testutil.OwnerEmail)
	l.AdminListChanged(ctx, req, audit.EventAdminAdded, "new@club.org")

	got, err := store.Query(ctx, audit.QueryFilter{EventType: audit.EventAdminAdded})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 || got[0].Actor != testutil.OwnerEmail || got[0].TargetID != "new@club.org" {
		t.Errorf("stored event: %+v", got)
	}
}
