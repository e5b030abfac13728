package testutil

import (
	"testing"

	"github.com/dalemusser/clubhub/internal/app/store/roles"
	"github.com/dalemusser/clubhub/internal/app/system/rolegate"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// NewGate seeds the roles document with OwnerEmail as owner and AdminEmail
// as the only admin, and returns a gate over it.
func NewGate(t *testing.T, db *mongo.Database) *rolegate.Gate {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()
	NewFixtures(t, db).CreateRoles(ctx, OwnerEmail, AdminEmail)
	return rolegate.New(roles.New(db), zap.NewNop())
}
