// internal/app/features/auditlog/types.go
package auditlog

import (
	"net/http"

	uierrors "github.com/dalemusser/clubhub/internal/app/features/errors"
	"github.com/dalemusser/clubhub/internal/app/store/audit"
)

// listResponse is the body of GET /api/audit.
type listResponse struct {
	Events   []audit.Event `json:"events"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
	HasNext  bool          `json:"hasNext"`
}

// categoryOption represents a category for the filter dropdown.
type categoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type typesResponse struct {
	Categories []categoryOption `json:"categories"`
	EventTypes []string         `json:"eventTypes"`
}

// allCategories returns the available categories for filtering.
func allCategories() []categoryOption {
	return []categoryOption{
		{Value: audit.CategoryAuth, Label: "Authentication"},
		{Value: audit.CategoryAdmin, Label: "Administration"},
	}
}

func knownCategory(c string) bool {
	for _, opt := range allCategories() {
		if opt.Value == c {
			return true
		}
	}
	return false
}

// eventTypesForCategory returns the event types for a given category.
// If category is empty, returns all event types.
func eventTypesForCategory(category string) []string {
	authEvents := []string{
		audit.EventLoginSuccess,
		audit.EventLoginFailed,
		audit.EventLogout,
	}

	adminEvents := []string{
		audit.EventOwnerInitialized,
		audit.EventAdminAdded,
		audit.EventAdminRemoved,
		audit.EventOrderStatusChanged,
		audit.EventOrderDeleted,
		audit.EventContentCreated,
		audit.EventContentUpdated,
		audit.EventContentDeleted,
		audit.EventMemberApproved,
		audit.EventBadgeAwarded,
		audit.EventMessageDeleted,
		audit.EventFilesUploaded,
	}

	switch category {
	case audit.CategoryAuth:
		return authEvents
	case audit.CategoryAdmin:
		return adminEvents
	case "":
		all := make([]string, 0, len(authEvents)+len(adminEvents))
		all = append(all, authEvents...)
		all = append(all, adminEvents...)
		return all
	default:
		return nil
	}
}

// ServeTypes handles GET /api/audit/types?category=.
func (h *Handler) ServeTypes(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" && !knownCategory(category) {
		uierrors.WriteBadRequest(w, "unknown category")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, typesResponse{
		Categories: allCategories(),
		EventTypes: eventTypesForCategory(category),
	})
}
