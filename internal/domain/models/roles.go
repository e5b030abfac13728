// internal/domain/models/roles.go
package models

import "time"

// Role is the privilege tier of a principal.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// RolesDocID is the _id of the single roles document.
const RolesDocID = "site_roles"

// Roles holds the site owner and the admin list. Owner never changes after
// the document is created. Admins are stored case-folded.
type Roles struct {
	ID        string    `bson:"_id" json:"-"`
	Owner     string    `bson:"owner" json:"owner"`
	OwnerCI   string    `bson:"owner_ci" json:"-"`
	Admins    []string  `bson:"admins" json:"admins"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// AtLeast reports whether r grants at least the privileges of min.
func (r Role) AtLeast(min Role) bool {
	return r.rank() >= min.rank()
}

func (r Role) rank() int {
	switch r {
	case RoleOwner:
		return 2
	case RoleAdmin:
		return 1
	}
	return 0
}
