// internal/domain/models/member.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Badge is an award shown on a member's profile card.
type Badge struct {
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Icon        string    `bson:"icon,omitempty" json:"icon,omitempty"`
	Color       string    `bson:"color,omitempty" json:"color,omitempty"`
	AwardedAt   time.Time `bson:"awarded_at" json:"awardedAt"`
	AwardedBy   string    `bson:"awarded_by" json:"awardedBy"`
}

// Member is an entry in the public member directory.
//
// Public submissions arrive with SubmittedForApproval set and stay hidden
// from the directory until an admin approves them.
type Member struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name"`
	NameCI             string             `bson:"name_ci" json:"-"`
	Branch             string             `bson:"branch,omitempty" json:"branch,omitempty"`
	Year               string             `bson:"year,omitempty" json:"year,omitempty"`
	Division           string             `bson:"division,omitempty" json:"division,omitempty"`
	RollNumber         string             `bson:"roll_number,omitempty" json:"rollNumber,omitempty"`
	RegistrationNumber string             `bson:"registration_number,omitempty" json:"registrationNumber,omitempty"`
	Team               string             `bson:"team,omitempty" json:"team,omitempty"`
	Position           string             `bson:"position,omitempty" json:"position,omitempty"`
	Email              string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone              string             `bson:"phone,omitempty" json:"phone,omitempty"`
	LinkedIn           string             `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	GitHub             string             `bson:"github,omitempty" json:"github,omitempty"`
	PhotoURL           string             `bson:"photo_url,omitempty" json:"photoUrl,omitempty"`

	Badges               []Badge  `bson:"badges" json:"badges"`
	Skills               []string `bson:"skills" json:"skills"`
	EventsParticipated   []string `bson:"events_participated" json:"eventsParticipated"`
	ProjectsParticipated []string `bson:"projects_participated" json:"projectsParticipated"`

	Approved             bool       `bson:"approved" json:"approved"`
	SubmittedForApproval bool       `bson:"submitted_for_approval" json:"submittedForApproval"`
	ApprovedBy           string     `bson:"approved_by,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt           *time.Time `bson:"approved_at,omitempty" json:"approvedAt,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}
