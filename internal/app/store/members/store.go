// internal/app/store/members/store.go
package members

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/clubhub/internal/app/store/docstore"
	"github.com/dalemusser/clubhub/internal/app/system/cache"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/app/system/normalize"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	collection   = "members"
	cachePrefix  = "members:"
	directoryTTL = 60 * time.Second
)

type Store struct {
	c     *mongo.Collection
	cache *cache.Cache
}

func New(db *mongo.Database, c *cache.Cache) *Store {
	return &Store{c: db.Collection(collection), cache: c}
}

// Patch holds the profile fields an admin may edit.
type Patch struct {
	Name                 *string   `json:"name"`
	Branch               *string   `json:"branch"`
	Year                 *string   `json:"year"`
	Division             *string   `json:"division"`
	RollNumber           *string   `json:"rollNumber"`
	RegistrationNumber   *string   `json:"registrationNumber"`
	Team                 *string   `json:"team"`
	Position             *string   `json:"position"`
	Email                *string   `json:"email"`
	Phone                *string   `json:"phone"`
	LinkedIn             *string   `json:"linkedin"`
	GitHub               *string   `json:"github"`
	PhotoURL             *string   `json:"photoUrl"`
	Skills               *[]string `json:"skills"`
	EventsParticipated   *[]string `json:"eventsParticipated"`
	ProjectsParticipated *[]string `json:"projectsParticipated"`
}

func validate(m models.Member) error {
	errs := []error{
		inputval.Required("name", m.Name),
		inputval.MaxLen("name", m.Name, 120),
		inputval.URL("linkedin", m.LinkedIn),
		inputval.URL("github", m.GitHub),
	}
	if m.Email != "" && !inputval.IsValidEmail(m.Email) {
		errs = append(errs, inputval.New("email", "must be a valid email address"))
	}
	return inputval.First(errs...)
}

func prepare(m *models.Member) {
	m.Name = normalize.Name(m.Name)
	m.NameCI = text.Fold(m.Name)
	m.Email = normalize.Email(m.Email)
	m.Skills = normalize.List(m.Skills)
	m.EventsParticipated = normalize.List(m.EventsParticipated)
	m.ProjectsParticipated = normalize.List(m.ProjectsParticipated)
	if m.Badges == nil {
		m.Badges = []models.Badge{}
	}
}

// ListApproved returns the public directory, sorted by name.
func (s *Store) ListApproved(ctx context.Context) ([]models.Member, error) {
	return cache.Remember(s.cache, cachePrefix+"approved", directoryTTL, func() ([]models.Member, error) {
		return docstore.FindAll[models.Member](ctx, s.c, docstore.ListOptions{
			Filter: bson.M{"approved": true},
			Sort:   "name_ci",
		})
	})
}

// ListAll returns every member for the admin console. pendingOnly limits
// the result to submissions awaiting approval, newest first.
func (s *Store) ListAll(ctx context.Context, pendingOnly bool) ([]models.Member, error) {
	if pendingOnly {
		return docstore.FindAll[models.Member](ctx, s.c, docstore.ListOptions{
			Filter: bson.M{"approved": false, "submitted_for_approval": true},
			Sort:   "created_at",
			Desc:   true,
		})
	}
	return docstore.FindAll[models.Member](ctx, s.c, docstore.ListOptions{Sort: "name_ci"})
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Member, error) {
	return docstore.FindByID[models.Member](ctx, s.c, id)
}

// Submit stores a public self-submission. It is hidden from the directory
// until approved, whatever approval fields the caller sent.
func (s *Store) Submit(ctx context.Context, m models.Member) (models.Member, error) {
	m.Approved = false
	m.SubmittedForApproval = true
	m.ApprovedBy = ""
	m.ApprovedAt = nil
	m.Badges = nil
	return s.insert(ctx, m)
}

// Create stores a member added by an admin; it is approved immediately.
func (s *Store) Create(ctx context.Context, m models.Member, actor string) (models.Member, error) {
	now := time.Now().UTC()
	m.Approved = true
	m.SubmittedForApproval = false
	m.ApprovedBy = actor
	m.ApprovedAt = &now
	return s.insert(ctx, m)
}

func (s *Store) insert(ctx context.Context, m models.Member) (models.Member, error) {
	prepare(&m)
	if err := validate(m); err != nil {
		return models.Member{}, err
	}
	m.ID = primitive.NewObjectID()
	m.CreatedAt = time.Now().UTC()
	m.UpdatedAt = nil
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Member{}, fmt.Errorf("insert member: %w", err)
	}
	s.invalidate()
	return m, nil
}

// Update applies p.
func (s *Store) Update(ctx context.Context, id string, p Patch) error {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	set := bson.M{}
	str := func(field string, v *string, dst *string) {
		if v != nil {
			*dst = *v
			set[field] = *v
		}
	}
	list := func(field string, v *[]string) {
		if v != nil {
			set[field] = normalize.List(*v)
		}
	}

	if p.Name != nil {
		cur.Name = normalize.Name(*p.Name)
		set["name"] = cur.Name
		set["name_ci"] = text.Fold(cur.Name)
	}
	if p.Email != nil {
		cur.Email = normalize.Email(*p.Email)
		set["email"] = cur.Email
	}
	str("branch", p.Branch, &cur.Branch)
	str("year", p.Year, &cur.Year)
	str("division", p.Division, &cur.Division)
	str("roll_number", p.RollNumber, &cur.RollNumber)
	str("registration_number", p.RegistrationNumber, &cur.RegistrationNumber)
	str("team", p.Team, &cur.Team)
	str("position", p.Position, &cur.Position)
	str("phone", p.Phone, &cur.Phone)
	str("linkedin", p.LinkedIn, &cur.LinkedIn)
	str("github", p.GitHub, &cur.GitHub)
	str("photo_url", p.PhotoURL, &cur.PhotoURL)
	list("skills", p.Skills)
	list("events_participated", p.EventsParticipated)
	list("projects_participated", p.ProjectsParticipated)

	if err := validate(cur); err != nil {
		return err
	}
	set["updated_at"] = time.Now().UTC()
	if err := docstore.UpdateByID(ctx, s.c, id, bson.M{"$set": set}); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// Approve publishes a member in the directory and records who approved it.
func (s *Store) Approve(ctx context.Context, id, approver string) error {
	now := time.Now().UTC()
	err := docstore.UpdateByID(ctx, s.c, id, bson.M{"$set": bson.M{
		"approved":               true,
		"submitted_for_approval": false,
		"approved_by":            approver,
		"approved_at":            now,
		"updated_at":             now,
	}})
	if err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// AwardBadge appends b to the member's badges.
func (s *Store) AwardBadge(ctx context.Context, id string, b models.Badge, awardedBy string) (models.Badge, error) {
	b.Name = normalize.Name(b.Name)
	if err := inputval.Required("name", b.Name); err != nil {
		return models.Badge{}, err
	}
	now := time.Now().UTC()
	b.AwardedAt = now
	b.AwardedBy = awardedBy

	err := docstore.UpdateByID(ctx, s.c, id, bson.M{
		"$push": bson.M{"badges": b},
		"$set":  bson.M{"updated_at": now},
	})
	if err != nil {
		return models.Badge{}, err
	}
	s.invalidate()
	return b, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := docstore.DeleteByID(ctx, s.c, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *Store) invalidate() {
	if s.cache != nil {
		s.cache.DeletePrefix(cachePrefix)
	}
}
