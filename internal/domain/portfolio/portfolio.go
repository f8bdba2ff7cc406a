package portfolio

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Portfolio is the single per-account record behind both the edit
// wizard and the public preview page. Its key is the owning account's
// identifier; no two accounts share a record.
type Portfolio struct {
	OwnerID        uuid.UUID `json:"owner_id"`
	Name           string    `json:"name"`
	Titles         []string  `json:"titles"`
	Bio            string    `json:"bio"`
	Skills         []string  `json:"skills"`
	Projects       []Project `json:"projects"`
	Socials        Socials   `json:"socials"`
	ProfilePicture string    `json:"profile_picture"`
	Email          string    `json:"email"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Project struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Image       string `json:"image,omitempty"`
}

type Socials struct {
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

// New returns a portfolio with every field at its zero value, the shape
// created at signup.
func New(ownerID uuid.UUID, name, email string) *Portfolio {
	p := &Portfolio{OwnerID: ownerID, Name: name, Email: email}
	p.Normalize()
	return p
}

// Normalize fills absent sequences with empty ones so every consumer
// sees a fully-populated record. Applied on every repository read.
func (p *Portfolio) Normalize() {
	if p.Titles == nil {
		p.Titles = []string{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
}

// Patch carries a merge-write: nil fields are left untouched, non-nil
// fields replace the stored value. Sequences are always whole-copy
// replacements because the editor holds the full authoritative copy.
type Patch struct {
	Name           *string    `json:"name,omitempty"`
	Titles         *[]string  `json:"titles,omitempty"`
	Bio            *string    `json:"bio,omitempty"`
	Skills         *[]string  `json:"skills,omitempty"`
	Projects       *[]Project `json:"projects,omitempty"`
	Socials        *Socials   `json:"socials,omitempty"`
	ProfilePicture *string    `json:"profile_picture,omitempty"`
	Email          *string    `json:"email,omitempty"`
}

// Apply merges the patch into p field by field.
func (p *Portfolio) Apply(patch Patch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Titles != nil {
		p.Titles = *patch.Titles
	}
	if patch.Bio != nil {
		p.Bio = *patch.Bio
	}
	if patch.Skills != nil {
		p.Skills = *patch.Skills
	}
	if patch.Projects != nil {
		p.Projects = *patch.Projects
	}
	if patch.Socials != nil {
		p.Socials = *patch.Socials
	}
	if patch.ProfilePicture != nil {
		p.ProfilePicture = *patch.ProfilePicture
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	p.Normalize()
}

// FullPatch expresses the whole record as a merge-write, used when the
// editor saves its complete local state.
func (p *Portfolio) FullPatch() Patch {
	return Patch{
		Name:           &p.Name,
		Titles:         &p.Titles,
		Bio:            &p.Bio,
		Skills:         &p.Skills,
		Projects:       &p.Projects,
		Socials:        &p.Socials,
		ProfilePicture: &p.ProfilePicture,
		Email:          &p.Email,
	}
}

// SplitTitles turns the comma-separated title input into the stored
// sequence: trimmed, blanks dropped, order preserved.
func SplitTitles(input string) []string {
	parts := strings.Split(input, ",")
	titles := make([]string, 0, len(parts))
	for _, part := range parts {
		if t := strings.TrimSpace(part); t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}

type Repository interface {
	// GetByOwnerID returns the normalized record, or apperror not-found
	// when no record exists for the identifier.
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*Portfolio, error)
	// Create inserts a fresh record keyed by its owner.
	Create(ctx context.Context, p *Portfolio) error
	// Merge applies a partial write: only the patch's non-nil fields are
	// stored, sibling fields are left as they were.
	Merge(ctx context.Context, ownerID uuid.UUID, patch Patch) error
	// ListAll streams every record, for out-of-band maintenance scans.
	ListAll(ctx context.Context) ([]*Portfolio, error)
}
