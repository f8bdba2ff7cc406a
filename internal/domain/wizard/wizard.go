package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/techfolio/backend/internal/domain/portfolio"
)

// The four ordered wizard steps.
const (
	StepProfileInfo = 1
	StepAboutSkills = 2
	StepProjects    = 3
	StepPublish     = 4

	StepMin = StepProfileInfo
	StepMax = StepPublish
)

var (
	ErrInvalidStep  = errors.New("step out of range")
	ErrIndexRange   = errors.New("index out of range")
	ErrEmptyProject = errors.New("project needs at least a title")
)

// Session is the edit wizard's state: the current step plus the draft
// record being mutated. It stays interactive until the owner navigates
// away; there is no terminal step.
type Session struct {
	OwnerID    uuid.UUID            `json:"owner_id"`
	Step       int                  `json:"step"`
	Draft      *portfolio.Portfolio `json:"draft"`
	TitleInput string               `json:"title_input"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// NewSession starts a session at step 1 over the given record. The
// title input is seeded from the stored titles so the comma-separated
// field round-trips.
func NewSession(ownerID uuid.UUID, p *portfolio.Portfolio) *Session {
	if p == nil {
		p = portfolio.New(ownerID, "", "")
	}
	p.Normalize()
	return &Session{
		OwnerID:    ownerID,
		Step:       StepMin,
		Draft:      p,
		TitleInput: strings.Join(p.Titles, ", "),
		UpdatedAt:  time.Now().UTC(),
	}
}

// Next advances one step, clamped at the last step.
func (s *Session) Next() {
	if s.Step < StepMax {
		s.Step++
	}
}

// Back retreats one step, clamped at the first step.
func (s *Session) Back() {
	if s.Step > StepMin {
		s.Step--
	}
}

// Jump moves directly to a step via the step indicator.
func (s *Session) Jump(step int) error {
	if step < StepMin || step > StepMax {
		return fmt.Errorf("%w: %d", ErrInvalidStep, step)
	}
	s.Step = step
	return nil
}

// AddSkill appends a trimmed skill. Blank or whitespace-only input is a
// no-op and reports false.
func (s *Session) AddSkill(skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return false
	}
	s.Draft.Skills = append(s.Draft.Skills, skill)
	return true
}

// RemoveSkill deletes the skill at index; later entries shift down.
func (s *Session) RemoveSkill(index int) error {
	if index < 0 || index >= len(s.Draft.Skills) {
		return fmt.Errorf("%w: skill %d", ErrIndexRange, index)
	}
	s.Draft.Skills = append(s.Draft.Skills[:index], s.Draft.Skills[index+1:]...)
	return nil
}

// AddProject appends a candidate project. It is accepted when any field
// is non-blank; a trimmed non-blank title always suffices.
func (s *Session) AddProject(p portfolio.Project) error {
	if strings.TrimSpace(p.Title) == "" &&
		strings.TrimSpace(p.Description) == "" &&
		strings.TrimSpace(p.Link) == "" {
		return ErrEmptyProject
	}
	s.Draft.Projects = append(s.Draft.Projects, p)
	return nil
}

// RemoveProject deletes the project at index with the same shifting
// semantics as RemoveSkill.
func (s *Session) RemoveProject(index int) error {
	if index < 0 || index >= len(s.Draft.Projects) {
		return fmt.Errorf("%w: project %d", ErrIndexRange, index)
	}
	s.Draft.Projects = append(s.Draft.Projects[:index], s.Draft.Projects[index+1:]...)
	return nil
}

// Snapshot derives the titles from the comma-separated input and
// returns the draft's state as a merge-write, the payload Save stores.
func (s *Session) Snapshot() portfolio.Patch {
	titles := portfolio.SplitTitles(s.TitleInput)
	s.Draft.Titles = titles
	return s.Draft.FullPatch()
}

// Store persists sessions between requests, keyed by owner.
type Store interface {
	Get(ctx context.Context, ownerID uuid.UUID) (*Session, error)
	Put(ctx context.Context, session *Session) error
	Delete(ctx context.Context, ownerID uuid.UUID) error
}
