package wizard

import (
	"context"
	"errors"

	"github.com/google/uuid"

	portfolioUC "github.com/techfolio/backend/internal/application/usecase/portfolio"
	"github.com/techfolio/backend/internal/domain/portfolio"
	"github.com/techfolio/backend/internal/domain/wizard"
	"github.com/techfolio/backend/pkg/apperror"
	"github.com/techfolio/backend/pkg/logger"
)

// SessionUseCase orchestrates the four-step edit wizard: it keeps the
// per-owner draft session alive between requests and funnels every
// mutation through the domain state machine. The flat editor shares the
// same save path; there is exactly one logic copy.
type SessionUseCase struct {
	store  wizard.Store
	get    *portfolioUC.GetPortfolioUseCase
	save   *portfolioUC.SavePortfolioUseCase
	logger logger.Logger
}

func NewSessionUseCase(
	store wizard.Store,
	get *portfolioUC.GetPortfolioUseCase,
	save *portfolioUC.SavePortfolioUseCase,
	log logger.Logger,
) *SessionUseCase {
	return &SessionUseCase{
		store:  store,
		get:    get,
		save:   save,
		logger: log,
	}
}

// Load returns the owner's session, building a fresh one at step 1 from
// the stored record (or defaults) when none exists yet.
func (uc *SessionUseCase) Load(ctx context.Context, ownerID uuid.UUID) (*wizard.Session, error) {
	session, err := uc.store.Get(ctx, ownerID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	record, err := uc.get.Execute(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	session = wizard.NewSession(ownerID, record)
	if err := uc.store.Put(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// mutate loads the session, applies fn, and persists the result.
func (uc *SessionUseCase) mutate(ctx context.Context, ownerID uuid.UUID, fn func(*wizard.Session) error) (*wizard.Session, error) {
	session, err := uc.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := uc.store.Put(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

type StepAction string

const (
	StepActionNext StepAction = "next"
	StepActionBack StepAction = "back"
	StepActionJump StepAction = "jump"
)

func (uc *SessionUseCase) Step(ctx context.Context, ownerID uuid.UUID, action StepAction, target int) (*wizard.Session, error) {
	return uc.mutate(ctx, ownerID, func(s *wizard.Session) error {
		switch action {
		case StepActionNext:
			s.Next()
		case StepActionBack:
			s.Back()
		case StepActionJump:
			if err := s.Jump(target); err != nil {
				return apperror.NewInvalidInput("invalid wizard step", err)
			}
		default:
			return apperror.NewInvalidInput("unknown step action", nil)
		}
		return nil
	})
}

func (uc *SessionUseCase) AddSkill(ctx context.Context, ownerID uuid.UUID, skill string) (*wizard.Session, error) {
	return uc.mutate(ctx, ownerID, func(s *wizard.Session) error {
		// Blank input is a silent no-op, like the dashboard's add button.
		s.AddSkill(skill)
		return nil
	})
}

func (uc *SessionUseCase) RemoveSkill(ctx context.Context, ownerID uuid.UUID, index int) (*wizard.Session, error) {
	return uc.mutate(ctx, ownerID, func(s *wizard.Session) error {
		if err := s.RemoveSkill(index); err != nil {
			return apperror.NewInvalidInput("skill index out of range", err)
		}
		return nil
	})
}

func (uc *SessionUseCase) AddProject(ctx context.Context, ownerID uuid.UUID, p portfolio.Project) (*wizard.Session, error) {
	return uc.mutate(ctx, ownerID, func(s *wizard.Session) error {
		if err := s.AddProject(p); err != nil {
			return apperror.NewInvalidInput("project needs at least one non-empty field", err)
		}
		return nil
	})
}

func (uc *SessionUseCase) RemoveProject(ctx context.Context, ownerID uuid.UUID, index int) (*wizard.Session, error) {
	return uc.mutate(ctx, ownerID, func(s *wizard.Session) error {
		if err := s.RemoveProject(index); err != nil {
			return apperror.NewInvalidInput("project index out of range", err)
		}
		return nil
	})
}

// DraftUpdate carries the staged single-field edits of the wizard's
// form inputs.
type DraftUpdate struct {
	Name           *string
	Bio            *string
	TitleInput     *string
	Email          *string
	LinkedIn       *string
	GitHub         *string
	ProfilePicture *string
}

func (uc *SessionUseCase) UpdateDraft(ctx context.Context, ownerID uuid.UUID, update DraftUpdate) (*wizard.Session, error) {
	return uc.mutate(ctx, ownerID, func(s *wizard.Session) error {
		if update.Name != nil {
			s.Draft.Name = *update.Name
		}
		if update.Bio != nil {
			s.Draft.Bio = *update.Bio
		}
		if update.TitleInput != nil {
			s.TitleInput = *update.TitleInput
		}
		if update.Email != nil {
			s.Draft.Email = *update.Email
		}
		if update.LinkedIn != nil {
			s.Draft.Socials.LinkedIn = *update.LinkedIn
		}
		if update.GitHub != nil {
			s.Draft.Socials.GitHub = *update.GitHub
		}
		if update.ProfilePicture != nil {
			s.Draft.ProfilePicture = *update.ProfilePicture
		}
		return nil
	})
}

// SnapshotPatch derives the titles from the comma-separated input,
// persists the session, and returns the draft's state as a merge-write.
func (uc *SessionUseCase) SnapshotPatch(ctx context.Context, ownerID uuid.UUID) (*wizard.Session, portfolio.Patch, error) {
	session, err := uc.Load(ctx, ownerID)
	if err != nil {
		return nil, portfolio.Patch{}, err
	}

	patch := session.Snapshot()
	if err := uc.store.Put(ctx, session); err != nil {
		return nil, portfolio.Patch{}, err
	}
	return session, patch, nil
}

// Save snapshots the draft and merge-writes it under the owner's key.
func (uc *SessionUseCase) Save(ctx context.Context, ownerID uuid.UUID) (*wizard.Session, error) {
	session, patch, err := uc.SnapshotPatch(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := uc.save.Execute(ctx, ownerID, patch); err != nil {
		return nil, err
	}
	return session, nil
}
