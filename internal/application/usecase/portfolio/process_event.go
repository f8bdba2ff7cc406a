package portfolio

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/techfolio/backend/adapters/event"
	"github.com/techfolio/backend/adapters/persistence"
	"github.com/techfolio/backend/internal/domain/portfolio"
	"github.com/techfolio/backend/pkg/apperror"
)

// ProcessPortfolioEventUseCase is the worker side of the portfolio event
// stream. A save drops the cached preview; a publish re-reads the record
// and warms the cache so the first public visit is served hot.
type ProcessPortfolioEventUseCase struct {
	repo  portfolio.Repository
	cache persistence.PreviewCache
}

func NewProcessPortfolioEventUseCase(repo portfolio.Repository, cache persistence.PreviewCache) *ProcessPortfolioEventUseCase {
	return &ProcessPortfolioEventUseCase{repo: repo, cache: cache}
}

func (uc *ProcessPortfolioEventUseCase) Execute(ctx context.Context, payload event.PortfolioEventPayload) error {
	log.Printf("Worker UseCase processing event: %s for OwnerID: %s", payload.EventType, payload.OwnerID)

	switch payload.EventType {
	case event.PortfolioEventTypeSaved:
		if err := uc.cache.Invalidate(ctx, payload.OwnerID); err != nil {
			return fmt.Errorf("invalidate preview cache failed: %w", err)
		}
		return nil

	case event.PortfolioEventTypePublished:
		p, err := uc.repo.GetByOwnerID(ctx, payload.OwnerID)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				log.Printf("WARN: Portfolio for owner %s not found, skip.", payload.OwnerID)
				return nil
			}
			return fmt.Errorf("get portfolio failed: %w", err)
		}
		if err := uc.cache.Set(ctx, p); err != nil {
			return fmt.Errorf("warm preview cache failed: %w", err)
		}
		return nil

	default:
		log.Printf("WARN: Unknown event type '%s', skip.", payload.EventType)
		return nil
	}
}
