package portfolio

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/techfolio/backend/adapters/event"
	"github.com/techfolio/backend/adapters/persistence"
	"github.com/techfolio/backend/internal/domain/portfolio"
	"github.com/techfolio/backend/pkg/logger"
)

// EventPublisher is the slice of the Kafka producer the save path needs.
type EventPublisher interface {
	PublishPortfolioEvent(ctx context.Context, payload event.PortfolioEventPayload) error
}

type SavePortfolioUseCase struct {
	portfolioRepo portfolio.Repository
	cache         persistence.PreviewCache
	events        EventPublisher
	logger        logger.Logger
}

func NewSavePortfolioUseCase(
	repo portfolio.Repository,
	cache persistence.PreviewCache,
	events EventPublisher,
	log logger.Logger,
) *SavePortfolioUseCase {
	return &SavePortfolioUseCase{
		portfolioRepo: repo,
		cache:         cache,
		events:        events,
		logger:        log,
	}
}

// Execute merge-writes the patch under the owner's key. Fields the
// patch does not carry stay as stored; supplied sequences replace the
// stored ones in full. The preview cache entry is dropped and a saved
// event goes out fire-and-forget.
func (uc *SavePortfolioUseCase) Execute(ctx context.Context, ownerID uuid.UUID, patch portfolio.Patch) error {
	if err := uc.portfolioRepo.Merge(ctx, ownerID, patch); err != nil {
		return err
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, ownerID); err != nil {
			uc.logger.Warn("Failed to invalidate preview cache", zap.String("owner_id", ownerID.String()), zap.Error(err))
		}
	}

	if uc.events != nil {
		go func() {
			payload := event.PortfolioEventPayload{
				EventType: event.PortfolioEventTypeSaved,
				OwnerID:   ownerID,
			}
			if err := uc.events.PublishPortfolioEvent(context.Background(), payload); err != nil {
				uc.logger.Error("Failed to publish 'portfolio.saved' event", err, zap.String("owner_id", ownerID.String()))
			}
		}()
	}

	return nil
}
