package portfolio

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/techfolio/backend/adapters/event"
	"github.com/techfolio/backend/internal/domain/portfolio"
	"github.com/techfolio/backend/pkg/logger"
)

type PublishPortfolioUseCase struct {
	save    *SavePortfolioUseCase
	events  EventPublisher
	logger  logger.Logger
	baseURL string
}

func NewPublishPortfolioUseCase(save *SavePortfolioUseCase, events EventPublisher, log logger.Logger, baseURL string) *PublishPortfolioUseCase {
	return &PublishPortfolioUseCase{
		save:    save,
		events:  events,
		logger:  log,
		baseURL: baseURL,
	}
}

type PublishOutput struct {
	PreviewURL string
}

// Execute is Save followed by surfacing the public preview URL; no
// extra validation happens on publish.
func (uc *PublishPortfolioUseCase) Execute(ctx context.Context, ownerID uuid.UUID, patch portfolio.Patch) (*PublishOutput, error) {
	if err := uc.save.Execute(ctx, ownerID, patch); err != nil {
		return nil, err
	}

	if uc.events != nil {
		go func() {
			payload := event.PortfolioEventPayload{
				EventType: event.PortfolioEventTypePublished,
				OwnerID:   ownerID,
			}
			if err := uc.events.PublishPortfolioEvent(context.Background(), payload); err != nil {
				uc.logger.Error("Failed to publish 'portfolio.published' event", err, zap.String("owner_id", ownerID.String()))
			}
		}()
	}

	return &PublishOutput{
		PreviewURL: fmt.Sprintf("%s/preview/%s", uc.baseURL, ownerID.String()),
	}, nil
}
