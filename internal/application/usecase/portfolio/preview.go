package portfolio

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/techfolio/backend/adapters/persistence"
	"github.com/techfolio/backend/internal/domain/portfolio"
	"github.com/techfolio/backend/pkg/logger"
)

// PlaceholderEmail is the last resort of the preview contact block.
const PlaceholderEmail = "you@example.com"

type PreviewUseCase struct {
	portfolioRepo portfolio.Repository
	cache         persistence.PreviewCache
	logger        logger.Logger
	baseURL       string
}

func NewPreviewUseCase(repo portfolio.Repository, cache persistence.PreviewCache, log logger.Logger, baseURL string) *PreviewUseCase {
	return &PreviewUseCase{
		portfolioRepo: repo,
		cache:         cache,
		logger:        log,
		baseURL:       baseURL,
	}
}

type PreviewInput struct {
	AccountID uuid.UUID
	// Viewer identity, zero-valued for anonymous visitors.
	ViewerID    uuid.UUID
	ViewerEmail string
}

type PreviewOutput struct {
	Portfolio     *portfolio.Portfolio
	ShareURL      string
	ContactEmail  string
	CanEdit       bool
	TitleInterval int // milliseconds
}

// Execute serves the public read path: anyone holding the account
// identifier can view. An absent record surfaces as not-found, never a
// blank page. The edit affordance is owner-gated.
func (uc *PreviewUseCase) Execute(ctx context.Context, input PreviewInput) (*PreviewOutput, error) {
	p, ok := uc.cache.Get(ctx, input.AccountID)
	if !ok {
		var err error
		p, err = uc.portfolioRepo.GetByOwnerID(ctx, input.AccountID)
		if err != nil {
			return nil, err
		}
		if err := uc.cache.Set(ctx, p); err != nil {
			uc.logger.Warn("Failed to warm preview cache", zap.String("account_id", input.AccountID.String()), zap.Error(err))
		}
	}

	// Contact preference: the signed-in viewer's own email, then the
	// record's stored email, then the placeholder.
	contact := input.ViewerEmail
	if contact == "" {
		contact = p.Email
	}
	if contact == "" {
		contact = PlaceholderEmail
	}

	return &PreviewOutput{
		Portfolio:     p,
		ShareURL:      fmt.Sprintf("%s/preview/%s", uc.baseURL, input.AccountID.String()),
		ContactEmail:  contact,
		CanEdit:       input.ViewerID == input.AccountID,
		TitleInterval: int(portfolio.DefaultTitleInterval.Milliseconds()),
	}, nil
}
