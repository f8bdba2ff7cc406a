package portfolio

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/techfolio/backend/internal/domain/portfolio"
	"github.com/techfolio/backend/pkg/apperror"
)

type GetPortfolioUseCase struct {
	portfolioRepo portfolio.Repository
}

func NewGetPortfolioUseCase(repo portfolio.Repository) *GetPortfolioUseCase {
	return &GetPortfolioUseCase{portfolioRepo: repo}
}

// Execute loads the owner's record for editing. An absent record is not
// an error here: the editor starts from defaults, exactly like the
// dashboard load path.
func (uc *GetPortfolioUseCase) Execute(ctx context.Context, ownerID uuid.UUID) (*portfolio.Portfolio, error) {
	p, err := uc.portfolioRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return portfolio.New(ownerID, "", ""), nil
		}
		return nil, err
	}
	return p, nil
}
