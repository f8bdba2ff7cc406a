package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/techfolio/backend/internal/domain/portfolio"
	"github.com/techfolio/backend/internal/domain/user"
	"github.com/techfolio/backend/pkg/apperror"
	"github.com/techfolio/backend/pkg/auth"
	"github.com/techfolio/backend/pkg/logger"
)

type SignupUseCase struct {
	userRepo      user.Repository
	portfolioRepo portfolio.Repository
	jwtSvc        *auth.JWTService
	logger        logger.Logger
}

func NewSignupUseCase(
	userRepo user.Repository,
	portfolioRepo portfolio.Repository,
	jwtSvc *auth.JWTService,
	log logger.Logger,
) *SignupUseCase {
	return &SignupUseCase{
		userRepo:      userRepo,
		portfolioRepo: portfolioRepo,
		jwtSvc:        jwtSvc,
		logger:        log,
	}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type SignupOutput struct {
	AccountID   uuid.UUID
	AccessToken string
}

// Execute creates the account and its default portfolio record in one
// flow, mirroring the signup page: the record starts with the display
// name and contact email filled in and everything else at defaults.
func (uc *SignupUseCase) Execute(ctx context.Context, input SignupInput) (*SignupOutput, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if name == "" || email == "" || input.Password == "" {
		return nil, apperror.NewInvalidInput("name, email and password are required", nil)
	}
	if !strings.Contains(email, "@") {
		return nil, apperror.NewInvalidInput("the email address is not valid", nil)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	if err := uc.portfolioRepo.Create(ctx, portfolio.New(u.ID, name, email)); err != nil {
		uc.logger.Error("Failed to create default portfolio for new account", err, zap.String("account_id", u.ID.String()))
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID, u.Email)
	if err != nil {
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	return &SignupOutput{AccountID: u.ID, AccessToken: token}, nil
}
