package auth

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/techfolio/backend/internal/domain/user"
	"github.com/techfolio/backend/pkg/apperror"
	"github.com/techfolio/backend/pkg/auth"
	"github.com/techfolio/backend/pkg/logger"
)

// Friendly messages for the known authentication failure modes. Anything
// else falls back to MsgUnknown.
const (
	MsgInvalidEmail      = "The email address is not valid."
	MsgUserDisabled      = "This user account has been disabled."
	MsgUserNotFound      = "No user found with this email."
	MsgWrongPassword     = "Incorrect password. Please try again."
	MsgInvalidCredential = "Invalid credentials provided."
	MsgUnknown           = "An unknown error occurred. Please try again."
)

type LoginUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewLoginUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string
}

var tracer = otel.Tracer("auth_usecase")

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {

	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	email := strings.TrimSpace(strings.ToLower(input.Email))
	if !strings.Contains(email, "@") {
		err := apperror.NewAppError(apperror.ErrInvalidInput, MsgInvalidEmail, "email failed format check", nil)
		span.RecordError(err)
		return nil, err
	}

	u, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			err = apperror.NewUnauthorized(MsgUserNotFound, "no account for email")
		}
		span.RecordError(err)
		return nil, err
	}

	if u.Disabled {
		err := apperror.NewUnauthorized(MsgUserDisabled, "account disabled")
		span.RecordError(err)
		return nil, err
	}

	if !auth.CheckPasswordHash(input.Password, u.PasswordHash) {
		err := apperror.NewUnauthorized(MsgWrongPassword, "incorrect password")
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID, u.Email)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	return &LoginOutput{AccessToken: token}, nil
}
