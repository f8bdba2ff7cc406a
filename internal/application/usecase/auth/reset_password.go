package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/techfolio/backend/internal/application/service"
	"github.com/techfolio/backend/internal/domain/user"
	"github.com/techfolio/backend/pkg/apperror"
	"github.com/techfolio/backend/pkg/auth"
	"github.com/techfolio/backend/pkg/logger"
)

type ResetPasswordUseCase struct {
	userRepo  user.Repository
	tokenRepo user.ResetTokenRepository
	mailer    service.Mailer
	logger    logger.Logger
	baseURL   string
	tokenTTL  time.Duration
}

func NewResetPasswordUseCase(
	userRepo user.Repository,
	tokenRepo user.ResetTokenRepository,
	mailer service.Mailer,
	log logger.Logger,
	baseURL string,
	tokenTTL time.Duration,
) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mailer:    mailer,
		logger:    log,
		baseURL:   baseURL,
		tokenTTL:  tokenTTL,
	}
}

// Request creates a single-use reset token and mails the reset link. An
// unknown email is treated as success so the endpoint does not leak
// which addresses have accounts.
func (uc *ResetPasswordUseCase) Request(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if !strings.Contains(email, "@") {
		return apperror.NewInvalidInput(MsgInvalidEmail, nil)
	}

	// Opportunistic cleanup of stale tokens.
	if err := uc.tokenRepo.DeleteExpired(ctx); err != nil {
		uc.logger.Warn("Failed to purge expired reset tokens", zap.Error(err))
	}

	u, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			uc.logger.Info("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	if err := uc.tokenRepo.DeleteByUserID(ctx, u.ID); err != nil {
		return err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return apperror.NewInternal("failed to generate reset token", err)
	}
	token := hex.EncodeToString(raw)

	now := time.Now().UTC()
	record := &user.ResetToken{
		ID:        uuid.New(),
		UserID:    u.ID,
		TokenHash: hashToken(token),
		ExpiresAt: now.Add(uc.tokenTTL),
		CreatedAt: now,
	}
	if err := uc.tokenRepo.Create(ctx, record); err != nil {
		return err
	}

	mail := service.ResetPasswordEmail{
		To:        u.Email,
		ResetLink: fmt.Sprintf("%s/reset-password?token=%s", uc.baseURL, token),
		ExpiresIn: uc.tokenTTL.String(),
	}
	if err := uc.mailer.SendResetPasswordEmail(ctx, mail); err != nil {
		uc.logger.Error("Failed to send reset email", err, zap.String("user_id", u.ID.String()))
		return apperror.NewInternal("failed to send reset email", err)
	}
	return nil
}

// Confirm consumes a reset token and sets the new password.
func (uc *ResetPasswordUseCase) Confirm(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return apperror.NewInvalidInput("token and new password are required", nil)
	}

	record, err := uc.tokenRepo.FindByTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.NewUnauthorized(MsgInvalidCredential, "unknown reset token")
		}
		return err
	}
	if record.Expired(time.Now().UTC()) {
		return apperror.NewUnauthorized(MsgInvalidCredential, "reset token expired")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperror.NewInternal("failed to hash password", err)
	}
	if err := uc.userRepo.UpdatePassword(ctx, record.UserID, hash); err != nil {
		return err
	}

	// A token is single use.
	if err := uc.tokenRepo.DeleteByUserID(ctx, record.UserID); err != nil {
		uc.logger.Warn("Failed to delete consumed reset tokens", zap.String("user_id", record.UserID.String()), zap.Error(err))
	}
	return nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
