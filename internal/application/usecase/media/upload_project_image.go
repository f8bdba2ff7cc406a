package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/techfolio/backend/internal/application/service"
	"github.com/techfolio/backend/internal/domain/media"
	"github.com/techfolio/backend/pkg/apperror"
	"github.com/techfolio/backend/pkg/imageproc"
	"github.com/techfolio/backend/pkg/logger"
)

type UploadProjectImageUseCase struct {
	mediaRepo media.Repository
	uploader  service.Uploader
	logger    logger.Logger
}

func NewUploadProjectImageUseCase(r media.Repository, u service.Uploader, log logger.Logger) *UploadProjectImageUseCase {
	return &UploadProjectImageUseCase{mediaRepo: r, uploader: u, logger: log}
}

type UploadProjectImageInput struct {
	OwnerID uuid.UUID
	File    io.Reader
}

type UploadProjectImageOutput struct {
	MediaID uuid.UUID
	URL     string
}

// Execute hosts a project gallery image with the media provider and
// records it, returning the URL the editor stores on the project entry.
func (uc *UploadProjectImageUseCase) Execute(ctx context.Context, input UploadProjectImageInput) (*UploadProjectImageOutput, error) {
	data, err := io.ReadAll(input.File)
	if err != nil {
		return nil, apperror.NewInternal("failed to read uploaded file", err)
	}
	if err := validateImage(data); err != nil {
		return nil, apperror.NewInvalidInput("uploaded file is not a valid image", err)
	}

	mediaID := uuid.New()
	folder := fmt.Sprintf("users/%s/projects", input.OwnerID.String())

	url, err := uc.uploader.Upload(ctx, bytes.NewReader(data), folder, mediaID.String())
	if err != nil {
		return nil, apperror.NewInternal("failed to upload project image", err)
	}

	m := &media.Media{
		ID:        mediaID,
		OwnerID:   input.OwnerID,
		Provider:  "cloudinary",
		URL:       url,
		PublicID:  mediaID.String(),
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.mediaRepo.Save(ctx, m); err != nil {
		go func() {
			if delErr := uc.uploader.Delete(context.Background(), m.PublicID); delErr != nil {
				uc.logger.Warn("Failed to clean up orphaned upload", zap.String("public_id", m.PublicID), zap.Error(delErr))
			}
		}()
		return nil, err
	}

	return &UploadProjectImageOutput{MediaID: mediaID, URL: url}, nil
}

func validateImage(data []byte) error {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: %v", imageproc.ErrInvalidImage, err)
	}
	return nil
}
