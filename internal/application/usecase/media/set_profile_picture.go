package media

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	portfolioUC "github.com/techfolio/backend/internal/application/usecase/portfolio"
	wizardUC "github.com/techfolio/backend/internal/application/usecase/wizard"
	"github.com/techfolio/backend/internal/domain/portfolio"
	"github.com/techfolio/backend/pkg/apperror"
	"github.com/techfolio/backend/pkg/imageproc"
	"github.com/techfolio/backend/pkg/logger"
)

type SetProfilePictureUseCase struct {
	compressor *imageproc.Compressor
	sessions   *wizardUC.SessionUseCase
	save       *portfolioUC.SavePortfolioUseCase
	logger     logger.Logger
}

func NewSetProfilePictureUseCase(
	compressor *imageproc.Compressor,
	sessions *wizardUC.SessionUseCase,
	save *portfolioUC.SavePortfolioUseCase,
	log logger.Logger,
) *SetProfilePictureUseCase {
	return &SetProfilePictureUseCase{
		compressor: compressor,
		sessions:   sessions,
		save:       save,
		logger:     log,
	}
}

type SetProfilePictureInput struct {
	OwnerID uuid.UUID
	File    io.Reader
	// Direct skips the wizard draft and merge-writes the compressed
	// picture immediately (the flat editor's behavior).
	Direct bool
}

type SetProfilePictureOutput struct {
	ProfilePicture string
}

// Execute runs the compression pipeline: read the upload, downscale to
// the fixed target width, re-encode lossy, and stage the resulting data
// URI on the draft (or store it directly). A file that does not decode
// is rejected with invalid input rather than silently ignored.
func (uc *SetProfilePictureUseCase) Execute(ctx context.Context, input SetProfilePictureInput) (*SetProfilePictureOutput, error) {
	data, err := io.ReadAll(input.File)
	if err != nil {
		return nil, apperror.NewInternal("failed to read uploaded file", err)
	}

	dataURI, err := uc.compressor.Compress(data)
	if err != nil {
		if errors.Is(err, imageproc.ErrInvalidImage) {
			return nil, apperror.NewInvalidInput("uploaded file is not a valid image", err)
		}
		return nil, apperror.NewInternal("failed to compress image", err)
	}

	if input.Direct {
		patch := portfolio.Patch{ProfilePicture: &dataURI}
		if err := uc.save.Execute(ctx, input.OwnerID, patch); err != nil {
			return nil, err
		}
	} else {
		update := wizardUC.DraftUpdate{ProfilePicture: &dataURI}
		if _, err := uc.sessions.UpdateDraft(ctx, input.OwnerID, update); err != nil {
			return nil, err
		}
	}

	return &SetProfilePictureOutput{ProfilePicture: dataURI}, nil
}
