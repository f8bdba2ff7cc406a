package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mediaUC "github.com/techfolio/backend/internal/application/usecase/media"
	"github.com/techfolio/backend/pkg/apperror"
)

type MediaHandler struct {
	profilePictureUC *mediaUC.SetProfilePictureUseCase
	projectImageUC   *mediaUC.UploadProjectImageUseCase
}

func NewMediaHandler(
	profilePictureUC *mediaUC.SetProfilePictureUseCase,
	projectImageUC *mediaUC.UploadProjectImageUseCase,
) *MediaHandler {
	return &MediaHandler{
		profilePictureUC: profilePictureUC,
		projectImageUC:   projectImageUC,
	}
}

// SetProfilePicture accepts the selected image file, runs it through
// the compression pipeline, and stages the data URI on the wizard
// draft. `?direct=1` stores it immediately instead (flat editor).
func (h *MediaHandler) SetProfilePicture(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open uploaded file", err))
		return
	}
	defer file.Close()

	input := mediaUC.SetProfilePictureInput{
		OwnerID: ownerID,
		File:    file,
		Direct:  c.Query("direct") == "1",
	}
	output, err := h.profilePictureUC.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile_picture": output.ProfilePicture})
}

// UploadProjectImage hosts a project gallery image and returns the URL
// the editor stores on the project entry.
func (h *MediaHandler) UploadProjectImage(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open uploaded file", err))
		return
	}
	defer file.Close()

	input := mediaUC.UploadProjectImageInput{
		OwnerID: ownerID,
		File:    file,
	}
	output, err := h.projectImageUC.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"media_id": output.MediaID.String(),
		"url":      output.URL,
	})
}
