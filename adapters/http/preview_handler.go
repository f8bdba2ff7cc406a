package http

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	portfolioUC "github.com/techfolio/backend/internal/application/usecase/portfolio"
	"github.com/techfolio/backend/internal/domain/portfolio"
	"github.com/techfolio/backend/pkg/apperror"
)

type PreviewHandler struct {
	previewUseCase *portfolioUC.PreviewUseCase
}

func NewPreviewHandler(uc *portfolioUC.PreviewUseCase) *PreviewHandler {
	return &PreviewHandler{previewUseCase: uc}
}

// GetPreview serves the public read path. No authentication is
// required; a bearer token, when present, only drives the owner check
// and the contact email preference.
func (h *PreviewHandler) GetPreview(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewNotFound("portfolio", c.Param("id")))
		return
	}

	input := portfolioUC.PreviewInput{AccountID: accountID}
	if viewerID, ok := GetOwnerIDFromGinContext(c); ok {
		input.ViewerID = viewerID
		input.ViewerEmail = GetOwnerEmailFromGinContext(c)
	}

	output, err := h.previewUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, PreviewDTO{
		Portfolio:       ToPortfolioDTO(output.Portfolio),
		ShareURL:        output.ShareURL,
		ContactEmail:    output.ContactEmail,
		CanEdit:         output.CanEdit,
		TitleRotationMS: output.TitleInterval,
	})
}

// StreamTitles cycles the record's role taglines over SSE. With fewer
// than two titles a single static event is sent and the stream ends.
// The ticker is released when the client goes away.
func (h *PreviewHandler) StreamTitles(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewNotFound("portfolio", c.Param("id")))
		return
	}

	output, err := h.previewUseCase.Execute(c.Request.Context(), portfolioUC.PreviewInput{AccountID: accountID})
	if err != nil {
		c.Error(err)
		return
	}

	cycler := portfolio.NewTitleCycler(output.Portfolio.Titles)

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.SSEvent("title", gin.H{"index": cycler.Index(), "title": cycler.Current()})
	c.Writer.Flush()

	if cycler.Static() {
		return
	}

	ticker := time.NewTicker(portfolio.DefaultTitleInterval)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-ticker.C:
			title := cycler.Advance()
			c.SSEvent("title", gin.H{"index": cycler.Index(), "title": title})
			return true
		}
	})
}
