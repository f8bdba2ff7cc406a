package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portfolioUC "github.com/techfolio/backend/internal/application/usecase/portfolio"
	"github.com/techfolio/backend/pkg/apperror"
)

// PortfolioHandler is the flat single-page editor: the same load and
// merge-write path as the wizard, without the step machinery.
type PortfolioHandler struct {
	getUseCase  *portfolioUC.GetPortfolioUseCase
	saveUseCase *portfolioUC.SavePortfolioUseCase
}

func NewPortfolioHandler(getUC *portfolioUC.GetPortfolioUseCase, saveUC *portfolioUC.SavePortfolioUseCase) *PortfolioHandler {
	return &PortfolioHandler{
		getUseCase:  getUC,
		saveUseCase: saveUC,
	}
}

func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	p, err := h.getUseCase.Execute(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToPortfolioDTO(p))
}

func (h *PortfolioHandler) UpdatePortfolio(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req UpdatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for portfolio update", err))
		return
	}

	if err := h.saveUseCase.Execute(c.Request.Context(), ownerID, req.ToPatch()); err != nil {
		c.Error(err)
		return
	}

	p, err := h.getUseCase.Execute(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToPortfolioDTO(p))
}
