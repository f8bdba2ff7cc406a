package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portfolioUC "github.com/techfolio/backend/internal/application/usecase/portfolio"
	wizardUC "github.com/techfolio/backend/internal/application/usecase/wizard"
	"github.com/techfolio/backend/internal/domain/portfolio"
	"github.com/techfolio/backend/internal/domain/wizard"
	"github.com/techfolio/backend/pkg/apperror"
)

type WizardHandler struct {
	sessions  *wizardUC.SessionUseCase
	publishUC *portfolioUC.PublishPortfolioUseCase
}

func NewWizardHandler(sessions *wizardUC.SessionUseCase, publishUC *portfolioUC.PublishPortfolioUseCase) *WizardHandler {
	return &WizardHandler{sessions: sessions, publishUC: publishUC}
}

func (h *WizardHandler) respondSession(c *gin.Context, session *wizard.Session, err error) {
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToWizardSessionDTO(session))
}

func (h *WizardHandler) Load(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	session, err := h.sessions.Load(c.Request.Context(), ownerID)
	h.respondSession(c, session, err)
}

func (h *WizardHandler) Step(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid step request", err))
		return
	}

	session, err := h.sessions.Step(c.Request.Context(), ownerID, wizardUC.StepAction(req.Action), req.Step)
	h.respondSession(c, session, err)
}

func (h *WizardHandler) AddSkill(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req AddSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid skill request", err))
		return
	}

	session, err := h.sessions.AddSkill(c.Request.Context(), ownerID, req.Skill)
	h.respondSession(c, session, err)
}

func (h *WizardHandler) RemoveSkill(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("index must be an integer", err))
		return
	}

	session, err := h.sessions.RemoveSkill(c.Request.Context(), ownerID, index)
	h.respondSession(c, session, err)
}

func (h *WizardHandler) AddProject(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req AddProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid project request", err))
		return
	}

	project := portfolio.Project{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
		Image:       req.Image,
	}
	session, err := h.sessions.AddProject(c.Request.Context(), ownerID, project)
	h.respondSession(c, session, err)
}

func (h *WizardHandler) RemoveProject(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("index must be an integer", err))
		return
	}

	session, err := h.sessions.RemoveProject(c.Request.Context(), ownerID, index)
	h.respondSession(c, session, err)
}

func (h *WizardHandler) UpdateDraft(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid draft update", err))
		return
	}

	update := wizardUC.DraftUpdate{
		Name:       req.Name,
		Bio:        req.Bio,
		TitleInput: req.TitleInput,
		Email:      req.Email,
		LinkedIn:   req.LinkedIn,
		GitHub:     req.GitHub,
	}
	session, err := h.sessions.UpdateDraft(c.Request.Context(), ownerID, update)
	h.respondSession(c, session, err)
}

func (h *WizardHandler) Save(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	session, err := h.sessions.Save(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Saved successfully!",
		"session": ToWizardSessionDTO(session),
	})
}

// Publish is Save plus surfacing the public preview URL; there is no
// extra validation on top of Save's.
func (h *WizardHandler) Publish(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	_, patch, err := h.sessions.SnapshotPatch(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}

	output, err := h.publishUC.Execute(c.Request.Context(), ownerID, patch)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Portfolio published!",
		"preview_url": output.PreviewURL,
	})
}
