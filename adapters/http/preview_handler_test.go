package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	portfolioUC "github.com/techfolio/backend/internal/application/usecase/portfolio"
	"github.com/techfolio/backend/internal/domain/portfolio"
	"github.com/techfolio/backend/pkg/auth"
	"github.com/techfolio/backend/pkg/logger"
)

type PreviewHandlerTestSuite struct {
	suite.Suite
	Router  *gin.Engine
	repo    *fakePortfolioRepo
	cache   *fakePreviewCache
	jwtSvc  *auth.JWTService
	ownerID uuid.UUID
}

func (s *PreviewHandlerTestSuite) SetupTest() {
	s.repo = newFakePortfolioRepo()
	s.cache = newFakePreviewCache()
	s.jwtSvc = auth.NewJWTService("preview-test-secret", time.Hour)
	s.ownerID = uuid.New()

	s.NoError(s.repo.Create(nil, &portfolio.Portfolio{
		OwnerID: s.ownerID,
		Name:    "Grace",
		Titles:  []string{"Engineer", "Speaker"},
		Bio:     "I build things.",
	}))

	appLogger := logger.NewNopLogger()
	previewUC := portfolioUC.NewPreviewUseCase(s.repo, s.cache, appLogger, "http://localhost:3000")
	previewHandler := NewPreviewHandler(previewUC)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorMiddleware(appLogger))

	public := router.Group("/api")
	public.Use(OptionalAuthMiddleware(s.jwtSvc))
	{
		public.GET("/preview/:id", previewHandler.GetPreview)
	}

	s.Router = router
}

func TestPreviewHandler(t *testing.T) {
	suite.Run(t, new(PreviewHandlerTestSuite))
}

func (s *PreviewHandlerTestSuite) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func (s *PreviewHandlerTestSuite) Test_Anonymous_ViewerCannotEdit() {
	rr := s.get("/api/preview/"+s.ownerID.String(), "")

	s.Equal(http.StatusOK, rr.Code)

	var dto PreviewDTO
	s.NoError(json.Unmarshal(rr.Body.Bytes(), &dto))
	s.False(dto.CanEdit)
	s.Equal("Grace", dto.Portfolio.Name)
	s.Equal("http://localhost:3000/preview/"+s.ownerID.String(), dto.ShareURL)
	s.Equal(3500, dto.TitleRotationMS)
}

func (s *PreviewHandlerTestSuite) Test_Owner_CanEdit() {
	token, err := s.jwtSvc.GenerateToken(s.ownerID, "grace@example.com")
	s.NoError(err)

	rr := s.get("/api/preview/"+s.ownerID.String(), token)

	s.Equal(http.StatusOK, rr.Code)

	var dto PreviewDTO
	s.NoError(json.Unmarshal(rr.Body.Bytes(), &dto))
	s.True(dto.CanEdit)
	s.Equal("grace@example.com", dto.ContactEmail)
}

func (s *PreviewHandlerTestSuite) Test_OtherSignedInViewer_CannotEdit() {
	token, err := s.jwtSvc.GenerateToken(uuid.New(), "visitor@example.com")
	s.NoError(err)

	rr := s.get("/api/preview/"+s.ownerID.String(), token)

	s.Equal(http.StatusOK, rr.Code)

	var dto PreviewDTO
	s.NoError(json.Unmarshal(rr.Body.Bytes(), &dto))
	s.False(dto.CanEdit)
	s.Equal("visitor@example.com", dto.ContactEmail)
}

func (s *PreviewHandlerTestSuite) Test_ContactEmail_FallsBackToRecordThenPlaceholder() {
	rr := s.get("/api/preview/"+s.ownerID.String(), "")

	var dto PreviewDTO
	s.NoError(json.Unmarshal(rr.Body.Bytes(), &dto))
	// Record has no stored email and the viewer is anonymous.
	s.Equal(portfolioUC.PlaceholderEmail, dto.ContactEmail)

	withEmail := uuid.New()
	s.NoError(s.repo.Create(nil, &portfolio.Portfolio{
		OwnerID: withEmail,
		Email:   "owner@example.com",
	}))

	rr = s.get("/api/preview/"+withEmail.String(), "")
	s.NoError(json.Unmarshal(rr.Body.Bytes(), &dto))
	s.Equal("owner@example.com", dto.ContactEmail)
}

func (s *PreviewHandlerTestSuite) Test_UnknownAccount_Returns404() {
	rr := s.get("/api/preview/"+uuid.NewString(), "")
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *PreviewHandlerTestSuite) Test_MalformedID_Returns404() {
	rr := s.get("/api/preview/not-a-uuid", "")
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *PreviewHandlerTestSuite) Test_SecondRead_ServedFromCache() {
	s.get("/api/preview/"+s.ownerID.String(), "")
	s.get("/api/preview/"+s.ownerID.String(), "")

	s.Equal(1, s.cache.sets)
	s.Equal(1, s.cache.hits)
}
