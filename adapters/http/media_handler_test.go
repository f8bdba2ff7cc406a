package http

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	mediaUC "github.com/techfolio/backend/internal/application/usecase/media"
	portfolioUC "github.com/techfolio/backend/internal/application/usecase/portfolio"
	wizardUC "github.com/techfolio/backend/internal/application/usecase/wizard"
	"github.com/techfolio/backend/internal/domain/media"
	"github.com/techfolio/backend/pkg/imageproc"
	"github.com/techfolio/backend/pkg/logger"
)

type fakeMediaRepo struct {
	mu   sync.Mutex
	rows []*media.Media
}

func (r *fakeMediaRepo) Save(_ context.Context, m *media.Media) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *m
	r.rows = append(r.rows, &clone)
	return nil
}

func (r *fakeMediaRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*media.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*media.Media
	for _, m := range r.rows {
		if m.OwnerID == ownerID {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeMediaRepo) Delete(_ context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.rows {
		if m.ID == id && m.OwnerID == ownerID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeUploader struct {
	mu      sync.Mutex
	uploads []string
}

func (u *fakeUploader) Upload(_ context.Context, _ io.Reader, folder, publicID string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.uploads = append(u.uploads, folder+"/"+publicID)
	return "https://media.example.com/" + folder + "/" + publicID + ".jpg", nil
}

func (u *fakeUploader) Delete(_ context.Context, _ string) error {
	return nil
}

type MediaHandlerTestSuite struct {
	suite.Suite
	Router    *gin.Engine
	repo      *fakePortfolioRepo
	store     *fakeSessionStore
	mediaRepo *fakeMediaRepo
	uploader  *fakeUploader
	ownerID   uuid.UUID
}

func (s *MediaHandlerTestSuite) SetupTest() {
	s.repo = newFakePortfolioRepo()
	s.store = newFakeSessionStore()
	s.mediaRepo = &fakeMediaRepo{}
	s.uploader = &fakeUploader{}
	s.ownerID = uuid.New()

	appLogger := logger.NewNopLogger()
	getUC := portfolioUC.NewGetPortfolioUseCase(s.repo)
	saveUC := portfolioUC.NewSavePortfolioUseCase(s.repo, newFakePreviewCache(), nil, appLogger)
	sessionUC := wizardUC.NewSessionUseCase(s.store, getUC, saveUC, appLogger)
	profilePictureUC := mediaUC.NewSetProfilePictureUseCase(imageproc.NewCompressor(), sessionUC, saveUC, appLogger)
	projectImageUC := mediaUC.NewUploadProjectImageUseCase(s.mediaRepo, s.uploader, appLogger)

	mediaHandler := NewMediaHandler(profilePictureUC, projectImageUC)
	wizardHandler := NewWizardHandler(sessionUC, nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorMiddleware(appLogger))
	router.Use(func(c *gin.Context) {
		c.Set(GinContextKeyOwnerID, s.ownerID)
		c.Next()
	})

	dashboard := router.Group("/api/dashboard")
	{
		dashboard.POST("/profile-picture", mediaHandler.SetProfilePicture)
		dashboard.POST("/media", mediaHandler.UploadProjectImage)
		dashboard.GET("/wizard", wizardHandler.Load)
	}

	s.Router = router
}

func TestMediaHandler(t *testing.T) {
	suite.Run(t, new(MediaHandlerTestSuite))
}

func (s *MediaHandlerTestSuite) upload(path string, payload []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "upload.png")
	s.NoError(err)
	_, err = part.Write(payload)
	s.NoError(err)
	s.NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func testPNG(s *MediaHandlerTestSuite) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 600, 400))
	for y := 0; y < 400; y++ {
		for x := 0; x < 600; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	s.NoError(png.Encode(&buf, img))
	return buf.Bytes()
}

func (s *MediaHandlerTestSuite) Test_SetProfilePicture_StagesDataURIOnDraft() {
	rr := s.upload("/api/dashboard/profile-picture", testPNG(s))

	s.Equal(http.StatusOK, rr.Code)

	var resp map[string]string
	s.NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.True(strings.HasPrefix(resp["profile_picture"], "data:image/jpeg;base64,"))

	// Staged on the wizard draft, not yet stored.
	session, err := s.store.Get(nil, s.ownerID)
	s.NoError(err)
	s.Equal(resp["profile_picture"], session.Draft.ProfilePicture)
	_, err = s.repo.GetByOwnerID(nil, s.ownerID)
	s.Error(err)
}

func (s *MediaHandlerTestSuite) Test_SetProfilePicture_DirectStoresImmediately() {
	rr := s.upload("/api/dashboard/profile-picture?direct=1", testPNG(s))

	s.Equal(http.StatusOK, rr.Code)

	stored, err := s.repo.GetByOwnerID(nil, s.ownerID)
	s.NoError(err)
	s.True(strings.HasPrefix(stored.ProfilePicture, "data:image/jpeg;base64,"))
}

func (s *MediaHandlerTestSuite) Test_SetProfilePicture_MalformedImageRejected() {
	rr := s.upload("/api/dashboard/profile-picture", []byte("definitely not an image"))
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *MediaHandlerTestSuite) Test_UploadProjectImage_HostsAndRecords() {
	rr := s.upload("/api/dashboard/media", testPNG(s))

	s.Equal(http.StatusCreated, rr.Code)

	var resp map[string]string
	s.NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.NotEmpty(resp["media_id"])
	s.Contains(resp["url"], "https://media.example.com/")

	rows, err := s.mediaRepo.ListByOwner(nil, s.ownerID)
	s.NoError(err)
	s.Len(rows, 1)
	s.Equal(resp["url"], rows[0].URL)
}

func (s *MediaHandlerTestSuite) Test_UploadProjectImage_MalformedImageRejected() {
	rr := s.upload("/api/dashboard/media", []byte{0x00, 0x01, 0x02})
	s.Equal(http.StatusBadRequest, rr.Code)
}
