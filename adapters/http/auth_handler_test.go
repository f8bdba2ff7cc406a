package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	authUC "github.com/techfolio/backend/internal/application/usecase/auth"
	"github.com/techfolio/backend/internal/domain/user"
	"github.com/techfolio/backend/pkg/auth"
	"github.com/techfolio/backend/pkg/logger"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	Router    *gin.Engine
	userRepo  *fakeUserRepo
	repo      *fakePortfolioRepo
	tokenRepo *fakeResetTokenRepo
	mailer    *fakeMailer
}

func (s *AuthHandlerTestSuite) SetupTest() {
	s.userRepo = newFakeUserRepo()
	s.repo = newFakePortfolioRepo()
	s.tokenRepo = newFakeResetTokenRepo()
	s.mailer = &fakeMailer{}

	appLogger := logger.NewNopLogger()
	jwtSvc := auth.NewJWTService("auth-test-secret", time.Hour)
	signupUC := authUC.NewSignupUseCase(s.userRepo, s.repo, jwtSvc, appLogger)
	loginUC := authUC.NewLoginUseCase(s.userRepo, jwtSvc, appLogger)
	resetUC := authUC.NewResetPasswordUseCase(s.userRepo, s.tokenRepo, s.mailer, appLogger, "http://localhost:3000", 30*time.Minute)

	authHandler := NewAuthHandler(signupUC, loginUC, resetUC)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorMiddleware(appLogger))

	authRoutes := router.Group("/api/auth")
	{
		authRoutes.POST("/signup", authHandler.Signup)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/forgot-password", authHandler.ForgotPassword)
		authRoutes.POST("/reset-password", authHandler.ResetPassword)
	}

	s.Router = router
}

func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) post(path string, body gin.H) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func (s *AuthHandlerTestSuite) seedUser(email, password string, disabled bool) *user.User {
	hash, err := auth.HashPassword(password)
	s.NoError(err)
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Grace",
		PasswordHash: hash,
		Disabled:     disabled,
	}
	s.NoError(s.userRepo.Create(nil, u))
	return u
}

func (s *AuthHandlerTestSuite) Test_Signup_CreatesAccountAndDefaultPortfolio() {
	rr := s.post("/api/auth/signup", gin.H{
		"name":     "Grace",
		"email":    "grace@example.com",
		"password": "hunter2!",
	})

	s.Equal(http.StatusCreated, rr.Code)

	var resp map[string]string
	s.NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.NotEmpty(resp["access_token"])

	accountID, err := uuid.Parse(resp["account_id"])
	s.NoError(err)

	p, err := s.repo.GetByOwnerID(nil, accountID)
	s.NoError(err)
	s.Equal("Grace", p.Name)
	s.Equal("grace@example.com", p.Email)
}

func (s *AuthHandlerTestSuite) Test_Signup_DuplicateEmailConflicts() {
	s.seedUser("grace@example.com", "hunter2!", false)

	rr := s.post("/api/auth/signup", gin.H{
		"name":     "Grace",
		"email":    "grace@example.com",
		"password": "hunter2!",
	})

	s.Equal(http.StatusConflict, rr.Code)
}

func (s *AuthHandlerTestSuite) Test_Signup_MissingFieldsRejected() {
	rr := s.post("/api/auth/signup", gin.H{"email": "grace@example.com"})
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *AuthHandlerTestSuite) Test_Login_Succeeds() {
	s.seedUser("grace@example.com", "hunter2!", false)

	rr := s.post("/api/auth/login", gin.H{"email": "grace@example.com", "password": "hunter2!"})

	s.Equal(http.StatusOK, rr.Code)

	var resp map[string]string
	s.NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.NotEmpty(resp["access_token"])
}

func (s *AuthHandlerTestSuite) Test_Login_FriendlyFailureMessages() {
	s.seedUser("grace@example.com", "hunter2!", false)
	s.seedUser("gone@example.com", "hunter2!", true)

	cases := []struct {
		name    string
		body    gin.H
		status  int
		message string
	}{
		{"malformed email", gin.H{"email": "not-an-email", "password": "x"}, http.StatusBadRequest, authUC.MsgInvalidEmail},
		{"unknown email", gin.H{"email": "nobody@example.com", "password": "x"}, http.StatusUnauthorized, authUC.MsgUserNotFound},
		{"disabled account", gin.H{"email": "gone@example.com", "password": "hunter2!"}, http.StatusUnauthorized, authUC.MsgUserDisabled},
		{"wrong password", gin.H{"email": "grace@example.com", "password": "wrong"}, http.StatusUnauthorized, authUC.MsgWrongPassword},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			rr := s.post("/api/auth/login", tc.body)
			s.Equal(tc.status, rr.Code)

			var resp map[string]string
			s.NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
			s.Equal(tc.message, resp["error"])
		})
	}
}

func (s *AuthHandlerTestSuite) Test_ForgotPassword_AlwaysSucceedsForUnknownEmail() {
	rr := s.post("/api/auth/forgot-password", gin.H{"email": "nobody@example.com"})

	s.Equal(http.StatusOK, rr.Code)
	s.Empty(s.mailer.sent)
}

func (s *AuthHandlerTestSuite) Test_PasswordReset_FullFlow() {
	s.seedUser("grace@example.com", "old-password", false)

	rr := s.post("/api/auth/forgot-password", gin.H{"email": "grace@example.com"})
	s.Equal(http.StatusOK, rr.Code)
	s.Len(s.mailer.sent, 1)

	link, err := url.Parse(s.mailer.sent[0].ResetLink)
	s.NoError(err)
	s.True(strings.HasPrefix(s.mailer.sent[0].ResetLink, "http://localhost:3000/reset-password?token="))
	token := link.Query().Get("token")
	s.NotEmpty(token)

	rr = s.post("/api/auth/reset-password", gin.H{"token": token, "password": "new-password"})
	s.Equal(http.StatusOK, rr.Code)

	rr = s.post("/api/auth/login", gin.H{"email": "grace@example.com", "password": "new-password"})
	s.Equal(http.StatusOK, rr.Code)

	// The token is single use.
	rr = s.post("/api/auth/reset-password", gin.H{"token": token, "password": "another"})
	s.Equal(http.StatusUnauthorized, rr.Code)
}

func (s *AuthHandlerTestSuite) Test_PasswordReset_UnknownTokenRejected() {
	rr := s.post("/api/auth/reset-password", gin.H{"token": "bogus", "password": "whatever"})
	s.Equal(http.StatusUnauthorized, rr.Code)
}
