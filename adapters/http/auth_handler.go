package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/techfolio/backend/internal/application/usecase/auth"
	"github.com/techfolio/backend/pkg/apperror"
)

type AuthHandler struct {
	signupUseCase *authUC.SignupUseCase
	loginUseCase  *authUC.LoginUseCase
	resetUseCase  *authUC.ResetPasswordUseCase
}

func NewAuthHandler(
	signupUC *authUC.SignupUseCase,
	loginUC *authUC.LoginUseCase,
	resetUC *authUC.ResetPasswordUseCase,
) *AuthHandler {
	return &AuthHandler{
		signupUseCase: signupUC,
		loginUseCase:  loginUC,
		resetUseCase:  resetUC,
	}
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill out all fields."})
		return
	}

	input := authUC.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	output, err := h.signupUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"account_id":   output.AccountID.String(),
		"access_token": output.AccessToken,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter both email and password."})
		return
	}

	input := authUC.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}
	output, err := h.loginUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.JSON(apperror.ToHTTPStatus(err), gin.H{"error": friendlyAuthMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": output.AccessToken,
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter your email."})
		return
	}

	if err := h.resetUseCase.Request(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If an account exists for this email, a reset link has been sent.",
	})
}

type resetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token and new password are required."})
		return
	}

	if err := h.resetUseCase.Confirm(c.Request.Context(), req.Token, req.Password); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset."})
}

// friendlyAuthMessage surfaces the mapped message for known failure
// modes and a generic one for everything else.
func friendlyAuthMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if errors.Is(err, apperror.ErrUnauthorized) || errors.Is(err, apperror.ErrInvalidInput) {
			return appErr.Message
		}
	}
	return authUC.MsgUnknown
}
