package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/stackadvisor-backend/internal/http/response"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
	"github.com/yungbote/stackadvisor-backend/internal/services"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
	return &AuthHandler{log: log.With("handler", "AuthHandler"), authService: authService}
}

// POST /api/register
func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := ah.authService.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.RespondErr(c, ah.log, err)
		return
	}
	body := gin.H{
		"message": "User registered successfully",
		"user":    res.User,
	}
	if res.VerificationToken != "" {
		body["verificationToken"] = res.VerificationToken
	}
	response.RespondOK(c, body)
}

// POST /api/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondErr(c, ah.log, err)
		return
	}
	response.RespondOK(c, gin.H{
		"message":   "Login successful",
		"token":     res.Token,
		"expiresIn": int(ah.authService.GetTokenTTL().Seconds()),
		"user":      res.User,
	})
}

// POST /api/verify-email
func (ah *AuthHandler) VerifyEmail(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	if !bindJSON(c, &req) {
		return
	}
	user, err := ah.authService.VerifyEmail(c.Request.Context(), req.Token)
	if err != nil {
		response.RespondErr(c, ah.log, err)
		return
	}
	response.RespondOK(c, gin.H{
		"message": "Email verified successfully",
		"user":    user,
	})
}
