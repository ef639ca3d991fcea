package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gripinvest/internal/models"
	"gripinvest/internal/services"
)

type AuthHandler struct {
	users  services.UserService
	resets services.PasswordResetService
}

func NewAuthHandler(users services.UserService, resets services.PasswordResetService) *AuthHandler {
	return &AuthHandler{users: users, resets: resets}
}

// @Summary      Sign up
// @Description  Creates an account and returns a session token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        signup  body      models.SignupRequest  true  "Signup fields"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	_, token, err := h.users.Signup(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// @Summary      Log in
// @Description  Authenticates a user and returns a session token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, token, err := h.users.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	user, err := h.users.GetUserByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type requestResetBody struct {
	Email string `json:"email"`
	Mode  string `json:"mode"`
}

// @Summary      Request password reset
// @Description  Sends an OTP or a reset link to the account email
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      requestResetBody  true  "Email and mode (otp|token)"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Router       /auth/request-reset [post]
func (h *AuthHandler) RequestReset(c *gin.Context) {
	var req requestResetBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.Mode == "" {
		req.Mode = models.ResetKindOTP
	}

	err := h.resets.RequestReset(req.Email, req.Mode)
	if errors.Is(err, services.ErrNotFound) {
		// don't leak account existence: same answer as the success path
		log.Printf("[auth][request-reset] no account for submitted email")
		c.JSON(http.StatusOK, gin.H{"message": "Password reset instructions sent"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset instructions sent"})
}

type confirmResetBody struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// @Summary      Reset password
// @Description  Consumes an OTP or reset token and sets the new password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        reset  body      confirmResetBody  true  "Email, otp or token, new password"
// @Success      200    {object}  map[string]string
// @Failure      400    {object}  map[string]interface{}
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req confirmResetBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var kind, secret string
	switch {
	case req.OTP != "":
		kind, secret = models.ResetKindOTP, req.OTP
	case req.Token != "":
		kind, secret = models.ResetKindToken, req.Token
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "OTP or token required"})
		return
	}

	if err := h.resets.ConfirmReset(req.Email, kind, secret, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}
