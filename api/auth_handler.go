package api

import (
	"vulnguard/service"
	"vulnguard/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		userService: service.NewUserService(),
	}
}

// Login authenticates a user and returns a JWT
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request parameters: "+err.Error())
		return
	}

	token, user, err := h.userService.Login(req.Username, req.Password)
	if err != nil {
		utils.Unauthorized(c, err.Error())
		return
	}

	utils.Success(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID.Hex(),
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// RefreshToken extends a session from a still-valid token
// POST /api/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request parameters")
		return
	}

	newToken, err := utils.RefreshToken(req.Token)
	if err != nil {
		utils.Error(c, utils.ErrCodeTokenInvalid, "Failed to refresh token")
		return
	}

	utils.Success(c, gin.H{"token": newToken})
}

// GetProfile returns the authenticated user's profile
// GET /api/auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, _ := c.Get("user_id")

	user, err := h.userService.GetUserByID(userID.(string))
	if err != nil {
		utils.NotFound(c, err.Error())
		return
	}

	utils.Success(c, gin.H{
		"id":         user.ID.Hex(),
		"username":   user.Username,
		"email":      user.Email,
		"role":       user.Role,
		"last_login": user.LastLogin,
		"created_at": user.CreatedAt,
	})
}

// ChangePassword changes the authenticated user's password
// PUT /api/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8,max=64"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request parameters: "+err.Error())
		return
	}

	if err := h.userService.ChangePassword(userID.(string), req.OldPassword, req.NewPassword); err != nil {
		utils.Error(c, utils.ErrCodeInvalidParams, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "Password changed", nil)
}
