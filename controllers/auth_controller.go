package controllers

import (
	"strings"
	"time"

	"github.com/akhil-8601/JobNest/auth"
	"github.com/akhil-8601/JobNest/config"
	"github.com/akhil-8601/JobNest/models"
	"github.com/akhil-8601/JobNest/utils"
	"github.com/gin-gonic/gin"
)

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	DeviceLabel string `json:"deviceLabel"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DeviceLabel string `json:"deviceLabel"`
}

// RefreshRequest represents the refresh request body
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest represents the logout request body
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// tokenPairResponse renders a token pair the way clients expect it: access
// expiry as Unix seconds, refresh expiry as RFC 3339.
func tokenPairResponse(pair *auth.TokenPair) gin.H {
	return gin.H{
		"accessToken":           pair.AccessToken,
		"accessTokenExpiresAt":  pair.AccessExpiresAt,
		"refreshToken":          pair.RefreshToken,
		"refreshTokenExpiresAt": pair.RefreshExpiresAt.Format(time.RFC3339),
	}
}

func clientMeta(c *gin.Context, deviceLabel string) auth.ClientMeta {
	return auth.ClientMeta{
		UserAgent:   c.Request.UserAgent(),
		IPAddress:   c.ClientIP(),
		DeviceLabel: deviceLabel,
	}
}

// RegisterUser handles candidate and HR registration
func RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Registration failed - Invalid request format: %v", err)
		utils.ValidationError(c, "Email and password are required", err.Error())
		return
	}

	req.Email = utils.NormalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		utils.LogError("Registration failed - Missing credentials")
		utils.ValidationError(c, "Email and password are required", nil)
		return
	}
	if valid, msg := utils.ValidateEmail(req.Email); !valid {
		utils.LogError("Registration failed - Invalid email: %s", req.Email)
		utils.ValidationError(c, "Invalid email", msg)
		return
	}
	if valid, msg := utils.ValidatePassword(req.Password); !valid {
		utils.LogError("Registration failed - Weak password for: %s", req.Email)
		utils.ValidationError(c, "Invalid password", msg)
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.LogError("Registration failed - Email already exists: %s", req.Email)
		utils.Conflict(c, "Email already exists", nil)
		return
	}

	roles := models.RoleList{models.RoleCandidate}
	if strings.EqualFold(req.Role, models.RoleHR) {
		roles = models.RoleList{models.RoleHR}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Registration failed - Hashing error: %v", err)
		utils.InternalServerError(c, "Failed to register", nil)
		return
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Roles:        roles,
		Status:       models.UserStatusActive,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Registration failed - DB error: %v", err)
		utils.InternalServerError(c, "Failed to register", nil)
		return
	}

	utils.LogInfo("User registered: %s", user.Email)
	utils.Created(c, "registered", gin.H{"id": user.ID, "email": user.Email})
}

// LoginUser handles API login and issues an access+refresh pair
func LoginUser(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Login failed - Invalid request format: %v", err)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}
	req.Email = utils.NormalizeEmail(req.Email)

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		// same response as a bad password so the probe learns nothing
		utils.LogError("Login failed - User not found: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}
	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		utils.LogError("Login failed - Invalid password for user: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}
	if user.Status == models.UserStatusSuspended {
		utils.LogError("Login failed - Suspended account: %s", req.Email)
		utils.Forbidden(c, "Account is suspended")
		return
	}

	pair, err := sessionSvc.IssuePair(&user, clientMeta(c, req.DeviceLabel))
	if err != nil {
		utils.LogError("Login failed - Token issuance error for %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to login", nil)
		return
	}

	user.LastLoginAt = time.Now()
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Failed to update last login time for user: %s", req.Email)
	}

	utils.LogInfo("User logged in: %s", user.Email)
	utils.Success(c, "Login successful", tokenPairResponse(pair))
}

// RefreshSession rotates a refresh token and returns a new pair
func RefreshSession(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		utils.LogError("Refresh failed - refreshToken missing")
		utils.ValidationError(c, "refreshToken is required", nil)
		return
	}

	pair, user, err := sessionSvc.Refresh(req.RefreshToken, clientMeta(c, ""))
	if err != nil {
		// NotFound, revoked and expired all read the same to the client
		utils.LogError("Refresh failed: %v", err)
		utils.Unauthorized(c, "Invalid refresh token")
		return
	}

	utils.LogInfo("Session refreshed for user: %s", user.Email)
	utils.Success(c, "Token refreshed", tokenPairResponse(pair))
}

// LogoutUser revokes the refresh token and blacklists the current access
// token. Always succeeds from the client's point of view.
func LogoutUser(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogDebug("Logout with unreadable body: %v", err)
	}

	accessToken := ""
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		accessToken = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}

	sessionSvc.Logout(req.RefreshToken, accessToken)

	utils.LogInfo("User logged out")
	utils.Success(c, "logged_out", nil)
}
