package controllers

import (
	"net/http"
	"time"

	"github.com/akhil-8601/JobNest/config"
	"github.com/akhil-8601/JobNest/middleware"
	"github.com/akhil-8601/JobNest/models"
	"github.com/akhil-8601/JobNest/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	csrfSessionKey     = "csrf_token"
	refreshTokenCookie = "refresh_token"
)

func issueCSRFToken(c *gin.Context) string {
	session := sessions.Default(c)
	token := uuid.NewString()
	session.Set(csrfSessionKey, token)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save CSRF session: %v", err)
	}
	return token
}

func validCSRFToken(c *gin.Context, submitted string) bool {
	session := sessions.Default(c)
	stored, ok := session.Get(csrfSessionKey).(string)
	return ok && stored != "" && stored == submitted
}

// ShowLoginPage renders the login form
func ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"csrf_token": issueCSRFToken(c),
	})
}

// WebLogin handles the browser login form: on success it stores the token
// pair in cookies and redirects to the dashboard.
func WebLogin(c *gin.Context) {
	submitted := c.PostForm("_csrf_token")
	if !validCSRFToken(c, submitted) {
		utils.LogError("Web login failed - Invalid CSRF token")
		c.HTML(http.StatusUnprocessableEntity, "login.html", gin.H{
			"csrf_token": issueCSRFToken(c),
			"error":      "Invalid CSRF token.",
		})
		return
	}

	email := utils.NormalizeEmail(c.PostForm("email"))
	password := c.PostForm("password")

	var user models.User
	err := config.DB.Where("email = ?", email).First(&user).Error
	if err != nil || !utils.CheckPassword(password, user.PasswordHash) {
		utils.LogError("Web login failed - Invalid credentials for: %s", email)
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"csrf_token": issueCSRFToken(c),
			"error":      "Invalid email or password.",
		})
		return
	}
	if user.Status == models.UserStatusSuspended {
		utils.LogError("Web login failed - Suspended account: %s", email)
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"csrf_token": issueCSRFToken(c),
			"error":      "Account is suspended.",
		})
		return
	}

	pair, err := sessionSvc.IssuePair(&user, clientMeta(c, ""))
	if err != nil {
		utils.LogError("Web login failed - Token issuance error for %s: %v", email, err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"csrf_token": issueCSRFToken(c),
			"error":      "Something went wrong, please try again.",
		})
		return
	}

	user.LastLoginAt = time.Now()
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Failed to update last login time for user: %s", email)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	accessMaxAge := int(time.Until(time.Unix(pair.AccessExpiresAt, 0)).Seconds())
	refreshMaxAge := int(time.Until(pair.RefreshExpiresAt).Seconds())
	c.SetCookie(middleware.AccessTokenCookie, pair.AccessToken, accessMaxAge, "/", "", false, true)
	c.SetCookie(refreshTokenCookie, pair.RefreshToken, refreshMaxAge, "/", "", false, true)

	utils.LogInfo("Web login: %s", user.Email)
	c.Redirect(http.StatusFound, "/dashboard")
}

// WebLogout revokes the session tokens, clears the cookies and sends the
// browser back to the login page. Bad or missing tokens never block it.
func WebLogout(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshTokenCookie)
	accessToken, _ := c.Cookie(middleware.AccessTokenCookie)

	sessionSvc.Logout(refreshToken, accessToken)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", false, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", false, true)

	utils.LogInfo("Web logout")
	c.Redirect(http.StatusFound, "/login")
}

// ShowDashboard renders the signed-in landing page
func ShowDashboard(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var applicationCount, jobCount int64
	if user.Roles.Has(models.RoleCandidate) {
		config.DB.Model(&models.Application{}).Where("user_id = ?", user.ID).Count(&applicationCount)
	}
	if user.Roles.Has(models.RoleHR) {
		config.DB.Model(&models.Job{}).Where("posted_by_id = ?", user.ID).Count(&jobCount)
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"email":        user.Email,
		"roles":        user.Roles,
		"applications": applicationCount,
		"jobs":         jobCount,
	})
}
