package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akhil-8601/JobNest/auth"
	"github.com/akhil-8601/JobNest/config"
	"github.com/akhil-8601/JobNest/models"
	"github.com/akhil-8601/JobNest/utils"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupAuthAPI wires an in-memory database into the package globals and
// returns a router with the auth endpoints mounted.
func setupAuthAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))
	config.DB = db

	cfg := &config.Config{
		Auth: config.AuthConfig{
			Secret:     "test-secret-at-least-32-bytes-long!!",
			Issuer:     "jobnest",
			Audience:   "jobnest-clients",
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 30 * 24 * time.Hour,
		},
	}
	codec := auth.NewTokenCodec(cfg.Auth)
	session := auth.NewSessionService(db, codec,
		auth.NewRefreshTokenStore(db, cfg.Auth.RefreshTTL),
		auth.NewBlacklistStore(db))
	Init(cfg, session)

	router := gin.New()
	router.POST("/register", RegisterUser)
	router.POST("/login", LoginUser)
	router.POST("/refresh", RefreshSession)
	router.POST("/logout", LogoutUser)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router *gin.Engine, email string) (string, string) {
	t.Helper()
	w := postJSON(t, router, "/register", gin.H{"email": email, "password": "sup3rsecret"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/login", gin.H{"email": email, "password": "sup3rsecret"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AccessToken)
	require.NotEmpty(t, resp.Data.RefreshToken)
	return resp.Data.AccessToken, resp.Data.RefreshToken
}

func TestRegisterValidation(t *testing.T) {
	router := setupAuthAPI(t)

	w := postJSON(t, router, "/register", gin.H{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = postJSON(t, router, "/register", gin.H{"email": "not-an-email", "password": "sup3rsecret"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = postJSON(t, router, "/register", gin.H{"email": "jane@example.com", "password": "short"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router := setupAuthAPI(t)

	w := postJSON(t, router, "/register", gin.H{"email": "jane@example.com", "password": "sup3rsecret"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/register", gin.H{"email": "jane@example.com", "password": "sup3rsecret"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// same address with different case is the same account
	w = postJSON(t, router, "/register", gin.H{"email": "JANE@Example.com", "password": "sup3rsecret"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterAssignsRole(t *testing.T) {
	router := setupAuthAPI(t)

	w := postJSON(t, router, "/register", gin.H{"email": "hr@example.com", "password": "sup3rsecret", "role": "HR"})
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, config.DB.Where("email = ?", "hr@example.com").First(&user).Error)
	assert.True(t, user.Roles.Has(models.RoleHR))
	assert.False(t, user.Roles.Has(models.RoleCandidate))
}

func TestLoginGenericFailure(t *testing.T) {
	router := setupAuthAPI(t)
	registerAndLogin(t, router, "jane@example.com")

	// unknown user and wrong password produce the same response
	unknown := postJSON(t, router, "/login", gin.H{"email": "ghost@example.com", "password": "sup3rsecret"})
	wrongPass := postJSON(t, router, "/login", gin.H{"email": "jane@example.com", "password": "wrong-password"})

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.JSONEq(t, unknown.Body.String(), wrongPass.Body.String())
}

func TestLoginSuspendedAccount(t *testing.T) {
	router := setupAuthAPI(t)
	registerAndLogin(t, router, "jane@example.com")

	require.NoError(t, config.DB.Model(&models.User{}).
		Where("email = ?", "jane@example.com").
		Update("status", models.UserStatusSuspended).Error)

	w := postJSON(t, router, "/login", gin.H{"email": "jane@example.com", "password": "sup3rsecret"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLoginStoresOnlyPasswordHash(t *testing.T) {
	router := setupAuthAPI(t)
	registerAndLogin(t, router, "jane@example.com")

	var user models.User
	require.NoError(t, config.DB.Where("email = ?", "jane@example.com").First(&user).Error)
	assert.NotEqual(t, "sup3rsecret", user.PasswordHash)
	assert.True(t, utils.CheckPassword("sup3rsecret", user.PasswordHash))
}

func TestRefreshFlow(t *testing.T) {
	router := setupAuthAPI(t)
	_, refreshToken := registerAndLogin(t, router, "jane@example.com")

	w := postJSON(t, router, "/refresh", gin.H{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = postJSON(t, router, "/refresh", gin.H{"refreshToken": "never-issued"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, router, "/refresh", gin.H{"refreshToken": refreshToken})
	assert.Equal(t, http.StatusOK, w.Code)

	// the rotated token is spent
	w = postJSON(t, router, "/refresh", gin.H{"refreshToken": refreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	router := setupAuthAPI(t)
	accessToken, refreshToken := registerAndLogin(t, router, "jane@example.com")

	payload, err := json.Marshal(gin.H{"refreshToken": refreshToken})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/logout", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// the refresh token no longer rotates
	w2 := postJSON(t, router, "/refresh", gin.H{"refreshToken": refreshToken})
	assert.Equal(t, http.StatusUnauthorized, w2.Code)

	// repeating the logout with garbage still succeeds
	w3 := postJSON(t, router, "/logout", gin.H{"refreshToken": "garbage"})
	assert.Equal(t, http.StatusOK, w3.Code)
}
