package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akhil-8601/JobNest/auth"
	"github.com/akhil-8601/JobNest/config"
	"github.com/akhil-8601/JobNest/models"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type authFixture struct {
	db        *gorm.DB
	codec     *auth.TokenCodec
	blacklist *auth.BlacklistStore
	authn     *Authenticator
	user      *models.User
}

func newAuthFixture(t *testing.T) *authFixture {
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

	user := &models.User{
		Email:  "jane@example.com",
		Roles:  models.RoleList{models.RoleCandidate},
		Status: models.UserStatusActive,
	}
	require.NoError(t, db.Create(user).Error)

	codec := auth.NewTokenCodec(config.AuthConfig{
		Secret:    "test-secret-at-least-32-bytes-long!!",
		Issuer:    "jobnest",
		Audience:  "jobnest-clients",
		AccessTTL: 15 * time.Minute,
	})
	blacklist := auth.NewBlacklistStore(db)

	return &authFixture{
		db:        db,
		codec:     codec,
		blacklist: blacklist,
		authn:     NewAuthenticator(db, codec, blacklist),
		user:      user,
	}
}

func (f *authFixture) token(t *testing.T) (string, string) {
	t.Helper()
	signed, jti, _, err := f.codec.Issue(f.user.ID, f.user.Email, f.user.Roles)
	require.NoError(t, err)
	return signed, jti
}

// protectedRouter mounts /protected behind the given middlewares and reports
// the resolved identity.
func protectedRouter(mw ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		if user, ok := CurrentUser(c); ok {
			c.JSON(http.StatusOK, gin.H{"email": user.Email})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": nil})
	})
	router.GET("/protected", handlers...)
	return router
}

func TestRequireAuthWithBearerToken(t *testing.T) {
	f := newAuthFixture(t)
	router := protectedRouter(f.authn.RequireAuth())
	token, _ := f.token(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jane@example.com")
}

func TestRequireAuthWithCookieFallback(t *testing.T) {
	f := newAuthFixture(t)
	router := protectedRouter(f.authn.RequireAuth())
	token, _ := f.token(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthHeaderBeatsCookie(t *testing.T) {
	f := newAuthFixture(t)
	router := protectedRouter(f.authn.RequireAuth())
	token, _ := f.token(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "garbage"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthNoToken(t *testing.T) {
	f := newAuthFixture(t)
	router := protectedRouter(f.authn.RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthGarbageToken(t *testing.T) {
	f := newAuthFixture(t)
	router := protectedRouter(f.authn.RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthBlacklistedToken(t *testing.T) {
	f := newAuthFixture(t)
	router := protectedRouter(f.authn.RequireAuth())
	token, jti := f.token(t)
	require.NoError(t, f.blacklist.Add(f.user.ID, jti, time.Now().Add(15*time.Minute), "logout"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// another token for the same user is still accepted
	fresh, _ := f.token(t)
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+fresh)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthSuspendedUser(t *testing.T) {
	f := newAuthFixture(t)
	router := protectedRouter(f.authn.RequireAuth())
	token, _ := f.token(t)

	require.NoError(t, f.db.Model(f.user).Update("status", models.UserStatusSuspended).Error)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireWebAuthRedirects(t *testing.T) {
	f := newAuthFixture(t)
	router := protectedRouter(f.authn.RequireWebAuth())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestOptionalAuthAnonymous(t *testing.T) {
	f := newAuthFixture(t)
	router := protectedRouter(f.authn.OptionalAuth())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "null")
}

func TestOptionalAuthInvalidTokenFailsClosed(t *testing.T) {
	f := newAuthFixture(t)
	router := protectedRouter(f.authn.OptionalAuth())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsWrongTokenType(t *testing.T) {
	f := newAuthFixture(t)
	router := protectedRouter(f.authn.RequireAuth())

	// validly signed token that is not an access token
	now := time.Now()
	claims := auth.AccessClaims{
		Email:     f.user.Email,
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "jobnest",
			Audience:  jwt.ClaimStrings{"jobnest-clients"},
			Subject:   "1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
			ID:        "some-jti",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-secret-at-least-32-bytes-long!!"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	f := newAuthFixture(t)
	router := protectedRouter(f.authn.RequireAuth(), f.authn.RequireRole(models.RoleHR))
	token, _ := f.token(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	// grant the role and try again
	require.NoError(t, f.db.Model(f.user).Update("roles", models.RoleList{models.RoleCandidate, models.RoleHR}).Error)
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
