package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/akhil-8601/JobNest/auth"
	"github.com/akhil-8601/JobNest/models"
	"github.com/akhil-8601/JobNest/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AccessTokenCookie is the cookie the web surface stores the access token in
const AccessTokenCookie = "access_token"

// errNoToken marks requests that carried no candidate token at all, so the
// optional variant can fall through to an anonymous identity.
var errNoToken = errors.New("no token supplied")

// Authenticator resolves bearer tokens into authenticated users. It owns the
// full per-request pipeline: extract, verify, type check, blacklist check,
// user lookup.
type Authenticator struct {
	db        *gorm.DB
	codec     *auth.TokenCodec
	blacklist *auth.BlacklistStore
}

// NewAuthenticator builds the request authenticator
func NewAuthenticator(db *gorm.DB, codec *auth.TokenCodec, blacklist *auth.BlacklistStore) *Authenticator {
	return &Authenticator{db: db, codec: codec, blacklist: blacklist}
}

// RequireAuth protects API routes; failures return a JSON 401
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, claims, err := a.authenticate(c)
		if err != nil {
			utils.LogError("Authentication failed for %s: %v", c.Request.URL.Path, err)
			utils.Unauthorized(c, "Please login for access")
			c.Abort()
			return
		}
		setIdentity(c, user, claims)
		c.Next()
	}
}

// RequireWebAuth protects browser routes; failures redirect to the login page
func (a *Authenticator) RequireWebAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, claims, err := a.authenticate(c)
		if err != nil {
			utils.LogDebug("Web authentication failed for %s: %v", c.Request.URL.Path, err)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		setIdentity(c, user, claims)
		c.Next()
	}
}

// OptionalAuth attaches an identity when a valid token is present and lets
// anonymous requests through. A token that is present but invalid still
// fails closed.
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, claims, err := a.authenticate(c)
		if err != nil {
			if errors.Is(err, errNoToken) {
				c.Next()
				return
			}
			utils.LogDebug("Optional authentication rejected token on %s: %v", c.Request.URL.Path, err)
			utils.Unauthorized(c, "Please login for access")
			c.Abort()
			return
		}
		setIdentity(c, user, claims)
		c.Next()
	}
}

// RequireRole gates a route on a role carried in the verified claims. Must
// run after one of the auth middlewares.
func (a *Authenticator) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.Unauthorized(c, "Please login for access")
			c.Abort()
			return
		}
		if !user.Roles.Has(role) {
			utils.LogError("User %d lacks role %s for %s", user.ID, role, c.Request.URL.Path)
			utils.Forbidden(c, "Insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *Authenticator) authenticate(c *gin.Context) (*models.User, *auth.AccessClaims, error) {
	token := extractToken(c)
	if token == "" {
		return nil, nil, errNoToken
	}

	claims, err := a.codec.Verify(token)
	if err != nil {
		return nil, nil, err
	}

	if claims.TokenType != auth.TokenTypeAccess {
		return nil, nil, auth.ErrWrongTokenType
	}
	if claims.ID == "" {
		return nil, nil, auth.ErrMissingJTI
	}

	revoked, err := a.blacklist.IsRevoked(claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, errors.New("token has been revoked")
	}

	if claims.Email == "" {
		return nil, nil, errors.New("missing email claim")
	}

	var user models.User
	if err := a.db.Where("email = ?", claims.Email).First(&user).Error; err != nil {
		return nil, nil, errors.New("user not found")
	}
	if user.Status == models.UserStatusSuspended {
		return nil, nil, errors.New("account is suspended")
	}

	return &user, claims, nil
}

// extractToken prefers the Authorization header over the access-token cookie
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

func setIdentity(c *gin.Context, user *models.User, claims *auth.AccessClaims) {
	c.Set("user", *user)
	c.Set("claims", claims)
}

// CurrentUser returns the authenticated user attached to the request
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := v.(models.User)
	if !ok {
		return nil, false
	}
	return &user, true
}

// CurrentClaims returns the verified access-token claims for the request
func CurrentClaims(c *gin.Context) (*auth.AccessClaims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.AccessClaims)
	if !ok {
		return nil, false
	}
	return claims, true
}
