package auth

import (
	"time"

	"github.com/akhil-8601/JobNest/models"
	"github.com/akhil-8601/JobNest/utils"
	"gorm.io/gorm"
)

// TokenPair is one session: a short-lived access token and the refresh token
// that can replace it. The two are always issued together.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  int64
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// SessionService orchestrates issuance, rotation and revocation across the
// token codec, the refresh-token store and the blacklist.
type SessionService struct {
	db        *gorm.DB
	codec     *TokenCodec
	refresh   *RefreshTokenStore
	blacklist *BlacklistStore
}

// NewSessionService wires the auth core together
func NewSessionService(db *gorm.DB, codec *TokenCodec, refresh *RefreshTokenStore, blacklist *BlacklistStore) *SessionService {
	return &SessionService{db: db, codec: codec, refresh: refresh, blacklist: blacklist}
}

// Codec exposes the token codec for request authentication
func (s *SessionService) Codec() *TokenCodec {
	return s.codec
}

// Blacklist exposes the blacklist store for request authentication
func (s *SessionService) Blacklist() *BlacklistStore {
	return s.blacklist
}

// IssuePair creates a new access+refresh pair for the user. Used by login and
// registration; refresh goes through Refresh instead.
func (s *SessionService) IssuePair(user *models.User, meta ClientMeta) (*TokenPair, error) {
	return s.issuePair(s.db, user, meta)
}

// Refresh rotates the supplied refresh token and mints a new pair for its
// owner. Revoking the old record and persisting the new one happen in a
// single transaction, so a failure mid-flow leaves the old token usable.
func (s *SessionService) Refresh(plaintext string, meta ClientMeta) (*TokenPair, *models.User, error) {
	var pair *TokenPair
	var user *models.User

	err := s.db.Transaction(func(tx *gorm.DB) error {
		owner, err := s.refresh.WithTx(tx).Rotate(plaintext)
		if err != nil {
			return err
		}
		p, err := s.issuePair(tx, owner, meta)
		if err != nil {
			return err
		}
		pair = p
		user = owner
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

func (s *SessionService) issuePair(db *gorm.DB, user *models.User, meta ClientMeta) (*TokenPair, error) {
	access, _, expiresAt, err := s.codec.Issue(user.ID, user.Email, user.Roles)
	if err != nil {
		return nil, err
	}
	plaintext, record, err := s.refresh.WithTx(db).Issue(user, meta)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  expiresAt,
		RefreshToken:     plaintext,
		RefreshExpiresAt: record.ExpiresAt,
	}, nil
}

// Logout revokes the refresh token and blacklists the current access token's
// jti. Both halves are best-effort: a missing, garbage or already-revoked
// token never fails the logout.
func (s *SessionService) Logout(refreshPlaintext, accessToken string) {
	if refreshPlaintext != "" {
		if err := s.refresh.Revoke(refreshPlaintext); err != nil {
			utils.LogError("Logout: failed to revoke refresh token: %v", err)
		}
	}

	if accessToken == "" {
		return
	}
	claims, err := s.codec.Verify(accessToken)
	if err != nil {
		// ignore token decode errors on logout
		utils.LogDebug("Logout: ignoring unusable access token: %v", err)
		return
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		utils.LogDebug("Logout: ignoring access token with bad subject: %v", err)
		return
	}
	if err := s.blacklist.Add(userID, claims.ID, claims.ExpiresAt.Time, "logout"); err != nil {
		utils.LogError("Logout: failed to blacklist jti: %v", err)
	}
}
