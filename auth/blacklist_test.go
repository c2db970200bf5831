package auth

import (
	"testing"
	"time"

	"github.com/akhil-8601/JobNest/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlacklistAddAndCheck(t *testing.T) {
	db := newTestDB(t)
	store := NewBlacklistStore(db)

	revoked, err := store.IsRevoked("unknown-jti")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Add(1, "some-jti", time.Now().Add(15*time.Minute), "logout"))

	revoked, err = store.IsRevoked("some-jti")
	require.NoError(t, err)
	assert.True(t, revoked)

	// a different jti is unaffected
	revoked, err = store.IsRevoked("other-jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestBlacklistEntryExpires(t *testing.T) {
	db := newTestDB(t)
	store := NewBlacklistStore(db)

	// entry whose token already expired; no need to keep rejecting it
	require.NoError(t, store.Add(1, "stale-jti", time.Now().Add(-time.Minute), "logout"))

	revoked, err := store.IsRevoked("stale-jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestBlacklistDuplicateAddIsNoop(t *testing.T) {
	db := newTestDB(t)
	store := NewBlacklistStore(db)

	expiresAt := time.Now().Add(15 * time.Minute)
	require.NoError(t, store.Add(1, "dup-jti", expiresAt, "logout"))
	require.NoError(t, store.Add(1, "dup-jti", expiresAt, "logout"))

	var count int64
	require.NoError(t, db.Model(&models.BlacklistedToken{}).Where("jti = ?", "dup-jti").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
