package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/akhil-8601/JobNest/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshIssueAndRotate(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "jane@example.com")
	store := NewRefreshTokenStore(db, 30*24*time.Hour)

	plaintext, record, err := store.Issue(user, ClientMeta{UserAgent: "test-agent", IPAddress: "10.0.0.1"})
	require.NoError(t, err)
	require.NotEmpty(t, plaintext)

	// only the hash is stored
	assert.Equal(t, HashToken(plaintext), record.TokenHash)
	assert.NotContains(t, record.TokenHash, plaintext)
	assert.Equal(t, "test-agent", record.UserAgent)

	owner, err := store.Rotate(plaintext)
	require.NoError(t, err)
	assert.Equal(t, user.ID, owner.ID)
	assert.Equal(t, user.Email, owner.Email)

	// record stays revoked, never deleted
	var stored models.RefreshToken
	require.NoError(t, db.First(&stored, record.ID).Error)
	require.NotNil(t, stored.RevokedAt)
}

func TestRefreshRotateTwiceFails(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "jane@example.com")
	store := NewRefreshTokenStore(db, time.Hour)

	plaintext, _, err := store.Issue(user, ClientMeta{})
	require.NoError(t, err)

	_, err = store.Rotate(plaintext)
	require.NoError(t, err)

	_, err = store.Rotate(plaintext)
	assert.ErrorIs(t, err, ErrRefreshRevoked)
}

func TestRefreshRotateUnknown(t *testing.T) {
	db := newTestDB(t)
	store := NewRefreshTokenStore(db, time.Hour)

	_, err := store.Rotate("never-issued")
	assert.ErrorIs(t, err, ErrRefreshNotFound)
}

func TestRefreshRotateExpired(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "jane@example.com")

	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewRefreshTokenStore(db, time.Hour).
		WithClock(func() time.Time { return issuedAt })

	plaintext, _, err := store.Issue(user, ClientMeta{})
	require.NoError(t, err)

	late := store.WithClock(func() time.Time { return issuedAt.Add(time.Hour + time.Second) })
	_, err = late.Rotate(plaintext)
	assert.ErrorIs(t, err, ErrRefreshExpired)
}

func TestRefreshRevokeIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "jane@example.com")
	store := NewRefreshTokenStore(db, time.Hour)

	plaintext, _, err := store.Issue(user, ClientMeta{})
	require.NoError(t, err)

	require.NoError(t, store.Revoke(plaintext))
	require.NoError(t, store.Revoke(plaintext))
	require.NoError(t, store.Revoke("never-issued"))

	_, err = store.Rotate(plaintext)
	assert.ErrorIs(t, err, ErrRefreshRevoked)
}

func TestRefreshConcurrentRotationSingleWinner(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "jane@example.com")
	store := NewRefreshTokenStore(db, time.Hour)

	plaintext, _, err := store.Issue(user, ClientMeta{})
	require.NoError(t, err)

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.Rotate(plaintext)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrRefreshRevoked)
		}
	}
	assert.Equal(t, 1, successes, "exactly one rotation must win")
}

func TestHashTokenStable(t *testing.T) {
	h := HashToken("some-token")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashToken("some-token"))
	assert.NotEqual(t, h, HashToken("some-other-token"))
}
