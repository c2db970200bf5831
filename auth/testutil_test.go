package auth

import (
	"testing"
	"time"

	"github.com/akhil-8601/JobNest/config"
	"github.com/akhil-8601/JobNest/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database limited to a single connection so
// every query sees the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:  email,
		Roles:  models.RoleList{models.RoleCandidate},
		Status: models.UserStatusActive,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Secret:     "test-secret-at-least-32-bytes-long!!",
		Issuer:     "jobnest",
		Audience:   "jobnest-clients",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 30 * 24 * time.Hour,
	}
}
