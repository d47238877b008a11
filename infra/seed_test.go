package infra

import (
	"job-board-api/constants"
	"job-board-api/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedDBIsIdempotent(t *testing.T) {
	db, err := OpenSQLite("file:seed_test?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, Migrate(db))

	require.NoError(t, SeedDB(db, bcrypt.MinCost))
	require.NoError(t, SeedDB(db, bcrypt.MinCost))

	var users, jobs, applications int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Job{}).Count(&jobs).Error)
	require.NoError(t, db.Model(&models.Application{}).Count(&applications).Error)
	assert.Equal(t, int64(3), users)
	assert.Equal(t, int64(4), jobs)
	assert.Equal(t, int64(4), applications)

	var admin models.User
	require.NoError(t, db.Where("role = ?", constants.RoleAdmin).First(&admin).Error)
	assert.NotEqual(t, "a123", admin.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("a123")))
}
