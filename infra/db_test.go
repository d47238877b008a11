package infra

import (
	"bytes"
	"errors"
	"job-board-api/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	var out bytes.Buffer
	db, err := gorm.Open(sqlite.Open("file:gorm_logger?mode=memory&cache=shared"), &gorm.Config{Logger: newGormLogger(&out)})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	var user models.User
	err = db.First(&user, "id = ?", 42).Error
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.Empty(t, out.String())

	var n int
	require.Error(t, db.Raw("SELECT count(*) FROM missing_table").Scan(&n).Error)
	assert.Contains(t, out.String(), "missing_table")
}
