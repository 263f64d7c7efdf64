package repository

import (
	"fmt"
	"testing"
	"time"

	"taxmaster_backend/internal/model"
	"taxmaster_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedActivities(t *testing.T, repo *ActivityRepository, userID uint, n int) {
	t.Helper()
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	for i := 1; i <= n; i++ {
		require.NoError(t, repo.Create(&model.Activity{
			UserID: userID,
			Type:   model.ActivityLessonCompleted,
			Title:  fmt.Sprintf("Completed lesson %d", i),
			Date:   base.Add(time.Duration(i) * time.Minute),
		}))
	}
}

func TestTrimToCapBelowCapIsNoop(t *testing.T) {
	repo := NewActivityRepository(newTestDB(t))
	seedActivities(t, repo, 1, 5)

	require.NoError(t, repo.TrimToCap(1, 20))

	list, err := repo.FindRecent(1, 100)
	require.NoError(t, err)
	assert.Len(t, list, 5)
}

func TestTrimToCapKeepsNewest(t *testing.T) {
	repo := NewActivityRepository(newTestDB(t))
	seedActivities(t, repo, 1, 25)

	require.NoError(t, repo.TrimToCap(1, 20))

	list, err := repo.FindRecent(1, 100)
	require.NoError(t, err)
	require.Len(t, list, 20)
	assert.Equal(t, "Completed lesson 25", list[0].Title)
	assert.Equal(t, "Completed lesson 6", list[19].Title)
}

func TestTrimToCapScopedToUser(t *testing.T) {
	repo := NewActivityRepository(newTestDB(t))
	seedActivities(t, repo, 1, 25)
	seedActivities(t, repo, 2, 5)

	require.NoError(t, repo.TrimToCap(1, 20))

	other, err := repo.FindRecent(2, 100)
	require.NoError(t, err)
	assert.Len(t, other, 5, "trimming one user must not touch another")
}

func TestCatalogSeededInOrder(t *testing.T) {
	repo := NewCatalogRepository(newTestDB(t))

	catalog, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, catalog, 6)
	assert.Equal(t, "tax-fundamentals", catalog[0].CourseID)
	assert.Equal(t, "crypto-taxes", catalog[5].CourseID)
	for i, c := range catalog {
		assert.Equal(t, i+1, c.Position)
	}
}
