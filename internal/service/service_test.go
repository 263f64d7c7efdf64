package service

import (
	"testing"
	"time"

	"taxmaster_backend/internal/config"
	"taxmaster_backend/internal/model"
	"taxmaster_backend/internal/repository"
	"taxmaster_backend/pkg/database"

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

	// Every connection in the pool would see its own empty in-memory
	// database, so pin the pool to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "unit-test-secret-unit-test-secret!!",
			ExpireTime: time.Hour,
		},
		Storage: config.StorageConfig{
			Type: "local",
		},
	}
}

type testStack struct {
	db           *gorm.DB
	userRepo     *repository.UserRepository
	progressRepo *repository.ProgressRepository
	activityRepo *repository.ActivityRepository
	statsRepo    *repository.StatsRepository
	catalogRepo  *repository.CatalogRepository
	achRepo      *repository.AchievementRepository

	stats        *StatsService
	achievements *AchievementService
	dashboard    *DashboardService
	progress     *ProgressService
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	db := newTestDB(t)
	ts := &testStack{
		db:           db,
		userRepo:     repository.NewUserRepository(db),
		progressRepo: repository.NewProgressRepository(db),
		activityRepo: repository.NewActivityRepository(db),
		statsRepo:    repository.NewStatsRepository(db),
		catalogRepo:  repository.NewCatalogRepository(db),
		achRepo:      repository.NewAchievementRepository(db),
	}
	ts.stats = NewStatsService(ts.statsRepo, ts.progressRepo, ts.activityRepo)
	ts.achievements = NewAchievementService(ts.achRepo, ts.activityRepo)
	ts.dashboard = NewDashboardService(ts.userRepo, ts.statsRepo, ts.progressRepo, ts.activityRepo, ts.catalogRepo, nil)
	ts.progress = NewProgressService(ts.progressRepo, ts.activityRepo, ts.stats, ts.achievements, ts.dashboard, db)
	return ts
}

func (ts *testStack) createUser(t *testing.T, username, email string) *model.User {
	t.Helper()

	now := time.Now()
	user := &model.User{
		Username:  username,
		Email:     email,
		Password:  "irrelevant",
		Avatar:    model.AvatarInitials(username),
		JoinDate:  now,
		LastLogin: now,
	}
	require.NoError(t, ts.userRepo.Create(user))
	return user
}

func intPtr(n int) *int {
	return &n
}
