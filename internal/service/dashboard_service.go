package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"taxmaster_backend/internal/model"
	"taxmaster_backend/internal/repository"
	"taxmaster_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const dashboardCacheTTL = 30 * time.Second

// DashboardService composes the read-only dashboard view: the full
// catalog merged with the user's enrollments, plus stats and recent
// activity. Snapshots are cached in redis when a client is configured.
type DashboardService struct {
	UserRepo     *repository.UserRepository
	StatsRepo    *repository.StatsRepository
	ProgressRepo *repository.ProgressRepository
	ActivityRepo *repository.ActivityRepository
	CatalogRepo  *repository.CatalogRepository
	Redis        *redis.Client
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	statsRepo *repository.StatsRepository,
	progressRepo *repository.ProgressRepository,
	activityRepo *repository.ActivityRepository,
	catalogRepo *repository.CatalogRepository,
	rdb *redis.Client,
) *DashboardService {
	return &DashboardService{
		UserRepo:     userRepo,
		StatsRepo:    statsRepo,
		ProgressRepo: progressRepo,
		ActivityRepo: activityRepo,
		CatalogRepo:  catalogRepo,
		Redis:        rdb,
	}
}

type UserSummary struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	JoinDate  time.Time `json:"joinDate"`
	LastLogin time.Time `json:"lastLogin"`
}

// CourseOverview is one catalog row merged with the user's enrollment,
// or catalog defaults when not enrolled.
type CourseOverview struct {
	CourseID         string     `json:"courseId"`
	Title            string     `json:"title"`
	Icon             string     `json:"icon"`
	Level            string     `json:"level"`
	LessonsTotal     int        `json:"lessonsTotal"`
	TimeEstimate     string     `json:"timeEstimate"`
	Progress         int        `json:"progress"`
	LessonsCompleted int        `json:"lessonsCompleted"`
	CurrentLesson    int        `json:"currentLesson"`
	EnrolledDate     *time.Time `json:"enrolledDate"`
}

type Dashboard struct {
	User       UserSummary      `json:"user"`
	Stats      model.Stats      `json:"stats"`
	Courses    []CourseOverview `json:"courses"`
	Activities []model.Activity `json:"activities"`
}

func (s *DashboardService) GetDashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, s.cacheKey(userID)).Result()
		if err == nil {
			var d Dashboard
			if err := json.Unmarshal([]byte(cached), &d); err == nil {
				return &d, nil
			}
		}
	}

	d, err := s.build(userID)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		payload, err := json.Marshal(d)
		if err == nil {
			if err := s.Redis.Set(ctx, s.cacheKey(userID), payload, dashboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("dashboard cache write failed", zap.Error(err))
			}
		}
	}
	return d, nil
}

// Invalidate drops the cached snapshot; called after every enrollment
// or lesson mutation.
func (s *DashboardService) Invalidate(ctx context.Context, userID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, s.cacheKey(userID)).Err(); err != nil {
		logger.Log.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

func (s *DashboardService) cacheKey(userID uint) string {
	return fmt.Sprintf("dashboard:%d", userID)
}

func (s *DashboardService) build(userID uint) (*Dashboard, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.StatsRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.ProgressRepo.FindAllByUser(userID)
	if err != nil {
		return nil, err
	}

	activities, err := s.ActivityRepo.FindRecent(userID, 10)
	if err != nil {
		return nil, err
	}

	catalog, err := s.CatalogRepo.FindAll()
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		User: UserSummary{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			Avatar:    user.Avatar,
			JoinDate:  user.JoinDate,
			LastLogin: user.LastLogin,
		},
		Stats:      *stats,
		Courses:    MergeCatalog(catalog, enrollments),
		Activities: activities,
	}, nil
}

// MergeCatalog produces one row per catalog entry, in catalog order,
// overlaying enrollment fields where the user is enrolled. A pure
// projection: no side effects.
func MergeCatalog(catalog []model.CatalogCourse, enrollments []model.CourseProgress) []CourseOverview {
	byCourse := make(map[string]*model.CourseProgress, len(enrollments))
	for i := range enrollments {
		byCourse[enrollments[i].CourseID] = &enrollments[i]
	}

	rows := make([]CourseOverview, 0, len(catalog))
	for _, c := range catalog {
		row := CourseOverview{
			CourseID:      c.CourseID,
			Title:         c.Title,
			Icon:          c.Icon,
			Level:         c.Level,
			LessonsTotal:  c.LessonsTotal,
			TimeEstimate:  c.TimeEstimate,
			CurrentLesson: 1,
		}
		if cp, ok := byCourse[c.CourseID]; ok {
			row.Progress = cp.Progress
			row.LessonsCompleted = cp.LessonsCompleted
			row.CurrentLesson = cp.CurrentLesson
			enrolled := cp.EnrolledDate
			row.EnrolledDate = &enrolled
		}
		rows = append(rows, row)
	}
	return rows
}
