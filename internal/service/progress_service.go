package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"taxmaster_backend/internal/model"
	"taxmaster_backend/internal/repository"
	"taxmaster_backend/internal/util"
	"taxmaster_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProgressService owns the per-user, per-course enrollment ledger.
// Mutations for a user are serialized through a per-user mutex and the
// enrollment, stats and activity writes commit in one transaction, so
// concurrent completions cannot lose updates and the stats recompute
// always reads a consistent snapshot.
type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	ActivityRepo *repository.ActivityRepository
	Stats        *StatsService
	Achievements *AchievementService
	Dashboard    *DashboardService
	DB           *gorm.DB

	userLocks sync.Map // userID -> *sync.Mutex
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	activityRepo *repository.ActivityRepository,
	stats *StatsService,
	achievements *AchievementService,
	dashboard *DashboardService,
	db *gorm.DB,
) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		ActivityRepo: activityRepo,
		Stats:        stats,
		Achievements: achievements,
		Dashboard:    dashboard,
		DB:           db,
	}
}

func (s *ProgressService) lockUser(userID uint) func() {
	v, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *ProgressService) ListEnrollments(userID uint) ([]model.CourseProgress, error) {
	return s.ProgressRepo.FindAllByUser(userID)
}

// Enroll creates the enrollment record for (user, course). Enrolling
// twice never mutates state and always fails with ErrAlreadyEnrolled.
func (s *ProgressService) Enroll(ctx context.Context, userID uint, courseID, courseTitle string, lessonsTotal int) (*model.CourseProgress, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	var enrolled *model.CourseProgress
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		_, err := s.ProgressRepo.WithTx(tx).FindByUserAndCourse(userID, courseID)
		if err == nil {
			return util.ErrAlreadyEnrolled
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now()
		cp := &model.CourseProgress{
			UserID:        userID,
			CourseID:      courseID,
			CourseTitle:   courseTitle,
			LessonsTotal:  lessonsTotal,
			CurrentLesson: 1,
			EnrolledDate:  now,
		}
		if err := s.ProgressRepo.WithTx(tx).Create(cp); err != nil {
			return err
		}

		activity := &model.Activity{
			UserID:   userID,
			Type:     model.ActivityCourseEnrolled,
			CourseID: courseID,
			Title:    "Enrolled in " + courseTitle,
			Date:     now,
		}
		if err := s.ActivityRepo.WithTx(tx).Create(activity); err != nil {
			return err
		}
		if err := s.ActivityRepo.WithTx(tx).TrimToCap(userID, model.ActivityLogCap); err != nil {
			return err
		}

		if _, err := s.Stats.Recompute(tx, userID); err != nil {
			return err
		}
		if err := s.Achievements.OnEnrolled(tx, userID); err != nil {
			return err
		}

		enrolled = cp
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Dashboard.Invalidate(ctx, userID)
	logger.Log.Info("user enrolled",
		zap.Uint("userID", userID),
		zap.String("courseID", courseID),
	)
	return enrolled, nil
}

// CompleteLesson marks a lesson complete inside the user's enrollment
// and recomputes everything derived from it. Completing the same lesson
// again overwrites score and date; the completed count never counts a
// lesson twice.
func (s *ProgressService) CompleteLesson(ctx context.Context, userID uint, courseID string, lessonID int, score *int, duration int) (*model.CourseProgress, *model.Stats, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	var (
		updated *model.CourseProgress
		stats   *model.Stats
	)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cp, err := s.ProgressRepo.WithTx(tx).FindByUserAndCourse(userID, courseID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		if err != nil {
			return err
		}

		now := time.Now()
		var lesson *model.LessonRecord
		for i := range cp.Lessons {
			if cp.Lessons[i].LessonID == lessonID {
				lesson = &cp.Lessons[i]
				break
			}
		}
		if lesson == nil {
			lesson = &model.LessonRecord{
				CourseProgressID: cp.ID,
				LessonID:         lessonID,
				Duration:         duration,
				Completed:        true,
				Score:            score,
				CompletedDate:    &now,
			}
			if err := s.ProgressRepo.WithTx(tx).CreateLesson(lesson); err != nil {
				return err
			}
			cp.Lessons = append(cp.Lessons, *lesson)
		} else {
			lesson.Completed = true
			lesson.Score = score
			lesson.CompletedDate = &now
			if err := s.ProgressRepo.WithTx(tx).UpdateLesson(lesson); err != nil {
				return err
			}
		}

		wasCompleted := cp.Completed

		completed := 0
		for _, l := range cp.Lessons {
			if l.Completed {
				completed++
			}
		}
		cp.LessonsCompleted = completed
		cp.Progress = int(math.Round(float64(completed) / float64(cp.LessonsTotal) * 100))
		cp.Completed = cp.Progress == 100
		cp.LastAccessed = &now

		// Unlock the next lesson; the pointer never moves backwards.
		if next := lessonID + 1; next <= cp.LessonsTotal && cp.CurrentLesson < next {
			cp.CurrentLesson = next
		}

		if err := s.ProgressRepo.WithTx(tx).Update(cp); err != nil {
			return err
		}

		activity := &model.Activity{
			UserID:   userID,
			Type:     model.ActivityLessonCompleted,
			CourseID: courseID,
			LessonID: lessonID,
			Title:    fmt.Sprintf("Completed lesson %d", lessonID),
			Score:    score,
			Date:     now,
		}
		if err := s.ActivityRepo.WithTx(tx).Create(activity); err != nil {
			return err
		}

		if cp.Completed && !wasCompleted {
			courseDone := &model.Activity{
				UserID:   userID,
				Type:     model.ActivityCourseCompleted,
				CourseID: courseID,
				Title:    "Completed " + cp.CourseTitle,
				Date:     now,
			}
			if err := s.ActivityRepo.WithTx(tx).Create(courseDone); err != nil {
				return err
			}
		}
		if err := s.ActivityRepo.WithTx(tx).TrimToCap(userID, model.ActivityLogCap); err != nil {
			return err
		}

		if err := s.Stats.AddLearningTime(tx, userID, duration); err != nil {
			return err
		}
		stats, err = s.Stats.Recompute(tx, userID)
		if err != nil {
			return err
		}
		if err := s.Achievements.OnLessonCompleted(tx, userID, cp, score, stats); err != nil {
			return err
		}

		updated = cp
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.Dashboard.Invalidate(ctx, userID)
	logger.Log.Info("lesson completed",
		zap.Uint("userID", userID),
		zap.String("courseID", courseID),
		zap.Int("lessonID", lessonID),
		zap.Int("progress", updated.Progress),
	)
	return updated, stats, nil
}
