package service

import (
	"time"

	"taxmaster_backend/internal/model"
	"taxmaster_backend/internal/repository"

	"gorm.io/gorm"
)

// AchievementService awards one-time badges triggered by enrollment and
// completion events, each recorded in the activity log.
type AchievementService struct {
	AchievementRepo *repository.AchievementRepository
	ActivityRepo    *repository.ActivityRepository
}

func NewAchievementService(
	achievementRepo *repository.AchievementRepository,
	activityRepo *repository.ActivityRepository,
) *AchievementService {
	return &AchievementService{
		AchievementRepo: achievementRepo,
		ActivityRepo:    activityRepo,
	}
}

func (s *AchievementService) ListForUser(userID uint) ([]model.Achievement, error) {
	return s.AchievementRepo.FindByUser(userID)
}

func (s *AchievementService) OnEnrolled(tx *gorm.DB, userID uint) error {
	return s.award(tx, userID, model.AchievementFirstCourse,
		"First Steps", "Enrolled in your first course", "🎯")
}

func (s *AchievementService) OnLessonCompleted(tx *gorm.DB, userID uint, cp *model.CourseProgress, score *int, stats *model.Stats) error {
	if score != nil && *score == 100 {
		if err := s.award(tx, userID, model.AchievementPerfectScore,
			"Perfectionist", "Got 100% on a quiz", "⭐"); err != nil {
			return err
		}
	}
	if cp.Completed {
		if err := s.award(tx, userID, model.AchievementFirstCompletion,
			"Course Crusher", "Completed your first course", "🏆"); err != nil {
			return err
		}
	}
	if stats != nil && stats.Streak >= 7 {
		if err := s.award(tx, userID, model.AchievementWeekStreak,
			"Week Warrior", "7-day learning streak", "🔥"); err != nil {
			return err
		}
	}
	return nil
}

// award is a no-op when the user already holds the badge.
func (s *AchievementService) award(tx *gorm.DB, userID uint, code, title, description, icon string) error {
	has, err := s.AchievementRepo.WithTx(tx).Has(userID, code)
	if err != nil {
		return err
	}
	if has {
		return nil
	}

	now := time.Now()
	achievement := &model.Achievement{
		UserID:      userID,
		Code:        code,
		Title:       title,
		Description: description,
		Icon:        icon,
		EarnedDate:  now,
	}
	if err := s.AchievementRepo.WithTx(tx).Create(achievement); err != nil {
		return err
	}

	activity := &model.Activity{
		UserID: userID,
		Type:   model.ActivityAchievementEarned,
		Title:  "Earned achievement: " + title,
		Date:   now,
	}
	if err := s.ActivityRepo.WithTx(tx).Create(activity); err != nil {
		return err
	}
	return s.ActivityRepo.WithTx(tx).TrimToCap(userID, model.ActivityLogCap)
}
