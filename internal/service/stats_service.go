package service

import (
	"math"
	"time"

	"taxmaster_backend/internal/model"
	"taxmaster_backend/internal/repository"

	"gorm.io/gorm"
)

// StatsService derives the cross-course summary for a user from the
// enrollment ledger. Counters are always recomputed in full rather than
// incremented, so repeated completions of the same lesson or course can
// never drift the totals.
type StatsService struct {
	StatsRepo    *repository.StatsRepository
	ProgressRepo *repository.ProgressRepository
	ActivityRepo *repository.ActivityRepository
}

func NewStatsService(
	statsRepo *repository.StatsRepository,
	progressRepo *repository.ProgressRepository,
	activityRepo *repository.ActivityRepository,
) *StatsService {
	return &StatsService{
		StatsRepo:    statsRepo,
		ProgressRepo: progressRepo,
		ActivityRepo: activityRepo,
	}
}

func (s *StatsService) GetStats(userID uint) (*model.Stats, error) {
	return s.StatsRepo.GetOrCreate(userID)
}

// Recompute rebuilds every derived stat from the user's enrollments.
// It must run inside the same transaction as the ledger mutation so it
// reads a consistent snapshot. LearningTimeHours is additive and left
// untouched here.
func (s *StatsService) Recompute(tx *gorm.DB, userID uint) (*model.Stats, error) {
	enrollments, err := s.ProgressRepo.WithTx(tx).FindAllByUser(userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.StatsRepo.WithTx(tx).GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	stats.CoursesEnrolled = len(enrollments)
	stats.CoursesCompleted = 0
	stats.TotalLessons = 0
	stats.CompletedLessons = 0

	totalScore := 0
	scoredLessons := 0
	for _, cp := range enrollments {
		if cp.Completed {
			stats.CoursesCompleted++
		}
		stats.TotalLessons += cp.LessonsTotal
		stats.CompletedLessons += cp.LessonsCompleted
		for _, l := range cp.Lessons {
			if l.Completed && l.Score != nil {
				totalScore += *l.Score
				scoredLessons++
			}
		}
	}

	stats.AverageScore = 0
	if scoredLessons > 0 {
		stats.AverageScore = int(math.Round(float64(totalScore) / float64(scoredLessons)))
	}

	streak, err := s.computeStreak(tx, userID)
	if err != nil {
		return nil, err
	}
	stats.Streak = streak

	if err := s.StatsRepo.WithTx(tx).Update(stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// AddLearningTime accumulates study time, kept to one decimal in hours.
func (s *StatsService) AddLearningTime(tx *gorm.DB, userID uint, minutes int) error {
	if minutes <= 0 {
		return nil
	}
	stats, err := s.StatsRepo.WithTx(tx).GetOrCreate(userID)
	if err != nil {
		return err
	}
	stats.LearningTimeHours = math.Round((stats.LearningTimeHours+float64(minutes)/60)*10) / 10
	return s.StatsRepo.WithTx(tx).Update(stats)
}

// computeStreak counts the run of consecutive days with at least one
// lesson completion, ending today or yesterday.
func (s *StatsService) computeStreak(tx *gorm.DB, userID uint) (int, error) {
	activities, err := s.ActivityRepo.WithTx(tx).CompletionDates(userID)
	if err != nil {
		return 0, err
	}
	if len(activities) == 0 {
		return 0, nil
	}

	days := make([]time.Time, 0, len(activities))
	for _, a := range activities {
		day := a.Date.Truncate(24 * time.Hour)
		if len(days) == 0 || !days[len(days)-1].Equal(day) {
			days = append(days, day)
		}
	}

	today := time.Now().Truncate(24 * time.Hour)
	if days[0].Before(today.AddDate(0, 0, -1)) {
		return 0, nil
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			streak++
			continue
		}
		break
	}
	return streak, nil
}
