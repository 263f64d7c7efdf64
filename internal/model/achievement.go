package model

import "time"

const (
	AchievementFirstCourse     = "first_course"
	AchievementFirstCompletion = "first_completion"
	AchievementPerfectScore    = "perfect_score"
	AchievementWeekStreak      = "week_streak"
)

// swagger:model Achievement
type Achievement struct {
	BaseModel
	UserID      uint      `gorm:"index:idx_user_achievement,unique;not null" json:"userId"`
	Code        string    `gorm:"size:32;index:idx_user_achievement,unique;not null" json:"code"`
	Title       string    `gorm:"size:100" json:"title"`
	Description string    `gorm:"size:255" json:"description"`
	Icon        string    `gorm:"size:8" json:"icon"`
	EarnedDate  time.Time `json:"earnedDate"`
}

func (Achievement) TableName() string {
	return "achievements"
}
