package model

import "time"

type ActivityType string

const (
	ActivityLessonCompleted   ActivityType = "lesson_completed"
	ActivityCourseEnrolled    ActivityType = "course_enrolled"
	ActivityCourseCompleted   ActivityType = "course_completed"
	ActivityAchievementEarned ActivityType = "achievement_earned"
)

// ActivityLogCap bounds the per-user activity log; older entries are
// dropped after every insert.
const ActivityLogCap = 20

// swagger:model Activity
type Activity struct {
	UUIDBase
	UserID   uint         `gorm:"index;not null" json:"userId"`
	Type     ActivityType `gorm:"size:32;not null" json:"type"`
	CourseID string       `gorm:"size:64" json:"courseId,omitempty"`
	LessonID int          `json:"lessonId,omitempty"`
	Title    string       `gorm:"size:255" json:"title"`
	Score    *int         `json:"score,omitempty"`
	Date     time.Time    `gorm:"index" json:"date"`
}

func (Activity) TableName() string {
	return "activities"
}
