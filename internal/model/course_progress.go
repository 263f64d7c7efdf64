package model

import "time"

// CourseProgress is one user's enrollment in one catalog course,
// together with its per-lesson completion records.
//
// Invariants maintained by the progress service:
//
//	Progress == round(100 * LessonsCompleted / LessonsTotal)
//	LessonsCompleted == count of completed lesson records
//	CurrentLesson never decreases
//
// swagger:model CourseProgress
type CourseProgress struct {
	BaseModel
	UserID           uint           `gorm:"index:idx_user_course,unique;not null" json:"userId"`
	CourseID         string         `gorm:"size:64;index:idx_user_course,unique;not null" json:"courseId"`
	CourseTitle      string         `gorm:"size:255" json:"courseTitle"`
	Progress         int            `gorm:"default:0" json:"progress"`
	LessonsCompleted int            `gorm:"default:0" json:"lessonsCompleted"`
	LessonsTotal     int            `json:"lessonsTotal"`
	CurrentLesson    int            `gorm:"default:1" json:"currentLesson"`
	EnrolledDate     time.Time      `json:"enrolledDate"`
	LastAccessed     *time.Time     `json:"lastAccessed"`
	Completed        bool           `gorm:"default:false" json:"completed"`
	Lessons          []LessonRecord `gorm:"foreignKey:CourseProgressID" json:"lessons"`
}

func (CourseProgress) TableName() string {
	return "course_progress"
}

// LessonRecord is created lazily on first completion of a lesson and
// overwritten on re-completion (last write wins).
//
// swagger:model LessonRecord
type LessonRecord struct {
	BaseModel
	CourseProgressID uint       `gorm:"index;not null" json:"-"`
	LessonID         int        `gorm:"not null" json:"lessonId"`
	Title            string     `gorm:"size:255" json:"title"`
	Duration         int        `json:"duration"`
	Completed        bool       `gorm:"default:false" json:"completed"`
	Score            *int       `json:"score"`
	CompletedDate    *time.Time `json:"completedDate"`
}

func (LessonRecord) TableName() string {
	return "lesson_records"
}
