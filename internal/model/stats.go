package model

// Stats is the cross-course summary for one user. Every field except
// LearningTimeHours is recomputed from the enrollment ledger after
// each mutation; LearningTimeHours only accumulates.
//
// swagger:model Stats
type Stats struct {
	BaseModel
	UserID            uint    `gorm:"uniqueIndex;not null" json:"userId"`
	CoursesEnrolled   int     `gorm:"default:0" json:"coursesEnrolled"`
	CoursesCompleted  int     `gorm:"default:0" json:"coursesCompleted"`
	LearningTimeHours float64 `gorm:"default:0" json:"learningTimeHours"`
	AverageScore      int     `gorm:"default:0" json:"averageScore"`
	Streak            int     `gorm:"default:0" json:"streak"`
	TotalLessons      int     `gorm:"default:0" json:"totalLessons"`
	CompletedLessons  int     `gorm:"default:0" json:"completedLessons"`
}

func (Stats) TableName() string {
	return "stats"
}
