package model

// CatalogCourse is static, read-only reference data describing an
// available course. Seeded at migration time.
//
// swagger:model CatalogCourse
type CatalogCourse struct {
	BaseModel
	CourseID     string `gorm:"size:64;uniqueIndex;not null" json:"courseId"`
	Title        string `gorm:"size:255;not null" json:"title"`
	Icon         string `gorm:"size:8" json:"icon"`
	Level        string `gorm:"size:32" json:"level"`
	LessonsTotal int    `json:"lessonsTotal"`
	TimeEstimate string `gorm:"size:32" json:"timeEstimate"`
	Position     int    `gorm:"default:0" json:"-"`
}

func (CatalogCourse) TableName() string {
	return "catalog_courses"
}
