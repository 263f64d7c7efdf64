package database

import (
	"fmt"
	"log"

	"taxmaster_backend/internal/config"
	"taxmaster_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate runs the schema migration and seeds reference data. It is
// also used by the test suites against an in-memory database.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.CourseProgress{},
		&model.LessonRecord{},
		&model.Activity{},
		&model.Stats{},
		&model.CatalogCourse{},
		&model.Achievement{},
	)
	if err != nil {
		return err
	}

	return seedCatalog(db)
}

// seedCatalog inserts the static course catalog on first run. The
// catalog is reference data: users never mutate it.
func seedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.CatalogCourse{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	catalog := []model.CatalogCourse{
		{CourseID: "tax-fundamentals", Title: "Tax Fundamentals", Icon: "💰", Level: "beginner", LessonsTotal: 12, TimeEstimate: "8 hours", Position: 1},
		{CourseID: "investment-strategies", Title: "Investment Strategies", Icon: "📈", Level: "intermediate", LessonsTotal: 15, TimeEstimate: "10 hours", Position: 2},
		{CourseID: "business-finance", Title: "Business Finance", Icon: "💼", Level: "advanced", LessonsTotal: 18, TimeEstimate: "12 hours", Position: 3},
		{CourseID: "retirement-planning", Title: "Retirement Planning", Icon: "🏖️", Level: "intermediate", LessonsTotal: 10, TimeEstimate: "6 hours", Position: 4},
		{CourseID: "real-estate", Title: "Real Estate Investing", Icon: "🏠", Level: "advanced", LessonsTotal: 14, TimeEstimate: "9 hours", Position: 5},
		{CourseID: "crypto-taxes", Title: "Cryptocurrency & Taxes", Icon: "₿", Level: "intermediate", LessonsTotal: 11, TimeEstimate: "7 hours", Position: 6},
	}
	for _, c := range catalog {
		if err := db.Create(&c).Error; err != nil {
			return err
		}
	}
	return nil
}
