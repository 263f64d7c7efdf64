package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"taxmaster_backend/internal/config"
	"taxmaster_backend/internal/repository"
	"taxmaster_backend/pkg/logger"

	"go.uber.org/zap"
)

// ReportService renders a user's progress as a two-section CSV report
// (per-course summary, then per-lesson detail). When a remote storage
// backend is configured the report is also archived there, best effort.
type ReportService struct {
	ProgressRepo *repository.ProgressRepository
	Storage      *StorageService
	Cfg          *config.Config
}

func NewReportService(progressRepo *repository.ProgressRepository, storage *StorageService, cfg *config.Config) *ReportService {
	return &ReportService{
		ProgressRepo: progressRepo,
		Storage:      storage,
		Cfg:          cfg,
	}
}

func (s *ReportService) ExportProgressCSV(ctx context.Context, userID uint) ([]byte, error) {
	data, err := s.buildCSV(userID)
	if err != nil {
		return nil, err
	}

	if s.Cfg.Storage.Type == "minio" {
		filename := fmt.Sprintf("reports/user_%d_%s.csv", userID, time.Now().Format("20060102T150405"))
		if _, err := s.Storage.Upload(ctx, filename, bytes.NewReader(data), int64(len(data)), "text/csv"); err != nil {
			logger.Log.Warn("report archive failed", zap.Error(err))
		}
	}
	return data, nil
}

func (s *ReportService) buildCSV(userID uint) ([]byte, error) {
	enrollments, err := s.ProgressRepo.FindAllByUser(userID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Course Progress Report"})
	w.Write(nil)
	w.Write([]string{"Course Name", "Progress", "Lessons Completed", "Total Lessons", "Last Accessed"})
	for _, cp := range enrollments {
		lastAccessed := "Never"
		if cp.LastAccessed != nil {
			lastAccessed = cp.LastAccessed.Format("2006-01-02")
		}
		w.Write([]string{
			cp.CourseTitle,
			strconv.Itoa(cp.Progress) + "%",
			strconv.Itoa(cp.LessonsCompleted),
			strconv.Itoa(cp.LessonsTotal),
			lastAccessed,
		})
	}

	w.Write(nil)
	w.Write([]string{"Detailed Lesson Progress"})
	w.Write(nil)
	w.Write([]string{"Course", "Lesson", "Duration (min)", "Completed", "Score"})
	for _, cp := range enrollments {
		for _, l := range cp.Lessons {
			completed := "No"
			if l.Completed {
				completed = "Yes"
			}
			score := "N/A"
			if l.Score != nil {
				score = strconv.Itoa(*l.Score)
			}
			w.Write([]string{
				cp.CourseTitle,
				strconv.Itoa(l.LessonID),
				strconv.Itoa(l.Duration),
				completed,
				score,
			})
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
