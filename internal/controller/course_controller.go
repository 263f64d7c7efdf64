package controller

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"taxmaster_backend/internal/service"
	"taxmaster_backend/internal/util"
	"taxmaster_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	ProgressService *service.ProgressService
	CatalogService  *service.CatalogService
	ReportService   *service.ReportService
}

func NewCourseController(
	progressService *service.ProgressService,
	catalogService *service.CatalogService,
	reportService *service.ReportService,
) *CourseController {
	return &CourseController{
		ProgressService: progressService,
		CatalogService:  catalogService,
		ReportService:   reportService,
	}
}

// ListEnrollments godoc
// @Summary List the user's course enrollments
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.CourseProgress} "Success"
// @Router /api/courses [get]
func (c *CourseController) ListEnrollments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollments, err := c.ProgressService.ListEnrollments(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, enrollments)
}

// swagger:model EnrollRequest
type EnrollRequest struct {
	CourseID     string `json:"courseId" binding:"required"`
	CourseTitle  string `json:"courseTitle" binding:"required"`
	LessonsTotal int    `json:"lessonsTotal" binding:"required,min=1"`
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body EnrollRequest true "Course to enroll in"
// @Success 201 {object} util.Response{data=model.CourseProgress} "Created"
// @Failure 409 {object} util.Response "Already enrolled"
// @Router /api/courses/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, err := c.ProgressService.Enroll(ctx.Request.Context(), claims.UserID, req.CourseID, req.CourseTitle, req.LessonsTotal)
	if err != nil {
		if errors.Is(err, util.ErrAlreadyEnrolled) {
			util.Conflict(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, enrollment)
}

// swagger:model CompleteLessonRequest
type CompleteLessonRequest struct {
	Score    *int `json:"score" binding:"omitempty,min=0,max=100"`
	Duration int  `json:"duration" binding:"omitempty,min=0"`
}

// CompleteLesson godoc
// @Summary Mark a lesson as completed
// @Description Records the completion, recomputes progress and stats
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "Course ID"
// @Param lessonId path int true "Lesson number"
// @Param body body CompleteLessonRequest true "Score and duration"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/courses/{courseId}/lessons/{lessonId}/complete [post]
func (c *CourseController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := ctx.Param("courseId")
	lessonID, err := strconv.Atoi(ctx.Param("lessonId"))
	if err != nil {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	var req CompleteLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, stats, err := c.ProgressService.CompleteLesson(ctx.Request.Context(), claims.UserID, courseID, lessonID, req.Score, req.Duration)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.LessonCompletions.Inc()
	util.Success(ctx, gin.H{
		"course": enrollment,
		"stats":  stats,
	})
}

// GetCatalog godoc
// @Summary List the course catalog
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.CatalogCourse} "Success"
// @Router /api/courses/catalog [get]
func (c *CourseController) GetCatalog(ctx *gin.Context) {
	catalog, err := c.CatalogService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, catalog)
}

// ExportProgress godoc
// @Summary Export the user's progress as CSV
// @Tags courses
// @Produce text/csv
// @Security ApiKeyAuth
// @Success 200 {string} string "CSV report"
// @Router /api/courses/export [get]
func (c *CourseController) ExportProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	data, err := c.ReportService.ExportProgressCSV(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := fmt.Sprintf("progress-%s.csv", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(200, "text/csv", data)
}
