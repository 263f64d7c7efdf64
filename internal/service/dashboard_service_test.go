package service

import (
	"context"
	"testing"
	"time"

	"taxmaster_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeCatalogDefaults(t *testing.T) {
	catalog := []model.CatalogCourse{
		{CourseID: "a", Title: "Course A", LessonsTotal: 10, Position: 1},
		{CourseID: "b", Title: "Course B", LessonsTotal: 5, Position: 2},
	}

	rows := MergeCatalog(catalog, nil)
	require.Len(t, rows, 2)

	assert.Equal(t, "a", rows[0].CourseID)
	assert.Equal(t, "b", rows[1].CourseID)
	for _, row := range rows {
		assert.Equal(t, 0, row.Progress)
		assert.Equal(t, 0, row.LessonsCompleted)
		assert.Equal(t, 1, row.CurrentLesson)
		assert.Nil(t, row.EnrolledDate)
	}
}

func TestMergeCatalogOverlaysEnrollment(t *testing.T) {
	enrolled := time.Now()
	catalog := []model.CatalogCourse{
		{CourseID: "a", Title: "Course A", LessonsTotal: 10, Position: 1},
		{CourseID: "b", Title: "Course B", LessonsTotal: 5, Position: 2},
	}
	enrollments := []model.CourseProgress{
		{
			CourseID:         "b",
			Progress:         40,
			LessonsCompleted: 2,
			CurrentLesson:    3,
			EnrolledDate:     enrolled,
		},
	}

	rows := MergeCatalog(catalog, enrollments)
	require.Len(t, rows, 2)

	assert.Equal(t, 0, rows[0].Progress)
	assert.Nil(t, rows[0].EnrolledDate)

	assert.Equal(t, 40, rows[1].Progress)
	assert.Equal(t, 2, rows[1].LessonsCompleted)
	assert.Equal(t, 3, rows[1].CurrentLesson)
	require.NotNil(t, rows[1].EnrolledDate)
	assert.WithinDuration(t, enrolled, *rows[1].EnrolledDate, time.Second)
}

func TestGetDashboardComposition(t *testing.T) {
	ts := newTestStack(t)
	user := ts.createUser(t, "peggy", "peggy@example.com")
	ctx := context.Background()

	_, err := ts.progress.Enroll(ctx, user.ID, "tax-fundamentals", "Tax Fundamentals", 12)
	require.NoError(t, err)
	_, _, err = ts.progress.CompleteLesson(ctx, user.ID, "tax-fundamentals", 1, intPtr(88), 30)
	require.NoError(t, err)

	d, err := ts.dashboard.GetDashboard(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.ID, d.User.ID)
	assert.Equal(t, "peggy", d.User.Username)
	assert.Equal(t, "PE", d.User.Avatar)

	// The seeded catalog always contributes one row per course, in
	// catalog order, whether or not the user is enrolled.
	require.Len(t, d.Courses, 6)
	first := d.Courses[0]
	assert.Equal(t, "tax-fundamentals", first.CourseID)
	assert.Equal(t, 8, first.Progress)
	assert.Equal(t, 1, first.LessonsCompleted)
	assert.Equal(t, 2, first.CurrentLesson)
	require.NotNil(t, first.EnrolledDate)

	for _, row := range d.Courses[1:] {
		assert.Equal(t, 0, row.Progress)
		assert.Nil(t, row.EnrolledDate)
	}

	assert.Equal(t, 1, d.Stats.CoursesEnrolled)
	assert.Equal(t, 88, d.Stats.AverageScore)

	assert.NotEmpty(t, d.Activities)
	assert.LessOrEqual(t, len(d.Activities), 10)
	assert.Equal(t, model.ActivityLessonCompleted, d.Activities[0].Type)
}
