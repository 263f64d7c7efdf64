package service

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportProgressCSV(t *testing.T) {
	ts := newTestStack(t)
	user := ts.createUser(t, "victor", "victor@example.com")
	ctx := context.Background()

	report := NewReportService(ts.progressRepo, NewStorageService(testConfig()), testConfig())

	_, err := ts.progress.Enroll(ctx, user.ID, "tax-fundamentals", "Tax Fundamentals", 12)
	require.NoError(t, err)
	_, _, err = ts.progress.CompleteLesson(ctx, user.ID, "tax-fundamentals", 1, intPtr(85), 30)
	require.NoError(t, err)
	_, _, err = ts.progress.CompleteLesson(ctx, user.ID, "tax-fundamentals", 2, nil, 20)
	require.NoError(t, err)

	data, err := report.ExportProgressCSV(ctx, user.ID)
	require.NoError(t, err)

	body := string(data)
	assert.Contains(t, body, "Course Progress Report")
	assert.Contains(t, body, "Detailed Lesson Progress")

	reader := csv.NewReader(strings.NewReader(body))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	var summary, detail []string
	for _, rec := range records {
		if len(rec) == 5 && rec[0] == "Tax Fundamentals" && strings.HasSuffix(rec[1], "%") {
			summary = rec
		}
		if len(rec) == 5 && rec[0] == "Tax Fundamentals" && rec[1] == "2" {
			detail = rec
		}
	}

	require.NotNil(t, summary, "summary row for the course")
	assert.Equal(t, "17%", summary[1])
	assert.Equal(t, "2", summary[2])
	assert.Equal(t, "12", summary[3])
	assert.NotEqual(t, "Never", summary[4])

	require.NotNil(t, detail, "detail row for lesson 2")
	assert.Equal(t, "Yes", detail[3])
	assert.Equal(t, "N/A", detail[4], "unscored lessons export as N/A")
}

func TestExportProgressCSVEmpty(t *testing.T) {
	ts := newTestStack(t)
	user := ts.createUser(t, "wendy", "wendy@example.com")

	report := NewReportService(ts.progressRepo, NewStorageService(testConfig()), testConfig())

	data, err := report.ExportProgressCSV(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Course Progress Report")
}
