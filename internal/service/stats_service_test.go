package service

import (
	"testing"
	"time"

	"taxmaster_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// midday anchors the synthetic completion dates away from the day
// boundary the streak computation truncates on.
func midday() time.Time {
	return time.Now().Truncate(24 * time.Hour).Add(12 * time.Hour)
}

func insertCompletion(t *testing.T, ts *testStack, userID uint, date time.Time) {
	t.Helper()
	require.NoError(t, ts.activityRepo.Create(&model.Activity{
		UserID: userID,
		Type:   model.ActivityLessonCompleted,
		Title:  "Completed lesson",
		Date:   date,
	}))
}

func TestStreakNoActivity(t *testing.T) {
	ts := newTestStack(t)
	user := ts.createUser(t, "streak0", "streak0@example.com")

	streak, err := ts.stats.computeStreak(ts.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestStreakBrokenByStaleActivity(t *testing.T) {
	ts := newTestStack(t)
	user := ts.createUser(t, "streak1", "streak1@example.com")

	insertCompletion(t, ts, user.ID, midday().Add(-3*24*time.Hour))

	streak, err := ts.stats.computeStreak(ts.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, streak, "a last completion three days ago means no active streak")
}

func TestStreakCountsConsecutiveDays(t *testing.T) {
	ts := newTestStack(t)
	user := ts.createUser(t, "streak3", "streak3@example.com")

	now := midday()
	insertCompletion(t, ts, user.ID, now)
	insertCompletion(t, ts, user.ID, now.Add(-24*time.Hour))
	insertCompletion(t, ts, user.ID, now.Add(-48*time.Hour))

	streak, err := ts.stats.computeStreak(ts.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, streak)
}

func TestStreakStopsAtGap(t *testing.T) {
	ts := newTestStack(t)
	user := ts.createUser(t, "streakgap", "streakgap@example.com")

	now := midday()
	insertCompletion(t, ts, user.ID, now)
	insertCompletion(t, ts, user.ID, now.Add(-48*time.Hour))

	streak, err := ts.stats.computeStreak(ts.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}

func TestStreakEndingYesterdayStillCounts(t *testing.T) {
	ts := newTestStack(t)
	user := ts.createUser(t, "streakyday", "streakyday@example.com")

	now := midday()
	insertCompletion(t, ts, user.ID, now.Add(-24*time.Hour))
	insertCompletion(t, ts, user.ID, now.Add(-48*time.Hour))

	streak, err := ts.stats.computeStreak(ts.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
}

func TestStreakMultipleCompletionsSameDay(t *testing.T) {
	ts := newTestStack(t)
	user := ts.createUser(t, "streaksame", "streaksame@example.com")

	now := midday()
	insertCompletion(t, ts, user.ID, now)
	insertCompletion(t, ts, user.ID, now.Add(-time.Minute))
	insertCompletion(t, ts, user.ID, now.Add(-2*time.Minute))

	streak, err := ts.stats.computeStreak(ts.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, streak, "several completions on one day count once")
}

func TestAddLearningTimeRounding(t *testing.T) {
	ts := newTestStack(t)
	user := ts.createUser(t, "hours", "hours@example.com")

	require.NoError(t, ts.stats.AddLearningTime(ts.db, user.ID, 25))
	stats, err := ts.stats.GetStats(user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, stats.LearningTimeHours, 0.001, "25 minutes rounds to 0.4 hours")

	require.NoError(t, ts.stats.AddLearningTime(ts.db, user.ID, 0))
	stats, err = ts.stats.GetStats(user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, stats.LearningTimeHours, 0.001, "zero duration is a no-op")
}
