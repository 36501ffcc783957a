package service

import (
	"context"
	"testing"
	"time"

	"github.com/Sanni11/slapbook/internal/config"
	"github.com/Sanni11/slapbook/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubActivitySource struct {
	records []model.ActivityRecord
	err     error

	recentCalls  int
	byOwnerCalls int
}

func (s *stubActivitySource) FindRecent(since time.Time, limit int) ([]model.ActivityRecord, error) {
	s.recentCalls++
	return s.records, s.err
}

func (s *stubActivitySource) FindRecentByOwner(ownerID uint, since time.Time, limit int) ([]model.ActivityRecord, error) {
	s.byOwnerCalls++
	var own []model.ActivityRecord
	for _, r := range s.records {
		if r.OwnerID == ownerID {
			own = append(own, r)
		}
	}
	return own, s.err
}

func testConfig() *config.Config {
	return &config.Config{
		Stats: config.StatsConfig{
			LookbackDays:    60,
			MaxRows:         2000,
			CacheTTLSeconds: 30,
		},
	}
}

func activityAt(owner uint, name, username string, category model.ActivityCategory, minutes int, at time.Time) model.ActivityRecord {
	return model.ActivityRecord{
		OwnerID: owner,
		Owner: model.User{
			BaseModel: model.BaseModel{ID: owner},
			Name:      name,
			Username:  username,
		},
		Category:   category,
		Minutes:    &minutes,
		OccurredAt: at,
	}
}

func TestGetProfileStats(t *testing.T) {
	// Wednesday; the week started Monday 2025-03-03.
	now := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)

	source := &stubActivitySource{records: []model.ActivityRecord{
		activityAt(1, "Sanni", "sanni", model.CategoryStudy, 30, now.Add(-time.Hour)),
		activityAt(1, "Sanni", "sanni", model.CategorySkill, 45, now.AddDate(0, 0, -1)),
		activityAt(1, "Sanni", "sanni", model.CategoryStudy, 60, now.AddDate(0, 0, -7)), // previous week
	}}

	svc := NewDashboardService(source, nil, testConfig())
	svc.now = func() time.Time { return now }

	profile, err := svc.GetProfileStats(1)
	require.NoError(t, err)

	assert.Equal(t, 30, profile.Weekly.Study)
	assert.Equal(t, 45, profile.Weekly.Skill)
	assert.Equal(t, 0, profile.Weekly.Exercise)
	assert.Equal(t, 75, profile.Weekly.All)

	// Active today and yesterday, gap before: streak of 2. The record from a
	// week ago does not extend it.
	assert.Equal(t, 2, profile.Streak)
	assert.Equal(t, 1, source.byOwnerCalls)
}

func TestGetProfileStatsEmpty(t *testing.T) {
	svc := NewDashboardService(&stubActivitySource{}, nil, testConfig())

	profile, err := svc.GetProfileStats(1)
	require.NoError(t, err)
	assert.Zero(t, profile.Weekly.All)
	assert.Zero(t, profile.Streak)
}

func TestGetBoard(t *testing.T) {
	now := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)
	weekStart := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	source := &stubActivitySource{records: []model.ActivityRecord{
		// Owner 1: 120 study this week, streak crossing the week boundary.
		activityAt(1, "Sanni", "sanni", model.CategoryStudy, 120, now),
		activityAt(1, "Sanni", "sanni", model.CategoryStudy, 30, now.AddDate(0, 0, -1)),
		activityAt(1, "Sanni", "sanni", model.CategoryStudy, 30, weekStart),
		activityAt(1, "Sanni", "sanni", model.CategorySkill, 20, weekStart.Add(-2*time.Hour)),  // Sunday: previous week
		activityAt(1, "Sanni", "sanni", model.CategoryStudy, 20, weekStart.AddDate(0, 0, -2)),
		// Owner 2: exercise only, active yesterday.
		activityAt(2, "Femi", "femi", model.CategoryExercise, 60, now.AddDate(0, 0, -1)),
	}}

	svc := NewDashboardService(source, nil, testConfig())
	svc.now = func() time.Time { return now }

	board, err := svc.GetBoard(context.Background())
	require.NoError(t, err)
	require.Len(t, board.Rows, 2)

	sanni := board.Rows[0]
	assert.Equal(t, uint(1), sanni.UserID)
	assert.Equal(t, 180, sanni.Study) // Sunday's 20+20 excluded from the week
	assert.Equal(t, 0, sanni.Skill)
	assert.Equal(t, 180, sanni.All)
	assert.Equal(t, 5, sanni.Streak) // Wed back to Saturday, across the week boundary

	femi := board.Rows[1]
	assert.Equal(t, uint(2), femi.UserID)
	assert.Equal(t, 60, femi.Exercise)
	assert.Equal(t, 1, femi.Streak) // nothing today yet: grace keeps yesterday's

	assert.Equal(t, 180, board.Max)
	assert.Equal(t, 100, sanni.StudyPercent)
	assert.Equal(t, 33, femi.ExercisePercent)
	assert.Equal(t, 0, femi.StudyPercent)
}

func TestGetBoardEmpty(t *testing.T) {
	svc := NewDashboardService(&stubActivitySource{}, nil, testConfig())

	board, err := svc.GetBoard(context.Background())
	require.NoError(t, err)
	assert.Empty(t, board.Rows)
	assert.Equal(t, 1, board.Max) // floored so bar math never divides by zero
}

func TestGetBoardPropagatesFetchError(t *testing.T) {
	source := &stubActivitySource{err: assert.AnError}
	svc := NewDashboardService(source, nil, testConfig())

	_, err := svc.GetBoard(context.Background())
	require.Error(t, err)
}
