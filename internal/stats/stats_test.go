package stats

import (
	"testing"
	"time"

	"github.com/Sanni11/slapbook/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mins(n int) *int { return &n }

func record(owner uint, category model.ActivityCategory, minutes *int, at time.Time) model.ActivityRecord {
	return model.ActivityRecord{
		OwnerID:    owner,
		Owner:      model.User{BaseModel: model.BaseModel{ID: owner}},
		Category:   category,
		Minutes:    minutes,
		OccurredAt: at,
	}
}

func namedRecord(owner uint, name, username string, category model.ActivityCategory, minutes *int, at time.Time) model.ActivityRecord {
	r := record(owner, category, minutes, at)
	r.Owner.Name = name
	r.Owner.Username = username
	return r
}

func TestDayKey(t *testing.T) {
	morning := time.Date(2025, 3, 5, 0, 1, 0, 0, time.UTC)
	night := time.Date(2025, 3, 5, 23, 59, 59, 0, time.UTC)
	nextDay := time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-03-05", DayKey(morning))
	assert.Equal(t, DayKey(morning), DayKey(night))
	assert.NotEqual(t, DayKey(night), DayKey(nextDay))

	// Zero padding keeps lexicographic order chronological.
	assert.Less(t, DayKey(time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)),
		DayKey(time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)))
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "wednesday maps to monday of the same week",
			now:  time.Date(2025, 3, 5, 14, 30, 0, 0, time.UTC), // Wed
			want: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday maps to itself at midnight",
			now:  time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC),
			want: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday maps six days back, not forward",
			now:  time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC), // Sun
			want: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "saturday maps five days back",
			now:  time.Date(2025, 3, 8, 1, 0, 0, 0, time.UTC), // Sat
			want: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfWeek(tt.now)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			assert.Equal(t, time.Monday, got.Weekday())
		})
	}
}

func TestWeeklyTotals(t *testing.T) {
	weekStart := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	records := []model.ActivityRecord{
		record(1, model.CategoryStudy, mins(30), weekStart.Add(2*time.Hour)),
		record(1, model.CategorySkill, mins(45), weekStart.AddDate(0, 0, 1)),
		record(1, model.CategoryExercise, mins(20), weekStart.AddDate(0, 0, 2)),
		record(1, model.CategoryStudy, mins(10), weekStart), // exactly at the boundary: included
		record(1, model.CategoryStudy, nil, weekStart.AddDate(0, 0, 3)),              // nil minutes count as zero
		record(1, model.CategoryStudy, mins(999), weekStart.Add(-time.Nanosecond)),   // before the week: excluded
		record(1, model.CategorySkill, mins(15), weekStart.AddDate(0, 0, 9)),         // future-dated: included
	}

	totals, err := WeeklyTotals(records, weekStart)
	require.NoError(t, err)

	assert.Equal(t, 40, totals.Study)
	assert.Equal(t, 60, totals.Skill)
	assert.Equal(t, 20, totals.Exercise)
	assert.Equal(t, totals.Study+totals.Skill+totals.Exercise, totals.All)

	// Idempotence: same inputs, same result.
	again, err := WeeklyTotals(records, weekStart)
	require.NoError(t, err)
	assert.Equal(t, totals, again)
}

func TestWeeklyTotalsEmpty(t *testing.T) {
	totals, err := WeeklyTotals(nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, Totals{}, totals)
}

func TestWeeklyTotalsUnknownCategory(t *testing.T) {
	weekStart := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	records := []model.ActivityRecord{
		record(1, model.ActivityCategory("yoga"), mins(30), weekStart.Add(time.Hour)),
	}

	_, err := WeeklyTotals(records, weekStart)
	require.ErrorIs(t, err, ErrUnknownCategory)
}

func TestStreakGraceRule(t *testing.T) {
	today := time.Date(2025, 3, 5, 16, 0, 0, 0, time.UTC)

	// Active yesterday and the day before, nothing yet today.
	records := []model.ActivityRecord{
		record(1, model.CategoryStudy, mins(30), today.AddDate(0, 0, -1)),
		record(1, model.CategorySkill, mins(10), today.AddDate(0, 0, -2)),
	}

	assert.Equal(t, 2, Streak(records, today))
}

func TestStreakGapTermination(t *testing.T) {
	today := time.Date(2025, 3, 5, 16, 0, 0, 0, time.UTC)

	// Today, yesterday, then a gap at two days ago.
	records := []model.ActivityRecord{
		record(1, model.CategoryStudy, mins(30), today),
		record(1, model.CategoryStudy, mins(30), today.AddDate(0, 0, -1)),
		record(1, model.CategoryStudy, mins(30), today.AddDate(0, 0, -3)),
	}

	assert.Equal(t, 2, Streak(records, today))
}

func TestStreakGraceIsSingleStep(t *testing.T) {
	today := time.Date(2025, 3, 5, 16, 0, 0, 0, time.UTC)

	// Nothing today, nothing yesterday: the grace step back happens once,
	// so the streak from two days ago does not survive.
	records := []model.ActivityRecord{
		record(1, model.CategoryStudy, mins(30), today.AddDate(0, 0, -2)),
		record(1, model.CategoryStudy, mins(30), today.AddDate(0, 0, -3)),
	}

	assert.Equal(t, 0, Streak(records, today))
}

func TestStreakMultipleRecordsSameDay(t *testing.T) {
	today := time.Date(2025, 3, 5, 16, 0, 0, 0, time.UTC)

	records := []model.ActivityRecord{
		record(1, model.CategoryStudy, mins(30), today.Add(-2*time.Hour)),
		record(1, model.CategorySkill, mins(15), today.Add(-5*time.Hour)),
		record(1, model.CategoryExercise, mins(20), today.AddDate(0, 0, -1)),
	}

	assert.Equal(t, 2, Streak(records, today))
}

func TestStreakEmpty(t *testing.T) {
	assert.Equal(t, 0, Streak(nil, time.Now()))
	assert.Equal(t, 0, Streak([]model.ActivityRecord{}, time.Now()))
}

func TestByUser(t *testing.T) {
	weekStart := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	records := []model.ActivityRecord{
		namedRecord(1, "Sanni", "sanni", model.CategoryStudy, mins(30), weekStart.Add(time.Hour)),
		namedRecord(2, "Femi", "femi", model.CategoryExercise, mins(40), weekStart.Add(2*time.Hour)),
		namedRecord(1, "Sanni", "sanni", model.CategorySkill, mins(20), weekStart.AddDate(0, 0, 1)),
		namedRecord(2, "Femi", "femi", model.CategoryExercise, mins(10), weekStart.AddDate(0, 0, 2)),
	}

	summaries, err := ByUser(records)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// First-appearance order.
	assert.Equal(t, uint(1), summaries[0].UserID)
	assert.Equal(t, "Sanni", summaries[0].Name)
	assert.Equal(t, "sanni", summaries[0].Username)
	assert.Equal(t, 30, summaries[0].Study)
	assert.Equal(t, 20, summaries[0].Skill)
	assert.Equal(t, 50, summaries[0].All)

	assert.Equal(t, uint(2), summaries[1].UserID)
	assert.Equal(t, 50, summaries[1].Exercise)
	assert.Equal(t, 50, summaries[1].All)
}

func TestByUserMissingIdentity(t *testing.T) {
	at := time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)
	records := []model.ActivityRecord{
		record(7, model.CategoryStudy, mins(5), at),
	}

	summaries, err := ByUser(records)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Unknown", summaries[0].Name)
	assert.Equal(t, "unknown", summaries[0].Username)
}

func TestByUserEmpty(t *testing.T) {
	summaries, err := ByUser(nil)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestStreakByUserCrossesWeekBoundary(t *testing.T) {
	// Wednesday; owner 1's streak started the previous week.
	today := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)

	records := []model.ActivityRecord{
		record(1, model.CategoryStudy, mins(30), today),
		record(1, model.CategoryStudy, mins(30), today.AddDate(0, 0, -1)),
		record(1, model.CategoryStudy, mins(30), today.AddDate(0, 0, -2)), // Monday
		record(1, model.CategoryStudy, mins(30), today.AddDate(0, 0, -3)), // previous week
		record(1, model.CategoryStudy, mins(30), today.AddDate(0, 0, -4)),
		record(2, model.CategorySkill, mins(15), today.AddDate(0, 0, -1)),
	}

	streaks := StreakByUser(records, today)
	require.Len(t, streaks, 2)
	assert.Equal(t, 5, streaks[1])
	assert.Equal(t, 1, streaks[2]) // grace rule: nothing today, yesterday counts
}

func TestBarScale(t *testing.T) {
	summaries := []UserSummary{
		{UserID: 1, Totals: Totals{Study: 120, Skill: 30, Exercise: 0, All: 150}},
		{UserID: 2, Totals: Totals{Study: 60, Skill: 90, Exercise: 45, All: 195}},
	}

	scale := NewBarScale(summaries)
	assert.Equal(t, 120, scale.Max)

	// The true maximum maps to exactly 100, everything stays in [0, 100].
	assert.Equal(t, 100, scale.Percent(120))
	assert.Equal(t, 0, scale.Percent(0))
	for _, s := range summaries {
		for _, v := range []int{s.Study, s.Skill, s.Exercise} {
			p := scale.Percent(v)
			assert.GreaterOrEqual(t, p, 0)
			assert.LessOrEqual(t, p, 100)
		}
	}

	assert.Equal(t, 25, scale.Percent(30))
	assert.Equal(t, 38, scale.Percent(45)) // 37.5 rounds half up
}

func TestBarScaleEmptyFloorsMaxAtOne(t *testing.T) {
	scale := NewBarScale(nil)
	assert.Equal(t, 1, scale.Max)
	assert.Equal(t, 0, scale.Percent(0))
}
