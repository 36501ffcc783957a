package stats

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Sanni11/slapbook/internal/model"
)

// ErrUnknownCategory signals a record whose category is outside the closed
// study/skill/exercise set. Categories are validated when records are
// created, so hitting this during aggregation is a defect; the aggregators
// refuse to guess rather than silently dropping minutes from the totals.
var ErrUnknownCategory = errors.New("unknown activity category")

const dayKeyLayout = "2006-01-02"

// DayKey returns the calendar-day key for t in t's own location, zero-padded
// so keys sort lexicographically in chronological order. Two instants on the
// same calendar date map to the same key regardless of time of day.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// StartOfWeek returns midnight of the Monday on or before now, in now's
// location. Sunday belongs to the week that started six days earlier, not
// the upcoming one.
func StartOfWeek(now time.Time) time.Time {
	offset := 1 - int(now.Weekday())
	if now.Weekday() == time.Sunday {
		offset = -6
	}
	y, m, d := now.AddDate(0, 0, offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// Totals is one week's minutes broken down by category. All is always the
// exact sum of the three category fields.
type Totals struct {
	Study    int `json:"study"`
	Skill    int `json:"skill"`
	Exercise int `json:"exercise"`
	All      int `json:"all"`
}

func (t *Totals) add(category model.ActivityCategory, minutes int) error {
	switch category {
	case model.CategoryStudy:
		t.Study += minutes
	case model.CategorySkill:
		t.Skill += minutes
	case model.CategoryExercise:
		t.Exercise += minutes
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	t.All += minutes
	return nil
}

func minutesOf(r *model.ActivityRecord) int {
	if r.Minutes == nil {
		return 0
	}
	return *r.Minutes
}

// WeeklyTotals sums minutes per category over records with
// OccurredAt >= weekStart. The comparison is on the instant, not the
// calendar date: a record exactly at weekStart is included, and there is no
// upper bound. Nil minutes contribute zero.
func WeeklyTotals(records []model.ActivityRecord, weekStart time.Time) (Totals, error) {
	var totals Totals
	for i := range records {
		r := &records[i]
		if r.OccurredAt.Before(weekStart) {
			continue
		}
		if err := totals.add(r.Category, minutesOf(r)); err != nil {
			return Totals{}, err
		}
	}
	return totals, nil
}

// Streak counts consecutive active days ending at today, walking backward
// day by day over the set of distinct day keys in records. A user who has
// not logged anything yet today keeps yesterday's streak: the cursor steps
// back one day, once, before counting begins.
//
// The walk is bounded by the history the caller supplies; with fewer days of
// records than the true streak length the count is truncated.
func Streak(records []model.ActivityRecord, today time.Time) int {
	if len(records) == 0 {
		return 0
	}

	active := make(map[string]bool, len(records))
	for i := range records {
		active[DayKey(records[i].OccurredAt)] = true
	}

	y, m, d := today.Date()
	cursor := time.Date(y, m, d, 0, 0, 0, 0, today.Location())

	if !active[DayKey(cursor)] {
		cursor = cursor.AddDate(0, 0, -1)
	}

	count := 0
	for active[DayKey(cursor)] {
		count++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return count
}

// UserSummary is one user's weekly totals on the shared board.
type UserSummary struct {
	UserID   uint   `json:"userId"`
	Name     string `json:"displayName"`
	Username string `json:"username"`
	Totals
}

// ByUser groups the current week's records by owner and sums minutes per
// category. Output order is first-appearance order; display identity is
// captured from whichever of the owner's records shows up first, with
// "Unknown"/"unknown" placeholders when the record carries none. Callers
// wanting a sorted board sort the result themselves.
func ByUser(weeklyRecords []model.ActivityRecord) ([]UserSummary, error) {
	byOwner := make(map[uint]*UserSummary, 8)
	order := make([]uint, 0, 8)

	for i := range weeklyRecords {
		r := &weeklyRecords[i]
		summary, ok := byOwner[r.OwnerID]
		if !ok {
			summary = &UserSummary{
				UserID:   r.OwnerID,
				Name:     r.Owner.Name,
				Username: r.Owner.Username,
			}
			if summary.Name == "" {
				summary.Name = "Unknown"
			}
			if summary.Username == "" {
				summary.Username = "unknown"
			}
			byOwner[r.OwnerID] = summary
			order = append(order, r.OwnerID)
		}
		if err := summary.add(r.Category, minutesOf(r)); err != nil {
			return nil, err
		}
	}

	summaries := make([]UserSummary, 0, len(order))
	for _, id := range order {
		summaries = append(summaries, *byOwner[id])
	}
	return summaries, nil
}

// StreakByUser computes each owner's streak independently over the full
// (unwindowed) record set, so a streak spanning a week boundary still
// counts. All owners share the same "today".
func StreakByUser(records []model.ActivityRecord, today time.Time) map[uint]int {
	grouped := make(map[uint][]model.ActivityRecord, 8)
	for i := range records {
		grouped[records[i].OwnerID] = append(grouped[records[i].OwnerID], records[i])
	}

	streaks := make(map[uint]int, len(grouped))
	for ownerID, own := range grouped {
		streaks[ownerID] = Streak(own, today)
	}
	return streaks
}

// BarScale maps category values to bar widths for the dashboard chart.
type BarScale struct {
	Max int `json:"max"`
}

// NewBarScale derives the normalizer from the largest single category value
// across all users, floored at 1 so an empty board never divides by zero.
func NewBarScale(summaries []UserSummary) BarScale {
	max := 1
	for i := range summaries {
		for _, v := range [3]int{summaries[i].Study, summaries[i].Skill, summaries[i].Exercise} {
			if v > max {
				max = v
			}
		}
	}
	return BarScale{Max: max}
}

// Percent maps a category value to an integer 0..100. A value equal to Max
// yields exactly 100; values never exceed Max since Max is derived from the
// same summaries.
func (b BarScale) Percent(value int) int {
	return int(math.Round(float64(value) / float64(b.Max) * 100))
}
