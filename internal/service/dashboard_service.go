package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Sanni11/slapbook/internal/config"
	"github.com/Sanni11/slapbook/internal/model"
	"github.com/Sanni11/slapbook/internal/stats"
	"github.com/go-redis/redis/v8"
)

// ActivitySource is the slice of the activity repository the dashboard
// needs: a bounded snapshot of records, everyone's or one owner's.
type ActivitySource interface {
	FindRecent(since time.Time, limit int) ([]model.ActivityRecord, error)
	FindRecentByOwner(ownerID uint, since time.Time, limit int) ([]model.ActivityRecord, error)
}

// DashboardService derives weekly totals, streaks and the multi-user board
// from activity snapshots. Every call recomputes from a fresh snapshot;
// there is no incremental state, only an optional short-lived Redis cache of
// the rendered board.
type DashboardService struct {
	Source ActivitySource
	Redis  *redis.Client
	Cfg    *config.Config
	now    func() time.Time
}

func NewDashboardService(source ActivitySource, rdb *redis.Client, cfg *config.Config) *DashboardService {
	return &DashboardService{
		Source: source,
		Redis:  rdb,
		Cfg:    cfg,
		now:    time.Now,
	}
}

// ProfileStats is one user's weekly breakdown plus their current streak.
type ProfileStats struct {
	Weekly stats.Totals `json:"weekly"`
	Streak int          `json:"streak"`
}

// BoardRow is one user's line on the shared dashboard: weekly totals, their
// streak over full history, and per-category bar widths.
type BoardRow struct {
	stats.UserSummary
	Streak          int `json:"streak"`
	StudyPercent    int `json:"studyPercent"`
	SkillPercent    int `json:"skillPercent"`
	ExercisePercent int `json:"exercisePercent"`
}

type Board struct {
	Rows        []BoardRow `json:"rows"`
	Max         int        `json:"max"`
	GeneratedAt time.Time  `json:"generatedAt"`
}

const boardCacheKey = "dashboard:board"

func (s *DashboardService) snapshotSince() time.Time {
	return s.now().AddDate(0, 0, -s.Cfg.Stats.LookbackDays)
}

// GetProfileStats computes the caller's weekly totals and streak from a
// fresh single-owner snapshot.
func (s *DashboardService) GetProfileStats(userID uint) (*ProfileStats, error) {
	records, err := s.Source.FindRecentByOwner(userID, s.snapshotSince(), s.Cfg.Stats.MaxRows)
	if err != nil {
		return nil, err
	}

	now := s.now()
	weekly, err := stats.WeeklyTotals(records, stats.StartOfWeek(now))
	if err != nil {
		return nil, err
	}

	return &ProfileStats{
		Weekly: weekly,
		Streak: stats.Streak(records, now),
	}, nil
}

// GetBoard builds the multi-user dashboard. Weekly totals are grouped over
// the current week's records only; streaks run over the whole lookback
// snapshot so a streak spanning the week boundary still counts. The
// rendered board is cached in Redis for a few seconds.
func (s *DashboardService) GetBoard(ctx context.Context) (*Board, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, boardCacheKey).Bytes(); err == nil {
			var board Board
			if json.Unmarshal(cached, &board) == nil {
				return &board, nil
			}
		}
	}

	all, err := s.Source.FindRecent(s.snapshotSince(), s.Cfg.Stats.MaxRows)
	if err != nil {
		return nil, err
	}

	now := s.now()
	weekStart := stats.StartOfWeek(now)

	weekly := make([]model.ActivityRecord, 0, len(all))
	for i := range all {
		if !all[i].OccurredAt.Before(weekStart) {
			weekly = append(weekly, all[i])
		}
	}

	summaries, err := stats.ByUser(weekly)
	if err != nil {
		return nil, err
	}
	streaks := stats.StreakByUser(all, now)
	scale := stats.NewBarScale(summaries)

	board := &Board{
		Rows:        make([]BoardRow, len(summaries)),
		Max:         scale.Max,
		GeneratedAt: now,
	}
	for i, summary := range summaries {
		board.Rows[i] = BoardRow{
			UserSummary:     summary,
			Streak:          streaks[summary.UserID],
			StudyPercent:    scale.Percent(summary.Study),
			SkillPercent:    scale.Percent(summary.Skill),
			ExercisePercent: scale.Percent(summary.Exercise),
		}
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(board); err == nil {
			ttl := time.Duration(s.Cfg.Stats.CacheTTLSeconds) * time.Second
			s.Redis.Set(ctx, boardCacheKey, payload, ttl)
		}
	}

	return board, nil
}
