package service

import (
	"time"

	"github.com/Sanni11/slapbook/internal/config"
	"github.com/Sanni11/slapbook/internal/model"
	"github.com/Sanni11/slapbook/internal/repository"
	"github.com/Sanni11/slapbook/internal/util"
	"github.com/Sanni11/slapbook/pkg/monitoring"
	"gorm.io/gorm"
)

// ActivityService handles logging and listing of activity records. Minutes
// and category are validated here, at creation time; the analytics layer
// assumes stored records are well formed.
type ActivityService struct {
	ActivityRepo *repository.ActivityRepository
	Cfg          *config.Config
}

func NewActivityService(activityRepo *repository.ActivityRepository, cfg *config.Config) *ActivityService {
	return &ActivityService{
		ActivityRepo: activityRepo,
		Cfg:          cfg,
	}
}

type ActivityRequest struct {
	Category   model.ActivityCategory `json:"category" binding:"required"`
	Minutes    *int                   `json:"minutes"`
	Title      string                 `json:"title" binding:"max=255"`
	OccurredAt *time.Time             `json:"occurredAt"`
}

func (s *ActivityService) LogActivity(userID uint, req ActivityRequest) (*model.ActivityRecord, error) {
	if !model.ValidCategory(req.Category) {
		return nil, util.ErrInvalidCategory
	}
	if req.Minutes != nil && *req.Minutes < 0 {
		return nil, util.ErrNegativeMinutes
	}

	occurredAt := time.Now()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	record := &model.ActivityRecord{
		OwnerID:    userID,
		Category:   req.Category,
		Minutes:    req.Minutes,
		Title:      req.Title,
		OccurredAt: occurredAt,
	}
	if err := s.ActivityRepo.Create(record); err != nil {
		return nil, err
	}

	monitoring.ActivityLogged.WithLabelValues(string(req.Category)).Inc()

	return record, nil
}

// ListMine returns the caller's records inside the configured lookback
// window, newest first.
func (s *ActivityService) ListMine(userID uint) ([]model.ActivityRecord, error) {
	since := time.Now().AddDate(0, 0, -s.Cfg.Stats.LookbackDays)
	return s.ActivityRepo.FindRecentByOwner(userID, since, s.Cfg.Stats.MaxRows)
}

func (s *ActivityService) Delete(userID uint, recordID string) error {
	record, err := s.ActivityRepo.FindByID(recordID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrActivityNotFound
		}
		return err
	}

	if record.OwnerID != userID {
		return util.ErrPermissionDenied
	}
	return s.ActivityRepo.Delete(recordID)
}
