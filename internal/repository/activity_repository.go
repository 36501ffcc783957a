package repository

import (
	"time"

	"github.com/Sanni11/slapbook/internal/model"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Create(record *model.ActivityRecord) error {
	return r.DB.Create(record).Error
}

func (r *ActivityRepository) FindByID(id string) (*model.ActivityRecord, error) {
	var record model.ActivityRecord
	err := r.DB.Preload("Owner").First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindRecent returns everyone's records inside the lookback window, capped
// at limit rows, newest first, with owner identity denormalized onto each
// record. The aggregators do not depend on the ordering.
func (r *ActivityRepository) FindRecent(since time.Time, limit int) ([]model.ActivityRecord, error) {
	var records []model.ActivityRecord
	err := r.DB.Preload("Owner").
		Where("occurred_at >= ?", since).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// FindRecentByOwner is FindRecent restricted to a single owner.
func (r *ActivityRepository) FindRecentByOwner(ownerID uint, since time.Time, limit int) ([]model.ActivityRecord, error) {
	var records []model.ActivityRecord
	err := r.DB.Preload("Owner").
		Where("owner_id = ? AND occurred_at >= ?", ownerID, since).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *ActivityRepository) Delete(id string) error {
	return r.DB.Delete(&model.ActivityRecord{}, "id = ?", id).Error
}
