package model

import "time"

type ActivityCategory string

const (
	CategoryStudy    ActivityCategory = "study"
	CategorySkill    ActivityCategory = "skill"
	CategoryExercise ActivityCategory = "exercise"
)

// ValidCategory reports whether c is one of the three known categories.
// Category is validated at creation time; the aggregators treat anything
// else as a defect.
func ValidCategory(c ActivityCategory) bool {
	switch c {
	case CategoryStudy, CategorySkill, CategoryExercise:
		return true
	}
	return false
}

// ActivityRecord is one logged block of activity minutes. Minutes is a
// pointer because the field is optional: nil counts as zero in every
// aggregation. OccurredAt is the source of truth for both week and day
// bucketing.
type ActivityRecord struct {
	UUIDBase
	OwnerID    uint             `gorm:"index;type:bigint unsigned;not null" json:"ownerId"`
	Owner      User             `gorm:"foreignKey:OwnerID" json:"owner"`
	Category   ActivityCategory `gorm:"size:20;not null;index" json:"category"`
	Minutes    *int             `json:"minutes"`
	Title      string           `gorm:"size:255" json:"title"`
	OccurredAt time.Time        `gorm:"not null;index" json:"occurredAt"`
}

func (ActivityRecord) TableName() string {
	return "activity_records"
}
