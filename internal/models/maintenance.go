package models

import (
	"time"

	"github.com/google/uuid"
)

type Maintenance struct {
	ID          uuid.UUID  `json:"id"`
	AssetID     uuid.UUID  `json:"assetId"`
	Description string     `json:"description"`
	Status      string     `json:"status"` // scheduled | completed
	ScheduledAt time.Time  `json:"scheduledAt"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
