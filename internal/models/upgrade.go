package models

import (
	"time"

	"github.com/google/uuid"
)

type Upgrade struct {
	ID            uuid.UUID  `json:"id"`
	AssetID       uuid.UUID  `json:"assetId"`
	RequestedBy   uuid.UUID  `json:"requestedBy"` // employee id
	Title         string     `json:"title"`
	Justification string     `json:"justification"`
	Status        string     `json:"status"` // pending | approved | rejected
	DecidedAt     *time.Time `json:"decidedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
