package models

import (
	"time"

	"github.com/google/uuid"
)

type Asset struct {
	ID         uuid.UUID  `json:"id"`
	AssetTag   string     `json:"assetTag"`
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Status     string     `json:"status"` // Available | Assigned | Maintenance | Retired
	AssignedTo *uuid.UUID `json:"assignedTo"` // employee id
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	// populated via JOIN on list/get
	AssignedName string `json:"assignedName,omitempty"`
}
