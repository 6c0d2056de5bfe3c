package models

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	EntityKind string    `json:"entityKind"`
	EntityID   uuid.UUID `json:"entityId"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}
