package models

import (
	"time"

	"github.com/google/uuid"
)

type Ticket struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"` // Low | Medium | High | Critical
	Status      string     `json:"status"`   // Open | In Progress | Resolved | Closed
	AssignedTo  *uuid.UUID `json:"assignedTo"`  // user id
	SubmittedBy *uuid.UUID `json:"submittedBy"` // employee id
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// populated via JOIN on list/get
	AssigneeName  string `json:"assigneeName,omitempty"`
	AssigneeEmail string `json:"assigneeEmail,omitempty"`

	Comments []Comment `json:"comments,omitempty"`
}

type Comment struct {
	ID        uuid.UUID `json:"id"`
	TicketID  uuid.UUID `json:"ticketId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
