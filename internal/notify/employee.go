package notify

import (
	"context"
	"fmt"

	"assetdesk/internal/models"
)

// EmployeeEvent announces employee lifecycle changes. Recipient selection is
// delegated to the deliverer's policy.
func (n *Notifier) EmployeeEvent(ctx context.Context, op Op, e models.Employee) {
	switch op {
	case OpOnboard:
		body := fmt.Sprintf("%s has joined.", e.Name)
		if e.Department != "" {
			body = fmt.Sprintf("%s has joined the %s department.", e.Name, e.Department)
		}
		n.announce(ctx, Message{
			Type:       TypeEmployeeOnboarded,
			Title:      "Employee onboarded",
			Body:       body,
			EntityKind: "employee",
			EntityID:   e.ID,
		})
	case OpOffboard:
		n.announce(ctx, Message{
			Type:       TypeEmployeeOffboarded,
			Title:      "Employee offboarded",
			Body:       fmt.Sprintf("%s has been offboarded.", e.Name),
			EntityKind: "employee",
			EntityID:   e.ID,
		})
	}
}
