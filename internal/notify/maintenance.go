package notify

import (
	"context"
	"fmt"

	"assetdesk/internal/models"
)

// MaintenanceEvent notifies the user behind the asset's assigned employee
// about scheduled or completed maintenance. asset may be nil, in which case
// it is fetched. Any resolution failure logs and returns without sending.
func (n *Notifier) MaintenanceEvent(ctx context.Context, op Op, m models.Maintenance, asset *models.Asset) {
	a := n.asset(ctx, "maintenance", m.ID, asset, m.AssetID)
	if a == nil || a.AssignedTo == nil {
		return // nobody to tell
	}
	uid := n.employeeUser(ctx, "maintenance", m.ID, *a.AssignedTo)
	if uid == nil {
		return
	}

	var msg Message
	switch op {
	case OpSchedule:
		msg = Message{
			Type:       TypeMaintenanceScheduled,
			Title:      "Maintenance scheduled",
			Body:       fmt.Sprintf("Maintenance for asset %s (%s) is scheduled for %s.", a.Name, a.AssetTag, m.ScheduledAt.Format("2006-01-02")),
			EntityKind: "maintenance",
			EntityID:   m.ID,
		}
	case OpComplete:
		msg = Message{
			Type:       TypeMaintenanceCompleted,
			Title:      "Maintenance completed",
			Body:       fmt.Sprintf("Maintenance for asset %s (%s) has been completed.", a.Name, a.AssetTag),
			EntityKind: "maintenance",
			EntityID:   m.ID,
		}
	default:
		return
	}
	n.send(ctx, *uid, msg)
}
