package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"assetdesk/internal/models"
)

// AssetChanged routes notifications for a created, updated, checked-out or
// checked-in asset. prev is nil on create.
func (n *Notifier) AssetChanged(ctx context.Context, op Op, cur models.Asset, prev *models.Asset, actor *models.User) {
	var prevAssigned *uuid.UUID
	if prev != nil {
		prevAssigned = prev.AssignedTo
	}

	// Assignment notification when the assigned employee changed.
	if cur.AssignedTo != nil && !sameID(cur.AssignedTo, prevAssigned) {
		if uid := n.employeeUser(ctx, "asset", cur.ID, *cur.AssignedTo); uid != nil {
			n.send(ctx, *uid, Message{
				Type:       TypeAssetAssigned,
				Title:      "Asset assigned to you",
				Body:       fmt.Sprintf("Asset %s (%s) was assigned to you%s.", cur.Name, cur.AssetTag, byLine(actor)),
				EntityKind: "asset",
				EntityID:   cur.ID,
			})
		}
	}

	if op != OpCheckOut && op != OpCheckIn {
		return
	}

	// Transaction notification for the employee on the asset. A check-in
	// clears the assignment, so the recipient comes from the previous row.
	empID := cur.AssignedTo
	if op == OpCheckIn && empID == nil {
		empID = prevAssigned
	}
	if empID == nil {
		return
	}
	uid := n.employeeUser(ctx, "asset", cur.ID, *empID)
	if uid == nil {
		return
	}

	msg := Message{
		Type:       TypeAssetCheckedOut,
		Title:      "Asset checked out",
		Body:       fmt.Sprintf("Asset %s (%s) was checked out to you%s.", cur.Name, cur.AssetTag, byLine(actor)),
		EntityKind: "asset",
		EntityID:   cur.ID,
	}
	if op == OpCheckIn {
		msg.Type = TypeAssetCheckedIn
		msg.Title = "Asset checked in"
		msg.Body = fmt.Sprintf("Asset %s (%s) was checked in%s.", cur.Name, cur.AssetTag, byLine(actor))
	}
	n.send(ctx, *uid, msg)
}
