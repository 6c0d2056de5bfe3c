package notify

import (
	"context"
	"fmt"

	"assetdesk/internal/models"
)

// UpgradeEvent routes upgrade-request notifications. On request, the
// manager/admin audience is told a new request exists (audience selection is
// the deliverer's policy). On decision, the original requester's linked user
// gets an approved/rejected message naming the asset. decision is "approved"
// or "rejected" and only read for OpDecision.
func (n *Notifier) UpgradeEvent(ctx context.Context, op Op, u models.Upgrade, decision string, asset *models.Asset) {
	switch op {
	case OpRequest:
		n.announce(ctx, Message{
			Type:       TypeUpgradeRequested,
			Title:      "New upgrade request",
			Body:       fmt.Sprintf("Upgrade request %q is awaiting a decision.", u.Title),
			EntityKind: "upgrade",
			EntityID:   u.ID,
		})

	case OpDecision:
		a := n.asset(ctx, "upgrade", u.ID, asset, u.AssetID)
		assetName := "the asset"
		if a != nil {
			assetName = fmt.Sprintf("%s (%s)", a.Name, a.AssetTag)
		}
		uid := n.employeeUser(ctx, "upgrade", u.ID, u.RequestedBy)
		if uid == nil {
			return
		}
		msg := Message{
			Type:       TypeUpgradeApproved,
			Title:      "Upgrade request approved",
			Body:       fmt.Sprintf("Your upgrade request %q for %s was approved.", u.Title, assetName),
			EntityKind: "upgrade",
			EntityID:   u.ID,
		}
		if decision != "approved" {
			msg.Type = TypeUpgradeRejected
			msg.Title = "Upgrade request rejected"
			msg.Body = fmt.Sprintf("Your upgrade request %q for %s was rejected.", u.Title, assetName)
		}
		n.send(ctx, *uid, msg)
	}
}
