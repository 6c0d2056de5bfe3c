// Package notify decides, on entity state changes, which users to notify and
// with which message. It is best-effort by contract: every lookup and delivery
// call is individually guarded, failures are logged and dropped, and nothing
// propagates back to the write path that triggered the change.
package notify

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"assetdesk/internal/models"
)

// Op tags the entity operation that triggered a handler call.
type Op string

const (
	OpCreate   Op = "create"
	OpUpdate   Op = "update"
	OpCheckOut Op = "check-out"
	OpCheckIn  Op = "check-in"
	OpSchedule Op = "schedule"
	OpComplete Op = "complete"
	OpRequest  Op = "request"
	OpDecision Op = "decision"
	OpOnboard  Op = "onboard"
	OpOffboard Op = "offboard"
)

// Message types, stored on the notification row and used by clients to pick
// an icon/route.
const (
	TypeTicketAssigned       = "ticket_assigned"
	TypeTicketUrgent         = "ticket_urgent"
	TypeTicketStatus         = "ticket_status"
	TypeAssetAssigned        = "asset_assigned"
	TypeAssetCheckedOut      = "asset_checked_out"
	TypeAssetCheckedIn       = "asset_checked_in"
	TypeMaintenanceScheduled = "maintenance_scheduled"
	TypeMaintenanceCompleted = "maintenance_completed"
	TypeUpgradeRequested     = "upgrade_requested"
	TypeUpgradeApproved      = "upgrade_approved"
	TypeUpgradeRejected      = "upgrade_rejected"
	TypeEmployeeOnboarded    = "employee_onboarded"
	TypeEmployeeOffboarded   = "employee_offboarded"
)

// urgentPriorities is the fixed set of ticket priorities that route to the
// urgent message variant.
var urgentPriorities = map[string]struct{}{
	"High":     {},
	"Critical": {},
}

// Message is one notification request handed to the Deliverer.
type Message struct {
	Type       string
	Title      string
	Body       string
	EntityKind string
	EntityID   uuid.UUID
}

// Directory resolves ids to records. Implemented over the employee and asset
// repositories in production; tests supply a fake.
type Directory interface {
	EmployeeByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	AssetByID(ctx context.Context, id uuid.UUID) (*models.Asset, error)
}

// Deliverer persists/delivers notifications. Audience resolution for Announce
// is the deliverer's own policy.
type Deliverer interface {
	Notify(ctx context.Context, userID uuid.UUID, msg Message) error
	NotifyRole(ctx context.Context, role string, msg Message) error
	Announce(ctx context.Context, msg Message) error
}

// Notifier routes entity changes to notifications.
type Notifier struct {
	dir Directory
	out Deliverer
	log zerolog.Logger
}

func New(dir Directory, out Deliverer, log zerolog.Logger) *Notifier {
	return &Notifier{dir: dir, out: out, log: log}
}

// send delivers to one user, logging instead of returning on failure.
func (n *Notifier) send(ctx context.Context, userID uuid.UUID, msg Message) {
	if err := n.out.Notify(ctx, userID, msg); err != nil {
		n.log.Warn().Err(err).
			Str("entity", msg.EntityKind).
			Stringer("id", msg.EntityID).
			Stringer("user", userID).
			Msg("notification dropped")
	}
}

// announce hands audience selection to the deliverer, logging on failure.
func (n *Notifier) announce(ctx context.Context, msg Message) {
	if err := n.out.Announce(ctx, msg); err != nil {
		n.log.Warn().Err(err).
			Str("entity", msg.EntityKind).
			Stringer("id", msg.EntityID).
			Msg("announcement dropped")
	}
}

// employeeUser resolves an employee id to its linked user id. A nil result
// means "no addressable recipient" — either the lookup failed (logged) or
// the employee has no login account, which is accepted behavior.
func (n *Notifier) employeeUser(ctx context.Context, kind string, entityID, employeeID uuid.UUID) *uuid.UUID {
	emp, err := n.dir.EmployeeByID(ctx, employeeID)
	if err != nil {
		n.log.Warn().Err(err).
			Str("entity", kind).
			Stringer("id", entityID).
			Stringer("employee", employeeID).
			Msg("employee lookup failed, notification dropped")
		return nil
	}
	if emp == nil || emp.UserID == nil {
		return nil
	}
	return emp.UserID
}

// asset returns the supplied asset, fetching it when absent. Nil means the
// asset could not be resolved (logged when the lookup errored).
func (n *Notifier) asset(ctx context.Context, kind string, entityID uuid.UUID, supplied *models.Asset, assetID uuid.UUID) *models.Asset {
	if supplied != nil {
		return supplied
	}
	a, err := n.dir.AssetByID(ctx, assetID)
	if err != nil {
		n.log.Warn().Err(err).
			Str("entity", kind).
			Stringer("id", entityID).
			Stringer("asset", assetID).
			Msg("asset lookup failed, notification dropped")
		return nil
	}
	return a
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// byLine names the acting user for message bodies; empty when unknown.
func byLine(actor *models.User) string {
	if actor == nil || actor.Name == "" {
		return ""
	}
	return " by " + actor.Name
}
