package notify

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"assetdesk/internal/events"
	"assetdesk/internal/models"
	"assetdesk/internal/repository"
)

// Pusher delivers real-time notifications (e.g. WebSocket). Implemented by
// ws.Hub; nil disables push.
type Pusher interface {
	Push(userID uuid.UUID, payload any)
}

// Mailer sends plain-text e-mail. nil disables mail.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Delivery is the production Deliverer: it persists the notification row,
// then best-effort pushes it over WebSocket, mails the recipient, and
// publishes a bus event. Only the row persist is reported back; the other
// legs are logged and dropped on failure.
type Delivery struct {
	repo  repository.NotificationRepository
	users repository.UserRepository
	push  Pusher
	mail  Mailer
	bus   *events.Publisher
	log   zerolog.Logger
}

func NewDelivery(
	repo repository.NotificationRepository,
	users repository.UserRepository,
	push Pusher,
	mail Mailer,
	bus *events.Publisher,
	log zerolog.Logger,
) *Delivery {
	return &Delivery{repo: repo, users: users, push: push, mail: mail, bus: bus, log: log}
}

func (d *Delivery) Notify(ctx context.Context, userID uuid.UUID, msg Message) error {
	row := &models.Notification{
		UserID:     userID,
		Type:       msg.Type,
		Title:      msg.Title,
		Message:    msg.Body,
		EntityKind: msg.EntityKind,
		EntityID:   msg.EntityID,
	}
	if err := d.repo.Create(ctx, row); err != nil {
		return err
	}

	if d.push != nil {
		d.push.Push(userID, row)
	}

	if d.mail != nil {
		if u, err := d.users.GetByID(ctx, userID); err != nil {
			d.log.Warn().Err(err).Stringer("user", userID).Msg("mail recipient lookup failed")
		} else if u != nil && u.Email != "" {
			if err := d.mail.Send(ctx, u.Email, msg.Title, msg.Body); err != nil {
				d.log.Warn().Err(err).Str("to", u.Email).Msg("notification mail failed")
			}
		}
	}

	d.bus.Publish("notification", "created", row.ID.String(), row)
	return nil
}

// NotifyRole fans out to every active user holding the role. Individual
// deliveries are best-effort.
func (d *Delivery) NotifyRole(ctx context.Context, role string, msg Message) error {
	active := true
	users, _, err := d.users.List(ctx, "", role, &active, 200, 0)
	if err != nil {
		return err
	}
	for _, u := range users {
		if err := d.Notify(ctx, u.ID, msg); err != nil {
			d.log.Warn().Err(err).Stringer("user", u.ID).Str("role", role).Msg("fanout delivery failed")
		}
	}
	return nil
}

// Announce implements the delivery-side audience policy: lifecycle and
// request announcements go to admins and managers.
func (d *Delivery) Announce(ctx context.Context, msg Message) error {
	for _, role := range []string{"admin", "manager"} {
		if err := d.NotifyRole(ctx, role, msg); err != nil {
			d.log.Warn().Err(err).Str("role", role).Msg("announce fanout failed")
		}
	}
	return nil
}
