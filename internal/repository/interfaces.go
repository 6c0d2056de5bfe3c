package repository

import (
	"context"

	"github.com/google/uuid"

	"assetdesk/internal/models"
)

type TicketRepository interface {
	List(ctx context.Context, f TicketFilter) ([]models.Ticket, int, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Ticket, error)
	Create(ctx context.Context, t *models.Ticket) error
	Update(ctx context.Context, t *models.Ticket) error
	AddComment(ctx context.Context, ticketID uuid.UUID, text string) (*models.Comment, error)
}

type UserRepository interface {
	Create(ctx context.Context, email, name, role, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, string /*passwordHash*/, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, q, role string, active *bool, limit, offset int) ([]models.User, int, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.User, error)
	UpdateBasic(ctx context.Context, id uuid.UUID, name string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
	FirstActiveAdminID(ctx context.Context) (uuid.UUID, error)
}

type EmployeeRepository interface {
	List(ctx context.Context, f EmployeeFilter) ([]models.Employee, int, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	Create(ctx context.Context, e *models.Employee) error
	Update(ctx context.Context, e *models.Employee) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) (*models.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AssetRepository interface {
	List(ctx context.Context, f AssetFilter) ([]models.Asset, int, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Asset, error)
	Create(ctx context.Context, a *models.Asset) error
	Update(ctx context.Context, a *models.Asset) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type MaintenanceRepository interface {
	List(ctx context.Context, f MaintenanceFilter) ([]models.Maintenance, int, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Maintenance, error)
	Create(ctx context.Context, m *models.Maintenance) error
	Complete(ctx context.Context, id uuid.UUID) (*models.Maintenance, error)
}

type UpgradeRepository interface {
	List(ctx context.Context, f UpgradeFilter) ([]models.Upgrade, int, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Upgrade, error)
	Create(ctx context.Context, u *models.Upgrade) error
	Decide(ctx context.Context, id uuid.UUID, status string) (*models.Upgrade, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]models.Notification, int, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}
