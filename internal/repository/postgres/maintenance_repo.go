package postgres

import (
	"context"
	"fmt"
	"strings"

	"assetdesk/internal/models"
	"assetdesk/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MaintenanceRepo struct{ db *pgxpool.Pool }

func NewMaintenanceRepo(db *pgxpool.Pool) *MaintenanceRepo { return &MaintenanceRepo{db: db} }

func (r *MaintenanceRepo) List(ctx context.Context, f repository.MaintenanceFilter) ([]models.Maintenance, int, error) {
	limit, offset := clampPage(f.Limit, f.Offset)

	clauses := []string{"1=1"}
	args := []any{}

	if s := strings.TrimSpace(f.AssetID); s != "" {
		args = append(args, s)
		clauses = append(clauses, "asset_id = $"+itoa(len(args))+"::uuid")
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		args = append(args, s)
		clauses = append(clauses, "status = $"+itoa(len(args)))
	}
	whereSQL := "WHERE " + strings.Join(clauses, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM maintenance `+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	listSQL := fmt.Sprintf(`
		SELECT id, asset_id, description, status, scheduled_at, completed_at, created_at, updated_at
		FROM maintenance
		%s
		ORDER BY scheduled_at DESC
		LIMIT $%d OFFSET $%d
	`, whereSQL, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Maintenance
	for rows.Next() {
		var m models.Maintenance
		if err := rows.Scan(&m.ID, &m.AssetID, &m.Description, &m.Status, &m.ScheduledAt, &m.CompletedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

func (r *MaintenanceRepo) Get(ctx context.Context, id uuid.UUID) (*models.Maintenance, error) {
	var m models.Maintenance
	err := r.db.QueryRow(ctx, `
		SELECT id, asset_id, description, status, scheduled_at, completed_at, created_at, updated_at
		FROM maintenance WHERE id=$1`, id).
		Scan(&m.ID, &m.AssetID, &m.Description, &m.Status, &m.ScheduledAt, &m.CompletedAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MaintenanceRepo) Create(ctx context.Context, m *models.Maintenance) error {
	m.Status = "scheduled"
	return r.db.QueryRow(ctx, `
		INSERT INTO maintenance (asset_id, description, status, scheduled_at)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at, updated_at
	`, m.AssetID, m.Description, m.Status, m.ScheduledAt).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *MaintenanceRepo) Complete(ctx context.Context, id uuid.UUID) (*models.Maintenance, error) {
	var m models.Maintenance
	err := r.db.QueryRow(ctx, `
		UPDATE maintenance
		SET status='completed', completed_at=now(), updated_at=now()
		WHERE id=$1
		RETURNING id, asset_id, description, status, scheduled_at, completed_at, created_at, updated_at
	`, id).
		Scan(&m.ID, &m.AssetID, &m.Description, &m.Status, &m.ScheduledAt, &m.CompletedAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
