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

type UpgradeRepo struct{ db *pgxpool.Pool }

func NewUpgradeRepo(db *pgxpool.Pool) *UpgradeRepo { return &UpgradeRepo{db: db} }

func (r *UpgradeRepo) List(ctx context.Context, f repository.UpgradeFilter) ([]models.Upgrade, int, error) {
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
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM upgrades `+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	listSQL := fmt.Sprintf(`
		SELECT id, asset_id, requested_by, title, justification, status, decided_at, created_at, updated_at
		FROM upgrades
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereSQL, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Upgrade
	for rows.Next() {
		var u models.Upgrade
		if err := rows.Scan(&u.ID, &u.AssetID, &u.RequestedBy, &u.Title, &u.Justification, &u.Status, &u.DecidedAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (r *UpgradeRepo) Get(ctx context.Context, id uuid.UUID) (*models.Upgrade, error) {
	var u models.Upgrade
	err := r.db.QueryRow(ctx, `
		SELECT id, asset_id, requested_by, title, justification, status, decided_at, created_at, updated_at
		FROM upgrades WHERE id=$1`, id).
		Scan(&u.ID, &u.AssetID, &u.RequestedBy, &u.Title, &u.Justification, &u.Status, &u.DecidedAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UpgradeRepo) Create(ctx context.Context, u *models.Upgrade) error {
	u.Status = "pending"
	return r.db.QueryRow(ctx, `
		INSERT INTO upgrades (asset_id, requested_by, title, justification, status)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at, updated_at
	`, u.AssetID, u.RequestedBy, u.Title, u.Justification, u.Status).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

// Decide transitions a pending request to approved or rejected. Returns nil
// when the request does not exist or was already decided.
func (r *UpgradeRepo) Decide(ctx context.Context, id uuid.UUID, status string) (*models.Upgrade, error) {
	var u models.Upgrade
	err := r.db.QueryRow(ctx, `
		UPDATE upgrades
		SET status=$1, decided_at=now(), updated_at=now()
		WHERE id=$2 AND status='pending'
		RETURNING id, asset_id, requested_by, title, justification, status, decided_at, created_at, updated_at
	`, status, id).
		Scan(&u.ID, &u.AssetID, &u.RequestedBy, &u.Title, &u.Justification, &u.Status, &u.DecidedAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
