package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"assetdesk/internal/models"
	"assetdesk/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AssetRepo struct{ db *pgxpool.Pool }

func NewAssetRepo(db *pgxpool.Pool) *AssetRepo { return &AssetRepo{db: db} }

func (r *AssetRepo) List(ctx context.Context, f repository.AssetFilter) ([]models.Asset, int, error) {
	limit, offset := clampPage(f.Limit, f.Offset)

	clauses := []string{"1=1"}
	args := []any{}

	if s := strings.TrimSpace(f.Q); s != "" {
		p := "%" + s + "%"
		args = append(args, p, p)
		clauses = append(clauses, "(a.name ILIKE $"+itoa(len(args)-1)+" OR a.asset_tag ILIKE $"+itoa(len(args))+")")
	}
	if s := strings.TrimSpace(f.Category); s != "" {
		args = append(args, s)
		clauses = append(clauses, "a.category = $"+itoa(len(args)))
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		args = append(args, s)
		clauses = append(clauses, "a.status = $"+itoa(len(args)))
	}
	if s := strings.TrimSpace(f.Assignee); s != "" {
		args = append(args, s)
		clauses = append(clauses, "a.assigned_to = $"+itoa(len(args))+"::uuid")
	}
	whereSQL := "WHERE " + strings.Join(clauses, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM assets a `+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortCol := sanitizeSort(f.Sort, "updated_at", "created_at", "updated_at", "asset_tag")
	sortOrd := sanitizeOrder(f.Order, "desc")

	args = append(args, limit, offset)
	listSQL := fmt.Sprintf(`
		SELECT
			a.id, a.asset_tag, a.name, a.category, a.status, a.assigned_to,
			a.created_at, a.updated_at, COALESCE(e.name, '')
		FROM assets a
		LEFT JOIN employees e ON e.id = a.assigned_to
		%s
		ORDER BY a.%s %s
		LIMIT $%d OFFSET $%d
	`, whereSQL, sortCol, sortOrd, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.ID, &a.AssetTag, &a.Name, &a.Category, &a.Status, &a.AssignedTo, &a.CreatedAt, &a.UpdatedAt, &a.AssignedName); err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

func (r *AssetRepo) Get(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	var a models.Asset
	err := r.db.QueryRow(ctx, `
		SELECT
			a.id, a.asset_tag, a.name, a.category, a.status, a.assigned_to,
			a.created_at, a.updated_at, COALESCE(e.name, '')
		FROM assets a
		LEFT JOIN employees e ON e.id = a.assigned_to
		WHERE a.id = $1
	`, id).Scan(&a.ID, &a.AssetTag, &a.Name, &a.Category, &a.Status, &a.AssignedTo, &a.CreatedAt, &a.UpdatedAt, &a.AssignedName)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AssetRepo) Create(ctx context.Context, a *models.Asset) error {
	if a.Status == "" {
		a.Status = "Available"
	}
	return r.db.QueryRow(ctx, `
		INSERT INTO assets (asset_tag, name, category, status, assigned_to)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at, updated_at
	`, a.AssetTag, a.Name, a.Category, a.Status, a.AssignedTo).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AssetRepo) Update(ctx context.Context, a *models.Asset) error {
	a.UpdatedAt = time.Now()
	ct, err := r.db.Exec(ctx, `
		UPDATE assets SET
			asset_tag=$1, name=$2, category=$3, status=$4, assigned_to=$5, updated_at=$6
		WHERE id=$7
	`, a.AssetTag, a.Name, a.Category, a.Status, a.AssignedTo, a.UpdatedAt, a.ID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *AssetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM assets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
