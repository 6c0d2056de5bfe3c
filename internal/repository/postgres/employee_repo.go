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

type EmployeeRepo struct{ db *pgxpool.Pool }

func NewEmployeeRepo(db *pgxpool.Pool) *EmployeeRepo { return &EmployeeRepo{db: db} }

func (r *EmployeeRepo) List(ctx context.Context, f repository.EmployeeFilter) ([]models.Employee, int, error) {
	limit, offset := clampPage(f.Limit, f.Offset)

	clauses := []string{"1=1"}
	args := []any{}

	if s := strings.TrimSpace(f.Q); s != "" {
		p := "%" + s + "%"
		args = append(args, p, p)
		clauses = append(clauses, "(name ILIKE $"+itoa(len(args)-1)+" OR email ILIKE $"+itoa(len(args))+")")
	}
	if s := strings.TrimSpace(f.Department); s != "" {
		args = append(args, s)
		clauses = append(clauses, "department = $"+itoa(len(args)))
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		args = append(args, s)
		clauses = append(clauses, "status = $"+itoa(len(args)))
	}
	whereSQL := "WHERE " + strings.Join(clauses, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees `+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortCol := sanitizeSort(f.Sort, "updated_at", "created_at", "updated_at", "name")
	sortOrd := sanitizeOrder(f.Order, "desc")

	args = append(args, limit, offset)
	listSQL := fmt.Sprintf(`
		SELECT id, name, email, department, position, status, user_id, created_at, updated_at
		FROM employees
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, whereSQL, sortCol, sortOrd, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Department, &e.Position, &e.Status, &e.UserID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (r *EmployeeRepo) Get(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	var e models.Employee
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, department, position, status, user_id, created_at, updated_at
		FROM employees WHERE id=$1`, id).
		Scan(&e.ID, &e.Name, &e.Email, &e.Department, &e.Position, &e.Status, &e.UserID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepo) Create(ctx context.Context, e *models.Employee) error {
	if e.Status == "" {
		e.Status = "active"
	}
	return r.db.QueryRow(ctx, `
		INSERT INTO employees (name, email, department, position, status, user_id)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at, updated_at
	`, e.Name, e.Email, e.Department, e.Position, e.Status, e.UserID).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EmployeeRepo) Update(ctx context.Context, e *models.Employee) error {
	e.UpdatedAt = time.Now()
	ct, err := r.db.Exec(ctx, `
		UPDATE employees SET
			name=$1, email=$2, department=$3, position=$4, status=$5, user_id=$6, updated_at=$7
		WHERE id=$8
	`, e.Name, e.Email, e.Department, e.Position, e.Status, e.UserID, e.UpdatedAt, e.ID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *EmployeeRepo) SetStatus(ctx context.Context, id uuid.UUID, status string) (*models.Employee, error) {
	var e models.Employee
	err := r.db.QueryRow(ctx, `
		UPDATE employees
		SET status=$1, updated_at=now()
		WHERE id=$2
		RETURNING id, name, email, department, position, status, user_id, created_at, updated_at
	`, status, id).
		Scan(&e.ID, &e.Name, &e.Email, &e.Department, &e.Position, &e.Status, &e.UserID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
