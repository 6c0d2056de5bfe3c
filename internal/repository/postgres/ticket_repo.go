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

type TicketRepo struct{ db *pgxpool.Pool }

func NewTicketRepo(db *pgxpool.Pool) *TicketRepo { return &TicketRepo{db: db} }

// -----------------------------------------------------------------------------
// Listing with filters + pagination + sort + assignee name/email join
// -----------------------------------------------------------------------------

// List returns a page of tickets and the total count for the same filter set.
// - Q:        free-text search (title/description, ILIKE)
// - Status/Priority/Category: exact
// - Assignee: exact user id
// - Sort:     created_at|updated_at|priority (default updated_at)
// - Order:    asc|desc (default desc)
func (r *TicketRepo) List(ctx context.Context, f repository.TicketFilter) ([]models.Ticket, int, error) {
	limit, offset := clampPage(f.Limit, f.Offset)

	whereSQL, args := buildTicketWhere(f)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tickets t `+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortCol := sanitizeSort(f.Sort, "updated_at", "created_at", "updated_at", "priority")
	sortOrd := sanitizeOrder(f.Order, "desc")

	sql := fmt.Sprintf(`
		SELECT
			t.id, t.title, t.description, t.category, t.priority, t.status,
			t.assigned_to, t.submitted_by, t.created_at, t.updated_at,
			COALESCE(u.name, ''), COALESCE(u.email, '')
		FROM tickets t
		LEFT JOIN users u ON u.id = t.assigned_to
		%s
		ORDER BY t.%s %s
		LIMIT $%d OFFSET $%d
	`, whereSQL, sortCol, sortOrd, len(args)+1, len(args)+2)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Ticket
	for rows.Next() {
		var t models.Ticket
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Category, &t.Priority, &t.Status,
			&t.AssignedTo, &t.SubmittedBy, &t.CreatedAt, &t.UpdatedAt,
			&t.AssigneeName, &t.AssigneeEmail,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

// -----------------------------------------------------------------------------
// Single ticket + create/update + comments (Get joined with assignee name/email)
// -----------------------------------------------------------------------------
func (r *TicketRepo) Get(ctx context.Context, id uuid.UUID) (*models.Ticket, error) {
	var t models.Ticket
	err := r.db.QueryRow(ctx, `
		SELECT
			t.id, t.title, t.description, t.category, t.priority, t.status,
			t.assigned_to, t.submitted_by, t.created_at, t.updated_at,
			COALESCE(u.name, ''), COALESCE(u.email, '')
		FROM tickets t
		LEFT JOIN users u ON u.id = t.assigned_to
		WHERE t.id = $1
	`, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Category, &t.Priority, &t.Status,
		&t.AssignedTo, &t.SubmittedBy, &t.CreatedAt, &t.UpdatedAt,
		&t.AssigneeName, &t.AssigneeEmail,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	// load comments
	rows, err := r.db.Query(ctx, `
		SELECT id, ticket_id, text, created_at
		FROM comments
		WHERE ticket_id = $1
		ORDER BY created_at ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.TicketID, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		t.Comments = append(t.Comments, c)
	}
	return &t, nil
}

func (r *TicketRepo) Create(ctx context.Context, t *models.Ticket) error {
	now := time.Now()
	err := r.db.QueryRow(ctx, `
		INSERT INTO tickets (title, description, category, priority, status, assigned_to, submitted_by, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at, updated_at
	`,
		t.Title, t.Description, t.Category, t.Priority, "Open", t.AssignedTo, t.SubmittedBy, now, now,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return err
}

func (r *TicketRepo) Update(ctx context.Context, t *models.Ticket) error {
	t.UpdatedAt = time.Now()
	ct, err := r.db.Exec(ctx, `
		UPDATE tickets SET
			title=$1, description=$2, category=$3, priority=$4, status=$5, assigned_to=$6, submitted_by=$7, updated_at=$8
		WHERE id=$9
	`,
		t.Title, t.Description, t.Category, t.Priority, t.Status, t.AssignedTo, t.SubmittedBy, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *TicketRepo) AddComment(ctx context.Context, ticketID uuid.UUID, text string) (*models.Comment, error) {
	var c models.Comment
	err := r.db.QueryRow(ctx, `
		INSERT INTO comments (ticket_id, text)
		VALUES ($1,$2)
		RETURNING id, ticket_id, text, created_at
	`, ticketID, text).Scan(&c.ID, &c.TicketID, &c.Text, &c.CreatedAt)
	return &c, err
}

// -----------------------------------------------------------------------------
// Reporting helpers (optional, used by /api/reports)
// -----------------------------------------------------------------------------

// CountByStatus counts tickets IN or NOT IN the given statuses.
// If inclusive == true → count IN (statuses); otherwise NOT IN (statuses).
func (r *TicketRepo) CountByStatus(ctx context.Context, statuses []string, inclusive bool) (int, error) {
	op := "NOT IN"
	if inclusive {
		op = "IN"
	}
	sql := `SELECT COUNT(*) FROM tickets WHERE status ` + op + ` (SELECT UNNEST($1::text[]))`
	var n int
	if err := r.db.QueryRow(ctx, sql, statuses).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CountResolvedSince counts tickets resolved/closed since the provided time.
func (r *TicketRepo) CountResolvedSince(ctx context.Context, since time.Time) (int, error) {
	sql := `SELECT COUNT(*) FROM tickets WHERE status IN ('Resolved','Closed') AND updated_at >= $1`
	var n int
	if err := r.db.QueryRow(ctx, sql, since).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CountOpenByPriorities counts open tickets (not Resolved/Closed) with given priorities.
func (r *TicketRepo) CountOpenByPriorities(ctx context.Context, prios []string) (int, error) {
	sql := `SELECT COUNT(*) FROM tickets WHERE status NOT IN ('Resolved','Closed') AND priority = ANY($1)`
	var n int
	if err := r.db.QueryRow(ctx, sql, prios).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// buildTicketWhere composes WHERE clause and args for the list filters.
func buildTicketWhere(f repository.TicketFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	// free-text search (ILIKE)
	if s := strings.TrimSpace(f.Q); s != "" {
		p := "%" + s + "%"
		args = append(args, p, p)
		clauses = append(clauses, "(t.title ILIKE $"+itoa(len(args)-1)+" OR t.description ILIKE $"+itoa(len(args))+")")
	}

	// exact filters
	if s := strings.TrimSpace(f.Status); s != "" {
		args = append(args, s)
		clauses = append(clauses, "t.status = $"+itoa(len(args)))
	}
	if p := strings.TrimSpace(f.Priority); p != "" {
		args = append(args, p)
		clauses = append(clauses, "t.priority = $"+itoa(len(args)))
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		args = append(args, c)
		clauses = append(clauses, "t.category = $"+itoa(len(args)))
	}
	if a := strings.TrimSpace(f.Assignee); a != "" {
		args = append(args, a)
		clauses = append(clauses, "t.assigned_to = $"+itoa(len(args))+"::uuid")
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}
