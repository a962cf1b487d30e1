package task

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new task record.
func (r *PostgresRepository) Create(ctx context.Context, t *Task) error {
	query := `
		INSERT INTO tasks (title, team_id, assigned_to, created_by, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		t.Title,
		t.TeamID,
		t.AssignedTo,
		t.CreatedBy,
		t.Status,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}

	return nil
}

// ListByAssignee retrieves all tasks assigned to a profile, newest first.
// Tasks without a team are included; filtering by team belongs to other
// surfaces.
func (r *PostgresRepository) ListByAssignee(ctx context.Context, userID uuid.UUID) ([]Task, error) {
	query := `
		SELECT id, title, team_id, assigned_to, created_by, status, created_at
		FROM tasks
		WHERE assigned_to = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		err := rows.Scan(&t.ID, &t.Title, &t.TeamID, &t.AssignedTo, &t.CreatedBy, &t.Status, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task rows: %w", err)
	}

	if tasks == nil {
		tasks = []Task{}
	}

	return tasks, nil
}
