package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"TASKTRACKER_BACK-END/internal/models"
)

// PostgresTaskRepository is the pgx-backed TaskRepository.
type PostgresTaskRepository struct {
	db *pgxpool.Pool
}

// NewPostgresTaskRepository creates a task repository over the given pool.
func NewPostgresTaskRepository(db *pgxpool.Pool) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

func (r *PostgresTaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `INSERT INTO tasks (id, title, description, status, owner_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.OwnerID,
		task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *PostgresTaskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Task, error) {
	query := `SELECT id, title, description, status, owner_id, created_at, updated_at
	          FROM tasks WHERE owner_id = $1
	          ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.OwnerID,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

func (r *PostgresTaskRepository) GetByID(ctx context.Context, ownerID, taskID uuid.UUID) (*models.Task, error) {
	query := `SELECT id, title, description, status, owner_id, created_at, updated_at
	          FROM tasks WHERE id = $1 AND owner_id = $2`

	return r.scanTask(r.db.QueryRow(ctx, query, taskID, ownerID))
}

// Update applies the patch in a single statement so a concurrent delete
// cannot resurrect the row between a check and a write.
func (r *PostgresTaskRepository) Update(ctx context.Context, ownerID, taskID uuid.UUID, patch TaskPatch) (*models.Task, error) {
	query := `UPDATE tasks
	          SET title       = COALESCE($3, title),
	              description = COALESCE($4, description),
	              status      = COALESCE($5, status),
	              updated_at  = now()
	          WHERE id = $1 AND owner_id = $2
	          RETURNING id, title, description, status, owner_id, created_at, updated_at`

	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}
	return r.scanTask(r.db.QueryRow(ctx, query, taskID, ownerID,
		patch.Title, patch.Description, status))
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	query := `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`

	tag, err := r.db.Exec(ctx, query, taskID, ownerID)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresTaskRepository) scanTask(row pgx.Row) (*models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.OwnerID,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	return &t, nil
}
