package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"suilog/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	StoreBatch(ctx context.Context, tasks []models.Task) error
	FindByID(ctx context.Context, id string) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error

	UpdateStatus(ctx context.Context, id string, to models.TaskStatus) error
	Complete(ctx context.Context, id string, actualTime int, completedAt time.Time) error
	UpdateAssignee(ctx context.Context, id string, assignedTo *string) error
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, title, description, priority, estimated_time, actual_time,
       scheduled_date, scheduled_start_time, scheduled_end_time,
       is_recurring, recurring_pattern, recurring_end_date, recurring_day_of_week, recurring_parent_id,
       start_date, due_date, status, created_at, completed_at, assigned_to`

func scanTask(row interface{ Scan(...interface{}) error }) (*models.Task, error) {
	t := &models.Task{}
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Priority, &t.EstimatedTime, &t.ActualTime,
		&t.ScheduledDate, &t.ScheduledStartTime, &t.ScheduledEndTime,
		&t.IsRecurring, &t.RecurringPattern, &t.RecurringEndDate, &t.RecurringDayOfWeek, &t.RecurringParentID,
		&t.StartDate, &t.DueDate, &t.Status, &t.CreatedAt, &t.CompletedAt, &t.AssignedTo,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`
	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.Priority, task.EstimatedTime, task.ActualTime,
		task.ScheduledDate, task.ScheduledStartTime, task.ScheduledEndTime,
		task.IsRecurring, task.RecurringPattern, task.RecurringEndDate, task.RecurringDayOfWeek, task.RecurringParentID,
		task.StartDate, task.DueDate, task.Status, task.CreatedAt, task.CompletedAt, task.AssignedTo,
	)
	return err
}

// StoreBatch inserts recurring-task instances in one transaction so a
// partial expansion never hits the table.
func (r *taskRepository) StoreBatch(ctx context.Context, tasks []models.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`
	for i := range tasks {
		t := &tasks[i]
		if _, err := tx.ExecContext(ctx, query,
			t.ID, t.Title, t.Description, t.Priority, t.EstimatedTime, t.ActualTime,
			t.ScheduledDate, t.ScheduledStartTime, t.ScheduledEndTime,
			t.IsRecurring, t.RecurringPattern, t.RecurringEndDate, t.RecurringDayOfWeek, t.RecurringParentID,
			t.StartDate, t.DueDate, t.Status, t.CreatedAt, t.CompletedAt, t.AssignedTo,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT ` + taskColumns + ` FROM tasks`

	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.Priority != nil {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", argID))
		args = append(args, *filter.Priority)
		argID++
	}
	if filter.AssignedTo != nil {
		conditions = append(conditions, fmt.Sprintf("LOWER(TRIM(assigned_to)) = $%d", argID))
		args = append(args, *filter.AssignedTo)
		argID++
	}
	if filter.Unassigned {
		conditions = append(conditions, "assigned_to IS NULL")
	}
	if filter.RecurringParentID != nil {
		conditions = append(conditions, fmt.Sprintf("recurring_parent_id = $%d", argID))
		args = append(args, *filter.RecurringParentID)
		argID++
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY scheduled_date ASC, created_at ASC"

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			title=$1, description=$2, priority=$3, estimated_time=$4, actual_time=$5,
			scheduled_date=$6, scheduled_start_time=$7, scheduled_end_time=$8,
			start_date=$9, due_date=$10, status=$11, completed_at=$12, assigned_to=$13
		WHERE id=$14`
	res, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Priority, task.EstimatedTime, task.ActualTime,
		task.ScheduledDate, task.ScheduledStartTime, task.ScheduledEndTime,
		task.StartDate, task.DueDate, task.Status, task.CompletedAt, task.AssignedTo,
		task.ID,
	)
	if err != nil {
		return err
	}
	return ensureAffected(res)
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return ensureAffected(res)
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id string, to models.TaskStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status=$1, completed_at=NULL, actual_time=NULL WHERE id=$2`, to, id)
	if err != nil {
		return err
	}
	return ensureAffected(res)
}

// Complete stamps the completion pair together so the "present iff
// completed" invariant holds at the row level.
func (r *taskRepository) Complete(ctx context.Context, id string, actualTime int, completedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status=$1, actual_time=$2, completed_at=$3 WHERE id=$4`,
		models.StatusCompleted, actualTime, completedAt, id)
	if err != nil {
		return err
	}
	return ensureAffected(res)
}

func (r *taskRepository) UpdateAssignee(ctx context.Context, id string, assignedTo *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET assigned_to=$1 WHERE id=$2`, assignedTo, id)
	if err != nil {
		return err
	}
	return ensureAffected(res)
}

func ensureAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
