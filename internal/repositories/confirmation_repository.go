package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"suilog/internal/models"
)

type ConfirmationRepository interface {
	Create(ctx context.Context, c *models.CompletionConfirmation) (int64, error)
	GetLatest(ctx context.Context, projectID string) (*models.CompletionConfirmation, error)
	IncrementAttempts(ctx context.Context, id int64) (int, error)
	MarkConfirmed(ctx context.Context, id int64) error
	ExpireNow(ctx context.Context, id int64) error
	CountRecentSends(ctx context.Context, projectID string, since time.Time) (int, error)
}

type confirmationRepository struct {
	db *sql.DB
}

func NewConfirmationRepository(db *sql.DB) ConfirmationRepository {
	return &confirmationRepository{db: db}
}

func (r *confirmationRepository) Create(ctx context.Context, c *models.CompletionConfirmation) (int64, error) {
	query := `
		INSERT INTO completion_confirmations (project_id, email, code_hash, attempts, confirmed, sent_at, expires_at)
		VALUES ($1,$2,$3,0,false,$4,$5)
		RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		c.ProjectID, c.Email, c.CodeHash, c.SentAt, c.ExpiresAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	c.ID = id
	return id, nil
}

func (r *confirmationRepository) GetLatest(ctx context.Context, projectID string) (*models.CompletionConfirmation, error) {
	query := `SELECT id, project_id, email, code_hash, attempts, confirmed, sent_at, expires_at
       FROM completion_confirmations
       WHERE project_id = $1
       ORDER BY sent_at DESC
       LIMIT 1`
	c := &models.CompletionConfirmation{}
	err := r.db.QueryRowContext(ctx, query, projectID).Scan(
		&c.ID, &c.ProjectID, &c.Email, &c.CodeHash, &c.Attempts, &c.Confirmed, &c.SentAt, &c.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *confirmationRepository) IncrementAttempts(ctx context.Context, id int64) (int, error) {
	var attempts int
	err := r.db.QueryRowContext(ctx,
		`UPDATE completion_confirmations SET attempts = attempts + 1 WHERE id = $1 RETURNING attempts`,
		id).Scan(&attempts)
	return attempts, err
}

func (r *confirmationRepository) MarkConfirmed(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE completion_confirmations SET confirmed = true WHERE id = $1`, id)
	return err
}

func (r *confirmationRepository) ExpireNow(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE completion_confirmations SET expires_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *confirmationRepository) CountRecentSends(ctx context.Context, projectID string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM completion_confirmations WHERE project_id = $1 AND sent_at >= $2`,
		projectID, since).Scan(&count)
	return count, err
}
