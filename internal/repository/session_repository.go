package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/gradefolio/gradefolio-api/internal/models"
)

// SessionRepository stores each user's academic session as a JSONB document.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new instance of SessionRepository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// FindByUser returns the stored session for a user.
func (r *SessionRepository) FindByUser(ctx context.Context, userID string) (*models.SessionRecord, error) {
	const query = `SELECT id, user_id, data, updated_at FROM sessions WHERE user_id = $1 LIMIT 1`
	var record models.SessionRecord
	if err := r.db.GetContext(ctx, &record, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find session by user: %w", err)
	}
	return &record, nil
}

// Upsert inserts or replaces the session document for a user. Each user owns
// exactly one session row.
func (r *SessionRepository) Upsert(ctx context.Context, record *models.SessionRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.UpdatedAt = time.Now().UTC()

	const query = `INSERT INTO sessions (id, user_id, data, updated_at)
		VALUES (:id, :user_id, :data, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// DeleteByUser removes a user's stored session.
func (r *SessionRepository) DeleteByUser(ctx context.Context, userID string) error {
	const query = `DELETE FROM sessions WHERE user_id = $1`
	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
