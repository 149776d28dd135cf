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

// PeerRepository provides database access for comparison peers.
type PeerRepository struct {
	db *sqlx.DB
}

// NewPeerRepository creates a new instance of PeerRepository.
func NewPeerRepository(db *sqlx.DB) *PeerRepository {
	return &PeerRepository{db: db}
}

// ListByUser returns all peers owned by a user, oldest first. A peer stored
// with only a direct CGPA has a NULL semesters column, which cannot scan into
// a raw JSON field, so it is coalesced to an empty array.
func (r *PeerRepository) ListByUser(ctx context.Context, userID string) ([]models.Peer, error) {
	const query = `SELECT id, user_id, name, cgpa, COALESCE(semesters, '[]') AS semesters, created_at FROM peers WHERE user_id = $1 ORDER BY created_at ASC`
	var peers []models.Peer
	if err := r.db.SelectContext(ctx, &peers, query, userID); err != nil {
		return nil, fmt.Errorf("list peers: %w", err)
	}
	return peers, nil
}

// FindByID returns a peer owned by the given user.
func (r *PeerRepository) FindByID(ctx context.Context, userID, id string) (*models.Peer, error) {
	const query = `SELECT id, user_id, name, cgpa, COALESCE(semesters, '[]') AS semesters, created_at FROM peers WHERE id = $1 AND user_id = $2 LIMIT 1`
	var peer models.Peer
	if err := r.db.GetContext(ctx, &peer, query, id, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find peer by id: %w", err)
	}
	return &peer, nil
}

// Create inserts a new peer.
func (r *PeerRepository) Create(ctx context.Context, peer *models.Peer) error {
	if peer.ID == "" {
		peer.ID = uuid.NewString()
	}
	if peer.CreatedAt.IsZero() {
		peer.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO peers (id, user_id, name, cgpa, semesters, created_at) VALUES (:id, :user_id, :name, :cgpa, :semesters, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, peer); err != nil {
		return fmt.Errorf("create peer: %w", err)
	}
	return nil
}

// Delete removes a peer owned by the given user.
func (r *PeerRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM peers WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete peer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete peer rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
