package models

import (
	"encoding/json"
	"time"
)

// SessionRecord is the persisted form of a user's session. The payload is
// stored as opaque JSON; the engine only ever sees the decoded Session.
type SessionRecord struct {
	ID        string          `db:"id" json:"id"`
	UserID    string          `db:"user_id" json:"-"`
	Data      json.RawMessage `db:"data" json:"data"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// Peer is another student's record kept for comparison.
type Peer struct {
	ID        string          `db:"id" json:"id"`
	UserID    string          `db:"user_id" json:"-"`
	Name      string          `db:"name" json:"name"`
	CGPA      *float64        `db:"cgpa" json:"cgpa,omitempty"`
	Semesters json.RawMessage `db:"semesters" json:"semesters,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// CreatePeerRequest adds a peer for the current user.
type CreatePeerRequest struct {
	Name      string     `json:"name" validate:"required"`
	CGPA      *float64   `json:"cgpa,omitempty" validate:"omitempty,gte=0"`
	Semesters []Semester `json:"semesters,omitempty"`
}

// PeerComparisonEntry is one row of the comparison series. CGPA is the
// stored value when present, otherwise derived from the peer's semesters.
type PeerComparisonEntry struct {
	Name    string   `json:"name"`
	CGPA    *float64 `json:"cgpa"`
	IsSelf  bool     `json:"is_self"`
	Derived bool     `json:"derived"`
}
