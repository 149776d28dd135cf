package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradefolio/gradefolio-api/internal/models"
	appErrors "github.com/gradefolio/gradefolio-api/pkg/errors"
)

type mockPeerRepo struct {
	peers   []models.Peer
	created *models.Peer
}

func (m *mockPeerRepo) ListByUser(ctx context.Context, userID string) ([]models.Peer, error) {
	return m.peers, nil
}

func (m *mockPeerRepo) FindByID(ctx context.Context, userID, id string) (*models.Peer, error) {
	for i := range m.peers {
		if m.peers[i].ID == id {
			return &m.peers[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockPeerRepo) Create(ctx context.Context, peer *models.Peer) error {
	peer.ID = "new-peer"
	m.created = peer
	m.peers = append(m.peers, *peer)
	return nil
}

func (m *mockPeerRepo) Delete(ctx context.Context, userID, id string) error {
	for i := range m.peers {
		if m.peers[i].ID == id {
			m.peers = append(m.peers[:i], m.peers[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type mockSessionRepo struct {
	record *models.SessionRecord
	saved  *models.SessionRecord
}

func (m *mockSessionRepo) FindByUser(ctx context.Context, userID string) (*models.SessionRecord, error) {
	if m.record == nil {
		return nil, sql.ErrNoRows
	}
	return m.record, nil
}

func (m *mockSessionRepo) Upsert(ctx context.Context, record *models.SessionRecord) error {
	m.saved = record
	m.record = record
	return nil
}

func (m *mockSessionRepo) DeleteByUser(ctx context.Context, userID string) error {
	if m.record == nil {
		return sql.ErrNoRows
	}
	m.record = nil
	return nil
}

func TestCreatePeerRequiresData(t *testing.T) {
	svc := NewPeerService(&mockPeerRepo{}, &mockSessionRepo{}, nil, nil, 2)

	_, err := svc.Create(context.Background(), "u1", models.CreatePeerRequest{Name: "Alice"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestCreatePeerWithSemesters(t *testing.T) {
	repo := &mockPeerRepo{}
	svc := NewPeerService(repo, &mockSessionRepo{}, nil, nil, 2)

	_, err := svc.Create(context.Background(), "u1", models.CreatePeerRequest{
		Name: "Alice",
		Semesters: []models.Semester{
			{Name: "S1", Order: 1, ManualGPA: f64(8.0), ManualCredits: f64(20)},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.NotEmpty(t, repo.created.Semesters)
}

func TestComparisonDerivesCGPA(t *testing.T) {
	semesters, err := json.Marshal([]models.Semester{
		{Name: "S1", Order: 1, ManualGPA: f64(9.0), ManualCredits: f64(20)},
	})
	require.NoError(t, err)

	ownSession, err := json.Marshal(models.Session{Semesters: []models.Semester{
		{Name: "S1", Order: 1, ManualGPA: f64(8.0), ManualCredits: f64(20)},
	}})
	require.NoError(t, err)

	repo := &mockPeerRepo{peers: []models.Peer{
		{ID: "p1", Name: "Stored", CGPA: f64(7.5)},
		{ID: "p2", Name: "Derived", Semesters: semesters},
	}}
	sessions := &mockSessionRepo{record: &models.SessionRecord{ID: "s1", UserID: "u1", Data: ownSession}}
	svc := NewPeerService(repo, sessions, nil, nil, 2)

	entries, err := svc.Comparison(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.True(t, entries[0].IsSelf)
	require.NotNil(t, entries[0].CGPA)
	assert.InDelta(t, 8.0, *entries[0].CGPA, 0.001)

	assert.Equal(t, "Stored", entries[1].Name)
	assert.False(t, entries[1].Derived)
	require.NotNil(t, entries[1].CGPA)
	assert.InDelta(t, 7.5, *entries[1].CGPA, 0.001)

	assert.Equal(t, "Derived", entries[2].Name)
	assert.True(t, entries[2].Derived)
	require.NotNil(t, entries[2].CGPA)
	assert.InDelta(t, 9.0, *entries[2].CGPA, 0.001)
}

func TestDeletePeerNotFound(t *testing.T) {
	svc := NewPeerService(&mockPeerRepo{}, &mockSessionRepo{}, nil, nil, 2)

	err := svc.Delete(context.Background(), "u1", "missing")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestSessionServiceSaveAndGet(t *testing.T) {
	repo := &mockSessionRepo{}
	svc := NewSessionService(repo, nil, nil)

	session := models.Session{Semesters: []models.Semester{
		{Name: "S1", Order: 1, ManualGPA: f64(8.0), ManualCredits: f64(20)},
	}}

	record, err := svc.Save(context.Background(), "u1", session)
	require.NoError(t, err)
	assert.Equal(t, "u1", record.UserID)

	loaded, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.JSONEq(t, string(record.Data), string(loaded.Data))

	require.NoError(t, svc.Delete(context.Background(), "u1"))

	_, err = svc.Get(context.Background(), "u1")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
