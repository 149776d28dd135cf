package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/gradefolio/gradefolio-api/internal/engine"
	"github.com/gradefolio/gradefolio-api/internal/models"
	appErrors "github.com/gradefolio/gradefolio-api/pkg/errors"
)

type peerRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Peer, error)
	FindByID(ctx context.Context, userID, id string) (*models.Peer, error)
	Create(ctx context.Context, peer *models.Peer) error
	Delete(ctx context.Context, userID, id string) error
}

// PeerService manages comparison peers and the comparison series.
type PeerService struct {
	repo      peerRepository
	sessions  sessionRepository
	validator *validator.Validate
	logger    *zap.Logger
	roundTo   int
}

// NewPeerService constructs a PeerService.
func NewPeerService(repo peerRepository, sessions sessionRepository, validate *validator.Validate, logger *zap.Logger, roundTo int) *PeerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if roundTo <= 0 {
		roundTo = 2
	}
	return &PeerService{repo: repo, sessions: sessions, validator: validate, logger: logger, roundTo: roundTo}
}

// List returns all peers for a user.
func (s *PeerService) List(ctx context.Context, userID string) ([]models.Peer, error) {
	peers, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list peers")
	}
	return peers, nil
}

// Create adds a new peer. Either a direct CGPA or a semester list must be
// provided; with only semesters the CGPA is derived on comparison.
func (s *PeerService) Create(ctx context.Context, userID string, req models.CreatePeerRequest) (*models.Peer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid peer payload")
	}
	if req.CGPA == nil && len(req.Semesters) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "either cgpa or semesters must be provided")
	}

	peer := &models.Peer{UserID: userID, Name: req.Name, CGPA: req.CGPA}
	if len(req.Semesters) > 0 {
		data, err := json.Marshal(req.Semesters)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode peer semesters")
		}
		peer.Semesters = data
	}

	if err := s.repo.Create(ctx, peer); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create peer")
	}
	return peer, nil
}

// Delete removes a peer owned by the user.
func (s *PeerService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "peer not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete peer")
	}
	return nil
}

// Comparison builds the CGPA comparison series: the user's own record first,
// then each peer with a stored or derived CGPA.
func (s *PeerService) Comparison(ctx context.Context, userID string) ([]models.PeerComparisonEntry, error) {
	entries := []models.PeerComparisonEntry{}

	record, err := s.sessions.FindByUser(ctx, userID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	if record != nil {
		var session models.Session
		if err := json.Unmarshal(record.Data, &session); err == nil {
			cgpa := engine.RoundForDisplay(engine.CGPA(session.Semesters), s.roundTo)
			entries = append(entries, models.PeerComparisonEntry{Name: "You", CGPA: cgpa, IsSelf: true, Derived: true})
		}
	}

	peers, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list peers")
	}

	for _, peer := range peers {
		entry := models.PeerComparisonEntry{Name: peer.Name, CGPA: peer.CGPA}
		if entry.CGPA == nil && len(peer.Semesters) > 0 {
			var semesters []models.Semester
			if err := json.Unmarshal(peer.Semesters, &semesters); err != nil {
				s.logger.Warn("skipping peer with malformed semesters", zap.String("peer_id", peer.ID), zap.Error(err))
			} else {
				entry.CGPA = engine.RoundForDisplay(engine.CGPA(semesters), s.roundTo)
				entry.Derived = true
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
