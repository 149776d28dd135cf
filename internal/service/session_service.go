package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/gradefolio/gradefolio-api/internal/models"
	appErrors "github.com/gradefolio/gradefolio-api/pkg/errors"
)

type sessionRepository interface {
	FindByUser(ctx context.Context, userID string) (*models.SessionRecord, error)
	Upsert(ctx context.Context, record *models.SessionRecord) error
	DeleteByUser(ctx context.Context, userID string) error
}

// SessionService persists each user's academic session document.
type SessionService struct {
	repo      sessionRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSessionService constructs a SessionService.
func NewSessionService(repo sessionRepository, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SessionService{repo: repo, validator: validate, logger: logger}
}

// Get loads the stored session for a user.
func (s *SessionService) Get(ctx context.Context, userID string) (*models.SessionRecord, error) {
	record, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no stored session")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	return record, nil
}

// Save validates and stores the posted session, replacing any previous one.
func (s *SessionService) Save(ctx context.Context, userID string, session models.Session) (*models.SessionRecord, error) {
	if err := s.validator.Struct(session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode session")
	}

	record := &models.SessionRecord{UserID: userID, Data: data}
	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store session")
	}

	s.logger.Info("session stored", zap.String("user_id", userID), zap.Int("semesters", len(session.Semesters)))
	return record, nil
}

// Delete removes the stored session for a user.
func (s *SessionService) Delete(ctx context.Context, userID string) error {
	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "no stored session")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete session")
	}
	return nil
}
