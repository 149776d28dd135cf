package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/gradefolio/gradefolio-api/internal/engine"
	"github.com/gradefolio/gradefolio-api/internal/models"
	appErrors "github.com/gradefolio/gradefolio-api/pkg/errors"
)

// ConversionService exposes scale conversion and the built-in templates.
type ConversionService struct {
	validator *validator.Validate
	logger    *zap.Logger
}

// NewConversionService constructs a ConversionService.
func NewConversionService(validate *validator.Validate, logger *zap.Logger) *ConversionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ConversionService{validator: validate, logger: logger}
}

// Convert translates a GPA value between the 4-point and 10-point scales.
func (s *ConversionService) Convert(ctx context.Context, req models.ConversionRequest) (*models.ConversionResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid conversion payload")
	}

	if req.Value > float64(req.FromScale) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "value exceeds the source scale maximum")
	}

	method := req.Method
	if method == "" {
		method = engine.MethodLinear
	}

	result := engine.ConvertScale(req.Value, req.FromScale, req.ToScale, method)
	return &result, nil
}

// Templates lists the built-in grading templates.
func (s *ConversionService) Templates(ctx context.Context) []models.GradeTemplate {
	return engine.BuiltinTemplates()
}
