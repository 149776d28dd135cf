package service

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/gradefolio/gradefolio-api/internal/engine"
	"github.com/gradefolio/gradefolio-api/internal/models"
	"github.com/gradefolio/gradefolio-api/pkg/config"
	appErrors "github.com/gradefolio/gradefolio-api/pkg/errors"
)

// CalculatorService runs the grade engine over posted sessions. It is
// stateless with respect to storage; the cache only memoizes pure
// computations keyed by a content hash of the request.
type CalculatorService struct {
	validator *validator.Validate
	logger    *zap.Logger
	cache     *CacheService
	metrics   *MetricsService
	grading   config.GradingConfig
}

// NewCalculatorService constructs a CalculatorService.
func NewCalculatorService(validate *validator.Validate, logger *zap.Logger, cache *CacheService, metrics *MetricsService, grading config.GradingConfig) *CalculatorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if grading.DefaultScale == 0 {
		grading.DefaultScale = 10
	}
	if grading.RoundTo == 0 {
		grading.RoundTo = 2
	}
	return &CalculatorService{validator: validate, logger: logger, cache: cache, metrics: metrics, grading: grading}
}

// Summary computes per-semester GPAs and the CGPA for a posted session.
func (s *CalculatorService) Summary(ctx context.Context, req models.CalculationRequest) (*models.SummaryResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid calculation payload")
	}

	var cached models.SummaryResponse
	key := cacheKey("summary", req)
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	session, template := s.normalize(req.Session)
	warnings := engine.ValidateSession(session, &template)

	roundTo := s.roundTo(session)
	summary := models.SessionSummary{Scale: session.Metadata.Scale}
	for _, semester := range engine.SemestersInOrder(session.Semesters) {
		gpa, source := engine.EffectiveSemesterGPA(semester)
		summary.Semesters = append(summary.Semesters, models.SemesterSummary{
			SemesterID: semester.ID,
			Name:       semester.Name,
			Order:      semester.Order,
			GPA:        engine.RoundForDisplay(gpa, roundTo),
			Credits:    engine.EffectiveSemesterCredits(semester),
			IsManual:   source == engine.SourceManual,
		})
	}
	summary.CGPA = engine.RoundForDisplay(engine.CGPA(session.Semesters), roundTo)

	result := &models.SummaryResponse{Summary: summary, Warnings: warnings}
	s.finish(ctx, "summary", key, result)
	return result, nil
}

// Statistics aggregates session-wide figures and the trend direction.
func (s *CalculatorService) Statistics(ctx context.Context, req models.CalculationRequest) (*models.Statistics, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid calculation payload")
	}

	var cached models.Statistics
	key := cacheKey("statistics", req)
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	session, _ := s.normalize(req.Session)
	roundTo := s.roundTo(session)

	stats := engine.CalculateStatistics(session)
	stats.HighestSemesterGPA = engine.RoundForDisplay(stats.HighestSemesterGPA, roundTo)
	stats.LowestSemesterGPA = engine.RoundForDisplay(stats.LowestSemesterGPA, roundTo)

	s.finish(ctx, "statistics", key, &stats)
	return &stats, nil
}

// Target runs the cross-semester target solver.
func (s *CalculatorService) Target(ctx context.Context, req models.TargetRequest) (*models.TargetCalculation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid target payload")
	}

	session, _ := s.normalize(req.Session)
	result := engine.CalculateTargetGPA(session, req.TargetCGPA, req.RemainingCredits)

	if s.metrics != nil {
		s.metrics.RecordCalculation("target")
	}
	return &result, nil
}

// SemesterTarget runs the intra-semester target solver.
func (s *CalculatorService) SemesterTarget(ctx context.Context, req models.SemesterTargetRequest) (*models.IntraSemesterTarget, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid semester target payload")
	}

	scale := req.Scale
	if scale == 0 {
		scale = s.grading.DefaultScale
	}
	template := engine.DefaultTemplate(scale)

	semester := req.Semester
	semester.Courses = resolveCourses(semester.Courses, template)

	result := engine.CalculateIntraSemesterTarget(semester, req.TargetGPA, scale, template)

	if s.metrics != nil {
		s.metrics.RecordCalculation("semester_target")
	}
	return &result, nil
}

// Timeline projects the running CGPA series.
func (s *CalculatorService) Timeline(ctx context.Context, req models.ChartRequest) ([]models.TimelinePoint, error) {
	session, err := s.chartSession(req)
	if err != nil {
		return nil, err
	}

	var cached []models.TimelinePoint
	key := cacheKey("timeline", req)
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	roundTo := s.roundTo(session)
	points := engine.CGPATimeline(session)
	for i := range points {
		points[i].GPA = engine.RoundForDisplay(points[i].GPA, roundTo)
		points[i].CGPA = engine.RoundForDisplay(points[i].CGPA, roundTo)
	}

	s.finish(ctx, "timeline", key, points)
	return points, nil
}

// Distribution projects the letter-grade histogram series.
func (s *CalculatorService) Distribution(ctx context.Context, req models.ChartRequest) ([]models.SeriesPoint, error) {
	session, err := s.chartSession(req)
	if err != nil {
		return nil, err
	}

	var cached []models.SeriesPoint
	key := cacheKey("distribution", req)
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	series := engine.GradeDistributionSeries(session)
	s.finish(ctx, "distribution", key, series)
	return series, nil
}

// Credits projects the completed/remaining credits breakdown.
func (s *CalculatorService) Credits(ctx context.Context, req models.ChartRequest) (*models.CreditsBreakdown, error) {
	session, err := s.chartSession(req)
	if err != nil {
		return nil, err
	}

	breakdown := engine.CreditsBreakdownSeries(session, s.requiredCredits(req))
	if s.metrics != nil {
		s.metrics.RecordCalculation("credits")
	}
	return &breakdown, nil
}

// Comparison projects per-semester effective GPAs.
func (s *CalculatorService) Comparison(ctx context.Context, req models.ChartRequest) ([]models.SeriesPoint, error) {
	session, err := s.chartSession(req)
	if err != nil {
		return nil, err
	}

	roundTo := s.roundTo(session)
	series := engine.SemesterComparisonSeries(session)
	for i := range series {
		if rounded := engine.RoundForDisplay(&series[i].Value, roundTo); rounded != nil {
			series[i].Value = *rounded
		}
	}
	if s.metrics != nil {
		s.metrics.RecordCalculation("comparison")
	}
	return series, nil
}

// TopCourses projects the best-scoring courses.
func (s *CalculatorService) TopCourses(ctx context.Context, req models.ChartRequest) ([]models.SeriesPoint, error) {
	session, err := s.chartSession(req)
	if err != nil {
		return nil, err
	}

	count := req.Count
	if count <= 0 {
		count = 5
	}
	series := engine.TopCoursesSeries(session, count)
	if s.metrics != nil {
		s.metrics.RecordCalculation("top_courses")
	}
	return series, nil
}

// Progress projects degree completion metrics.
func (s *CalculatorService) Progress(ctx context.Context, req models.ChartRequest) (*models.ProgressMetrics, error) {
	session, err := s.chartSession(req)
	if err != nil {
		return nil, err
	}

	metrics := engine.ProgressMetrics(session, s.requiredCredits(req))
	if s.metrics != nil {
		s.metrics.RecordCalculation("progress")
	}
	return &metrics, nil
}

func (s *CalculatorService) chartSession(req models.ChartRequest) (models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Session{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid chart payload")
	}
	session, _ := s.normalize(req.Session)
	return session, nil
}

// normalize applies grading defaults, the session repeat policy and grade
// point resolution so that every downstream engine call sees a session whose
// courses carry concrete grade points.
func (s *CalculatorService) normalize(session models.Session) (models.Session, models.GradeTemplate) {
	if session.Metadata.Scale == 0 {
		session.Metadata.Scale = s.grading.DefaultScale
	}
	template := engine.DefaultTemplate(session.Metadata.Scale)

	out := session
	out.Semesters = make([]models.Semester, len(session.Semesters))
	for i, semester := range session.Semesters {
		copied := semester
		copied.Courses = resolveCourses(semester.Courses, template)
		out.Semesters[i] = copied
	}

	return engine.ApplySessionRepeatPolicy(out), template
}

func (s *CalculatorService) roundTo(session models.Session) int {
	if session.Metadata.RoundTo > 0 {
		return session.Metadata.RoundTo
	}
	return s.grading.RoundTo
}

func (s *CalculatorService) requiredCredits(req models.ChartRequest) float64 {
	if req.RequiredCredits > 0 {
		return req.RequiredCredits
	}
	return s.grading.RequiredCredits
}

func (s *CalculatorService) finish(ctx context.Context, operation, key string, value interface{}) {
	if s.metrics != nil {
		s.metrics.RecordCalculation(operation)
	}
	if err := s.cache.Set(ctx, key, value, 0); err != nil {
		s.logger.Warn("failed to cache calculation", zap.String("operation", operation), zap.Error(err))
	}
}

// resolveCourses fills in missing grade points and letter grades from
// whichever inputs each course carries.
func resolveCourses(courses []models.Course, template models.GradeTemplate) []models.Course {
	if len(courses) == 0 {
		return courses
	}
	resolved := make([]models.Course, len(courses))
	for i, course := range courses {
		if course.GradePoint == nil {
			course.GradePoint = engine.ResolveGradePoint(course, template)
		}
		if course.Grade == "" {
			if total, ok := engine.CourseTotalMarks(course); ok {
				course.Grade = engine.MarksToGrade(total, template)
			} else if course.Marks != nil {
				course.Grade = engine.MarksToGrade(*course.Marks, template)
			}
		}
		resolved[i] = course
	}
	return resolved
}

// cacheKey derives a stable content hash for a request payload.
func cacheKey(operation string, payload interface{}) string {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("calc:%s:unhashable", operation)
	}
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("calc:%s:%x", operation, sum[:8])
}
