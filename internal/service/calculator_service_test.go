package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradefolio/gradefolio-api/internal/models"
	"github.com/gradefolio/gradefolio-api/pkg/config"
	appErrors "github.com/gradefolio/gradefolio-api/pkg/errors"
)

func testGrading() config.GradingConfig {
	return config.GradingConfig{DefaultScale: 10, RoundTo: 2, RequiredCredits: 160}
}

func newCalculator() *CalculatorService {
	return NewCalculatorService(nil, nil, nil, nil, testGrading())
}

func f64(v float64) *float64 { return &v }

func sampleSession() models.Session {
	return models.Session{
		Metadata: models.SessionMetadata{Scale: 10},
		Semesters: []models.Semester{
			{
				Name:  "Semester 1",
				Order: 1,
				Courses: []models.Course{
					{Code: "CS101", Name: "Programming", Credits: 4, Grade: "A", GradePoint: f64(9)},
					{Code: "MA101", Name: "Calculus", Credits: 3, Grade: "B", GradePoint: f64(8)},
				},
			},
			{
				Name:  "Semester 2",
				Order: 2,
				Courses: []models.Course{
					{Code: "CS102", Name: "Data Structures", Credits: 4, Grade: "A+/O", GradePoint: f64(10)},
				},
			},
		},
	}
}

func TestSummaryComputesGPAAndCGPA(t *testing.T) {
	svc := newCalculator()

	resp, err := svc.Summary(context.Background(), models.CalculationRequest{Session: sampleSession()})
	require.NoError(t, err)
	require.Len(t, resp.Summary.Semesters, 2)

	// (9*4 + 8*3) / 7 = 60/7
	require.NotNil(t, resp.Summary.Semesters[0].GPA)
	assert.InDelta(t, 8.57, *resp.Summary.Semesters[0].GPA, 0.001)
	require.NotNil(t, resp.Summary.Semesters[1].GPA)
	assert.InDelta(t, 10.0, *resp.Summary.Semesters[1].GPA, 0.001)

	// (60 + 40) / 11
	require.NotNil(t, resp.Summary.CGPA)
	assert.InDelta(t, 9.09, *resp.Summary.CGPA, 0.001)
	assert.Equal(t, 10, resp.Summary.Scale)
}

func TestSummaryResolvesLetterGrades(t *testing.T) {
	svc := newCalculator()

	session := models.Session{Semesters: []models.Semester{{
		Name:  "Semester 1",
		Order: 1,
		Courses: []models.Course{
			{Name: "Physics", Credits: 4, GradeType: models.GradeTypeLetter, Grade: "A"},
		},
	}}}

	resp, err := svc.Summary(context.Background(), models.CalculationRequest{Session: session})
	require.NoError(t, err)
	require.NotNil(t, resp.Summary.CGPA)
	assert.InDelta(t, 9.0, *resp.Summary.CGPA, 0.001)
}

func TestSummaryManualFallback(t *testing.T) {
	svc := newCalculator()

	session := models.Session{Semesters: []models.Semester{
		{Name: "Semester 1", Order: 1, ManualGPA: f64(8.0), ManualCredits: f64(20)},
		{Name: "Semester 2", Order: 2, ManualGPA: f64(7.0), ManualCredits: f64(18)},
	}}

	resp, err := svc.Summary(context.Background(), models.CalculationRequest{Session: session})
	require.NoError(t, err)
	assert.True(t, resp.Summary.Semesters[0].IsManual)

	// (8*20 + 7*18) / 38 = 286/38
	require.NotNil(t, resp.Summary.CGPA)
	assert.InDelta(t, 7.53, *resp.Summary.CGPA, 0.001)
}

func TestSummaryEmptySessionHasNilCGPA(t *testing.T) {
	svc := newCalculator()

	resp, err := svc.Summary(context.Background(), models.CalculationRequest{Session: models.Session{}})
	require.NoError(t, err)
	assert.Nil(t, resp.Summary.CGPA)
}

func TestSummaryWarnsOnUnknownLetter(t *testing.T) {
	svc := newCalculator()

	session := models.Session{Semesters: []models.Semester{{
		Name:  "Semester 1",
		Order: 1,
		Courses: []models.Course{
			{Name: "Mystery", Credits: 3, GradeType: models.GradeTypeLetter, Grade: "Z"},
		},
	}}}

	resp, err := svc.Summary(context.Background(), models.CalculationRequest{Session: session})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Warnings)
	assert.Contains(t, resp.Warnings[0], "unrecognized letter grade")
}

func TestStatisticsTrend(t *testing.T) {
	svc := newCalculator()

	session := models.Session{Semesters: []models.Semester{
		{Name: "S1", Order: 1, ManualGPA: f64(6.0), ManualCredits: f64(20)},
		{Name: "S2", Order: 2, ManualGPA: f64(7.0), ManualCredits: f64(20)},
		{Name: "S3", Order: 3, ManualGPA: f64(8.5), ManualCredits: f64(20)},
	}}

	stats, err := svc.Statistics(context.Background(), models.CalculationRequest{Session: session})
	require.NoError(t, err)
	assert.Equal(t, models.TrendImproving, stats.TrendDirection)
	assert.True(t, stats.HasManualSemesters)
}

func TestTargetSolver(t *testing.T) {
	svc := newCalculator()

	session := models.Session{Semesters: []models.Semester{
		{Name: "S1", Order: 1, ManualGPA: f64(8.0), ManualCredits: f64(80)},
	}}

	result, err := svc.Target(context.Background(), models.TargetRequest{
		Session:          session,
		TargetCGPA:       8.5,
		RemainingCredits: 80,
	})
	require.NoError(t, err)
	assert.True(t, result.Feasible)
	assert.InDelta(t, 9.0, result.RequiredGPA, 0.001)
}

func TestTargetZeroRemainingCredits(t *testing.T) {
	svc := newCalculator()

	result, err := svc.Target(context.Background(), models.TargetRequest{
		Session:    sampleSession(),
		TargetCGPA: 9.5,
	})
	require.NoError(t, err)
	assert.False(t, result.Feasible)
	assert.Contains(t, result.Message, "no remaining credits")
}

func TestSemesterTargetRecommendations(t *testing.T) {
	svc := newCalculator()

	result, err := svc.SemesterTarget(context.Background(), models.SemesterTargetRequest{
		Semester: models.Semester{
			Name: "Semester 3",
			Courses: []models.Course{
				{Name: "Done", Credits: 4, GradePoint: f64(8)},
				{Name: "Pending", Credits: 3},
			},
		},
		TargetGPA: 8.5,
	})
	require.NoError(t, err)
	assert.True(t, result.Feasible)
	require.Len(t, result.Courses, 1)
	assert.Equal(t, "Pending", result.Courses[0].CourseName)
	assert.True(t, result.Courses[0].Achievable)
}

func TestTimelineRunningCGPA(t *testing.T) {
	svc := newCalculator()

	points, err := svc.Timeline(context.Background(), models.ChartRequest{Session: sampleSession()})
	require.NoError(t, err)
	require.Len(t, points, 2)
	require.NotNil(t, points[1].CGPA)
	assert.InDelta(t, 9.09, *points[1].CGPA, 0.001)
}

func TestDistributionCountsGrades(t *testing.T) {
	svc := newCalculator()

	series, err := svc.Distribution(context.Background(), models.ChartRequest{Session: sampleSession()})
	require.NoError(t, err)
	require.NotEmpty(t, series)

	counts := map[string]float64{}
	for _, p := range series {
		counts[p.Name] = p.Value
	}
	assert.Equal(t, 1.0, counts["A"])
	assert.Equal(t, 1.0, counts["B"])
	assert.Equal(t, 1.0, counts["A+/O"])
}

func TestProgressUsesConfiguredRequiredCredits(t *testing.T) {
	svc := newCalculator()

	metrics, err := svc.Progress(context.Background(), models.ChartRequest{Session: sampleSession()})
	require.NoError(t, err)
	assert.Equal(t, 160.0, metrics.RequiredCredits)
	// 11/160 ≈ 6.875% rounds to 7
	assert.Equal(t, 7, metrics.Percentage)
}

func TestRepeatPolicyAppliedAcrossSemesters(t *testing.T) {
	svc := newCalculator()

	session := models.Session{
		Metadata: models.SessionMetadata{Scale: 10, RepeatPolicy: models.RepeatHighest},
		Semesters: []models.Semester{
			{Name: "S1", Order: 1, Courses: []models.Course{
				{Code: "CS101", Name: "Programming", Credits: 4, GradePoint: f64(5)},
			}},
			{Name: "S2", Order: 2, Courses: []models.Course{
				{Code: "CS101", Name: "Programming", Credits: 4, GradePoint: f64(9)},
			}},
		},
	}

	resp, err := svc.Summary(context.Background(), models.CalculationRequest{Session: session})
	require.NoError(t, err)
	require.NotNil(t, resp.Summary.CGPA)
	assert.InDelta(t, 9.0, *resp.Summary.CGPA, 0.001)
}

func TestChartRequestValidation(t *testing.T) {
	svc := newCalculator()

	_, err := svc.TopCourses(context.Background(), models.ChartRequest{Session: sampleSession(), Count: 500})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
