package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradefolio/gradefolio-api/internal/models"
)

func TestCGPATimelineRunningAverage(t *testing.T) {
	session := models.Session{
		Semesters: []models.Semester{
			semesterWithGPA("Sem 2", 2, 9.0, 20),
			semesterWithGPA("Sem 1", 1, 8.0, 20),
		},
	}

	points := CGPATimeline(session)
	require.Len(t, points, 2)

	assert.Equal(t, "Sem 1", points[0].Name)
	require.NotNil(t, points[0].CGPA)
	assert.InDelta(t, 8.0, *points[0].CGPA, 1e-9)

	assert.Equal(t, "Sem 2", points[1].Name)
	require.NotNil(t, points[1].GPA)
	require.NotNil(t, points[1].CGPA)
	assert.InDelta(t, 9.0, *points[1].GPA, 1e-9)
	assert.InDelta(t, 8.5, *points[1].CGPA, 1e-9)
}

func TestCGPATimelineSkipsUndefinedButKeepsPosition(t *testing.T) {
	session := models.Session{
		Semesters: []models.Semester{
			semesterWithGPA("Sem 1", 1, 8.0, 20),
			{Name: "Sem 2", Order: 2}, // no data yet
		},
	}

	points := CGPATimeline(session)
	require.Len(t, points, 2)
	assert.Nil(t, points[1].GPA)
	require.NotNil(t, points[1].CGPA)
	assert.InDelta(t, 8.0, *points[1].CGPA, 1e-9)
}

func TestGradeDistributionSeries(t *testing.T) {
	session := models.Session{
		Semesters: []models.Semester{
			{Name: "Sem 1", Courses: []models.Course{
				letterCourse("A1", 3, 9, "A"),
				letterCourse("A2", 3, 9, "A"),
				letterCourse("B1", 3, 8, "B"),
			}},
		},
	}

	series := GradeDistributionSeries(session)
	require.Len(t, series, 2)
	assert.Equal(t, models.SeriesPoint{Name: "A", Value: 2}, series[0])
	assert.Equal(t, models.SeriesPoint{Name: "B", Value: 1}, series[1])
}

func TestGradeDistributionManualFallback(t *testing.T) {
	session := models.Session{
		Semesters: []models.Semester{
			{Name: "Sem 1", ManualGPA: fptr(8), ManualCredits: fptr(20)},
			{Name: "Sem 2", ManualGPA: fptr(7), ManualCredits: fptr(20)},
		},
	}

	series := GradeDistributionSeries(session)
	require.Len(t, series, 1)
	assert.Equal(t, ManualEntryBucket, series[0].Name)
	assert.Equal(t, 2.0, series[0].Value)

	assert.Nil(t, GradeDistributionSeries(models.Session{}))
}

func TestCreditsBreakdownSeries(t *testing.T) {
	session := models.Session{
		Semesters: []models.Semester{semesterWithGPA("Sem 1", 1, 8.0, 100)},
	}

	breakdown := CreditsBreakdownSeries(session, 0)
	assert.Equal(t, 100.0, breakdown.Completed)
	assert.Equal(t, 60.0, breakdown.Remaining)
	assert.Equal(t, float64(DefaultRequiredCredits), breakdown.Required)

	// Completion beyond the requirement clamps remaining at zero.
	over := CreditsBreakdownSeries(session, 80)
	assert.Equal(t, 0.0, over.Remaining)
}

func TestSemesterComparisonSeries(t *testing.T) {
	session := models.Session{
		Semesters: []models.Semester{
			semesterWithGPA("Sem 2", 2, 7.0, 20),
			semesterWithGPA("Sem 1", 1, 8.0, 20),
			{Name: "Sem 3", Order: 3},
		},
	}

	series := SemesterComparisonSeries(session)
	require.Len(t, series, 2)
	assert.Equal(t, "Sem 1", series[0].Name)
	assert.Equal(t, "Sem 2", series[1].Name)
}

func TestTopCoursesSeries(t *testing.T) {
	longName := strings.Repeat("Advanced Topics ", 3) // 48 chars
	session := models.Session{
		Semesters: []models.Semester{
			{Name: "Sem 1", Courses: []models.Course{
				gradedCourse("Math", 3, 8),
				gradedCourse("Physics", 3, 9),
				{Name: longName, Credits: 4, GradePoint: fptr(10)},
				{Name: "Ungraded", Credits: 3},
			}},
		},
	}

	series := TopCoursesSeries(session, 2)
	require.Len(t, series, 2)
	assert.Equal(t, 10.0, series[0].Value)
	assert.True(t, strings.HasSuffix(series[0].Name, "..."))
	assert.Len(t, []rune(series[0].Name), maxCourseNameLength+3)
	assert.Equal(t, "Physics", series[1].Name)
}

func TestProgressMetrics(t *testing.T) {
	session := models.Session{
		Semesters: []models.Semester{
			{Name: "Sem 1", Courses: []models.Course{
				gradedCourse("A", 20, 8),
				{Name: "Pending", Credits: 4},
			}},
		},
	}

	metrics := ProgressMetrics(session, 160)
	assert.Equal(t, 2, metrics.TotalCourses)
	assert.Equal(t, 1, metrics.CompletedCourses)
	assert.Equal(t, 24.0, metrics.CompletedCredits)
	assert.Equal(t, 15, metrics.Percentage) // round(24/160*100)
}

func TestProgressMetricsManualOnlyFallback(t *testing.T) {
	session := models.Session{
		Semesters: []models.Semester{
			{Name: "Sem 1", ManualGPA: fptr(8), ManualCredits: fptr(20)},
			{Name: "Sem 2", ManualGPA: fptr(7), ManualCredits: fptr(20)},
		},
	}

	metrics := ProgressMetrics(session, 160)
	assert.Equal(t, 2, metrics.TotalCourses)
	assert.Equal(t, 2, metrics.CompletedCourses)
	assert.Equal(t, 40.0, metrics.CompletedCredits)
	assert.Equal(t, 25, metrics.Percentage)
}

func TestProgressMetricsClampsAtHundred(t *testing.T) {
	session := models.Session{
		Semesters: []models.Semester{semesterWithGPA("Sem 1", 1, 8.0, 200)},
	}

	metrics := ProgressMetrics(session, 160)
	assert.Equal(t, 100, metrics.Percentage)
}
