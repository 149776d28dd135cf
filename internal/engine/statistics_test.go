package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradefolio/gradefolio-api/internal/models"
)

func letterCourse(name string, credits, points float64, grade string) models.Course {
	return models.Course{Name: name, Credits: credits, GradeType: models.GradeTypeLetter, Grade: grade, GradePoint: fptr(points)}
}

func semesterWithGPA(name string, order int, gpa, credits float64) models.Semester {
	// One course carrying the whole weight reproduces the target GPA exactly.
	return models.Semester{
		Name:    name,
		Order:   order,
		Courses: []models.Course{gradedCourse(name+" course", credits, gpa)},
	}
}

func TestCalculateStatisticsTotalsAndExtremes(t *testing.T) {
	session := models.Session{
		Semesters: []models.Semester{
			{Name: "Sem 1", Order: 1, Courses: []models.Course{
				letterCourse("Prog", 4, 9, "A"),
				letterCourse("Math", 3, 8, "B"),
			}},
			{Name: "Sem 2", Order: 2, Courses: []models.Course{
				letterCourse("DS", 4, 7, "C"),
				letterCourse("OS", 3, 9, "A"),
			}},
			{Name: "Sem 3", Order: 3, ManualGPA: fptr(6.5), ManualCredits: fptr(18)},
		},
	}

	stats := CalculateStatistics(session)

	assert.Equal(t, 4, stats.TotalCourses)
	assert.Equal(t, 32.0, stats.TotalCredits)
	require.NotNil(t, stats.HighestSemesterGPA)
	require.NotNil(t, stats.LowestSemesterGPA)
	assert.InDelta(t, 60.0/7.0, *stats.HighestSemesterGPA, 1e-9)
	assert.Equal(t, 6.5, *stats.LowestSemesterGPA)
	assert.Equal(t, map[string]int{"A": 2, "B": 1, "C": 1}, stats.GradeDistribution)
	assert.True(t, stats.HasManualSemesters)
}

func TestCalculateStatisticsEmptySession(t *testing.T) {
	stats := CalculateStatistics(models.Session{})

	assert.Zero(t, stats.TotalCourses)
	assert.Nil(t, stats.HighestSemesterGPA)
	assert.Nil(t, stats.LowestSemesterGPA)
	assert.Empty(t, stats.GradeDistribution)
	assert.Equal(t, models.TrendUnknown, stats.TrendDirection)
}

func TestTrendDirectionImproving(t *testing.T) {
	semesters := []models.Semester{
		semesterWithGPA("Sem 1", 1, 6.0, 20),
		semesterWithGPA("Sem 2", 2, 7.0, 20),
		semesterWithGPA("Sem 3", 3, 8.5, 20),
	}

	assert.Equal(t, models.TrendImproving, TrendDirection(semesters))
}

func TestTrendDirectionDeclining(t *testing.T) {
	semesters := []models.Semester{
		semesterWithGPA("Sem 1", 1, 9.0, 20),
		semesterWithGPA("Sem 2", 2, 8.0, 20),
		semesterWithGPA("Sem 3", 3, 7.0, 20),
	}

	assert.Equal(t, models.TrendDeclining, TrendDirection(semesters))
}

func TestTrendDirectionStableWithinMargin(t *testing.T) {
	semesters := []models.Semester{
		semesterWithGPA("Sem 1", 1, 8.0, 20),
		semesterWithGPA("Sem 2", 2, 8.1, 20),
	}

	assert.Equal(t, models.TrendStable, TrendDirection(semesters))
}

func TestTrendDirectionUsesChronologicalOrder(t *testing.T) {
	// Listed out of order; the Order field decides the sequence.
	semesters := []models.Semester{
		semesterWithGPA("Sem 3", 3, 8.5, 20),
		semesterWithGPA("Sem 1", 1, 6.0, 20),
		semesterWithGPA("Sem 2", 2, 7.0, 20),
	}

	assert.Equal(t, models.TrendImproving, TrendDirection(semesters))
}

func TestTrendDirectionWindowIsLastThree(t *testing.T) {
	semesters := []models.Semester{
		semesterWithGPA("Sem 1", 1, 9.9, 20),
		semesterWithGPA("Sem 2", 2, 9.8, 20),
		semesterWithGPA("Sem 3", 3, 6.0, 20),
		semesterWithGPA("Sem 4", 4, 7.0, 20),
		semesterWithGPA("Sem 5", 5, 8.5, 20),
	}

	// Early high semesters fall outside the window of three.
	assert.Equal(t, models.TrendImproving, TrendDirection(semesters))
}

func TestTrendDirectionUnknownWithSinglePoint(t *testing.T) {
	assert.Equal(t, models.TrendUnknown, TrendDirection([]models.Semester{semesterWithGPA("Sem 1", 1, 8.0, 20)}))
	assert.Equal(t, models.TrendUnknown, TrendDirection(nil))
}
