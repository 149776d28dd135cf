package engine

import (
	"sort"

	"github.com/gradefolio/gradefolio-api/internal/models"
)

// trendMargin is the absolute grade-point difference between the early and
// late mean before a trajectory counts as improving or declining. It is a
// fixed constant on whatever scale is in effect, not a fraction of the scale.
const trendMargin = 0.2

// trendWindow bounds how many recent semesters feed the trend comparison.
const trendWindow = 3

// SemestersInOrder returns the semesters sorted chronologically by their
// Order field. The input slice is not modified.
func SemestersInOrder(semesters []models.Semester) []models.Semester {
	ordered := make([]models.Semester, len(semesters))
	copy(ordered, semesters)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})
	return ordered
}

// CalculateStatistics summarises a session: membership totals, best and
// worst semester, letter-grade histogram and trend direction. The histogram
// is built only from course-level grades; manual-entry semesters contribute
// nothing to it, which HasManualSemesters surfaces as a hint for callers.
func CalculateStatistics(session models.Session) models.Statistics {
	stats := models.Statistics{
		GradeDistribution: make(map[string]int),
		TrendDirection:    models.TrendUnknown,
	}

	for _, semester := range session.Semesters {
		stats.TotalCourses += len(semester.Courses)
		stats.TotalCredits += EffectiveSemesterCredits(semester)

		gpa, source := EffectiveSemesterGPA(semester)
		if source == SourceManual {
			stats.HasManualSemesters = true
		}
		if gpa != nil {
			if stats.HighestSemesterGPA == nil || *gpa > *stats.HighestSemesterGPA {
				value := *gpa
				stats.HighestSemesterGPA = &value
			}
			if stats.LowestSemesterGPA == nil || *gpa < *stats.LowestSemesterGPA {
				value := *gpa
				stats.LowestSemesterGPA = &value
			}
		}

		for _, course := range semester.Courses {
			if course.Grade != "" {
				stats.GradeDistribution[course.Grade]++
			}
		}
	}

	stats.TrendDirection = TrendDirection(session.Semesters)
	return stats
}

// TrendDirection classifies the recent GPA trajectory from the chronological
// sequence of effective semester GPAs. With fewer than two data points the
// trend is unknown; otherwise the last three values are split into an early
// half (floor(n/2) values) and a late half, and their means compared against
// the fixed margin.
func TrendDirection(semesters []models.Semester) models.TrendDirection {
	var gpas []float64
	for _, semester := range SemestersInOrder(semesters) {
		if gpa, _ := EffectiveSemesterGPA(semester); gpa != nil {
			gpas = append(gpas, *gpa)
		}
	}

	if len(gpas) < 2 {
		return models.TrendUnknown
	}
	if len(gpas) > trendWindow {
		gpas = gpas[len(gpas)-trendWindow:]
	}

	split := len(gpas) / 2
	early := mean(gpas[:split])
	late := mean(gpas[split:])

	switch {
	case late > early+trendMargin:
		return models.TrendImproving
	case late < early-trendMargin:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
