package engine

import (
	"sort"

	"github.com/gradefolio/gradefolio-api/internal/models"
)

// DefaultRequiredCredits is the assumed total credit requirement of a degree
// when the caller does not supply one.
const DefaultRequiredCredits = 160

// maxCourseNameLength bounds display names in the top-courses series.
const maxCourseNameLength = 25

// ManualEntryBucket is the synthetic histogram bucket emitted when only
// manual-entry semesters exist.
const ManualEntryBucket = "Manual Entry"

// CGPATimeline projects the session onto a chronological series of running
// CGPA and per-semester GPA, both using effective values.
func CGPATimeline(session models.Session) []models.TimelinePoint {
	ordered := SemestersInOrder(session.Semesters)
	points := make([]models.TimelinePoint, 0, len(ordered))

	runningPoints := 0.0
	runningCredits := 0.0
	for _, semester := range ordered {
		point := models.TimelinePoint{Name: semester.Name}

		gpa, source := EffectiveSemesterGPA(semester)
		if gpa != nil && source != SourceNone {
			value := *gpa
			point.GPA = &value
			if credits := EffectiveSemesterCredits(semester); credits > 0 {
				runningPoints += value * credits
				runningCredits += credits
			}
		}
		if runningCredits > 0 {
			cgpa := runningPoints / runningCredits
			point.CGPA = &cgpa
		}

		points = append(points, point)
	}

	return points
}

// GradeDistributionSeries projects the letter-grade histogram as a sorted
// categorical series. When no course-level grades exist but manual entries
// do, it emits a single synthetic bucket instead of an empty series.
func GradeDistributionSeries(session models.Session) []models.SeriesPoint {
	stats := CalculateStatistics(session)

	if len(stats.GradeDistribution) == 0 {
		if stats.HasManualSemesters {
			manual := 0
			for _, semester := range session.Semesters {
				if _, source := EffectiveSemesterGPA(semester); source == SourceManual {
					manual++
				}
			}
			return []models.SeriesPoint{{Name: ManualEntryBucket, Value: float64(manual)}}
		}
		return nil
	}

	series := make([]models.SeriesPoint, 0, len(stats.GradeDistribution))
	for grade, count := range stats.GradeDistribution {
		series = append(series, models.SeriesPoint{Name: grade, Value: float64(count)})
	}
	sort.Slice(series, func(i, j int) bool {
		if series[i].Value != series[j].Value {
			return series[i].Value > series[j].Value
		}
		return series[i].Name < series[j].Name
	})
	return series
}

// CreditsBreakdownSeries splits completed credits against a fixed assumed
// degree requirement. Pass requiredTotal <= 0 to use the default.
func CreditsBreakdownSeries(session models.Session, requiredTotal float64) models.CreditsBreakdown {
	if requiredTotal <= 0 {
		requiredTotal = DefaultRequiredCredits
	}

	completed := 0.0
	for _, semester := range session.Semesters {
		completed += EffectiveSemesterCredits(semester)
	}

	remaining := requiredTotal - completed
	if remaining < 0 {
		remaining = 0
	}

	return models.CreditsBreakdown{Completed: completed, Remaining: remaining, Required: requiredTotal}
}

// SemesterComparisonSeries projects per-semester effective GPAs in
// chronological order. Semesters without a defined GPA are skipped.
func SemesterComparisonSeries(session models.Session) []models.SeriesPoint {
	var series []models.SeriesPoint
	for _, semester := range SemestersInOrder(session.Semesters) {
		if gpa, _ := EffectiveSemesterGPA(semester); gpa != nil {
			series = append(series, models.SeriesPoint{Name: semester.Name, Value: *gpa})
		}
	}
	return series
}

// TopCoursesSeries lists all graded courses sorted by grade point
// descending, truncated to count, with long names elided.
func TopCoursesSeries(session models.Session, count int) []models.SeriesPoint {
	type scored struct {
		name   string
		points float64
	}

	var courses []scored
	for _, semester := range session.Semesters {
		for _, course := range semester.Courses {
			if course.GradePoint != nil {
				courses = append(courses, scored{name: elide(course.Name), points: *course.GradePoint})
			}
		}
	}

	sort.SliceStable(courses, func(i, j int) bool {
		return courses[i].points > courses[j].points
	})

	if count > 0 && len(courses) > count {
		courses = courses[:count]
	}

	series := make([]models.SeriesPoint, 0, len(courses))
	for _, course := range courses {
		series = append(series, models.SeriesPoint{Name: course.name, Value: course.points})
	}
	return series
}

// ProgressMetrics reports degree completion. Completed courses are those
// with a grade point; when no course-level data exists anywhere, each
// manual-entry semester counts as one completed course so the figures do
// not read as an empty record.
func ProgressMetrics(session models.Session, requiredTotal float64) models.ProgressMetrics {
	if requiredTotal <= 0 {
		requiredTotal = DefaultRequiredCredits
	}

	metrics := models.ProgressMetrics{RequiredCredits: requiredTotal}

	for _, semester := range session.Semesters {
		metrics.TotalCourses += len(semester.Courses)
		metrics.CompletedCredits += EffectiveSemesterCredits(semester)
		for _, course := range semester.Courses {
			if course.GradePoint != nil {
				metrics.CompletedCourses++
			}
		}
	}

	if metrics.TotalCourses == 0 {
		manual := 0
		for _, semester := range session.Semesters {
			if _, source := EffectiveSemesterGPA(semester); source == SourceManual {
				manual++
			}
		}
		metrics.TotalCourses = manual
		metrics.CompletedCourses = manual
	}

	percentage := int(metrics.CompletedCredits/requiredTotal*100 + 0.5)
	if percentage > 100 {
		percentage = 100
	}
	metrics.Percentage = percentage

	return metrics
}

func elide(name string) string {
	runes := []rune(name)
	if len(runes) <= maxCourseNameLength {
		return name
	}
	return string(runes[:maxCourseNameLength]) + "..."
}
