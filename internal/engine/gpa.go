package engine

import (
	"math"

	"github.com/gradefolio/gradefolio-api/internal/models"
)

// GPASource tags where a semester's effective GPA came from.
type GPASource string

const (
	// SourceCourses means the GPA was derived from the course list.
	SourceCourses GPASource = "courses"
	// SourceManual means the manual override pair was used.
	SourceManual GPASource = "manual"
	// SourceNone means the semester has no defined GPA.
	SourceNone GPASource = "none"
)

// SemesterGPA computes the credit-weighted average grade point over courses
// that have both a grade point and non-zero credits. It returns nil, not
// zero, when no course qualifies: nil means "undefined", zero means "worst
// possible", and the two must never be conflated downstream.
func SemesterGPA(courses []models.Course) *float64 {
	totalPoints := 0.0
	totalCredits := 0.0

	for _, course := range courses {
		if course.GradePoint == nil {
			continue
		}
		if course.Credits == 0 {
			continue
		}
		totalPoints += *course.GradePoint * course.Credits
		totalCredits += course.Credits
	}

	if totalCredits == 0 {
		return nil
	}

	gpa := totalPoints / totalCredits
	return &gpa
}

// EffectiveSemesterGPA resolves a semester's GPA: course-derived whenever
// courses exist, the manual override only as a fallback for course-less
// semesters, never a blend of the two.
func EffectiveSemesterGPA(semester models.Semester) (*float64, GPASource) {
	if len(semester.Courses) > 0 {
		return SemesterGPA(semester.Courses), SourceCourses
	}
	if semester.ManualGPA != nil {
		gpa := *semester.ManualGPA
		return &gpa, SourceManual
	}
	return nil, SourceNone
}

// EffectiveSemesterCredits resolves a semester's credit total under the same
// fallback rule as EffectiveSemesterGPA.
func EffectiveSemesterCredits(semester models.Semester) float64 {
	if len(semester.Courses) > 0 {
		total := 0.0
		for _, course := range semester.Courses {
			total += course.Credits
		}
		return total
	}
	if semester.ManualCredits != nil {
		return *semester.ManualCredits
	}
	return 0
}

// CGPA accumulates the credit-weighted average of effective semester GPAs.
// Semesters without a defined GPA or with zero effective credits drop out of
// both numerator and denominator; nil when no semester qualifies.
func CGPA(semesters []models.Semester) *float64 {
	totalPoints := 0.0
	totalCredits := 0.0

	for _, semester := range semesters {
		gpa, source := EffectiveSemesterGPA(semester)
		if source == SourceNone || gpa == nil {
			continue
		}
		credits := EffectiveSemesterCredits(semester)
		if credits == 0 {
			continue
		}
		totalPoints += *gpa * credits
		totalCredits += credits
	}

	if totalCredits == 0 {
		return nil
	}

	cgpa := totalPoints / totalCredits
	return &cgpa
}

// CourseTotalMarks sums the component scores of a course, capping each at
// its paired max. The second return reports whether any component was
// present; without components the course's plain Marks field stands.
func CourseTotalMarks(course models.Course) (float64, bool) {
	total := 0.0
	found := false

	add := func(score, max *float64) {
		if score == nil {
			return
		}
		found = true
		value := *score
		if max != nil {
			value = math.Min(value, *max)
		}
		total += value
	}

	add(course.Endsem, course.EndsemMax)
	add(course.Midsem, course.MidsemMax)
	add(course.Internals, course.InternalsMax)

	return total, found
}

// ResolveGradePoint determines a course's grade point from whichever input
// is authoritative: an explicit grade point wins, then component totals,
// then plain marks, then the letter grade. Nil when nothing is available.
func ResolveGradePoint(course models.Course, template models.GradeTemplate) *float64 {
	if course.GradePoint != nil {
		gp := *course.GradePoint
		return &gp
	}

	if total, ok := CourseTotalMarks(course); ok {
		_, points := MarksToPoints(total, template)
		return &points
	}

	if course.GradeType == models.GradeTypeMarks && course.Marks != nil {
		_, points := MarksToPoints(*course.Marks, template)
		return &points
	}

	if course.Grade != "" {
		points := GradeToPoints(course.Grade, template.Scale, &template)
		return &points
	}

	return nil
}

// ApplyRepeatPolicy collapses duplicate course codes per the policy,
// preserving first-seen order. Courses without a code never group. With
// "latest" the last attempt replaces earlier ones, "highest" keeps the best
// grade point (nil compares as 0), "average" merges the mean grade point
// onto the first attempt.
func ApplyRepeatPolicy(courses []models.Course, policy models.RepeatPolicy) []models.Course {
	hasDuplicate := false
	seen := make(map[string]int, len(courses))
	for _, course := range courses {
		if course.Code == "" {
			continue
		}
		seen[course.Code]++
		if seen[course.Code] > 1 {
			hasDuplicate = true
		}
	}
	if !hasDuplicate {
		return courses
	}

	index := make(map[string]int, len(courses))
	result := make([]models.Course, 0, len(courses))

	appendCourse := func(course models.Course) {
		index[course.Code] = len(result)
		result = append(result, course)
	}

	switch policy {
	case models.RepeatHighest:
		for _, course := range courses {
			at, ok := index[course.Code]
			if course.Code == "" || !ok {
				appendCourse(course)
				continue
			}
			if pointsOrZero(course.GradePoint) > pointsOrZero(result[at].GradePoint) {
				result[at] = course
			}
		}
	case models.RepeatAverage:
		sums := make(map[string]float64, len(courses))
		counts := make(map[string]int, len(courses))
		for _, course := range courses {
			at, ok := index[course.Code]
			if course.Code == "" || !ok {
				appendCourse(course)
				if course.Code != "" && course.GradePoint != nil {
					sums[course.Code] = *course.GradePoint
					counts[course.Code] = 1
				}
				continue
			}
			if course.GradePoint != nil {
				sums[course.Code] += *course.GradePoint
				counts[course.Code]++
			}
			if counts[course.Code] > 0 {
				avg := sums[course.Code] / float64(counts[course.Code])
				merged := result[at]
				merged.GradePoint = &avg
				result[at] = merged
			}
		}
	default: // latest
		for _, course := range courses {
			at, ok := index[course.Code]
			if course.Code == "" || !ok {
				appendCourse(course)
				continue
			}
			result[at] = course
		}
	}

	return result
}

// ApplySessionRepeatPolicy applies the session's repeat policy across all
// semesters and returns a copy of the session. The surviving attempt stays in
// the semester it was taken in, so under "latest" a retake is counted toward
// the retake's semester, not the first attempt's. The averaged attempt is the
// exception: it remains at the first occurrence, matching the merge-onto-first
// pool semantics. The input is never mutated.
func ApplySessionRepeatPolicy(session models.Session) models.Session {
	policy := session.Metadata.RepeatPolicy
	if policy == "" {
		return session
	}

	type position struct{ semester, course int }
	survivors := make(map[string]position)
	values := make(map[string]models.Course)
	sums := make(map[string]float64)
	counts := make(map[string]int)
	repeated := false

	for i, semester := range session.Semesters {
		for j, course := range semester.Courses {
			if course.Code == "" {
				continue
			}
			if _, seen := survivors[course.Code]; !seen {
				survivors[course.Code] = position{i, j}
				values[course.Code] = course
				if course.GradePoint != nil {
					sums[course.Code] = *course.GradePoint
					counts[course.Code] = 1
				}
				continue
			}
			repeated = true
			switch policy {
			case models.RepeatHighest:
				if pointsOrZero(course.GradePoint) > pointsOrZero(values[course.Code].GradePoint) {
					survivors[course.Code] = position{i, j}
					values[course.Code] = course
				}
			case models.RepeatAverage:
				if course.GradePoint != nil {
					sums[course.Code] += *course.GradePoint
					counts[course.Code]++
				}
			default: // latest
				survivors[course.Code] = position{i, j}
				values[course.Code] = course
			}
		}
	}

	if !repeated {
		return session
	}

	if policy == models.RepeatAverage {
		for code, count := range counts {
			if count == 0 {
				continue
			}
			avg := sums[code] / float64(count)
			merged := values[code]
			merged.GradePoint = &avg
			values[code] = merged
		}
	}

	out := session
	out.Semesters = make([]models.Semester, len(session.Semesters))
	for i, semester := range session.Semesters {
		copied := semester
		copied.Courses = make([]models.Course, 0, len(semester.Courses))
		for j, course := range semester.Courses {
			if course.Code == "" {
				copied.Courses = append(copied.Courses, course)
				continue
			}
			if at := survivors[course.Code]; at.semester == i && at.course == j {
				copied.Courses = append(copied.Courses, values[course.Code])
			}
		}
		out.Semesters[i] = copied
	}

	return out
}

func pointsOrZero(gp *float64) float64 {
	if gp == nil {
		return 0
	}
	return *gp
}
