package engine

import (
	"fmt"

	"github.com/gradefolio/gradefolio-api/internal/models"
)

// ValidateCourse inspects a course and returns human-readable warnings.
// Warnings never block computation; they exist so callers can surface data
// quality issues (the lenient unknown-letter default included) before the
// numbers silently absorb them.
func ValidateCourse(course models.Course, scale int, template *models.GradeTemplate) []string {
	var warnings []string
	label := course.Code
	if label == "" {
		label = course.Name
	}

	if course.Credits < 0 {
		warnings = append(warnings, fmt.Sprintf("course %s: negative credits not allowed", label))
	}
	if course.Credits == 0 {
		warnings = append(warnings, fmt.Sprintf("course %s: zero credits - will not affect GPA", label))
	}

	switch course.GradeType {
	case models.GradeTypeMarks:
		if course.Marks == nil {
			warnings = append(warnings, fmt.Sprintf("course %s: marks not provided", label))
		} else if *course.Marks < 0 || *course.Marks > 100 {
			warnings = append(warnings, fmt.Sprintf("course %s: marks out of range (0-100)", label))
		}
	case models.GradeTypeLetter:
		if course.Grade == "" {
			warnings = append(warnings, fmt.Sprintf("course %s: letter grade not provided", label))
		} else if _, known := LookupGradePoints(course.Grade, scale, template); !known {
			warnings = append(warnings, fmt.Sprintf("course %s: unrecognized letter grade %q treated as 0.0", label, course.Grade))
		}
	}

	return warnings
}

// ValidateSession runs ValidateCourse over every course in the session.
func ValidateSession(session models.Session, template *models.GradeTemplate) []string {
	var warnings []string
	for _, semester := range session.Semesters {
		for _, course := range semester.Courses {
			warnings = append(warnings, ValidateCourse(course, session.Metadata.Scale, template)...)
		}
	}
	return warnings
}
