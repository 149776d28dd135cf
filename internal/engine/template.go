// Package engine implements the grade computation and planning core: grade
// conversion tables, GPA/CGPA aggregation, session statistics, target
// solvers and chart projections. Every function is a pure function of its
// inputs; nothing here touches storage, transport or shared state, so
// concurrent use needs no locking. Templates are passed in explicitly so
// tests can substitute synthetic tables.
package engine

import (
	"strings"

	"github.com/gradefolio/gradefolio-api/internal/models"
)

// BITMesra10Point is the official BIT Mesra grading table (10-point scale).
var BITMesra10Point = models.GradeTemplate{
	Name:        "BIT Mesra 10-Point",
	Scale:       10,
	Description: "Official BIT Mesra grading system (10-point scale)",
	Mappings: []models.GradeMapping{
		{MinMarks: 91, MaxMarks: 100, LetterGrade: "A+/O", GradePoint: 10.0},
		{MinMarks: 81, MaxMarks: 90, LetterGrade: "A", GradePoint: 9.0},
		{MinMarks: 71, MaxMarks: 80, LetterGrade: "B", GradePoint: 8.0},
		{MinMarks: 61, MaxMarks: 70, LetterGrade: "C", GradePoint: 7.0},
		{MinMarks: 51, MaxMarks: 60, LetterGrade: "D", GradePoint: 6.0},
		{MinMarks: 41, MaxMarks: 50, LetterGrade: "E", GradePoint: 5.0},
		{MinMarks: 0, MaxMarks: 40, LetterGrade: "F", GradePoint: 0.0},
	},
}

// Standard4Point is the standard US 4.0 grading table.
var Standard4Point = models.GradeTemplate{
	Name:        "Standard 4-Point",
	Scale:       4,
	Description: "Standard US 4.0 grading scale",
	Mappings: []models.GradeMapping{
		{MinMarks: 93, MaxMarks: 100, LetterGrade: "A+", GradePoint: 4.0},
		{MinMarks: 90, MaxMarks: 92, LetterGrade: "A", GradePoint: 4.0},
		{MinMarks: 87, MaxMarks: 89, LetterGrade: "A-", GradePoint: 3.7},
		{MinMarks: 83, MaxMarks: 86, LetterGrade: "B+", GradePoint: 3.3},
		{MinMarks: 80, MaxMarks: 82, LetterGrade: "B", GradePoint: 3.0},
		{MinMarks: 77, MaxMarks: 79, LetterGrade: "B-", GradePoint: 2.7},
		{MinMarks: 73, MaxMarks: 76, LetterGrade: "C+", GradePoint: 2.3},
		{MinMarks: 70, MaxMarks: 72, LetterGrade: "C", GradePoint: 2.0},
		{MinMarks: 67, MaxMarks: 69, LetterGrade: "C-", GradePoint: 1.7},
		{MinMarks: 63, MaxMarks: 66, LetterGrade: "D+", GradePoint: 1.3},
		{MinMarks: 60, MaxMarks: 62, LetterGrade: "D", GradePoint: 1.0},
		{MinMarks: 0, MaxMarks: 59, LetterGrade: "F", GradePoint: 0.0},
	},
}

// letterToPoints10 backs direct letter entry on the 10-point scale.
var letterToPoints10 = map[string]float64{
	"A+/O": 10.0, "A+": 10.0, "O": 10.0,
	"A": 9.0,
	"B": 8.0,
	"C": 7.0,
	"D": 6.0,
	"E": 5.0,
	"F": 0.0,
}

// letterToPoints4 backs direct letter entry on the 4-point scale.
var letterToPoints4 = map[string]float64{
	"A+": 4.0, "A": 4.0, "A-": 3.7,
	"B+": 3.3, "B": 3.0, "B-": 2.7,
	"C+": 2.3, "C": 2.0, "C-": 1.7,
	"D+": 1.3, "D": 1.0, "D-": 0.7,
	"F": 0.0,
}

// BuiltinTemplates returns the built-in grading templates.
func BuiltinTemplates() []models.GradeTemplate {
	return []models.GradeTemplate{BITMesra10Point, Standard4Point}
}

// TemplateByName looks up a built-in template by its name.
func TemplateByName(name string) (models.GradeTemplate, bool) {
	for _, t := range BuiltinTemplates() {
		if t.Name == name {
			return t, true
		}
	}
	return models.GradeTemplate{}, false
}

// DefaultTemplate returns the built-in template for a scale.
func DefaultTemplate(scale int) models.GradeTemplate {
	if scale == 4 {
		return Standard4Point
	}
	return BITMesra10Point
}

// MarksToGrade converts numeric marks to a letter grade by scanning the
// template mappings in declaration order. If no interval matches it falls
// back to the template's last (lowest) mapping; a well-formed template
// covers [0,100] without gaps, so the fallback should be unreachable.
func MarksToGrade(marks float64, template models.GradeTemplate) string {
	for _, m := range template.Mappings {
		if m.MinMarks <= marks && marks <= m.MaxMarks {
			return m.LetterGrade
		}
	}
	return template.Mappings[len(template.Mappings)-1].LetterGrade
}

// LookupGradePoints resolves a letter grade to its grade point. The second
// return reports whether the letter was recognized; unrecognized letters
// resolve to 0.0 so callers can keep the lenient default while surfacing a
// warning.
func LookupGradePoints(grade string, scale int, template *models.GradeTemplate) (float64, bool) {
	grade = strings.ToUpper(strings.TrimSpace(grade))

	if template != nil {
		for _, m := range template.Mappings {
			if strings.ToUpper(m.LetterGrade) == grade {
				return m.GradePoint, true
			}
		}
	}

	table := letterToPoints10
	if scale == 4 {
		table = letterToPoints4
	}
	points, ok := table[grade]
	return points, ok
}

// GradeToPoints converts a letter grade to its grade point, using the
// template when provided and the fixed per-scale table otherwise. Unknown
// letters yield 0.0.
func GradeToPoints(grade string, scale int, template *models.GradeTemplate) float64 {
	points, _ := LookupGradePoints(grade, scale, template)
	return points
}

// MarksToPoints converts marks to a letter grade and grade point in one step.
func MarksToPoints(marks float64, template models.GradeTemplate) (string, float64) {
	letter := MarksToGrade(marks, template)
	return letter, GradeToPoints(letter, template.Scale, &template)
}
