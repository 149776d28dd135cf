package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradefolio/gradefolio-api/internal/models"
)

func TestMarksToGradeBoundaries(t *testing.T) {
	cases := []struct {
		marks float64
		want  string
	}{
		{100, "A+/O"},
		{91, "A+/O"},
		{90, "A"},
		{81, "A"},
		{80, "B"},
		{71, "B"},
		{61, "C"},
		{51, "D"},
		{41, "E"},
		{40, "F"},
		{0, "F"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, MarksToGrade(tc.marks, BITMesra10Point), "marks=%v", tc.marks)
	}
}

func TestMarksToGrade4Point(t *testing.T) {
	assert.Equal(t, "A+", MarksToGrade(95, Standard4Point))
	assert.Equal(t, "A-", MarksToGrade(88, Standard4Point))
	assert.Equal(t, "C", MarksToGrade(71, Standard4Point))
	assert.Equal(t, "F", MarksToGrade(30, Standard4Point))
}

func TestGradeToPointsTemplateAndFallback(t *testing.T) {
	assert.Equal(t, 10.0, GradeToPoints("a+/o", 10, &BITMesra10Point))
	assert.Equal(t, 9.0, GradeToPoints(" A ", 10, &BITMesra10Point))

	// No template: the fixed per-scale table applies.
	assert.Equal(t, 10.0, GradeToPoints("O", 10, nil))
	assert.Equal(t, 3.7, GradeToPoints("A-", 4, nil))

	// Unknown letters degrade to 0.0 instead of failing.
	assert.Equal(t, 0.0, GradeToPoints("Z", 10, &BITMesra10Point))

	_, known := LookupGradePoints("Z", 10, &BITMesra10Point)
	assert.False(t, known)
}

func TestMarksToPointsRoundTrip(t *testing.T) {
	for _, template := range BuiltinTemplates() {
		for _, mapping := range template.Mappings {
			for _, marks := range []float64{mapping.MinMarks, (mapping.MinMarks + mapping.MaxMarks) / 2, mapping.MaxMarks} {
				letter := MarksToGrade(marks, template)
				points := GradeToPoints(letter, template.Scale, &template)
				assert.Equal(t, mapping.GradePoint, points, "template=%s marks=%v", template.Name, marks)
			}
		}
	}
}

func TestMarksToPointsSyntheticTemplate(t *testing.T) {
	synthetic := models.GradeTemplate{
		Name:  "Synthetic",
		Scale: 10,
		Mappings: []models.GradeMapping{
			{MinMarks: 50, MaxMarks: 100, LetterGrade: "P", GradePoint: 10},
			{MinMarks: 0, MaxMarks: 49, LetterGrade: "F", GradePoint: 0},
		},
	}

	letter, points := MarksToPoints(72, synthetic)
	assert.Equal(t, "P", letter)
	assert.Equal(t, 10.0, points)
}

func TestTemplateByName(t *testing.T) {
	template, ok := TemplateByName("Standard 4-Point")
	require.True(t, ok)
	assert.Equal(t, 4, template.Scale)

	_, ok = TemplateByName("nope")
	assert.False(t, ok)
}

func TestConvertScaleLinearRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 2.5, 6.0, 8.5714, 10} {
		down := ConvertScale(v, 10, 4, MethodLinear)
		up := ConvertScale(down.ConvertedValue, 4, 10, MethodLinear)
		assert.InDelta(t, v, up.ConvertedValue, 1e-9)
	}
}

func TestConvertScaleOfficial(t *testing.T) {
	cases := []struct {
		value float64
		want  float64
	}{
		{9.5, 4.0},
		{8.5, 3.7},
		{7.5, 3.3},
		{6.5, 3.0},
		{5.5, 2.7},
		{5.0, 2.0},
		{4.0, 1.6}, // below the table: value × 0.4
	}

	for _, tc := range cases {
		got := ConvertScale(tc.value, 10, 4, MethodOfficial)
		assert.InDelta(t, tc.want, got.ConvertedValue, 1e-9, "value=%v", tc.value)
	}

	reverse := ConvertScale(3.7, 4, 10, MethodOfficial)
	assert.Equal(t, 9.0, reverse.ConvertedValue)
}

func TestConvertScaleSameScale(t *testing.T) {
	got := ConvertScale(8.5, 10, 10, MethodLinear)
	assert.Equal(t, 8.5, got.ConvertedValue)
	assert.Contains(t, got.Formula, "no conversion")
}
