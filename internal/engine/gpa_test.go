package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradefolio/gradefolio-api/internal/models"
)

func fptr(v float64) *float64 { return &v }

func gradedCourse(name string, credits, points float64) models.Course {
	return models.Course{Name: name, Credits: credits, GradeType: models.GradeTypeLetter, GradePoint: fptr(points)}
}

func TestSemesterGPAWeightedAverage(t *testing.T) {
	courses := []models.Course{
		gradedCourse("Programming", 4, 9),
		gradedCourse("Math", 3, 8),
		gradedCourse("Seminar", 0, 10),
	}

	gpa := SemesterGPA(courses)
	require.NotNil(t, gpa)
	assert.InDelta(t, 60.0/7.0, *gpa, 1e-9)
}

func TestSemesterGPASkipsUngraded(t *testing.T) {
	courses := []models.Course{
		gradedCourse("Programming", 4, 8),
		{Name: "Pass/Fail", Credits: 2, GradeType: models.GradeTypeLetter},
	}

	gpa := SemesterGPA(courses)
	require.NotNil(t, gpa)
	assert.Equal(t, 8.0, *gpa)
}

func TestSemesterGPAUndefined(t *testing.T) {
	assert.Nil(t, SemesterGPA(nil))
	assert.Nil(t, SemesterGPA([]models.Course{}))

	// All courses either zero-credit or ungraded.
	courses := []models.Course{
		gradedCourse("Audit", 0, 10),
		{Name: "Incomplete", Credits: 3},
	}
	assert.Nil(t, SemesterGPA(courses))
}

func TestSemesterGPAOrderInvariant(t *testing.T) {
	a := []models.Course{gradedCourse("A", 4, 9), gradedCourse("B", 3, 6), gradedCourse("C", 2, 8)}
	b := []models.Course{a[2], a[0], a[1]}

	ga, gb := SemesterGPA(a), SemesterGPA(b)
	require.NotNil(t, ga)
	require.NotNil(t, gb)
	assert.InDelta(t, *ga, *gb, 1e-12)
}

func TestEffectiveSemesterGPASources(t *testing.T) {
	courseBased := models.Semester{Courses: []models.Course{gradedCourse("A", 3, 7)}, ManualGPA: fptr(9)}
	gpa, source := EffectiveSemesterGPA(courseBased)
	require.NotNil(t, gpa)
	assert.Equal(t, 7.0, *gpa)
	assert.Equal(t, SourceCourses, source)

	manual := models.Semester{ManualGPA: fptr(7.5), ManualCredits: fptr(18)}
	gpa, source = EffectiveSemesterGPA(manual)
	require.NotNil(t, gpa)
	assert.Equal(t, 7.5, *gpa)
	assert.Equal(t, SourceManual, source)

	empty := models.Semester{}
	gpa, source = EffectiveSemesterGPA(empty)
	assert.Nil(t, gpa)
	assert.Equal(t, SourceNone, source)
}

func TestEffectiveSemesterCredits(t *testing.T) {
	courseBased := models.Semester{Courses: []models.Course{gradedCourse("A", 3, 7), gradedCourse("B", 4, 8)}, ManualCredits: fptr(99)}
	assert.Equal(t, 7.0, EffectiveSemesterCredits(courseBased))

	manual := models.Semester{ManualCredits: fptr(18)}
	assert.Equal(t, 18.0, EffectiveSemesterCredits(manual))

	assert.Equal(t, 0.0, EffectiveSemesterCredits(models.Semester{}))
}

func TestCGPAWithManualFallback(t *testing.T) {
	semesters := []models.Semester{
		{Name: "Sem 1", Courses: []models.Course{gradedCourse("A", 20, 8)}},
		{Name: "Sem 2", ManualGPA: fptr(7), ManualCredits: fptr(18)},
	}

	cgpa := CGPA(semesters)
	require.NotNil(t, cgpa)
	assert.InDelta(t, 286.0/38.0, *cgpa, 1e-9)
}

func TestCGPAIgnoresZeroCreditSemesters(t *testing.T) {
	semesters := []models.Semester{
		{Name: "Sem 1", Courses: []models.Course{gradedCourse("A", 20, 8)}},
	}
	base := CGPA(semesters)
	require.NotNil(t, base)

	padded := append(semesters, models.Semester{Name: "Empty"}, models.Semester{Name: "Manual zero", ManualGPA: fptr(9), ManualCredits: fptr(0)})
	got := CGPA(padded)
	require.NotNil(t, got)
	assert.Equal(t, *base, *got)
}

func TestCGPAUndefined(t *testing.T) {
	assert.Nil(t, CGPA(nil))
	assert.Nil(t, CGPA([]models.Semester{{Name: "Empty"}}))
}

func TestCourseTotalMarksCapsComponents(t *testing.T) {
	course := models.Course{
		Name:      "Networks",
		Endsem:    fptr(55), EndsemMax: fptr(50),
		Midsem:    fptr(20), MidsemMax: fptr(25),
		Internals: fptr(15), InternalsMax: fptr(25),
	}

	total, ok := CourseTotalMarks(course)
	require.True(t, ok)
	assert.Equal(t, 85.0, total)

	_, ok = CourseTotalMarks(models.Course{Name: "Plain"})
	assert.False(t, ok)
}

func TestResolveGradePointPrecedence(t *testing.T) {
	explicit := models.Course{Name: "A", GradePoint: fptr(6.5), Marks: fptr(95)}
	gp := ResolveGradePoint(explicit, BITMesra10Point)
	require.NotNil(t, gp)
	assert.Equal(t, 6.5, *gp)

	components := models.Course{Name: "B", Endsem: fptr(45), EndsemMax: fptr(50), Midsem: fptr(40), MidsemMax: fptr(50)}
	gp = ResolveGradePoint(components, BITMesra10Point)
	require.NotNil(t, gp)
	assert.Equal(t, 9.0, *gp) // 85 marks → A → 9.0

	marks := models.Course{Name: "C", GradeType: models.GradeTypeMarks, Marks: fptr(95)}
	gp = ResolveGradePoint(marks, BITMesra10Point)
	require.NotNil(t, gp)
	assert.Equal(t, 10.0, *gp)

	letter := models.Course{Name: "D", Grade: "B"}
	gp = ResolveGradePoint(letter, BITMesra10Point)
	require.NotNil(t, gp)
	assert.Equal(t, 8.0, *gp)

	assert.Nil(t, ResolveGradePoint(models.Course{Name: "E"}, BITMesra10Point))
}

func TestApplyRepeatPolicyLatest(t *testing.T) {
	courses := []models.Course{
		{Name: "Prog v1", Code: "CS101", Credits: 4, GradePoint: fptr(6)},
		{Name: "Prog v2", Code: "CS101", Credits: 4, GradePoint: fptr(8)},
	}

	result := ApplyRepeatPolicy(courses, models.RepeatLatest)
	require.Len(t, result, 1)
	assert.Equal(t, "Prog v2", result[0].Name)
	assert.Equal(t, 8.0, *result[0].GradePoint)
}

func TestApplyRepeatPolicyHighest(t *testing.T) {
	courses := []models.Course{
		{Name: "Prog v1", Code: "CS101", Credits: 4, GradePoint: fptr(8)},
		{Name: "Prog v2", Code: "CS101", Credits: 4, GradePoint: fptr(7)},
	}

	result := ApplyRepeatPolicy(courses, models.RepeatHighest)
	require.Len(t, result, 1)
	assert.Equal(t, "Prog v1", result[0].Name)
	assert.Equal(t, 8.0, *result[0].GradePoint)
}

func TestApplyRepeatPolicyAverage(t *testing.T) {
	courses := []models.Course{
		{Name: "Prog v1", Code: "CS101", Credits: 4, GradePoint: fptr(6)},
		{Name: "Prog v2", Code: "CS101", Credits: 4, GradePoint: fptr(8)},
		{Name: "Math", Code: "MA101", Credits: 3, GradePoint: fptr(9)},
	}

	result := ApplyRepeatPolicy(courses, models.RepeatAverage)
	require.Len(t, result, 2)
	assert.Equal(t, 7.0, *result[0].GradePoint)
	assert.Equal(t, 9.0, *result[1].GradePoint)
}

func TestApplyRepeatPolicyKeepsUncodedCourses(t *testing.T) {
	courses := []models.Course{
		{Name: "Elective", Credits: 2, GradePoint: fptr(7)},
		{Name: "Elective", Credits: 2, GradePoint: fptr(8)},
		{Name: "Prog", Code: "CS101", Credits: 4, GradePoint: fptr(6)},
		{Name: "Prog retake", Code: "CS101", Credits: 4, GradePoint: fptr(9)},
	}

	result := ApplyRepeatPolicy(courses, models.RepeatLatest)
	require.Len(t, result, 3)
	assert.Equal(t, "Prog retake", result[2].Name)
}

func TestSessionRepeatPolicyLatestKeepsRetakeSemester(t *testing.T) {
	session := models.Session{
		Metadata: models.SessionMetadata{Scale: 10, RepeatPolicy: models.RepeatLatest},
		Semesters: []models.Semester{
			{Name: "S1", Order: 1, Courses: []models.Course{
				{Code: "CS101", Name: "Prog", Credits: 4, GradePoint: fptr(5)},
				{Code: "MA101", Name: "Math", Credits: 3, GradePoint: fptr(8)},
			}},
			{Name: "S2", Order: 2, Courses: []models.Course{
				{Code: "CS101", Name: "Prog retake", Credits: 4, GradePoint: fptr(9)},
			}},
		},
	}

	out := ApplySessionRepeatPolicy(session)

	// The retake stays in S2 and only S2 carries its credits.
	require.Len(t, out.Semesters[0].Courses, 1)
	assert.Equal(t, "MA101", out.Semesters[0].Courses[0].Code)
	require.Len(t, out.Semesters[1].Courses, 1)
	assert.Equal(t, "Prog retake", out.Semesters[1].Courses[0].Name)
	assert.Equal(t, 9.0, *out.Semesters[1].Courses[0].GradePoint)

	first := SemesterGPA(out.Semesters[0].Courses)
	require.NotNil(t, first)
	assert.Equal(t, 8.0, *first)

	// The input session is untouched.
	require.Len(t, session.Semesters[0].Courses, 2)
}

func TestSessionRepeatPolicyHighestKeepsWinningSemester(t *testing.T) {
	session := models.Session{
		Metadata: models.SessionMetadata{Scale: 10, RepeatPolicy: models.RepeatHighest},
		Semesters: []models.Semester{
			{Name: "S1", Order: 1, Courses: []models.Course{
				{Code: "CS101", Name: "Prog", Credits: 4, GradePoint: fptr(9)},
			}},
			{Name: "S2", Order: 2, Courses: []models.Course{
				{Code: "CS101", Name: "Prog retake", Credits: 4, GradePoint: fptr(6)},
			}},
		},
	}

	out := ApplySessionRepeatPolicy(session)

	require.Len(t, out.Semesters[0].Courses, 1)
	assert.Equal(t, 9.0, *out.Semesters[0].Courses[0].GradePoint)
	assert.Empty(t, out.Semesters[1].Courses)
}

func TestSessionRepeatPolicyAverageMergesAtFirstAttempt(t *testing.T) {
	session := models.Session{
		Metadata: models.SessionMetadata{Scale: 10, RepeatPolicy: models.RepeatAverage},
		Semesters: []models.Semester{
			{Name: "S1", Order: 1, Courses: []models.Course{
				{Code: "CS101", Name: "Prog", Credits: 4, GradePoint: fptr(6)},
			}},
			{Name: "S2", Order: 2, Courses: []models.Course{
				{Code: "CS101", Name: "Prog retake", Credits: 4, GradePoint: fptr(8)},
			}},
		},
	}

	out := ApplySessionRepeatPolicy(session)

	require.Len(t, out.Semesters[0].Courses, 1)
	assert.Equal(t, 7.0, *out.Semesters[0].Courses[0].GradePoint)
	assert.Empty(t, out.Semesters[1].Courses)
}
