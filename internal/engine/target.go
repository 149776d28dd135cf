package engine

import (
	"fmt"

	"github.com/gradefolio/gradefolio-api/internal/models"
)

// Feasibility tiers are fixed fractions of the scale maximum.
const (
	tierVeryChallenging = 0.9
	tierWithEffort      = 0.7
)

// CalculateTargetGPA solves, in closed form, the average GPA needed over the
// remaining credits to land exactly on the target cumulative GPA:
//
//	required = (target·(done+remaining) − current·done) / remaining
//
// A remaining credit load of zero makes the formula undefined; that case is
// guarded and reported as infeasible with a zero required GPA rather than
// dividing.
func CalculateTargetGPA(session models.Session, targetCGPA, remainingCredits float64) models.TargetCalculation {
	scaleMax := session.ScaleMax()

	currentCGPA := 0.0
	if cgpa := CGPA(session.Semesters); cgpa != nil {
		currentCGPA = *cgpa
	}

	creditsCompleted := 0.0
	for _, semester := range session.Semesters {
		creditsCompleted += EffectiveSemesterCredits(semester)
	}

	result := models.TargetCalculation{
		CurrentCGPA:      currentCGPA,
		TargetCGPA:       targetCGPA,
		CreditsCompleted: creditsCompleted,
		RemainingCredits: remainingCredits,
	}

	if remainingCredits <= 0 {
		result.Message = "no remaining credits to plan against"
		return result
	}

	required := (targetCGPA*(creditsCompleted+remainingCredits) - currentCGPA*creditsCompleted) / remainingCredits
	result.RequiredGPA = required
	result.Feasible = required >= 0 && required <= scaleMax
	result.Message = classifyRequirement(required, scaleMax)
	return result
}

// CalculateIntraSemesterTarget solves the uniform grade point every
// ungraded course in the semester must reach for the semester GPA to hit the
// target, then reverse-maps that requirement to the lowest marks and letter
// satisfying it per course.
func CalculateIntraSemesterTarget(semester models.Semester, targetGPA float64, scale int, template models.GradeTemplate) models.IntraSemesterTarget {
	scaleMax := float64(scale)

	var graded, ungraded []models.Course
	for _, course := range semester.Courses {
		if course.GradePoint != nil {
			graded = append(graded, course)
		} else {
			ungraded = append(ungraded, course)
		}
	}

	totalCredits := 0.0
	for _, course := range semester.Courses {
		totalCredits += course.Credits
	}
	completedCredits := 0.0
	currentPoints := 0.0
	for _, course := range graded {
		completedCredits += course.Credits
		currentPoints += *course.GradePoint * course.Credits
	}
	remainingCredits := totalCredits - completedCredits

	result := models.IntraSemesterTarget{
		TargetGPA:        targetGPA,
		CurrentGPA:       SemesterGPA(semester.Courses),
		CompletedCredits: completedCredits,
		RemainingCredits: remainingCredits,
	}

	if len(ungraded) == 0 {
		realized := 0.0
		if result.CurrentGPA != nil {
			realized = *result.CurrentGPA
		}
		result.Feasible = realized >= targetGPA
		if result.Feasible {
			result.Message = "semester already meets the target"
		} else {
			result.Message = "all courses are graded; the target can no longer be reached"
		}
		return result
	}

	if remainingCredits <= 0 {
		result.Message = "remaining courses carry no credits; the target cannot be influenced"
		return result
	}

	required := (targetGPA*totalCredits - currentPoints) / remainingCredits
	result.RequiredAvgGP = required
	result.Feasible = required >= 0 && required <= scaleMax
	result.Message = classifyRequirement(required, scaleMax)

	for _, course := range ungraded {
		result.Courses = append(result.Courses, recommendCourse(course, required, template))
	}

	return result
}

// recommendCourse reverse-maps a required grade point to the lowest-marks
// template mapping whose grade point satisfies it. When the requirement
// exceeds even the top mapping, the recommendation pins marks at 100 with a
// "+"-suffixed top grade and flags the course unachievable.
func recommendCourse(course models.Course, required float64, template models.GradeTemplate) models.CourseTarget {
	target := models.CourseTarget{
		CourseName: course.Name,
		Credits:    course.Credits,
	}

	var found *models.GradeMapping
	for i := range template.Mappings {
		m := template.Mappings[i]
		if m.GradePoint >= required {
			if found == nil || m.MinMarks < found.MinMarks {
				found = &template.Mappings[i]
			}
		}
	}

	if found == nil {
		top := template.Mappings[0]
		target.RequiredGrade = top.LetterGrade + "+"
		target.MarksNeeded = 100
		target.Achievable = false
		return target
	}

	target.RequiredGrade = found.LetterGrade
	target.MarksNeeded = found.MinMarks
	target.Achievable = true
	return target
}

// classifyRequirement buckets a required GPA into the four message tiers.
func classifyRequirement(required, scaleMax float64) string {
	switch {
	case required > scaleMax:
		return fmt.Sprintf("target requires a GPA above the %.0f-point maximum and is not achievable", scaleMax)
	case required < 0:
		return "current record already exceeds the target"
	case required >= tierVeryChallenging*scaleMax:
		return "very challenging: near-perfect grades needed"
	case required >= tierWithEffort*scaleMax:
		return "achievable with consistent effort"
	default:
		return "easily achievable at the current pace"
	}
}
