package models

// SemesterSummary pairs a semester with its effective GPA and credit total.
type SemesterSummary struct {
	SemesterID string   `json:"semester_id"`
	Name       string   `json:"name"`
	Order      int      `json:"order"`
	GPA        *float64 `json:"gpa"`
	Credits    float64  `json:"credits"`
	IsManual   bool     `json:"is_manual"`
}

// SessionSummary is the engine output for a whole session.
type SessionSummary struct {
	Semesters []SemesterSummary `json:"semesters"`
	CGPA      *float64          `json:"cgpa"`
	Scale     int               `json:"scale"`
}

// TrendDirection classifies the recent GPA trajectory.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
	TrendUnknown   TrendDirection = "unknown"
)

// Statistics summarises a full session.
type Statistics struct {
	TotalCourses       int            `json:"total_courses"`
	TotalCredits       float64        `json:"total_credits"`
	HighestSemesterGPA *float64       `json:"highest_semester_gpa"`
	LowestSemesterGPA  *float64       `json:"lowest_semester_gpa"`
	GradeDistribution  map[string]int `json:"grade_distribution"`
	TrendDirection     TrendDirection `json:"trend_direction"`

	// HasManualSemesters flags that manual-entry semesters exist and
	// contribute nothing to the grade histogram.
	HasManualSemesters bool `json:"has_manual_semesters"`
}

// TargetCalculation is the cross-semester solver result.
type TargetCalculation struct {
	CurrentCGPA      float64 `json:"current_cgpa"`
	TargetCGPA       float64 `json:"target_cgpa"`
	CreditsCompleted float64 `json:"credits_completed"`
	RemainingCredits float64 `json:"remaining_credits"`
	RequiredGPA      float64 `json:"required_gpa"`
	Feasible         bool    `json:"feasible"`
	Message          string  `json:"message"`
}

// CourseTarget is the per-course recommendation from the intra-semester solver.
type CourseTarget struct {
	CourseName    string  `json:"course_name"`
	Credits       float64 `json:"credits"`
	RequiredGrade string  `json:"required_grade"`
	MarksNeeded   float64 `json:"marks_needed"`
	Achievable    bool    `json:"achievable"`
}

// IntraSemesterTarget is the intra-semester solver result.
type IntraSemesterTarget struct {
	TargetGPA        float64        `json:"target_gpa"`
	CurrentGPA       *float64       `json:"current_gpa"`
	CompletedCredits float64        `json:"completed_credits"`
	RemainingCredits float64        `json:"remaining_credits"`
	RequiredAvgGP    float64        `json:"required_avg_gp"`
	Feasible         bool           `json:"feasible"`
	Message          string         `json:"message"`
	Courses          []CourseTarget `json:"courses,omitempty"`
}

// SeriesPoint is a single name/value pair in a categorical series.
type SeriesPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// TimelinePoint carries the running CGPA alongside the semester's own GPA.
type TimelinePoint struct {
	Name string   `json:"name"`
	GPA  *float64 `json:"gpa"`
	CGPA *float64 `json:"cgpa"`
}

// CreditsBreakdown splits completed against remaining credits for a degree.
type CreditsBreakdown struct {
	Completed float64 `json:"completed"`
	Remaining float64 `json:"remaining"`
	Required  float64 `json:"required"`
}

// ProgressMetrics reports degree completion figures.
type ProgressMetrics struct {
	Percentage       int     `json:"percentage"`
	CompletedCourses int     `json:"completed_courses"`
	TotalCourses     int     `json:"total_courses"`
	CompletedCredits float64 `json:"completed_credits"`
	RequiredCredits  float64 `json:"required_credits"`
}

// ConversionResult is the outcome of a scale conversion.
type ConversionResult struct {
	OriginalValue  float64 `json:"original_value"`
	ConvertedValue float64 `json:"converted_value"`
	FromScale      int     `json:"from_scale"`
	ToScale        int     `json:"to_scale"`
	Method         string  `json:"method"`
	Formula        string  `json:"formula"`
}
