package models

// GradeType tells which input field carries a course's result.
type GradeType string

const (
	GradeTypeLetter GradeType = "letter"
	GradeTypeMarks  GradeType = "marks"
)

// RepeatPolicy selects how duplicate course attempts collapse.
type RepeatPolicy string

const (
	RepeatLatest  RepeatPolicy = "latest"
	RepeatHighest RepeatPolicy = "highest"
	RepeatAverage RepeatPolicy = "average"
)

// Course is a single course entry in a semester. Marks, grade point and the
// component scores are pointers because absence and zero mean different
// things throughout the engine.
type Course struct {
	ID         string    `json:"id,omitempty"`
	Code       string    `json:"code,omitempty"`
	Name       string    `json:"name" validate:"required"`
	Credits    float64   `json:"credits" validate:"gte=0"`
	GradeType  GradeType `json:"grade_type,omitempty" validate:"omitempty,oneof=letter marks"`
	Grade      string    `json:"grade,omitempty"`
	GradePoint *float64  `json:"grade_point,omitempty"`
	Marks      *float64  `json:"marks,omitempty"`

	// Component scores with their paired maxima.
	Endsem       *float64 `json:"endsem,omitempty"`
	EndsemMax    *float64 `json:"endsem_max,omitempty"`
	Midsem       *float64 `json:"midsem,omitempty"`
	MidsemMax    *float64 `json:"midsem_max,omitempty"`
	Internals    *float64 `json:"internals,omitempty"`
	InternalsMax *float64 `json:"internals_max,omitempty"`
}

// Semester holds either a course list or a manual GPA/credits override pair.
type Semester struct {
	ID            string   `json:"id,omitempty"`
	Name          string   `json:"name" validate:"required"`
	Order         int      `json:"order"`
	Courses       []Course `json:"courses,omitempty"`
	ManualGPA     *float64 `json:"manual_gpa,omitempty"`
	ManualCredits *float64 `json:"manual_credits,omitempty"`
}

// SessionMetadata carries session-wide settings.
type SessionMetadata struct {
	Scale        int          `json:"scale" validate:"omitempty,oneof=4 10"`
	RoundTo      int          `json:"round_to" validate:"omitempty,gte=0,lte=6"`
	RepeatPolicy RepeatPolicy `json:"repeat_policy,omitempty" validate:"omitempty,oneof=latest highest average"`
}

// Session is a user's complete academic record.
type Session struct {
	Name      string          `json:"name,omitempty"`
	Semesters []Semester      `json:"semesters"`
	Metadata  SessionMetadata `json:"metadata"`
}

// ScaleMax returns the top grade point of the session's scale.
func (s Session) ScaleMax() float64 {
	if s.Metadata.Scale == 4 {
		return 4
	}
	return 10
}

// GradeMapping is one marks interval of a grading template.
type GradeMapping struct {
	MinMarks    float64 `json:"min_marks"`
	MaxMarks    float64 `json:"max_marks"`
	LetterGrade string  `json:"letter_grade"`
	GradePoint  float64 `json:"grade_point"`
}

// GradeTemplate maps marks intervals to letter grades and grade points.
// Mappings are declared highest interval first.
type GradeTemplate struct {
	Name        string         `json:"name"`
	Scale       int            `json:"scale"`
	Description string         `json:"description,omitempty"`
	Mappings    []GradeMapping `json:"mappings"`
}
