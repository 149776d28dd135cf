package models

// CalculationRequest posts a session for stateless computation. An empty
// session is legal and simply yields undefined figures.
type CalculationRequest struct {
	Session Session `json:"session"`
}

// TargetRequest drives the cross-semester target solver.
type TargetRequest struct {
	Session          Session `json:"session"`
	TargetCGPA       float64 `json:"target_cgpa" validate:"gte=0"`
	RemainingCredits float64 `json:"remaining_credits" validate:"gte=0"`
}

// SemesterTargetRequest drives the intra-semester target solver.
type SemesterTargetRequest struct {
	Semester  Semester `json:"semester"`
	TargetGPA float64  `json:"target_gpa" validate:"gte=0"`
	Scale     int      `json:"scale" validate:"omitempty,oneof=4 10"`
}

// ChartRequest posts a session for chart projection. Count only applies to
// the top-courses series, RequiredCredits to credits and progress.
type ChartRequest struct {
	Session         Session `json:"session"`
	Count           int     `json:"count,omitempty" validate:"omitempty,gte=1,lte=50"`
	RequiredCredits float64 `json:"required_credits,omitempty" validate:"omitempty,gt=0"`
}

// ConversionRequest converts a GPA value between scales.
type ConversionRequest struct {
	Value     float64 `json:"value" validate:"gte=0"`
	FromScale int     `json:"from_scale" validate:"required,oneof=4 10"`
	ToScale   int     `json:"to_scale" validate:"required,oneof=4 10"`
	Method    string  `json:"method,omitempty" validate:"omitempty,oneof=linear official"`
}

// SummaryResponse pairs the session summary with validation warnings.
type SummaryResponse struct {
	Summary  SessionSummary `json:"summary"`
	Warnings []string       `json:"warnings,omitempty"`
}
