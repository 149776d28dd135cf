package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/gradefolio/gradefolio-api/internal/engine"
	"github.com/gradefolio/gradefolio-api/internal/models"
	appErrors "github.com/gradefolio/gradefolio-api/pkg/errors"
	"github.com/gradefolio/gradefolio-api/pkg/export"
)

// Flat column layout shared by the CSV and XLSX formats. Import expects the
// same header row that export writes.
var exportHeaders = []string{"Semester", "Code", "Course", "Credits", "Grade", "Grade Point", "Marks"}

// ExportService renders sessions to PDF/CSV/XLSX and parses uploads back
// into the session shape.
type ExportService struct {
	pdf       *export.PDFExporter
	csv       *export.CSVExporter
	xlsx      *export.XLSXExporter
	validator *validator.Validate
	logger    *zap.Logger
	roundTo   int
}

// NewExportService constructs an ExportService.
func NewExportService(pdf *export.PDFExporter, csv *export.CSVExporter, xlsx *export.XLSXExporter, validate *validator.Validate, logger *zap.Logger, roundTo int) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if roundTo <= 0 {
		roundTo = 2
	}
	return &ExportService{pdf: pdf, csv: csv, xlsx: xlsx, validator: validate, logger: logger, roundTo: roundTo}
}

// ExportPDF renders the session as a transcript-style PDF with a summary
// header and one table per semester.
func (s *ExportService) ExportPDF(ctx context.Context, req models.CalculationRequest) ([]byte, error) {
	session, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	title := session.Name
	if title == "" {
		title = "Academic Transcript"
	}

	summary := s.summaryLines(session)

	var sections []export.Section
	for _, semester := range engine.SemestersInOrder(session.Semesters) {
		data := export.Dataset{Headers: []string{"Code", "Course", "Credits", "Grade", "Grade Point"}}
		for _, course := range semester.Courses {
			data.Rows = append(data.Rows, map[string]string{
				"Code":        course.Code,
				"Course":      course.Name,
				"Credits":     formatFloat(course.Credits),
				"Grade":       course.Grade,
				"Grade Point": formatFloatPtr(course.GradePoint),
			})
		}
		if len(data.Rows) == 0 {
			gpa, source := engine.EffectiveSemesterGPA(semester)
			if source == engine.SourceManual {
				data.Rows = append(data.Rows, map[string]string{
					"Course":      "Manual entry",
					"Credits":     formatFloat(engine.EffectiveSemesterCredits(semester)),
					"Grade Point": formatFloatPtr(engine.RoundForDisplay(gpa, s.roundTo)),
				})
			}
		}
		sections = append(sections, export.Section{Title: semester.Name, Data: data})
	}

	payload, err := s.pdf.Render(title, summary, sections)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return payload, nil
}

// ExportCSV renders the session as a flat CSV table.
func (s *ExportService) ExportCSV(ctx context.Context, req models.CalculationRequest) ([]byte, error) {
	session, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	payload, err := s.csv.Render(flatDataset(session))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return payload, nil
}

// ExportXLSX renders the session as a single-sheet workbook in the flat
// column layout.
func (s *ExportService) ExportXLSX(ctx context.Context, req models.CalculationRequest) ([]byte, error) {
	session, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	name := session.Name
	if name == "" {
		name = "Grades"
	}

	payload, err := s.xlsx.Render([]export.Section{{Title: name, Data: flatDataset(session)}})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render xlsx")
	}
	return payload, nil
}

// ImportXLSX parses an uploaded workbook into a session.
func (s *ExportService) ImportXLSX(ctx context.Context, reader io.Reader) (*models.Session, error) {
	data, err := s.xlsx.Parse(reader)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to parse workbook")
	}
	return s.fromDataset(data)
}

// ImportCSV parses uploaded CSV bytes into a session.
func (s *ExportService) ImportCSV(ctx context.Context, raw []byte) (*models.Session, error) {
	data, err := s.csv.Parse(raw)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to parse csv")
	}
	return s.fromDataset(data)
}

func (s *ExportService) prepare(req models.CalculationRequest) (models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Session{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}

	session := req.Session
	if session.Metadata.Scale == 0 {
		session.Metadata.Scale = 10
	}
	template := engine.DefaultTemplate(session.Metadata.Scale)

	out := session
	out.Semesters = make([]models.Semester, len(session.Semesters))
	for i, semester := range session.Semesters {
		copied := semester
		copied.Courses = resolveCourses(semester.Courses, template)
		out.Semesters[i] = copied
	}
	return out, nil
}

func (s *ExportService) summaryLines(session models.Session) []string {
	var lines []string
	if cgpa := engine.RoundForDisplay(engine.CGPA(session.Semesters), s.roundTo); cgpa != nil {
		lines = append(lines, fmt.Sprintf("CGPA: %s (%d-point scale)", formatFloat(*cgpa), session.Metadata.Scale))
	}
	total := 0.0
	for _, semester := range session.Semesters {
		total += engine.EffectiveSemesterCredits(semester)
	}
	lines = append(lines, fmt.Sprintf("Credits completed: %s", formatFloat(total)))
	return lines
}

// fromDataset groups flat rows by semester, preserving first-seen order.
func (s *ExportService) fromDataset(data export.Dataset) (*models.Session, error) {
	if len(data.Rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "upload contains no course rows")
	}

	session := &models.Session{Metadata: models.SessionMetadata{Scale: 10}}
	index := make(map[string]int)

	for i, row := range data.Rows {
		semesterName := strings.TrimSpace(row["Semester"])
		if semesterName == "" {
			semesterName = "Semester 1"
		}

		at, ok := index[semesterName]
		if !ok {
			at = len(session.Semesters)
			index[semesterName] = at
			session.Semesters = append(session.Semesters, models.Semester{
				Name:  semesterName,
				Order: at + 1,
			})
		}

		course := models.Course{
			Code:  strings.TrimSpace(row["Code"]),
			Name:  strings.TrimSpace(row["Course"]),
			Grade: strings.TrimSpace(row["Grade"]),
		}
		if course.Name == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("row %d: course name is required", i+2))
		}

		if raw := strings.TrimSpace(row["Credits"]); raw != "" {
			credits, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("row %d: invalid credits %q", i+2, raw))
			}
			course.Credits = credits
		}
		if raw := strings.TrimSpace(row["Grade Point"]); raw != "" {
			gp, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("row %d: invalid grade point %q", i+2, raw))
			}
			course.GradePoint = &gp
		}
		if raw := strings.TrimSpace(row["Marks"]); raw != "" {
			marks, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("row %d: invalid marks %q", i+2, raw))
			}
			course.Marks = &marks
			if course.Grade == "" && course.GradePoint == nil {
				course.GradeType = models.GradeTypeMarks
			}
		}
		if course.GradeType == "" && course.Grade != "" {
			course.GradeType = models.GradeTypeLetter
		}

		session.Semesters[at].Courses = append(session.Semesters[at].Courses, course)
	}

	return session, nil
}

func flatDataset(session models.Session) export.Dataset {
	data := export.Dataset{Headers: exportHeaders}
	for _, semester := range engine.SemestersInOrder(session.Semesters) {
		for _, course := range semester.Courses {
			data.Rows = append(data.Rows, map[string]string{
				"Semester":    semester.Name,
				"Code":        course.Code,
				"Course":      course.Name,
				"Credits":     formatFloat(course.Credits),
				"Grade":       course.Grade,
				"Grade Point": formatFloatPtr(course.GradePoint),
				"Marks":       formatFloatPtr(course.Marks),
			})
		}
	}
	return data
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatFloatPtr(value *float64) string {
	if value == nil {
		return ""
	}
	return formatFloat(*value)
}
