package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gradefolio/gradefolio-api/internal/models"
	"github.com/gradefolio/gradefolio-api/internal/service"
	appErrors "github.com/gradefolio/gradefolio-api/pkg/errors"
	"github.com/gradefolio/gradefolio-api/pkg/response"
)

// ExportHandler exposes export and import endpoints.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs handler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// PDF godoc
// @Summary Render the posted session as a PDF transcript
// @Tags Export
// @Accept json
// @Produce application/pdf
// @Param payload body models.CalculationRequest true "Session payload"
// @Success 200 {file} binary
// @Router /export/pdf [post]
func (h *ExportHandler) PDF(c *gin.Context) {
	var req models.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	payload, err := h.exports.ExportPDF(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="transcript.pdf"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}

// CSV godoc
// @Summary Render the posted session as CSV
// @Tags Export
// @Accept json
// @Produce text/csv
// @Param payload body models.CalculationRequest true "Session payload"
// @Success 200 {file} binary
// @Router /export/csv [post]
func (h *ExportHandler) CSV(c *gin.Context) {
	var req models.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	payload, err := h.exports.ExportCSV(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="grades.csv"`)
	c.Data(http.StatusOK, "text/csv", payload)
}

// XLSX godoc
// @Summary Render the posted session as an XLSX workbook
// @Tags Export
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param payload body models.CalculationRequest true "Session payload"
// @Success 200 {file} binary
// @Router /export/xlsx [post]
func (h *ExportHandler) XLSX(c *gin.Context) {
	var req models.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	payload, err := h.exports.ExportXLSX(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="grades.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
}

// ImportXLSX godoc
// @Summary Parse an uploaded XLSX workbook into a session
// @Tags Export
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Workbook file"
// @Success 200 {object} response.Envelope
// @Router /import/xlsx [post]
func (h *ExportHandler) ImportXLSX(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file upload is required"))
		return
	}
	reader, err := file.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open upload"))
		return
	}
	defer reader.Close()

	session, err := h.exports.ImportXLSX(c.Request.Context(), reader)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, nil)
}

// ImportCSV godoc
// @Summary Parse an uploaded CSV file into a session
// @Tags Export
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} response.Envelope
// @Router /import/csv [post]
func (h *ExportHandler) ImportCSV(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file upload is required"))
		return
	}
	reader, err := file.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open upload"))
		return
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}

	session, err := h.exports.ImportCSV(c.Request.Context(), raw)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, nil)
}
