package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gradefolio/gradefolio-api/internal/models"
	"github.com/gradefolio/gradefolio-api/internal/service"
	appErrors "github.com/gradefolio/gradefolio-api/pkg/errors"
	"github.com/gradefolio/gradefolio-api/pkg/response"
)

// CalculatorHandler exposes the stateless grade engine endpoints.
type CalculatorHandler struct {
	calculator *service.CalculatorService
}

// NewCalculatorHandler constructs handler.
func NewCalculatorHandler(calculator *service.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{calculator: calculator}
}

// Summary godoc
// @Summary Compute per-semester GPAs and CGPA
// @Tags Calculator
// @Accept json
// @Produce json
// @Param payload body models.CalculationRequest true "Session payload"
// @Success 200 {object} response.Envelope
// @Router /calculator/summary [post]
func (h *CalculatorHandler) Summary(c *gin.Context) {
	var req models.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.calculator.Summary(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Statistics godoc
// @Summary Aggregate session statistics and trend
// @Tags Calculator
// @Accept json
// @Produce json
// @Param payload body models.CalculationRequest true "Session payload"
// @Success 200 {object} response.Envelope
// @Router /calculator/statistics [post]
func (h *CalculatorHandler) Statistics(c *gin.Context) {
	var req models.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.calculator.Statistics(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Target godoc
// @Summary Solve the GPA required over remaining credits
// @Tags Calculator
// @Accept json
// @Produce json
// @Param payload body models.TargetRequest true "Target payload"
// @Success 200 {object} response.Envelope
// @Router /calculator/target [post]
func (h *CalculatorHandler) Target(c *gin.Context) {
	var req models.TargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.calculator.Target(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// SemesterTarget godoc
// @Summary Solve per-course requirements inside one semester
// @Tags Calculator
// @Accept json
// @Produce json
// @Param payload body models.SemesterTargetRequest true "Semester target payload"
// @Success 200 {object} response.Envelope
// @Router /calculator/semester-target [post]
func (h *CalculatorHandler) SemesterTarget(c *gin.Context) {
	var req models.SemesterTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.calculator.SemesterTarget(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Timeline godoc
// @Summary Running CGPA timeline series
// @Tags Charts
// @Accept json
// @Produce json
// @Param payload body models.ChartRequest true "Chart payload"
// @Success 200 {object} response.Envelope
// @Router /calculator/charts/timeline [post]
func (h *CalculatorHandler) Timeline(c *gin.Context) {
	h.chart(c, func(req models.ChartRequest) (interface{}, error) {
		return h.calculator.Timeline(c.Request.Context(), req)
	})
}

// Distribution godoc
// @Summary Letter grade distribution series
// @Tags Charts
// @Accept json
// @Produce json
// @Param payload body models.ChartRequest true "Chart payload"
// @Success 200 {object} response.Envelope
// @Router /calculator/charts/distribution [post]
func (h *CalculatorHandler) Distribution(c *gin.Context) {
	h.chart(c, func(req models.ChartRequest) (interface{}, error) {
		return h.calculator.Distribution(c.Request.Context(), req)
	})
}

// Credits godoc
// @Summary Completed versus remaining credits breakdown
// @Tags Charts
// @Accept json
// @Produce json
// @Param payload body models.ChartRequest true "Chart payload"
// @Success 200 {object} response.Envelope
// @Router /calculator/charts/credits [post]
func (h *CalculatorHandler) Credits(c *gin.Context) {
	h.chart(c, func(req models.ChartRequest) (interface{}, error) {
		return h.calculator.Credits(c.Request.Context(), req)
	})
}

// Comparison godoc
// @Summary Per-semester GPA comparison series
// @Tags Charts
// @Accept json
// @Produce json
// @Param payload body models.ChartRequest true "Chart payload"
// @Success 200 {object} response.Envelope
// @Router /calculator/charts/comparison [post]
func (h *CalculatorHandler) Comparison(c *gin.Context) {
	h.chart(c, func(req models.ChartRequest) (interface{}, error) {
		return h.calculator.Comparison(c.Request.Context(), req)
	})
}

// TopCourses godoc
// @Summary Best scoring courses series
// @Tags Charts
// @Accept json
// @Produce json
// @Param payload body models.ChartRequest true "Chart payload"
// @Success 200 {object} response.Envelope
// @Router /calculator/charts/top-courses [post]
func (h *CalculatorHandler) TopCourses(c *gin.Context) {
	h.chart(c, func(req models.ChartRequest) (interface{}, error) {
		return h.calculator.TopCourses(c.Request.Context(), req)
	})
}

// Progress godoc
// @Summary Degree completion metrics
// @Tags Charts
// @Accept json
// @Produce json
// @Param payload body models.ChartRequest true "Chart payload"
// @Success 200 {object} response.Envelope
// @Router /calculator/charts/progress [post]
func (h *CalculatorHandler) Progress(c *gin.Context) {
	h.chart(c, func(req models.ChartRequest) (interface{}, error) {
		return h.calculator.Progress(c.Request.Context(), req)
	})
}

func (h *CalculatorHandler) chart(c *gin.Context, compute func(models.ChartRequest) (interface{}, error)) {
	var req models.ChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := compute(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
