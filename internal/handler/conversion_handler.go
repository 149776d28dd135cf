package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gradefolio/gradefolio-api/internal/models"
	"github.com/gradefolio/gradefolio-api/internal/service"
	appErrors "github.com/gradefolio/gradefolio-api/pkg/errors"
	"github.com/gradefolio/gradefolio-api/pkg/response"
)

// ConversionHandler exposes scale conversion and template endpoints.
type ConversionHandler struct {
	conversion *service.ConversionService
}

// NewConversionHandler constructs handler.
func NewConversionHandler(conversion *service.ConversionService) *ConversionHandler {
	return &ConversionHandler{conversion: conversion}
}

// Convert godoc
// @Summary Convert a GPA value between scales
// @Tags Conversion
// @Accept json
// @Produce json
// @Param payload body models.ConversionRequest true "Conversion payload"
// @Success 200 {object} response.Envelope
// @Router /convert-scale [post]
func (h *ConversionHandler) Convert(c *gin.Context) {
	var req models.ConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.conversion.Convert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Templates godoc
// @Summary List built-in grading templates
// @Tags Conversion
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /templates [get]
func (h *ConversionHandler) Templates(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.conversion.Templates(c.Request.Context()), nil)
}
