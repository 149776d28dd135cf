package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gradefolio/gradefolio-api/internal/models"
	"github.com/gradefolio/gradefolio-api/internal/service"
	appErrors "github.com/gradefolio/gradefolio-api/pkg/errors"
	"github.com/gradefolio/gradefolio-api/pkg/response"
)

// SessionHandler exposes per-user session storage endpoints.
type SessionHandler struct {
	sessions *service.SessionService
}

// NewSessionHandler constructs handler.
func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Get godoc
// @Summary Load the stored session
// @Tags Session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /session [get]
func (h *SessionHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	record, err := h.sessions.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, json.RawMessage(record.Data), map[string]interface{}{"updated_at": record.UpdatedAt})
}

// Save godoc
// @Summary Store the posted session, replacing any previous one
// @Tags Session
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.Session true "Session payload"
// @Success 200 {object} response.Envelope
// @Router /session [post]
func (h *SessionHandler) Save(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var session models.Session
	if err := c.ShouldBindJSON(&session); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.sessions.Save(c.Request.Context(), claims.UserID, session)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"id": record.ID, "updated_at": record.UpdatedAt}, nil)
}

// Delete godoc
// @Summary Delete the stored session
// @Tags Session
// @Security BearerAuth
// @Success 204
// @Router /session [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.sessions.Delete(c.Request.Context(), claims.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
