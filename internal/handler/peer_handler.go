package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gradefolio/gradefolio-api/internal/models"
	"github.com/gradefolio/gradefolio-api/internal/service"
	appErrors "github.com/gradefolio/gradefolio-api/pkg/errors"
	"github.com/gradefolio/gradefolio-api/pkg/response"
)

// PeerHandler exposes peer comparison endpoints.
type PeerHandler struct {
	peers *service.PeerService
}

// NewPeerHandler constructs handler.
func NewPeerHandler(peers *service.PeerService) *PeerHandler {
	return &PeerHandler{peers: peers}
}

// List godoc
// @Summary List comparison peers
// @Tags Peers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /peers [get]
func (h *PeerHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	peers, err := h.peers.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, peers, nil)
}

// Create godoc
// @Summary Add a comparison peer
// @Tags Peers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreatePeerRequest true "Peer payload"
// @Success 201 {object} response.Envelope
// @Router /peers [post]
func (h *PeerHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req models.CreatePeerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	peer, err := h.peers.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, peer)
}

// Delete godoc
// @Summary Remove a comparison peer
// @Tags Peers
// @Security BearerAuth
// @Param id path string true "Peer ID"
// @Success 204
// @Router /peers/{id} [delete]
func (h *PeerHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.peers.Delete(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Comparison godoc
// @Summary CGPA comparison series including the current user
// @Tags Peers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /peers/comparison [get]
func (h *PeerHandler) Comparison(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	entries, err := h.peers.Comparison(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
