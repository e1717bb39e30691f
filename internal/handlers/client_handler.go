package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/raffle_api/internal/services"
)

type cookieStatusRequest struct {
	UniqueID string `json:"uniqueId"`
}

func (h *HandlerManager) CreateClient(c *gin.Context) {
	var req services.ClientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalidBody())
		return
	}
	client, err := h.ClientSvc.CreateClient(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"message": "Client created successfully.", "client": client})
}

func (h *HandlerManager) ListClients(c *gin.Context) {
	clients, err := h.ClientSvc.ListClients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"clients": clients})
}

func (h *HandlerManager) UpdateClient(c *gin.Context) {
	id, err := paramID(c, "id", "Client")
	if err != nil {
		respondError(c, err)
		return
	}
	var req services.ClientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalidBody())
		return
	}
	client, err := h.ClientSvc.UpdateClient(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Client updated successfully.", "client": client})
}

func (h *HandlerManager) DeleteClient(c *gin.Context) {
	id, err := paramID(c, "id", "Client")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.ClientSvc.DeleteClient(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Client deleted successfully."})
}

func (h *HandlerManager) AcceptCookies(c *gin.Context) {
	h.setCookieStatus(c, true)
}

func (h *HandlerManager) DenyCookies(c *gin.Context) {
	h.setCookieStatus(c, false)
}

func (h *HandlerManager) setCookieStatus(c *gin.Context, approved bool) {
	var req cookieStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalidBody())
		return
	}
	client, err := h.ClientSvc.SetCookieApproval(c.Request.Context(), req.UniqueID, approved)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Cookie status updated successfully.", "client": client})
}
