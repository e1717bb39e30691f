package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/raffle_api/internal/middleware"
	"github.com/mroshb/raffle_api/internal/services"
)

func (h *HandlerManager) CreateTransaction(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)
	var req services.CreateTransactionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalidBody())
		return
	}
	tx, err := h.TransactionSvc.CreateTransaction(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"message": "Transaction created successfully.", "transaction": tx})
}

func (h *HandlerManager) ListTransactions(c *gin.Context) {
	txs, err := h.TransactionSvc.ListTransactions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"transactions": txs})
}

func (h *HandlerManager) ListMyTransactions(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)
	txs, err := h.TransactionSvc.ListUserTransactions(c.Request.Context(), caller.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"transactions": txs})
}

func (h *HandlerManager) GetTransaction(c *gin.Context) {
	id, err := paramID(c, "id", "Transaction")
	if err != nil {
		respondError(c, err)
		return
	}
	tx, err := h.TransactionSvc.GetTransaction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"transaction": tx})
}

func (h *HandlerManager) DeleteTransaction(c *gin.Context) {
	id, err := paramID(c, "id", "Transaction")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.TransactionSvc.DeleteTransaction(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Transaction deleted successfully."})
}

func (h *HandlerManager) ExportTransactions(c *gin.Context) {
	data, err := h.TransactionSvc.ExportTransactions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	sendWorkbook(c, "transactions.xlsx", data)
}
