package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/raffle_api/internal/middleware"
	"github.com/mroshb/raffle_api/internal/services"
	"github.com/mroshb/raffle_api/pkg/errors"
)

// FlexibleNumbers accepts either a single number or a list of numbers.
type FlexibleNumbers []int

func (f *FlexibleNumbers) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var list []int
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*f = list
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexibleNumbers{n}
	return nil
}

type purchaseRequest struct {
	UserID          *uint           `json:"userId"`
	RaffleID        uint            `json:"raffleId"`
	SelectedNumbers FlexibleNumbers `json:"selectedNumbers"`
	Quantity        *int            `json:"quantity"`
}

// PurchaseTicket buys tickets for the caller. Staff may buy on behalf of
// another user.
func (h *HandlerManager) PurchaseTicket(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)

	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalidBody())
		return
	}
	if req.RaffleID == 0 {
		respondError(c, errors.New(errors.ErrCodeValidation, "Raffle ID is required."))
		return
	}

	userID := caller.ID
	if req.UserID != nil && *req.UserID != caller.ID {
		if !caller.IsStaff() {
			respondError(c, errors.New(errors.ErrCodeForbidden, "You can only buy tickets for yourself"))
			return
		}
		userID = *req.UserID
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	result, err := h.PurchaseSvc.Purchase(c.Request.Context(), services.PurchaseRequest{
		UserID:          userID,
		RaffleID:        req.RaffleID,
		SelectedNumbers: req.SelectedNumbers,
		Quantity:        quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if !result.Completed() {
		respondOK(c, http.StatusOK, gin.H{"message": result.Message, "outcome": result.Outcome})
		return
	}

	status := http.StatusOK
	if result.Outcome == services.OutcomeCreated {
		status = http.StatusCreated
	}
	respondOK(c, status, gin.H{
		"message": result.Message,
		"outcome": result.Outcome,
		"ticket":  result.Ticket,
		"balance": result.Balance,
	})
}

func (h *HandlerManager) GetTicketsByUser(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)
	userID, err := paramID(c, "userId", "User")
	if err != nil {
		respondError(c, err)
		return
	}
	if userID != caller.ID && !caller.IsStaff() {
		respondError(c, errors.New(errors.ErrCodeForbidden, "Access denied"))
		return
	}
	tickets, err := h.TicketSvc.ListUserTickets(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"tickets": tickets})
}

func (h *HandlerManager) ListTickets(c *gin.Context) {
	tickets, err := h.TicketSvc.ListTickets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"tickets": tickets})
}

func (h *HandlerManager) GetTicket(c *gin.Context) {
	id, err := paramID(c, "id", "Ticket")
	if err != nil {
		respondError(c, err)
		return
	}
	ticket, err := h.TicketSvc.GetTicket(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"ticket": ticket})
}

func (h *HandlerManager) DeleteTicket(c *gin.Context) {
	id, err := paramID(c, "id", "Ticket")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.TicketSvc.DeleteTicket(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Ticket deleted successfully"})
}

func (h *HandlerManager) ExportTickets(c *gin.Context) {
	data, err := h.TicketSvc.ExportTickets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	sendWorkbook(c, "tickets.xlsx", data)
}
