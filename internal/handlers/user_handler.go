package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/raffle_api/internal/middleware"
	"github.com/mroshb/raffle_api/internal/services"
	"github.com/mroshb/raffle_api/pkg/errors"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *HandlerManager) CreateUser(c *gin.Context) {
	var req services.CreateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalidBody())
		return
	}
	user, err := h.UserSvc.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"message": "User created successfully.", "user": user})
}

func (h *HandlerManager) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalidBody())
		return
	}
	result, err := h.UserSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"message": "Login successful.",
		"token":   result.Token,
		"user": gin.H{
			"id":       result.User.ID,
			"username": result.User.Username,
			"role":     result.User.Role,
			"balance":  result.User.Balance,
		},
	})
}

func (h *HandlerManager) ListUsers(c *gin.Context) {
	users, err := h.UserSvc.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"users": users})
}

func (h *HandlerManager) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, errors.New(errors.ErrCodeUnauthorized, "Not authorized"))
		return
	}
	respondOK(c, http.StatusOK, gin.H{"user": user})
}

func (h *HandlerManager) GetUser(c *gin.Context) {
	id, err := paramID(c, "id", "User")
	if err != nil {
		respondError(c, err)
		return
	}
	user, err := h.UserSvc.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"user": user})
}

func (h *HandlerManager) UpdateUser(c *gin.Context) {
	id, err := paramID(c, "id", "User")
	if err != nil {
		respondError(c, err)
		return
	}
	var req services.UpdateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalidBody())
		return
	}
	user, err := h.UserSvc.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "User updated successfully.", "user": user})
}

func (h *HandlerManager) DeleteUser(c *gin.Context) {
	id, err := paramID(c, "id", "User")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.UserSvc.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "User deleted successfully."})
}
