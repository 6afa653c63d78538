package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-occupancy-backend/internal/auth"
	"hotel-occupancy-backend/internal/mw"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, admin)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": admin, "token": token})
}

// Profile handles GET /api/auth/profile for the authenticated admin.
func (h *Handler) Profile(c *gin.Context) {
	adminID := c.GetInt64(mw.AdminIDKey)
	admin, err := h.auth.Admin(c.Request.Context(), adminID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, admin)
}
