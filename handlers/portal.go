package handlers

import (
	"errors"
	"net/http"
	"strings"

	"lexbook/backend"
	"lexbook/middleware"
	"lexbook/models"
	"lexbook/services/portal"
	"lexbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PortalHandler exposes client portal authentication and data endpoints.
type PortalHandler struct {
	Service *portal.Service
	Logger  *zap.Logger
}

// NewPortalHandler returns a PortalHandler.
func NewPortalHandler(svc *portal.Service, logger *zap.Logger) *PortalHandler {
	return &PortalHandler{Service: svc, Logger: logger}
}

// Login authenticates a client and returns a session token.
func (h *PortalHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "email and password are required")
		return
	}

	token, client, err := h.Service.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, backend.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password", "")
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "Login failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "client": client})
}

// Register creates a portal account and signs the client in.
func (h *PortalHandler) Register(c *gin.Context) {
	var reg models.PortalRegistration
	if err := c.ShouldBindJSON(&reg); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if reg.Email == "" || reg.Password == "" || reg.FullName == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "full name, email and password are required")
		return
	}

	token, client, err := h.Service.Register(c.Request.Context(), &reg)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Registration failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "client": client})
}

// Logout invalidates the presented session.
func (h *PortalHandler) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		utils.JSONError(c, http.StatusBadRequest, "Missing session token", "")
		return
	}
	if err := h.Service.Logout(c.Request.Context(), token); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Logout failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me returns the authenticated client.
func (h *PortalHandler) Me(c *gin.Context) {
	session := middleware.PortalSession(c)
	if session == nil {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": session.Client})
}

// Dashboard returns the client's dashboard summary.
func (h *PortalHandler) Dashboard(c *gin.Context) {
	session := middleware.PortalSession(c)
	if session == nil {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}
	dashboard, err := h.Service.Dashboard(c.Request.Context(), session)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Failed to load dashboard", err.Error())
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// Cases lists the client's cases.
func (h *PortalHandler) Cases(c *gin.Context) {
	session := middleware.PortalSession(c)
	if session == nil {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}
	cases, err := h.Service.Cases(c.Request.Context(), session)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Failed to load cases", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"cases": cases})
}
