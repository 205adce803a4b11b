package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"lexbook/backend"
	"lexbook/middleware"
	"lexbook/models"
	"lexbook/services/admin"
	"lexbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes the staff dashboard endpoints. Every handler forwards
// the caller's admin key; the capability decides whether it is valid.
type AdminHandler struct {
	Service *admin.Service
	Logger  *zap.Logger
	Now     func() time.Time
}

// NewAdminHandler returns an AdminHandler.
func NewAdminHandler(svc *admin.Service, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Service: svc, Logger: logger, Now: time.Now}
}

func (h *AdminHandler) respondAdminError(c *gin.Context, err error) {
	if errors.Is(err, backend.ErrAdminRejected) {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid admin key", err.Error())
		return
	}
	utils.JSONError(c, http.StatusBadGateway, "Admin request failed", err.Error())
}

// filtersFromQuery lifts listing filters off the query string.
func filtersFromQuery(c *gin.Context) models.AdminFilters {
	days, _ := strconv.Atoi(c.Query("days"))
	return models.AdminFilters{
		Status:       c.Query("status"),
		Type:         c.Query("type"),
		PracticeArea: c.Query("practiceArea"),
		Method:       c.Query("method"),
		FreeUsed:     c.Query("freeUsed"),
		DateFrom:     c.Query("dateFrom"),
		DateTo:       c.Query("dateTo"),
		Search:       c.Query("search"),
		Days:         days,
	}
}

// Stats returns the dashboard summary. It is also the login probe: a bad key
// fails with 401 here before the dashboard renders anything.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.Service.Stats(c.Request.Context(), middleware.AdminKey(c))
	if err != nil {
		h.respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Consultations lists consultations with optional filters.
func (h *AdminHandler) Consultations(c *gin.Context) {
	rows, err := h.Service.Consultations(c.Request.Context(), middleware.AdminKey(c), filtersFromQuery(c))
	if err != nil {
		h.respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"consultations": rows})
}

// Payments lists payments with optional filters.
func (h *AdminHandler) Payments(c *gin.Context) {
	rows, err := h.Service.Payments(c.Request.Context(), middleware.AdminKey(c), filtersFromQuery(c))
	if err != nil {
		h.respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": rows})
}

// Users lists contacts with optional filters.
func (h *AdminHandler) Users(c *gin.Context) {
	rows, err := h.Service.Users(c.Request.Context(), middleware.AdminKey(c), filtersFromQuery(c))
	if err != nil {
		h.respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": rows})
}

// Analytics returns chart data for the requested window (default 30 days).
func (h *AdminHandler) Analytics(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))
	analytics, err := h.Service.Analytics(c.Request.Context(), middleware.AdminKey(c), days)
	if err != nil {
		h.respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}

// ConsultationDetails returns a single consultation.
func (h *AdminHandler) ConsultationDetails(c *gin.Context) {
	details, err := h.Service.ConsultationDetails(c.Request.Context(), middleware.AdminKey(c), c.Param("id"))
	if err != nil {
		h.respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// UpdateConsultationStatus changes a consultation's status.
func (h *AdminHandler) UpdateConsultationStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Status == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "status is required")
		return
	}
	if err := h.Service.UpdateConsultationStatus(c.Request.Context(), middleware.AdminKey(c), c.Param("id"), input.Status); err != nil {
		h.respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Export streams the requested listing as a CSV attachment.
func (h *AdminHandler) Export(c *gin.Context) {
	kind := c.Param("kind")
	key := middleware.AdminKey(c)
	filters := filtersFromQuery(c)
	ctx := c.Request.Context()

	var buf bytes.Buffer
	var err error
	switch kind {
	case "consultations":
		var rows []models.AdminConsultation
		if rows, err = h.Service.Consultations(ctx, key, filters); err == nil {
			err = admin.WriteConsultationsCSV(&buf, rows)
		}
	case "payments":
		var rows []models.AdminPayment
		if rows, err = h.Service.Payments(ctx, key, filters); err == nil {
			err = admin.WritePaymentsCSV(&buf, rows)
		}
	case "users":
		var rows []models.AdminUser
		if rows, err = h.Service.Users(ctx, key, filters); err == nil {
			err = admin.WriteUsersCSV(&buf, rows)
		}
	default:
		utils.JSONError(c, http.StatusNotFound, "Unknown export", kind)
		return
	}
	if err != nil {
		h.respondAdminError(c, err)
		return
	}

	filename := admin.ExportFilename(kind, h.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
