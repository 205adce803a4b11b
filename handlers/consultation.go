package handlers

import (
	"errors"
	"net/http"
	"strings"

	"lexbook/models"
	"lexbook/services/wizard"
	"lexbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConsultationHandler exposes the booking wizard over HTTP.
type ConsultationHandler struct {
	Service wizard.Service
	Logger  *zap.Logger

	// ConfirmationURL is where a browser is sent after a payment callback
	// has been processed; it carries no query parameters so a refresh can
	// never re-trigger verification.
	ConfirmationURL string
}

// NewConsultationHandler returns a ConsultationHandler.
func NewConsultationHandler(svc wizard.Service, logger *zap.Logger, confirmationURL string) *ConsultationHandler {
	return &ConsultationHandler{Service: svc, Logger: logger, ConfirmationURL: confirmationURL}
}

// flowStatus maps a wizard error to an HTTP status.
func flowStatus(err error) int {
	switch {
	case errors.Is(err, wizard.ErrSessionNotFound):
		return http.StatusNotFound
	case wizard.IsValidation(err):
		return http.StatusBadRequest
	case wizard.IsState(err):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func (h *ConsultationHandler) respondFlowError(c *gin.Context, err error) {
	utils.JSONError(c, flowStatus(err), "Booking flow error", err.Error())
}

// StartSession creates a new wizard session.
func (h *ConsultationHandler) StartSession(c *gin.Context) {
	session, err := h.Service.Start(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to start booking session", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"session":    session,
		"timeSlots":  utils.TimeSlots,
		"caseTypes":  utils.PracticeAreas,
		"urgencies":  utils.UrgencyLevels,
		"channels":   utils.ConsultationChannels,
		"payMethods": utils.PaymentMethods,
	})
}

// GetSession returns a read-only snapshot of a wizard session.
func (h *ConsultationHandler) GetSession(c *gin.Context) {
	session, err := h.Service.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// UpdateContact stores the contact fields and kicks off the debounced
// eligibility refresh.
func (h *ConsultationHandler) UpdateContact(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	session, err := h.Service.UpdateContact(c.Request.Context(), c.Param("sessionID"), input.Email, input.Phone)
	if err != nil {
		h.respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// CheckEligibility runs the eligibility check immediately.
func (h *ConsultationHandler) CheckEligibility(c *gin.Context) {
	session, err := h.Service.CheckEligibility(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session":     session,
		"eligibility": session.Eligibility,
	})
}

// UpdateForm applies a partial form update.
func (h *ConsultationHandler) UpdateForm(c *gin.Context) {
	var patch models.FormPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	session, err := h.Service.UpdateForm(c.Request.Context(), c.Param("sessionID"), &patch)
	if err != nil {
		h.respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// NextStep advances the wizard one step.
func (h *ConsultationHandler) NextStep(c *gin.Context) {
	session, err := h.Service.Advance(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// PrevStep moves the wizard one step back without discarding entered values.
func (h *ConsultationHandler) PrevStep(c *gin.Context) {
	session, err := h.Service.Back(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Submit finalizes the booking: immediate confirmation for free
// consultations, a gateway redirect for paid ones.
func (h *ConsultationHandler) Submit(c *gin.Context) {
	outcome, err := h.Service.Submit(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// PaymentCallback is the single resume-from-redirect entry point. After
// processing it sends browsers to a clean URL so the query parameters never
// survive a refresh; API clients get the outcome as JSON.
func (h *ConsultationHandler) PaymentCallback(c *gin.Context) {
	var params models.CallbackParams
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid payment callback", err.Error())
		return
	}

	outcome, err := h.Service.ResumeFromRedirect(c.Request.Context(), params)
	if err != nil {
		h.respondFlowError(c, err)
		return
	}

	if acceptsJSON(c) {
		c.JSON(http.StatusOK, outcome)
		return
	}
	c.Redirect(http.StatusSeeOther, h.ConfirmationURL)
}

// acceptsJSON treats anything that does not explicitly prefer HTML as an API
// client. Gateway redirects arrive from a browser and carry text/html.
func acceptsJSON(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	if strings.Contains(accept, "application/json") {
		return true
	}
	return !strings.Contains(accept, "text/html")
}
