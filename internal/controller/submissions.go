package controller

import (
	"errors"
	"net/http"

	"wedding-rsvp/internal/i18n"
	"wedding-rsvp/internal/models"
	"wedding-rsvp/internal/relay"
	"wedding-rsvp/internal/rsvp"
	"wedding-rsvp/pkg/logger"

	"github.com/gin-gonic/gin"
)

// GetSubmissions returns every recorded submission, newest first. A store
// failure yields an empty list, never an error.
func (h *Handler) GetSubmissions(c *gin.Context) {
	c.JSON(http.StatusOK, h.loader.Load(c.Request.Context()))
}

// CreateSubmission validates the form, stores it and alerts the host once.
// The guest only ever sees the acknowledgment or the retry prompt.
func (h *Handler) CreateSubmission(c *gin.Context) {
	ctx := c.Request.Context()
	p := i18n.Printer(i18n.FromContext(ctx))

	var form models.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": p.Sprintf(i18n.GuestInvalid)})
		return
	}
	s, err := h.writer.Submit(ctx, form)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{
			"submission": s,
			"message":    p.Sprintf(i18n.GuestAck, s.Name),
		})
	case errors.Is(err, rsvp.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": p.Sprintf(i18n.GuestInvalid)})
	case errors.Is(err, rsvp.ErrNotStored):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": p.Sprintf(i18n.GuestRetry)})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": p.Sprintf(i18n.GuestRetry)})
	}
}

// SendEmail is the relay route: one host alert per call.
// 200 {"success":true} on dispatch, 500 {"error":"Failed to send"} otherwise.
func (h *Handler) SendEmail(c *gin.Context) {
	ctx := c.Request.Context()
	var s models.Submission
	if err := c.ShouldBindJSON(&s); err != nil {
		logger.Debug(ctx, "Relay payload rejected", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send"})
		return
	}
	if h.relay == nil {
		logger.Error(ctx, "Relay route called without a configured mailer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send"})
		return
	}
	if err := h.relay.Notify(ctx, s); err != nil {
		if !errors.Is(err, relay.ErrNotDelivered) {
			logger.Error(ctx, "Relay failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HostSummary (auth): attendance totals and the full list for the host.
func (h *Handler) HostSummary(c *gin.Context) {
	subs := h.loader.Load(c.Request.Context())
	totals := map[models.Attendance]int{
		models.AttendanceYes:   0,
		models.AttendanceMaybe: 0,
		models.AttendanceNo:    0,
	}
	guests := 0
	for _, s := range subs {
		totals[s.Attendance]++
		switch s.Attendance {
		case models.AttendanceYes:
			guests++
		case models.AttendanceMaybe:
			guests += 2
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"total":           len(subs),
		"attendance":      totals,
		"expected_guests": guests,
		"submissions":     subs,
	})
}
