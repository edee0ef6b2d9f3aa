package controller

import (
	"net/http"

	"wedding-rsvp/internal/countdown"
	"wedding-rsvp/internal/i18n"
	"wedding-rsvp/internal/page"

	"github.com/gin-gonic/gin"
)

// GetPage returns the view state of a freshly opened page.
func (h *Handler) GetPage(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, h.page.Open(ctx, i18n.FromContext(ctx)))
}

// SubmitPage applies a submit to the posted view state and returns the next one.
func (h *Handler) SubmitPage(c *gin.Context) {
	ctx := c.Request.Context()
	var s page.State
	if err := c.ShouldBindJSON(&s); err != nil {
		s = page.Reduce(page.Initial(i18n.FromContext(ctx)), page.SubmitRejected{})
		c.JSON(http.StatusBadRequest, s)
		return
	}
	if s.Locale == "" {
		s.Locale = i18n.FromContext(ctx).String()
	}
	c.JSON(http.StatusOK, h.page.Submit(ctx, s))
}

// GetCountdown returns the time left until the event.
func (h *Handler) GetCountdown(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"target":    h.target,
		"remaining": h.page.Countdown(),
	})
}

// StreamCountdown pushes a "countdown" server-sent event every second until
// the client goes away or the event starts.
func (h *Handler) StreamCountdown(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Content-Type", "text/event-stream")
	ctx := c.Request.Context()
	countdown.Run(ctx, h.target, h.page.Now, h.tick, func(r countdown.Remaining) {
		c.SSEvent("countdown", r)
		c.Writer.Flush()
	})
}
