package controller

import (
	"context"
	"net/http"
	"time"

	"wedding-rsvp/internal/page"
	"wedding-rsvp/internal/relay"
	"wedding-rsvp/internal/rsvp"

	"github.com/gin-gonic/gin"
)

// ReadyCheck reports whether a backing service answers.
type ReadyCheck func(ctx context.Context) error

// Handler serves the RSVP API.
type Handler struct {
	loader page.Loader
	writer page.Submitter
	relay  relay.Notifier
	page   *page.Controller
	target time.Time
	tick   time.Duration
	checks map[string]ReadyCheck
}

// Deps are the collaborators a Handler needs. Relay may be nil when this
// process does not send mail itself; the relay route then always fails.
type Deps struct {
	Loader *rsvp.Loader
	Writer *rsvp.Writer
	Relay  relay.Notifier
	Target time.Time
	Now    func() time.Time
	Checks map[string]ReadyCheck
}

func New(d Deps) *Handler {
	return newHandler(d.Loader, d.Writer, d.Relay, d.Target, d.Now, d.Checks)
}

func newHandler(loader page.Loader, writer page.Submitter, notifier relay.Notifier, target time.Time, now func() time.Time, checks map[string]ReadyCheck) *Handler {
	return &Handler{
		loader: loader,
		writer: writer,
		relay:  notifier,
		page:   page.NewController(loader, writer, target, now),
		target: target,
		tick:   time.Second,
		checks: checks,
	}
}

// Health returns 200 if the process is alive. Used by load balancers.
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Ready returns 200 if every configured backend answers. Used by K8s readiness probes.
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": name + " unavailable"})
			return
		}
	}
	c.String(http.StatusOK, "OK")
}
