package handlers

import (
	"net/http"

	"guidehub/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	tokenCookie = "token"
	adminCtxKey = "currentAdmin"
)

// requireAdmin gates admin routes. A missing, invalid or expired token is
// answered with a silent redirect to /login; no error page, no mutation.
func (h *Handler) requireAdmin(c *gin.Context) {
	token, err := c.Cookie(tokenCookie)
	if err != nil || token == "" {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	ident, err := h.services.ParseToken(token)
	if err != nil {
		if h.log != nil {
			h.log.Infow("admin_token_rejected", "err", err)
		}
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	c.Set(adminCtxKey, ident)
	c.Next()
}

// identityMiddleware runs on every request and records the current admin for
// conditional UI rendering. It never redirects; any verification failure just
// leaves the identity unset.
func (h *Handler) identityMiddleware(c *gin.Context) {
	if token, err := c.Cookie(tokenCookie); err == nil && token != "" {
		if ident, err := h.services.ParseToken(token); err == nil {
			c.Set(adminCtxKey, ident)
		}
	}
	c.Next()
}

// currentAdmin returns the identity attached by the middlewares, or nil for
// anonymous visitors.
func currentAdmin(c *gin.Context) *service.Identity {
	if v, ok := c.Get(adminCtxKey); ok {
		if ident, ok := v.(service.Identity); ok {
			return &ident
		}
	}
	return nil
}
