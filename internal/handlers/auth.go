package handlers

import (
	"errors"
	"net/http"

	"guidehub/internal/service"

	"github.com/gin-gonic/gin"
)

// Login/registration error messages shown to the user. Unknown-user and
// wrong-password are deliberately distinguishable.
const (
	msgInvalidUsername = "Invalid username"
	msgInvalidPassword = "Invalid password"
)

func (h *Handler) loginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *Handler) login(c *gin.Context) {
	name := c.PostForm("name")
	password := c.PostForm("password")

	token, err := h.services.Login(c.Request.Context(), name, password)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": msgInvalidUsername})
		return
	case errors.Is(err, service.ErrInvalidPassword):
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": msgInvalidPassword})
		return
	case err != nil:
		h.render500(c, "login_failed", err, "name", name)
		return
	}

	// Session cookie; expiry is enforced by the token itself.
	c.SetCookie(tokenCookie, token, 0, "/", "", false, true)
	c.Redirect(http.StatusFound, "/admin")
}

func (h *Handler) registerForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

func (h *Handler) register(c *gin.Context) {
	name := c.PostForm("name")
	password := c.PostForm("password")

	_, err := h.services.Register(c.Request.Context(), name, password)
	switch {
	case errors.Is(err, service.ErrMissingField), errors.Is(err, service.ErrDuplicateName):
		c.HTML(http.StatusBadRequest, "register.html", gin.H{"Error": err.Error()})
		return
	case err != nil:
		h.render500(c, "register_failed", err, "name", name)
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

// logout clears the token cookie unconditionally.
func (h *Handler) logout(c *gin.Context) {
	c.SetCookie(tokenCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}
