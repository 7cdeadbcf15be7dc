package handler

import (
	"net/http"

	"demo-bank/internal/adapter/http/dto"
	"demo-bank/internal/adapter/http/middleware"
	"demo-bank/internal/adapter/http/web"
	"demo-bank/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	dashboardPath   = "/dashboard"
	loginFailedPath = "/login?error=1"
)

// AuthHandler handles the public pages and the login/logout flow.
type AuthHandler struct {
	authSvc ports.AuthService
	cookie  *middleware.SessionCookie
	log     zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc ports.AuthService, cookie *middleware.SessionCookie, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, cookie: cookie, log: log}
}

// Index handles GET /.
func (h *AuthHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, web.IndexPage, nil)
}

// LoginPage handles GET /login. Any error query parameter shows the
// generic failure banner.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	_, failed := c.GetQuery("error")
	c.HTML(http.StatusOK, web.LoginPage, gin.H{"Error": failed})
}

// Login handles POST /login with form or JSON credentials.
// Every failure redirects to the same page so causes stay indistinguishable.
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusFound, loginFailedPath)
		return
	}

	sess, err := h.authSvc.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		c.Redirect(http.StatusFound, loginFailedPath)
		return
	}

	h.cookie.Set(c, sess.Token)
	c.Redirect(http.StatusFound, dashboardPath)
}

// Logout handles GET /logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, ok := h.cookie.Token(c); ok {
		if err := h.authSvc.Logout(c.Request.Context(), token); err != nil {
			h.log.Warn().Err(err).Msg("logout: session delete failed")
		}
	}
	h.cookie.Clear(c)
	c.Redirect(http.StatusFound, middleware.LoginPath)
}
