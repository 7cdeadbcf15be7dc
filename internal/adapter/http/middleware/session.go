package middleware

import (
	"net/http"
	"strings"
	"time"

	"demo-bank/internal/core/ports"

	"github.com/gin-gonic/gin"
)

// SessionCookie reads and writes the signed session cookie.
// The cookie value is "<token>.<hmac(token)>".
type SessionCookie struct {
	Name   string
	Secure bool
	MaxAge time.Duration
	Signer ports.SignatureService
}

// Set writes the cookie for token.
func (sc *SessionCookie) Set(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, token+"."+sc.Signer.Sign(token), int(sc.MaxAge.Seconds()), "/", "", sc.Secure, true)
}

// Clear expires the cookie in the browser.
func (sc *SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, "", -1, "/", "", sc.Secure, true)
}

// Token returns the session token if the cookie is present and its
// signature verifies.
func (sc *SessionCookie) Token(c *gin.Context) (string, bool) {
	raw, err := c.Cookie(sc.Name)
	if err != nil || raw == "" {
		return "", false
	}
	token, sig, ok := strings.Cut(raw, ".")
	if !ok || token == "" || !sc.Signer.Verify(token, sig) {
		return "", false
	}
	return token, true
}
