package middleware

import (
	"net/http"

	"github.com/GriffinCanCode/todolists/internal/domain/session"
	"github.com/gin-gonic/gin"
)

const sessionKey = "todolists.session"

// SessionCookie describes the cookie carrying the session token.
type SessionCookie struct {
	Name   string
	Secure bool
}

// Session resolves the caller's session from the cookie, minting a new one
// when the cookie is missing, unknown or expired. The session stays locked
// until the rest of the chain returns, so requests from one browser are
// applied one at a time.
func Session(store *session.Store, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cookie.Name)

		sess, created := store.Acquire(token)
		if created {
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     cookie.Name,
				Value:    sess.Token(),
				Path:     "/",
				HttpOnly: true,
				Secure:   cookie.Secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		sess.Lock()
		defer sess.Unlock()

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session attached by Session. It panics when the
// middleware is not installed.
func CurrentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}
