package auth

import "github.com/gin-gonic/gin"

const sessionKey = "adminSession"

// SetSession attaches the session to the request context.
func SetSession(c *gin.Context, s *Session) {
	c.Set(sessionKey, s)
}

// SessionFrom returns the request's session. Requests that never went
// through the auth middleware get a fresh unknown session.
func SessionFrom(c *gin.Context) *Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	return NewSession()
}
