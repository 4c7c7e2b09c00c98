package middleware

import (
	"net/http"
	"net/url"

	"mlhub-go/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "mlhub_session"

const identityKey = "identity"

// ResolveIdentity resolves the session cookie into a request-scoped
// identity. It never rejects; routes that need authentication stack
// LoginRequired on top.
func ResolveIdentity(sessions *service.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookieName)
		if err == nil && cookie != "" {
			if identity, err := sessions.Resolve(c.Request.Context(), cookie); err == nil {
				c.Set(identityKey, identity)
			}
		}
		c.Next()
	}
}

// LoginRequired redirects unauthenticated requests to the login page,
// preserving the originally requested path in the next parameter.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetIdentity(c); !ok {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, "/login?next="+next)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetIdentity returns the identity resolved for this request.
func GetIdentity(c *gin.Context) (*service.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(*service.Identity)
	return identity, ok
}
