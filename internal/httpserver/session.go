package httpserver

import (
	"net/http"

	"ct-storefront/internal/domain"
	"ct-storefront/internal/locale"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	sessionKey   = "session"
	localeKey    = "locale"
	localeCookie = "locale"
)

// localeMiddleware negotiates the request locale from Accept-Language, then
// the locale cookie.
func localeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(localeCookie)
		c.Set(localeKey, locale.FromRequest(c.GetHeader("Accept-Language"), cookie))
		c.Next()
	}
}

// sessionMiddleware decodes the session cookie. Missing or invalid tokens
// yield an empty session.
func sessionMiddleware(name string, codec sessionCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(name)
		c.Set(sessionKey, codec.Decode(token))
		c.Next()
	}
}

func currentSession(c *gin.Context) domain.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(domain.Session); ok {
			return s
		}
	}
	return domain.Session{}
}

func currentLocale(c *gin.Context) string {
	if l := c.GetString(localeKey); l != "" {
		return l
	}
	return locale.Default
}

// issueSession signs s and sets it as the session cookie.
func (h *handlers) issueSession(c *gin.Context, s domain.Session) {
	token, err := h.deps.Sessions.Encode(s)
	if err != nil {
		h.logger.Error("encode session failed", zap.Error(err))
		return
	}
	sameSite := http.SameSiteLaxMode
	if h.deps.CookieSecure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.deps.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.deps.Sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.deps.CookieSecure,
		SameSite: sameSite,
	})
	c.Set(sessionKey, s)
}
