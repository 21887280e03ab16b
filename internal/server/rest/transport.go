package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"authstack/internal/common"
	"authstack/internal/server/config"
)

const bearerPrefix = "Bearer "

// issueToken hands the freshly issued token to the client according to the
// configured transport: an HttpOnly session cookie, or the Authorization
// response header (the JSON body carries it too, see authResponse).
func (s *Server) issueToken(c *gin.Context, token string) {
	switch s.cfg.SessionTransport {
	case config.TransportBearer:
		c.Header(common.AuthorizationHeader, bearerPrefix+token)
	default:
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     s.cfg.CookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(s.cfg.SessionValidityDuration.Seconds()),
			HttpOnly: true,
			Secure:   s.cfg.CookieSecure,
			SameSite: sameSiteMode(s.cfg.CookieSameSite),
		})
	}
}

// clearSessionCookie expires the session cookie. Harmless in bearer mode,
// where the cookie was never set.
func (s *Server) clearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: sameSiteMode(s.cfg.CookieSameSite),
	})
}

// extractToken pulls the session token from the request, accepting both
// transports regardless of which one issuance uses: the Authorization
// header wins, the session cookie is the fallback.
func (s *Server) extractToken(c *gin.Context) string {
	if header := c.GetHeader(common.AuthorizationHeader); strings.HasPrefix(header, bearerPrefix) {
		if token := header[len(bearerPrefix):]; token != "" {
			return token
		}
	}

	cookie, err := c.Request.Cookie(s.cfg.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func sameSiteMode(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
