package middleware

import (
	"net/http"

	"github.com/alimikegami/point-of-sales/storefront-service/config"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/commerce"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/response"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
)

const (
	sessionContextKey = "storefront_session"
	SignInPath        = "/sign-in"
)

// Session identifies a browser across requests and carries the customer's
// commerce auth token.
type Session struct {
	ID      string
	holder  *commerce.TokenHolder
	isNew   bool
	cleared bool
}

func (s *Session) AuthToken() string {
	if s.cleared {
		return ""
	}
	return s.holder.Token()
}

func (s *Session) SignedIn() bool {
	return s.AuthToken() != ""
}

// ClearAuth drops the auth token from the cookie written for this response.
func (s *Session) ClearAuth() {
	s.cleared = true
}

func (s *Session) dirty() bool {
	return s.isNew || s.cleared || s.holder.Refreshed()
}

func GetSession(c echo.Context) *Session {
	sess, _ := c.Get(sessionContextKey).(*Session)
	return sess
}

// SessionMiddleware restores the signed session cookie, or starts a new
// session, and exposes the auth token to commerce calls made with the
// request context. The cookie is rewritten before the response is committed
// whenever the session changed.
func SessionMiddleware(conf config.SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := &Session{}

			claims, err := readSessionCookie(c, conf)
			if err != nil {
				sess.ID = ulid.Make().String()
				sess.isNew = true
			} else {
				sess.ID = claims.SessionID
			}
			sess.holder = commerce.NewTokenHolder(claims.AuthToken)

			req := c.Request()
			c.SetRequest(req.WithContext(commerce.WithTokenHolder(req.Context(), sess.holder)))
			c.Set(sessionContextKey, sess)

			c.Response().Before(func() {
				if !sess.dirty() {
					return
				}
				if err := writeSessionCookie(c, conf, sess); err != nil {
					log.Ctx(c.Request().Context()).Error().Err(err).Str("component", "SessionMiddleware").Msg("")
				}
			})

			return next(c)
		}
	}
}

// RequireCustomer sends anonymous visitors to the sign-in page.
func RequireCustomer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := GetSession(c)
		if sess == nil || !sess.SignedIn() {
			return response.WriteRedirect(c, SignInPath)
		}
		return next(c)
	}
}

func readSessionCookie(c echo.Context, conf config.SessionConfig) (utils.SessionClaims, error) {
	cookie, err := c.Cookie(conf.CookieName)
	if err != nil {
		return utils.SessionClaims{}, err
	}
	return utils.ParseSessionToken(cookie.Value, conf.Secret)
}

func writeSessionCookie(c echo.Context, conf config.SessionConfig, sess *Session) error {
	token, err := utils.CreateSessionToken(utils.SessionClaims{
		SessionID: sess.ID,
		AuthToken: sess.AuthToken(),
	}, conf.Secret, conf.TTL)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     conf.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(conf.TTL.Seconds()),
		HttpOnly: true,
		Secure:   c.IsTLS(),
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}
