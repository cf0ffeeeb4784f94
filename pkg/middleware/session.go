package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"krishi/entities"
)

const (
	SessionCookie = "krishi_session"
	farmerKey     = "farmer"
)

// SessionResolver maps a cookie token to the logged-in farmer.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*entities.Farmer, error)
}

// Session attaches the farmer behind the session cookie, if any. Unknown or
// expired cookies are cleared and the request continues anonymously.
func Session(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(SessionCookie)
			if err != nil || ck.Value == "" {
				return next(c)
			}
			f, err := resolver.Resolve(c.Request().Context(), ck.Value)
			if err != nil {
				ClearSessionCookie(c)
				return next(c)
			}
			SetFarmer(c, f)
			return next(c)
		}
	}
}

// RequireFarmer sends anonymous browsers to /login and answers API callers
// with 401.
func RequireFarmer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentFarmer(c) != nil {
				return next(c)
			}
			if wantsJSON(c.Request()) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "login required"})
			}
			return c.Redirect(http.StatusSeeOther, "/login")
		}
	}
}

func CurrentFarmer(c echo.Context) *entities.Farmer {
	f, _ := c.Get(farmerKey).(*entities.Farmer)
	return f
}

func SetFarmer(c echo.Context, f *entities.Farmer) { c.Set(farmerKey, f) }

func SetSessionCookie(c echo.Context, token string, expires time.Time, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) ||
		strings.Contains(r.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
