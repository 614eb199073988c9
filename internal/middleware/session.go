package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the browser's session key.
const SessionCookieName = "session_id"

// SessionMiddleware guarantees every request carries a session key, minting
// a cookie on first contact. The key is exposed on the context for the cart
// handlers.
func SessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			cookie = &http.Cookie{
				Name:     SessionCookieName,
				Value:    uuid.New().String(),
				Path:     "/",
				HttpOnly: true,
			}
			c.SetCookie(cookie)
		}

		c.Set(SessionCookieName, cookie.Value)
		return next(c)
	}
}

// SessionID returns the session key for the current request.
func SessionID(c echo.Context) string {
	if id, ok := c.Get(SessionCookieName).(string); ok {
		return id
	}
	return ""
}
