package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"shop-service/internal/session"
)

// sessions holds the cart session store shared by the handlers, wired once
// at startup.
var sessions session.Store

// Init wires the session store used by the cart and checkout handlers.
func Init(store session.Store) {
	sessions = store
}

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
