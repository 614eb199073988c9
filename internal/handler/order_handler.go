package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"shop-service/internal/store"
	"shop-service/pkg/database"
	"shop-service/pkg/logger"
	"shop-service/prometheus"
)

// CreateOrder handles the orders API: a bare order for an existing client,
// with no line items. Accepts client_id as a form value or a JSON field.
func CreateOrder(c echo.Context) error {
	log := logger.FromContext(c)

	raw := c.FormValue("client_id")
	if raw == "" {
		var body struct {
			ClientID *uint `json:"client_id"`
		}
		if err := c.Bind(&body); err == nil && body.ClientID != nil {
			raw = strconv.FormatUint(uint64(*body.ClientID), 10)
		}
	}
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "client_id required"})
	}

	clientID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client_id"})
	}

	order, err := store.CreateBareOrder(database.GetDB(), uint(clientID))
	if err != nil {
		log.Error("Failed to create order", zap.Uint64("client_id", clientID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create order"})
	}

	prometheus.RecordOrderOperation("create")
	log.Info("Order created",
		zap.Uint("order_id", order.ID),
		zap.Uint64("client_id", clientID))
	return c.JSON(http.StatusCreated, echo.Map{"message": "Order created", "id": order.ID})
}

// OrderDetail handles the order detail view for both the shop and the admin
// panel.
func OrderDetail(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	order, err := store.GetOrder(database.GetDB(), id)
	if err != nil {
		log.Warn("Order not found", zap.Uint("order_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	return c.JSON(http.StatusOK, order)
}
