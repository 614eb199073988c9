package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"shop-service/internal/checkout"
	"shop-service/internal/middleware"
	"shop-service/internal/model"
	"shop-service/pkg/database"
	"shop-service/pkg/logger"
	"shop-service/prometheus"
)

// CheckoutForm handles the checkout view: the cart about to be ordered.
func CheckoutForm(c echo.Context) error {
	cart, err := sessions.Get(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		logger.FromContext(c).Error("Failed to load cart", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load cart"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"cart":  cart,
		"total": cart.Total(),
	})
}

// Checkout runs the checkout workflow for the session cart. The cart is
// cleared only after the order has committed, so a failed checkout loses
// nothing.
func Checkout(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()

	var in checkout.Input
	if err := c.Bind(&in); err != nil {
		log.Warn("Invalid checkout request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	key := middleware.SessionID(c)
	cart, err := sessions.Get(ctx, key)
	if err != nil {
		log.Error("Failed to load cart", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load cart"})
	}

	prometheus.CheckoutAttemptsCounter.Inc()

	orderID, err := checkout.Run(ctx, database.GetDB(), in, cart)
	if errors.Is(err, checkout.ErrValidation) {
		log.Warn("Checkout rejected", zap.Int("cart_lines", len(cart)))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Fill in all fields and add products to the cart",
			"cart":  cart,
			"total": cart.Total(),
		})
	}
	if err != nil {
		prometheus.CheckoutFailedCounter.Inc()
		log.Error("Checkout failed", zap.String("email", in.Email), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create order"})
	}

	// the order is durable; losing the clear only leaves a stale cart
	if err := sessions.Set(ctx, key, model.Cart{}); err != nil {
		log.Warn("Failed to clear cart after checkout",
			zap.Uint("order_id", orderID),
			zap.Error(err))
	}

	prometheus.CheckoutCompletedCounter.Inc()
	log.Info("Checkout completed",
		zap.Uint("order_id", orderID),
		zap.String("email", in.Email))
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/shop/order/%d", orderID))
}
