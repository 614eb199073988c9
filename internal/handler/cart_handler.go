package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"shop-service/internal/middleware"
	"shop-service/internal/model"
	"shop-service/internal/store"
	"shop-service/pkg/database"
	"shop-service/pkg/logger"
	"shop-service/prometheus"
)

// ViewCart handles the cart view: the current session's lines and total.
func ViewCart(c echo.Context) error {
	log := logger.FromContext(c)

	cart, err := sessions.Get(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		log.Error("Failed to load cart", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load cart"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"cart":  cart,
		"total": cart.Total(),
	})
}

// AddToCart adds one unit of a product to the session cart, incrementing
// the quantity when the product is already listed.
func AddToCart(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()

	id, err := paramID(c, "product_id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	product, err := store.GetProduct(database.GetDB(), id)
	if err != nil {
		log.Warn("Add to cart for unknown product", zap.Uint("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	key := middleware.SessionID(c)
	cart, err := sessions.Get(ctx, key)
	if err != nil {
		log.Error("Failed to load cart", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load cart"})
	}

	cart = cart.Add(*product)
	if err := sessions.Set(ctx, key, cart); err != nil {
		log.Error("Failed to save cart", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save cart"})
	}

	prometheus.RecordCartOperation("add")
	log.Info("Product added to cart",
		zap.Uint("product_id", id),
		zap.String("product_name", product.Name),
		zap.Int("cart_lines", len(cart)))
	return c.Redirect(http.StatusSeeOther, "/shop/shop")
}

// ClearCart replaces the session cart with an empty one.
func ClearCart(c echo.Context) error {
	log := logger.FromContext(c)

	if err := sessions.Set(c.Request().Context(), middleware.SessionID(c), model.Cart{}); err != nil {
		log.Error("Failed to clear cart", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to clear cart"})
	}

	prometheus.RecordCartOperation("clear")
	return c.Redirect(http.StatusSeeOther, "/shop/cart")
}
