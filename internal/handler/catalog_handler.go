package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shop-service/internal/model"
	"shop-service/internal/store"
	"shop-service/pkg/database"
	"shop-service/pkg/logger"
)

type productDTO struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
}

func toProductDTO(p model.Product, _ int) productDTO {
	return productDTO{ID: p.ID, Name: p.Name, Price: p.Price, ImageURL: p.ImageURL}
}

// ListProducts handles the products API: every product with its public
// fields, no filtering.
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)

	products, err := store.ListProducts(database.GetDB(), "", "", "")
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	return c.JSON(http.StatusOK, lo.Map(products, toProductDTO))
}

// Shop handles the filtered catalog view. Supported query parameters:
// q (case-insensitive name substring), min_price, max_price (inclusive;
// non-numeric values are ignored).
func Shop(c echo.Context) error {
	log := logger.FromContext(c)

	query := c.QueryParam("q")
	minPrice := c.QueryParam("min_price")
	maxPrice := c.QueryParam("max_price")

	products, err := store.ListProducts(database.GetDB(), query, minPrice, maxPrice)
	if err != nil {
		log.Error("Failed to filter products",
			zap.String("q", query),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	log.Info("Catalog filtered",
		zap.String("q", query),
		zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, echo.Map{"products": products})
}

// ProductDetail handles the product page: the product plus its feedback.
func ProductDetail(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	product, err := store.GetProduct(database.GetDB(), id)
	if err != nil {
		log.Warn("Product not found", zap.Uint("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	feedback, err := store.ListProductFeedback(database.GetDB(), id)
	if err != nil {
		log.Error("Failed to load product feedback", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve product",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"product":  product,
		"feedback": feedback,
	})
}
