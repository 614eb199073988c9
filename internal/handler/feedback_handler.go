package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"shop-service/internal/model"
	"shop-service/internal/store"
	"shop-service/pkg/database"
	"shop-service/pkg/logger"
	"shop-service/prometheus"
)

// FeedbackRequest defines the structure for feedback creation requests
type FeedbackRequest struct {
	Name      string `json:"name" form:"name"`
	Email     string `json:"email" form:"email"`
	Message   string `json:"message" form:"message"`
	ProductID *uint  `json:"product_id" form:"product_id"`
}

// ListFeedback handles the feedback API: every entry, product-scoped and
// general alike.
func ListFeedback(c echo.Context) error {
	log := logger.FromContext(c)

	feedback, err := store.ListFeedback(database.GetDB())
	if err != nil {
		log.Error("Failed to list feedback", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve feedback",
		})
	}

	return c.JSON(http.StatusOK, feedback)
}

// CreateFeedback handles feedback creation. Name and a non-empty message
// are required; email and product_id are optional.
func CreateFeedback(c echo.Context) error {
	log := logger.FromContext(c)

	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid feedback request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.Name == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and message are required"})
	}

	fb := model.Feedback{
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		ProductID: req.ProductID,
	}
	if err := store.CreateFeedback(database.GetDB(), &fb); err != nil {
		log.Error("Failed to create feedback", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create feedback"})
	}

	prometheus.RecordFeedbackOperation("create")
	log.Info("Feedback created", zap.Uint("feedback_id", fb.ID))
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "id": fb.ID})
}

// DeleteFeedback handles feedback deletion through the API.
func DeleteFeedback(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Feedback not found"})
	}

	if err := store.DeleteFeedback(database.GetDB(), id); err != nil {
		log.Warn("Feedback not found for deletion", zap.Uint("feedback_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Feedback not found"})
	}

	prometheus.RecordFeedbackOperation("delete")
	log.Info("Feedback deleted", zap.Uint("feedback_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ProductFeedback handles the product-page feedback form. A missing message
// silently sends the shopper back to the product page; the name defaults to
// Anonymous.
func ProductFeedback(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}
	if _, err := store.GetProduct(database.GetDB(), id); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	message := c.FormValue("message")
	if message == "" {
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/shop/product/%d", id))
	}

	name := c.FormValue("name")
	if name == "" {
		name = "Anonymous"
	}

	fb := model.Feedback{
		Name:      name,
		Email:     c.FormValue("email"),
		Message:   message,
		ProductID: &id,
	}
	if err := store.CreateFeedback(database.GetDB(), &fb); err != nil {
		log.Error("Failed to create product feedback",
			zap.Uint("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create feedback"})
	}

	prometheus.RecordFeedbackOperation("create")
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/shop/product/%d", id))
}
