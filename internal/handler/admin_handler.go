package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"shop-service/internal/store"
	"shop-service/pkg/database"
	"shop-service/pkg/logger"
	"shop-service/prometheus"
)

// AdminPanel handles the admin dashboard: every order and every feedback
// entry.
func AdminPanel(c echo.Context) error {
	log := logger.FromContext(c)
	db := database.GetDB()

	orders, err := store.ListOrders(db)
	if err != nil {
		log.Error("Failed to list orders", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve orders"})
	}

	feedback, err := store.ListFeedback(db)
	if err != nil {
		log.Error("Failed to list feedback", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve feedback"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"orders":   orders,
		"feedback": feedback,
	})
}

// UpdateOrderStatus sets an order's status to the admin-supplied value. The
// status is free text; no enumeration is enforced.
func UpdateOrderStatus(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	status := c.FormValue("status")
	if err := store.UpdateOrderStatus(database.GetDB(), id, status); err != nil {
		log.Warn("Order not found for status update", zap.Uint("order_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	prometheus.RecordOrderOperation("update_status")
	log.Info("Order status updated",
		zap.Uint("order_id", id),
		zap.String("status", status))
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// DeleteOrder removes an order together with its line items.
func DeleteOrder(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	if err := store.DeleteOrder(database.GetDB(), id); err != nil {
		log.Warn("Order not found for deletion", zap.Uint("order_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	prometheus.RecordOrderOperation("delete")
	log.Info("Order deleted", zap.Uint("order_id", id))
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// AdminDeleteFeedback removes a feedback entry from the admin panel.
func AdminDeleteFeedback(c echo.Context) error {
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
	return c.Redirect(http.StatusSeeOther, "/admin/")
}
