package checkout

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"shop-service/internal/model"
)

// ErrValidation is returned when a required field is missing or the cart is
// empty. Nothing has been written when it is returned.
var ErrValidation = errors.New("name, email, phone, address and a non-empty cart are required")

// Input carries the client details submitted with the checkout form.
type Input struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Address string `json:"address" form:"address"`
}

func (in Input) complete() bool {
	return in.Name != "" && in.Email != "" && in.Phone != "" && in.Address != ""
}

// Run materializes the cart into durable Client, Order and OrderItem rows in
// a single transaction and returns the new order's id.
//
// The client is resolved by exact email match and created on first use;
// repeat checkouts never overwrite an existing client's details. The order
// total is the cart's total at this instant, not a function of current
// product prices. Cart lines whose product has been deleted since they were
// added are skipped without error. Any failure rolls the whole checkout
// back; the caller clears the cart only after Run succeeds.
func Run(ctx context.Context, db *gorm.DB, in Input, cart model.Cart) (uint, error) {
	if !in.complete() || len(cart) == 0 {
		return 0, ErrValidation
	}

	var orderID uint
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var client model.Client
		err := tx.Where("email = ?", in.Email).First(&client).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			client = model.Client{Name: in.Name, Email: in.Email, Phone: in.Phone, Address: in.Address}
			if err := tx.Create(&client).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		}

		order := model.Order{
			Status:     "new",
			TotalPrice: cart.Total(),
			Date:       time.Now().Format("2006-01-02 15:04"),
			ClientID:   client.ID,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, line := range cart {
			var product model.Product
			err := tx.First(&product, line.ProductID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// product removed after it was carted
				continue
			}
			if err != nil {
				return err
			}
			item := model.OrderItem{OrderID: order.ID, ProductID: product.ID, Quantity: line.Quantity}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}
