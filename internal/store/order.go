package store

import (
	"gorm.io/gorm"

	"shop-service/internal/model"
)

// ListOrders returns all orders with their line items and owning client.
func ListOrders(db *gorm.DB) ([]model.Order, error) {
	var orders []model.Order
	err := db.Preload("Items").Preload("Client").Find(&orders).Error
	return orders, err
}

// GetOrder fetches one order with its line items and owning client.
func GetOrder(db *gorm.DB, id uint) (*model.Order, error) {
	var order model.Order
	if err := db.Preload("Items").Preload("Client").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateBareOrder creates an order for a client with no line items, used by
// the orders API where items are attached separately.
func CreateBareOrder(db *gorm.DB, clientID uint) (*model.Order, error) {
	order := model.Order{ClientID: clientID, Status: "new"}
	if err := db.Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus sets an order's status to the supplied free-text value.
// Any string is accepted.
func UpdateOrderStatus(db *gorm.DB, id uint, status string) error {
	res := db.Model(&model.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteOrder removes an order and all its line items in one transaction.
func DeleteOrder(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Order{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
