package store

import (
	"gorm.io/gorm"

	"shop-service/internal/model"
)

// ListFeedback returns all feedback, product-scoped and general alike.
func ListFeedback(db *gorm.DB) ([]model.Feedback, error) {
	var feedback []model.Feedback
	err := db.Find(&feedback).Error
	return feedback, err
}

// CreateFeedback stores a new feedback entry.
func CreateFeedback(db *gorm.DB, fb *model.Feedback) error {
	return db.Create(fb).Error
}

// ListProductFeedback returns the feedback left for one product.
func ListProductFeedback(db *gorm.DB, productID uint) ([]model.Feedback, error) {
	var feedback []model.Feedback
	err := db.Where("product_id = ?", productID).Find(&feedback).Error
	return feedback, err
}

// DeleteFeedback removes one feedback entry. The referenced product is
// untouched.
func DeleteFeedback(db *gorm.DB, id uint) error {
	res := db.Delete(&model.Feedback{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
