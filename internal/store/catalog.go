package store

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"shop-service/internal/model"
)

// ListProducts returns the catalog, optionally narrowed by a
// case-insensitive name substring and inclusive price bounds. A bound that
// does not parse as a number is ignored rather than surfaced as an error.
func ListProducts(db *gorm.DB, query, minPrice, maxPrice string) ([]model.Product, error) {
	q := db.Model(&model.Product{})

	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	if minPrice != "" {
		if min, err := decimal.NewFromString(minPrice); err == nil {
			q = q.Where("price >= ?", min)
		}
	}
	if maxPrice != "" {
		if max, err := decimal.NewFromString(maxPrice); err == nil {
			q = q.Where("price <= ?", max)
		}
	}

	var products []model.Product
	err := q.Find(&products).Error
	return products, err
}

// GetProduct fetches one product by id.
func GetProduct(db *gorm.DB, id uint) (*model.Product, error) {
	var product model.Product
	if err := db.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product and all feedback referencing it in one
// transaction. The catalog has no delete route; this exists for out-of-band
// maintenance.
func DeleteProduct(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.Feedback{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
