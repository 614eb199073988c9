package seed

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"shop-service/internal/model"
)

const fallbackDescription = "No description available yet."

var descriptions = map[string]string{
	"Apple":                 "Juicy apple mix with a fresh, sweet-and-sour aroma, like an apple picked a minute ago.",
	"Berry & Mint":          "Berry blend with a cool note of mint that lifts and sharpens the berry bouquet.",
	"Blueberry":             "Rich blueberry flavor with a light sweet tartness and a clean natural finish.",
	"Cola Lemon":            "Classic cola with a bright citrus twist of lemon, fizzy and sweetly refreshing.",
	"Double Grape":          "Double grape: dense and sweet with a smooth, silky sweetness underneath.",
	"Double Raspberry":      "Intense double raspberry, a bright fruit aroma with a fine tart edge.",
	"Mango & Peach":         "Tropical mango and peach, juicy and gentle like a summer cocktail.",
	"Nova Cranberry & Mors": "Sweet-and-sour cranberry mix with berry mors, refreshing and full of character.",
	"Nova Red Bull":         "Energy booster with citrus and fruit notes to keep the mood up.",
	"Nova Spearmint":        "Sharp, fresh spearmint for a clean cool-down after every puff.",
	"Pineapple Lemonade":    "Pineapple lemonade: tropics with a light lemon tang for a juicy balance.",
	"Tabacoo":               "Classic tobacco aroma with warm woody undertones for fans of tradition.",
	"Watermelon & Melon":    "Juicy melon with watermelon, a light, sweet and very summery taste.",
}

type demoProduct struct {
	name  string
	price int64
	image string
}

var demoCatalog = []demoProduct{
	{"Apple", 240, "images/apple.jpg"},
	{"Berry & Mint", 260, "images/berry_mint.jpg"},
	{"Blueberry", 270, "images/blueberry.jpg"},
	{"Cola Lemon", 322, "images/cola_lemon.jpg"},
	{"Double Grape", 255, "images/double_grape.jpg"},
	{"Double Raspberry", 250, "images/double_raspberry.jpg"},
	{"Mango & Peach", 275, "images/mango_peach.jpg"},
	{"Nova Cranberry & Mors", 350, "images/nova_cranberry.jpg"},
	{"Nova Red Bull", 290, "images/nova_redbull.jpg"},
	{"Nova Spearmint", 250, "images/nova_spearmint.jpg"},
	{"Pineapple Lemonade", 242, "images/pineapple_lemonade.jpg"},
	{"Tabacoo", 230, "images/tabacoo.jpg"},
	{"Watermelon & Melon", 265, "images/watermelon_melon.jpg"},
}

// Run backfills missing product descriptions and, on a fresh database,
// loads the demo catalog. Both steps are idempotent.
func Run(db *gorm.DB) error {
	if err := backfillDescriptions(db); err != nil {
		return err
	}

	var count int64
	if err := db.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := make([]model.Product, 0, len(demoCatalog))
	for _, p := range demoCatalog {
		products = append(products, model.Product{
			Name:        p.name,
			Price:       decimal.NewFromInt(p.price),
			ImageURL:    p.image,
			Description: descriptions[p.name],
		})
	}
	return db.Create(&products).Error
}

// backfillDescriptions fills a description for every product that has none,
// so a database created before the column existed reads cleanly.
func backfillDescriptions(db *gorm.DB) error {
	var products []model.Product
	if err := db.Find(&products).Error; err != nil {
		return err
	}
	for i := range products {
		if strings.TrimSpace(products[i].Description) != "" {
			continue
		}
		desc, ok := descriptions[products[i].Name]
		if !ok {
			desc = fallbackDescription
		}
		if err := db.Model(&products[i]).Update("description", desc).Error; err != nil {
			return err
		}
	}
	return nil
}
