package model

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Products are seeded on first startup and
// maintained out-of-band; no end-user request creates or updates them.
type Product struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	Name        string          `json:"name" gorm:"type:varchar(120);not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageURL    string          `json:"image_url" gorm:"type:varchar(250)"`
	Description string          `json:"description" gorm:"type:text"`
}

func (Product) TableName() string { return "product" }

// Feedback is a customer message, either scoped to one product or general
// (ProductID nil). Deleting the product removes its feedback.
type Feedback struct {
	ID        uint   `json:"id" gorm:"primarykey"`
	Name      string `json:"name" gorm:"type:varchar(100);not null"`
	Email     string `json:"email" gorm:"type:varchar(120)"`
	Message   string `json:"message" gorm:"type:varchar(500);not null"`
	ProductID *uint  `json:"product_id" gorm:"index"`
}

func (Feedback) TableName() string { return "feedback" }

// Client is created lazily on a customer's first checkout and reused on
// every later checkout with the same email. Clients are never deleted.
type Client struct {
	ID      uint   `json:"id" gorm:"primarykey"`
	Name    string `json:"name" gorm:"type:varchar(120);not null"`
	Email   string `json:"email" gorm:"type:varchar(120);not null;index"`
	Phone   string `json:"phone" gorm:"type:varchar(20);not null"`
	Address string `json:"address" gorm:"type:varchar(250);not null"`
}

func (Client) TableName() string { return "client" }

// Order records one checkout. TotalPrice is captured from the cart at
// checkout time and never recomputed from current product prices.
type Order struct {
	ID         uint            `json:"id" gorm:"primarykey"`
	Status     string          `json:"status" gorm:"type:varchar(50);default:new"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2)"`
	Date       string          `json:"date" gorm:"type:varchar(50)"`
	ClientID   uint            `json:"client_id"`
	Client     Client          `json:"client" gorm:"foreignKey:ClientID"`
	Items      []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string { return "order" }

// OrderItem is one line of an order. It exists only as a child of exactly
// one order and is deleted together with it.
type OrderItem struct {
	ID        uint `json:"id" gorm:"primarykey"`
	OrderID   uint `json:"order_id" gorm:"index"`
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity" gorm:"default:1"`
}

func (OrderItem) TableName() string { return "order_item" }
