package model

import (
	"github.com/shopspring/decimal"
)

// CartItem is one pending selection. Name and Price are snapshots taken
// when the product was added, so later catalog edits do not move the line.
type CartItem struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Cart is the session-scoped list of pending selections. It is never
// persisted to the database; it lives in the session store until checkout.
type Cart []CartItem

// Add increments the quantity of an already-listed product, otherwise
// appends a new line with quantity 1 and a snapshot of the product's
// current name and price.
func (c Cart) Add(p Product) Cart {
	for i := range c {
		if c[i].ProductID == p.ID {
			c[i].Quantity++
			return c
		}
	}
	return append(c, CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
	})
}

// Total sums price times quantity over all lines. An empty cart totals zero.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
