package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderPayload is the body submitted to POST /orders for one food item.
// Extras only carries the add-ons with a quantity above zero.
type OrderPayload struct {
	Extras       []Extra         `json:"extras"`
	ProductID    uint            `json:"product_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ThumbnailURL string          `json:"thumbnail_url"`
}

// Order represents an order accepted by the food API
type Order struct {
	ID uint `json:"id"`
	OrderPayload
	CreatedAt time.Time `json:"created_at"`
}

// OrderDraft is the in-progress, not yet submitted order for one food item
type OrderDraft struct {
	Food         FoodItem `json:"food"`
	Extras       []Extra  `json:"extras"`
	FoodQuantity int      `json:"food_quantity"`
	IsFavorite   bool     `json:"is_favorite"`
}

// Total returns foodPrice × foodQuantity + Σ(extra.value × extra.quantity)
func (d OrderDraft) Total() decimal.Decimal {
	total := d.Food.Price.Mul(decimal.NewFromInt(int64(d.FoodQuantity)))
	for _, extra := range d.Extras {
		total = total.Add(extra.Subtotal())
	}
	return total
}

// Payload builds the order payload for submission, keeping only selected extras
func (d OrderDraft) Payload() OrderPayload {
	selected := make([]Extra, 0, len(d.Extras))
	for _, extra := range d.Extras {
		if extra.Quantity > 0 {
			selected = append(selected, extra)
		}
	}

	return OrderPayload{
		Extras:       selected,
		ProductID:    d.Food.ID,
		Name:         d.Food.Name,
		Description:  d.Food.Description,
		Price:        d.Food.Price,
		ThumbnailURL: d.Food.ThumbnailURL,
	}
}
