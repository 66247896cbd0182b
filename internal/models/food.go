package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// The food API speaks bare JSON numbers for money, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// FoodItem represents a dish as served by the food API, with its selectable extras
type FoodItem struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Category     uint            `json:"category,omitempty"`
	Available    bool            `json:"available"`
	ImageURL     string          `json:"image_url"`
	ThumbnailURL string          `json:"thumbnail_url"`
	Extras       []Extra         `json:"extras"`
}

// Extra represents an optional add-on attachable to a food order
type Extra struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Value    decimal.Decimal `json:"value"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns value × quantity for the extra
func (e Extra) Subtotal() decimal.Decimal {
	return e.Value.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Clone returns a deep copy of the food item so callers can't share the extras slice
func (f FoodItem) Clone() FoodItem {
	clone := f
	if f.Extras != nil {
		clone.Extras = make([]Extra, len(f.Extras))
		copy(clone.Extras, f.Extras)
	}
	return clone
}

// FindExtra returns the index of the extra with the given id, or -1
func FindExtra(extras []Extra, id uint) int {
	for i := range extras {
		if extras[i].ID == id {
			return i
		}
	}
	return -1
}

// ContainsFood reports whether a food with the given id is present in the list
func ContainsFood(foods []FoodItem, id uint) bool {
	for _, food := range foods {
		if food.ID == id {
			return true
		}
	}
	return false
}
