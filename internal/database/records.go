package database

import (
	"encoding/json"
	"time"

	"gorestaurant/internal/models"

	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

// FoodRecord is a dish on the menu with its extras
type FoodRecord struct {
	gorm.Model
	Name         string
	Description  string
	Price        decimal.Decimal `gorm:"type:decimal(10,2)"`
	Category     uint            `gorm:"index"`
	Available    bool
	ImageURL     string
	ThumbnailURL string
	Extras       []ExtraRecord `gorm:"foreignkey:FoodID"`
}

// TableName sets the table name for FoodRecord
func (FoodRecord) TableName() string {
	return "foods"
}

// ExtraRecord is an add-on selectable for one food
type ExtraRecord struct {
	gorm.Model
	FoodID uint `gorm:"index"`
	Name   string
	Value  decimal.Decimal `gorm:"type:decimal(10,2)"`
}

// TableName sets the table name for ExtraRecord
func (ExtraRecord) TableName() string {
	return "extras"
}

// FavoriteRecord marks a food as favorite. Removing a favorite deletes the row.
type FavoriteRecord struct {
	FoodID    uint `gorm:"primary_key;auto_increment:false"`
	CreatedAt time.Time
}

// TableName sets the table name for FavoriteRecord
func (FavoriteRecord) TableName() string {
	return "favorites"
}

// OrderRecord is a submitted order. Extras are stored serialized, as submitted.
type OrderRecord struct {
	gorm.Model
	ProductID    uint `gorm:"index"`
	Name         string
	Description  string
	Price        decimal.Decimal `gorm:"type:decimal(10,2)"`
	ThumbnailURL string
	ExtrasJSON   string `gorm:"type:text"`
	// Transient fields (ignored by GORM)
	Extras []models.Extra `gorm:"-"`
}

// TableName sets the table name for OrderRecord
func (OrderRecord) TableName() string {
	return "orders"
}

// GetExtras returns the deserialized extras
func (r *OrderRecord) GetExtras() ([]models.Extra, error) {
	if len(r.Extras) > 0 {
		return r.Extras, nil
	}
	extras := []models.Extra{}
	if r.ExtrasJSON == "" {
		return extras, nil
	}
	if err := json.Unmarshal([]byte(r.ExtrasJSON), &extras); err != nil {
		return nil, err
	}
	r.Extras = extras
	return extras, nil
}

// SetExtras serializes the extras for storage
func (r *OrderRecord) SetExtras(extras []models.Extra) error {
	if extras == nil {
		extras = []models.Extra{}
	}
	data, err := json.Marshal(extras)
	if err != nil {
		return err
	}
	r.ExtrasJSON = string(data)
	r.Extras = extras
	return nil
}

func (r *FoodRecord) toModel() models.FoodItem {
	food := models.FoodItem{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Price:        r.Price,
		Category:     r.Category,
		Available:    r.Available,
		ImageURL:     r.ImageURL,
		ThumbnailURL: r.ThumbnailURL,
		Extras:       make([]models.Extra, 0, len(r.Extras)),
	}
	for _, extra := range r.Extras {
		food.Extras = append(food.Extras, models.Extra{
			ID:    extra.ID,
			Name:  extra.Name,
			Value: extra.Value,
		})
	}
	return food
}

func (r *OrderRecord) toModel() (models.Order, error) {
	extras, err := r.GetExtras()
	if err != nil {
		return models.Order{}, err
	}
	return models.Order{
		ID: r.ID,
		OrderPayload: models.OrderPayload{
			Extras:       extras,
			ProductID:    r.ProductID,
			Name:         r.Name,
			Description:  r.Description,
			Price:        r.Price,
			ThumbnailURL: r.ThumbnailURL,
		},
		CreatedAt: r.CreatedAt,
	}, nil
}
