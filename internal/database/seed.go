package database

import (
	"gorestaurant/internal/models"

	"github.com/shopspring/decimal"
)

// Category ids used by the default menu
const (
	CategoryPasta uint = iota + 1
	CategoryPizza
	CategoryMeat
)

func defaultMenu() []models.FoodItem {
	money := decimal.RequireFromString
	return []models.FoodItem{
		{
			Name:         "Ao molho",
			Description:  "Macarrão ao molho branco, fughi e cheiro verde das montanhas.",
			Price:        money("19.90"),
			Category:     CategoryPasta,
			Available:    true,
			ImageURL:     "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-gorestaurant-mobile/ao_molho.png",
			ThumbnailURL: "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-gorestaurant-mobile/ao_molho_thumb.png",
			Extras: []models.Extra{
				{Name: "Bacon", Value: money("1.50")},
				{Name: "Frango", Value: money("2.00")},
			},
		},
		{
			Name:         "Veggie",
			Description:  "Macarrão com pimentão, ervilha e ervas finas colhidas no himalaia.",
			Price:        money("21.90"),
			Category:     CategoryPasta,
			Available:    true,
			ImageURL:     "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-gorestaurant-mobile/veggie.png",
			ThumbnailURL: "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-gorestaurant-mobile/veggie_thumb.png",
			Extras: []models.Extra{
				{Name: "Bacon", Value: money("1.50")},
			},
		},
		{
			Name:         "A la Camarón",
			Description:  "Macarrão com vegetais de primeira linha e camarão dos 7 mares.",
			Price:        money("25.90"),
			Category:     CategoryPasta,
			Available:    true,
			ImageURL:     "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-gorestaurant-mobile/a_la_camaron.png",
			ThumbnailURL: "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-gorestaurant-mobile/a_la_camaron_thumb.png",
			Extras: []models.Extra{
				{Name: "Camarão extra", Value: money("4.00")},
				{Name: "Queijo ralado", Value: money("1.00")},
			},
		},
		{
			Name:         "Calabresa",
			Description:  "Pizza de calabresa com cebola roxa e azeitonas pretas.",
			Price:        money("39.90"),
			Category:     CategoryPizza,
			Available:    true,
			ImageURL:     "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-gorestaurant-mobile/calabresa.png",
			ThumbnailURL: "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-gorestaurant-mobile/calabresa_thumb.png",
			Extras: []models.Extra{
				{Name: "Borda recheada", Value: money("6.00")},
			},
		},
		{
			Name:         "Picanha na chapa",
			Description:  "Picanha grelhada com farofa, vinagrete e arroz.",
			Price:        money("59.90"),
			Category:     CategoryMeat,
			Available:    false,
			ImageURL:     "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-gorestaurant-mobile/picanha.png",
			ThumbnailURL: "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-gorestaurant-mobile/picanha_thumb.png",
		},
	}
}

// Seed ensures the default menu exists. It does nothing if any food is already stored.
func (s *Store) Seed() error {
	var count int
	if err := s.db.Model(&FoodRecord{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx := s.db.Begin()
	txStore := &Store{db: tx}
	for _, food := range defaultMenu() {
		food := food
		if err := txStore.CreateFood(&food); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}
