package database

import (
	"errors"
	"fmt"
	"time"

	"gorestaurant/internal/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"              // SQLite driver
)

// ErrNotFound is returned when the requested food, favorite or order does not exist
var ErrNotFound = errors.New("record not found")

// Store persists the menu, favorites and orders served by the food API
type Store struct {
	db *gorm.DB
}

// Open connects to the database. driver is "sqlite3" or "postgres".
func Open(driver, dsn string, logMode bool) (*Store, error) {
	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.LogMode(logMode)

	// Configure connection pool. An in-memory sqlite database only exists per connection.
	if driver == "sqlite3" {
		db.DB().SetMaxOpenConns(1)
	} else {
		db.DB().SetMaxIdleConns(10)
		db.DB().SetMaxOpenConns(100)
	}
	db.DB().SetConnMaxLifetime(time.Hour)

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates or updates all tables the food API needs
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(
		&FoodRecord{},
		&ExtraRecord{},
		&FavoriteRecord{},
		&OrderRecord{},
	).Error
}

func notFound(err error) error {
	if gorm.IsRecordNotFoundError(err) {
		return ErrNotFound
	}
	return err
}

// ListFoods returns all foods with their extras; category 0 means every category
func (s *Store) ListFoods(category uint) ([]models.FoodItem, error) {
	query := s.db.Preload("Extras", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).Order("id")
	if category != 0 {
		query = query.Where("category = ?", category)
	}

	var records []FoodRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	foods := make([]models.FoodItem, 0, len(records))
	for i := range records {
		foods = append(foods, records[i].toModel())
	}
	return foods, nil
}

// GetFood returns one food with its extras
func (s *Store) GetFood(id uint) (*models.FoodItem, error) {
	var record FoodRecord
	err := s.db.Preload("Extras", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).Where("id = ?", id).First(&record).Error
	if err != nil {
		return nil, notFound(err)
	}

	food := record.toModel()
	return &food, nil
}

// CreateFood stores a food and its extras, assigning ids to both
func (s *Store) CreateFood(food *models.FoodItem) error {
	record := FoodRecord{
		Name:         food.Name,
		Description:  food.Description,
		Price:        food.Price,
		Category:     food.Category,
		Available:    food.Available,
		ImageURL:     food.ImageURL,
		ThumbnailURL: food.ThumbnailURL,
	}
	for _, extra := range food.Extras {
		record.Extras = append(record.Extras, ExtraRecord{Name: extra.Name, Value: extra.Value})
	}

	if err := s.db.Create(&record).Error; err != nil {
		return err
	}

	*food = record.toModel()
	return nil
}

// ListFavorites returns the favorited foods in the order they were added
func (s *Store) ListFavorites() ([]models.FoodItem, error) {
	var records []FoodRecord
	err := s.db.Preload("Extras", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).
		Joins("JOIN favorites ON favorites.food_id = foods.id").
		Order("favorites.created_at, foods.id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	foods := make([]models.FoodItem, 0, len(records))
	for i := range records {
		foods = append(foods, records[i].toModel())
	}
	return foods, nil
}

// AddFavorite marks the food as favorite; adding an existing favorite is a no-op
func (s *Store) AddFavorite(foodID uint) error {
	if _, err := s.GetFood(foodID); err != nil {
		return err
	}

	var favorite FavoriteRecord
	return s.db.Where(FavoriteRecord{FoodID: foodID}).FirstOrCreate(&favorite).Error
}

// RemoveFavorite unmarks the food; ErrNotFound if it was not a favorite
func (s *Store) RemoveFavorite(foodID uint) error {
	result := s.db.Where("food_id = ?", foodID).Delete(&FavoriteRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateOrder stores an order for an existing food and returns it with its id
func (s *Store) CreateOrder(payload models.OrderPayload) (*models.Order, error) {
	if _, err := s.GetFood(payload.ProductID); err != nil {
		return nil, err
	}

	record := OrderRecord{
		ProductID:    payload.ProductID,
		Name:         payload.Name,
		Description:  payload.Description,
		Price:        payload.Price,
		ThumbnailURL: payload.ThumbnailURL,
	}
	if err := record.SetExtras(payload.Extras); err != nil {
		return nil, fmt.Errorf("failed to serialize extras: %w", err)
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}

	order, err := record.toModel()
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder returns one order by id
func (s *Store) GetOrder(id uint) (*models.Order, error) {
	var record OrderRecord
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		return nil, notFound(err)
	}

	order, err := record.toModel()
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns every order, oldest first
func (s *Store) ListOrders() ([]models.Order, error) {
	var records []OrderRecord
	if err := s.db.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(records))
	for i := range records {
		order, err := records[i].toModel()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}
