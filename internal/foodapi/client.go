package foodapi

import (
	"context"
	"fmt"
	"net/url"

	"gorestaurant/internal/models"
)

// Client is a typed client for the food API endpoints
type Client struct {
	requester Requester
}

// NewClient creates a client over the given transport
func NewClient(requester Requester) *Client {
	return &Client{requester: requester}
}

// CheckHealth checks if the API is up and running
func (c *Client) CheckHealth(ctx context.Context) error {
	var status struct {
		Status string `json:"status"`
	}
	if err := c.requester.Get(ctx, "/health", &status); err != nil {
		return err
	}
	if status.Status != "ok" {
		return fmt.Errorf("API health check returned status %q", status.Status)
	}
	return nil
}

// ListFoods retrieves all foods, optionally restricted to one category (0 means all)
func (c *Client) ListFoods(ctx context.Context, category uint) ([]models.FoodItem, error) {
	path := "/foods"
	if category != 0 {
		path += "?" + url.Values{"category": {fmt.Sprint(category)}}.Encode()
	}

	var foods []models.FoodItem
	if err := c.requester.Get(ctx, path, &foods); err != nil {
		return nil, err
	}
	return foods, nil
}

// GetFood retrieves a food with its extras by id
func (c *Client) GetFood(ctx context.Context, id uint) (*models.FoodItem, error) {
	var food models.FoodItem
	if err := c.requester.Get(ctx, fmt.Sprintf("/foods/%d", id), &food); err != nil {
		return nil, err
	}
	return &food, nil
}

// ListFavorites retrieves the favorited foods
func (c *Client) ListFavorites(ctx context.Context) ([]models.FoodItem, error) {
	var favorites []models.FoodItem
	if err := c.requester.Get(ctx, "/favorites", &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// AddFavorite marks the food as favorite
func (c *Client) AddFavorite(ctx context.Context, food models.FoodItem) error {
	return c.requester.Post(ctx, "/favorites", food, nil)
}

// RemoveFavorite unmarks the food with the given id
func (c *Client) RemoveFavorite(ctx context.Context, id uint) error {
	return c.requester.Delete(ctx, fmt.Sprintf("/favorites/%d", id))
}

// CreateOrder submits an order and returns it as accepted by the API
func (c *Client) CreateOrder(ctx context.Context, payload models.OrderPayload) (*models.Order, error) {
	var order models.Order
	if err := c.requester.Post(ctx, "/orders", payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders retrieves all submitted orders
func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.requester.Get(ctx, "/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
