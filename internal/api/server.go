package api

import (
	"errors"
	"net/http"
	"strconv"

	"gorestaurant/internal/database"
	"gorestaurant/internal/logger"
	"gorestaurant/internal/models"
	"gorestaurant/internal/monitoring"

	"github.com/gin-gonic/gin"
)

// Store is the persistence the food API is served from
type Store interface {
	ListFoods(category uint) ([]models.FoodItem, error)
	GetFood(id uint) (*models.FoodItem, error)
	ListFavorites() ([]models.FoodItem, error)
	AddFavorite(foodID uint) error
	RemoveFavorite(foodID uint) error
	CreateOrder(payload models.OrderPayload) (*models.Order, error)
	GetOrder(id uint) (*models.Order, error)
	ListOrders() ([]models.Order, error)
}

// Server represents the food API HTTP handler
type Server struct {
	Router  *gin.Engine
	store   Store
	metrics *monitoring.Collector
	log     *logger.Logger
	feed    *OrderFeed

	metricsPath string
}

// Option configures a Server
type Option func(*Server)

// WithMetricsPath serves prometheus metrics at path; an empty path disables the endpoint
func WithMetricsPath(path string) Option {
	return func(s *Server) { s.metricsPath = path }
}

// NewServer creates the food API with all routes registered
func NewServer(store Store, metrics *monitoring.Collector, log *logger.Logger, opts ...Option) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		Router:  router,
		store:   store,
		metrics: metrics,
		log:     log,
		feed:    NewOrderFeed(log),

		metricsPath: "/metrics",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()
	return s
}

// Feed returns the websocket feed created orders are broadcast on
func (s *Server) Feed() *OrderFeed {
	return s.feed
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	s.Router.Use(s.requestMiddleware())

	s.Router.GET("/health", s.Health)
	if s.metricsPath != "" {
		s.Router.GET(s.metricsPath, gin.WrapH(s.metrics.Handler()))
	}
	s.Router.GET("/ws/orders", s.feed.Handle)

	s.Router.GET("/foods", s.ListFoods)
	s.Router.GET("/foods/:id", s.GetFood)

	s.Router.GET("/favorites", s.ListFavorites)
	s.Router.POST("/favorites", s.AddFavorite)
	s.Router.DELETE("/favorites/:id", s.RemoveFavorite)

	s.Router.GET("/orders", s.ListOrders)
	s.Router.GET("/orders/:id", s.GetOrder)
	s.Router.POST("/orders", s.CreateOrder)
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"uptime_seconds": s.metrics.Uptime().Seconds(),
	})
}

// idParam parses the :id path parameter, answering 400 when it is not a positive integer
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

// fail maps store errors to responses
func (s *Server) fail(c *gin.Context, err error, notFoundMessage string) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage})
		return
	}
	s.log.Error("request_failed", requestID(c), "Store operation failed", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// Food handlers

func (s *Server) ListFoods(c *gin.Context) {
	var category uint64
	if raw := c.Query("category"); raw != "" {
		var err error
		if category, err = strconv.ParseUint(raw, 10, 64); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}
	}

	foods, err := s.store.ListFoods(uint(category))
	if err != nil {
		s.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, foods)
}

func (s *Server) GetFood(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	food, err := s.store.GetFood(id)
	if err != nil {
		s.fail(c, err, "Food not found")
		return
	}
	c.JSON(http.StatusOK, food)
}

// Favorite handlers

func (s *Server) ListFavorites(c *gin.Context) {
	favorites, err := s.store.ListFavorites()
	if err != nil {
		s.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, favorites)
}

func (s *Server) AddFavorite(c *gin.Context) {
	var food models.FoodItem
	if err := c.ShouldBindJSON(&food); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if food.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Food id is required"})
		return
	}

	if err := s.store.AddFavorite(food.ID); err != nil {
		s.fail(c, err, "Food not found")
		return
	}
	stored, err := s.store.GetFood(food.ID)
	if err != nil {
		s.fail(c, err, "Food not found")
		return
	}

	s.metrics.RecordFavorite("add")
	c.JSON(http.StatusCreated, stored)
}

func (s *Server) RemoveFavorite(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := s.store.RemoveFavorite(id); err != nil {
		s.fail(c, err, "Favorite not found")
		return
	}

	s.metrics.RecordFavorite("remove")
	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed"})
}

// Order handlers

func (s *Server) ListOrders(c *gin.Context) {
	orders, err := s.store.ListOrders()
	if err != nil {
		s.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) GetOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	order, err := s.store.GetOrder(id)
	if err != nil {
		s.fail(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, order)
}

// CreateOrder validates the payload, stores the order and broadcasts it on the order feed
func (s *Server) CreateOrder(c *gin.Context) {
	var payload models.OrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if payload.ProductID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}
	for _, extra := range payload.Extras {
		if extra.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "extra quantities must be positive"})
			return
		}
	}

	order, err := s.store.CreateOrder(payload)
	if err != nil {
		s.fail(c, err, "Food not found")
		return
	}

	s.metrics.RecordOrderCreated(len(order.Extras))
	s.feed.Broadcast(OrderEvent{Type: EventOrderCreated, Order: order})
	s.log.Info("order_created", requestID(c), "Order created")

	c.JSON(http.StatusCreated, order)
}
