// Package composer holds the client-side state of one food order: the loaded food item,
// the selected extras and quantities, the favorite flag, and the running total.
package composer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"gorestaurant/internal/logger"
	"gorestaurant/internal/models"

	"github.com/shopspring/decimal"
)

// Backend is the subset of the food API the composer talks to
type Backend interface {
	GetFood(ctx context.Context, id uint) (*models.FoodItem, error)
	ListFavorites(ctx context.Context) ([]models.FoodItem, error)
	AddFavorite(ctx context.Context, food models.FoodItem) error
	RemoveFavorite(ctx context.Context, id uint) error
	CreateOrder(ctx context.Context, payload models.OrderPayload) (*models.Order, error)
}

// Recorder receives the outcome of each remote operation
type Recorder interface {
	ObserveOperation(operation string, elapsed time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveOperation(string, time.Duration, error) {}

// Option configures a Composer
type Option func(*Composer)

// WithFormatter sets the currency formatter used by FormattedTotal
func WithFormatter(f *Formatter) Option {
	return func(c *Composer) { c.format = f }
}

// WithRecorder sets the recorder for remote operation outcomes
func WithRecorder(r Recorder) Option {
	return func(c *Composer) { c.recorder = r }
}

// WithLogger sets the logger
func WithLogger(l *logger.Logger) Option {
	return func(c *Composer) { c.log = l }
}

// Composer is the in-memory order draft for one food item.
// It is safe for concurrent use; no lock is held across remote calls.
type Composer struct {
	backend  Backend
	format   *Formatter
	recorder Recorder
	log      *logger.Logger

	mu              sync.Mutex
	food            models.FoodItem
	extras          []models.Extra
	foodQuantity    int
	isFavorite      bool
	loaded          bool
	favoritePending bool
	// loadAttempt picks the winner among overlapping loads; generation changes only
	// when a load is applied.
	loadAttempt uint64
	generation  uint64

	lifetime context.Context
	cancel   context.CancelFunc
}

// New creates a composer bound to the given backend
func New(backend Backend, opts ...Option) *Composer {
	lifetime, cancel := context.WithCancel(context.Background())
	c := &Composer{
		backend:      backend,
		format:       DefaultFormatter(),
		recorder:     nopRecorder{},
		log:          logger.Nop(),
		foodQuantity: 1,
		lifetime:     lifetime,
		cancel:       cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close detaches the composer. Remote calls still in flight are cancelled and
// their results are never applied.
func (c *Composer) Close() {
	c.cancel()
}

// operationContext returns a context cancelled when either ctx or the composer is done
func (c *Composer) operationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	opCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(c.lifetime, cancel)
	return opCtx, func() {
		stop()
		cancel()
	}
}

// interrupted returns the reason results of opCtx must not be applied, or nil.
// Callers hold c.mu.
func (c *Composer) interrupted(opCtx context.Context) error {
	if c.lifetime.Err() != nil {
		return ErrClosed
	}
	return opCtx.Err()
}

// cause reports ErrClosed for calls cut short by Close
func (c *Composer) cause(err error) error {
	if c.lifetime.Err() != nil && errors.Is(err, context.Canceled) {
		return ErrClosed
	}
	return err
}

func (c *Composer) observe(operation string, start time.Time, err error) {
	c.recorder.ObserveOperation(operation, time.Since(start), err)
}

// Load fetches the food with its extras, then the favorites collection. Every extra
// starts at quantity 0 and the food at quantity 1. Nothing is applied on failure.
func (c *Composer) Load(ctx context.Context, id uint) (err error) {
	start := time.Now()
	defer func() { c.observe("load", start, err) }()

	if c.lifetime.Err() != nil {
		return &LoadError{FoodID: id, Err: ErrClosed}
	}

	c.mu.Lock()
	c.loadAttempt++
	attempt := c.loadAttempt
	c.mu.Unlock()

	opCtx, done := c.operationContext(ctx)
	defer done()

	food, err := c.backend.GetFood(opCtx, id)
	if err != nil {
		return &LoadError{FoodID: id, Err: c.cause(err)}
	}
	if food == nil {
		return &LoadError{FoodID: id, Err: errors.New("empty food response")}
	}

	loaded := food.Clone()
	if loaded.Extras == nil {
		loaded.Extras = []models.Extra{}
	}
	for i := range loaded.Extras {
		loaded.Extras[i].Quantity = 0
	}

	favorites, err := c.backend.ListFavorites(opCtx)
	if err != nil {
		return &LoadError{FoodID: id, Err: c.cause(err)}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.interrupted(opCtx); err != nil {
		return &LoadError{FoodID: id, Err: err}
	}
	if attempt != c.loadAttempt {
		return &LoadError{FoodID: id, Err: ErrSuperseded}
	}

	c.generation++
	c.food = loaded
	c.extras = loaded.Extras
	c.food.Extras = nil
	c.foodQuantity = 1
	c.isFavorite = models.ContainsFood(favorites, loaded.ID)
	c.loaded = true

	c.log.Debug("food_loaded", "", "Food loaded",
		slog.Uint64("food_id", uint64(loaded.ID)),
		slog.Int("extras", len(loaded.Extras)),
		slog.Bool("favorite", c.isFavorite),
	)
	return nil
}

// IncrementExtra adds one to the extra's quantity. It reports false if the extra is unknown.
func (c *Composer) IncrementExtra(extraID uint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := models.FindExtra(c.extras, extraID)
	if i < 0 {
		return false
	}
	c.extras[i].Quantity++
	return true
}

// DecrementExtra removes one from the extra's quantity, never going below 0.
// It reports false if the extra is unknown.
func (c *Composer) DecrementExtra(extraID uint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := models.FindExtra(c.extras, extraID)
	if i < 0 {
		return false
	}
	if c.extras[i].Quantity > 0 {
		c.extras[i].Quantity--
	}
	return true
}

// IncrementFood adds one to the food quantity
func (c *Composer) IncrementFood() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.foodQuantity++
}

// DecrementFood removes one from the food quantity, never going below 1
func (c *Composer) DecrementFood() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.foodQuantity > 1 {
		c.foodQuantity--
	}
}

// IsFavorite reports the current favorite flag
func (c *Composer) IsFavorite() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isFavorite
}

// ToggleFavorite removes the food from favorites if it is one, adds it otherwise.
// The flag flips only after the remote call succeeds. It returns the resulting flag.
func (c *Composer) ToggleFavorite(ctx context.Context) (favorite bool, err error) {
	start := time.Now()
	defer func() { c.observe("toggle_favorite", start, err) }()

	c.mu.Lock()
	food, adding, generation := c.food, !c.isFavorite, c.generation
	switch {
	case c.lifetime.Err() != nil:
		err = ErrClosed
	case !c.loaded:
		err = ErrNotLoaded
	case c.favoritePending:
		err = ErrTogglePending
	}
	if err != nil {
		current := c.isFavorite
		c.mu.Unlock()
		return current, &FavoriteSyncError{FoodID: food.ID, Adding: adding, Err: err}
	}
	c.favoritePending = true
	c.mu.Unlock()

	opCtx, done := c.operationContext(ctx)
	defer done()

	if adding {
		food.Extras = c.Draft().Extras
		err = c.backend.AddFavorite(opCtx, food)
	} else {
		err = c.backend.RemoveFavorite(opCtx, food.ID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.favoritePending = false

	if err == nil {
		err = c.interrupted(opCtx)
	}
	if err == nil && generation != c.generation {
		err = ErrSuperseded
	}
	if err != nil {
		return c.isFavorite, &FavoriteSyncError{FoodID: food.ID, Adding: adding, Err: c.cause(err)}
	}

	c.isFavorite = adding
	c.log.Debug("favorite_toggled", "", "Favorite toggled",
		slog.Uint64("food_id", uint64(food.ID)),
		slog.Bool("favorite", adding),
	)
	return adding, nil
}

// Draft returns a copy of the current order draft
func (c *Composer) Draft() models.OrderDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draftLocked()
}

func (c *Composer) draftLocked() models.OrderDraft {
	extras := make([]models.Extra, len(c.extras))
	copy(extras, c.extras)
	return models.OrderDraft{
		Food:         c.food.Clone(),
		Extras:       extras,
		FoodQuantity: c.foodQuantity,
		IsFavorite:   c.isFavorite,
	}
}

// ComputeTotal returns foodPrice × foodQuantity + Σ(extra.value × extra.quantity)
func (c *Composer) ComputeTotal() decimal.Decimal {
	return c.Draft().Total()
}

// FormattedTotal returns ComputeTotal as a localized currency string
func (c *Composer) FormattedTotal() string {
	return c.format.Format(c.ComputeTotal())
}

// FinishOrder submits the food with its selected extras. On success the created order is
// returned and the draft goes back to quantity 1 with no extras selected.
func (c *Composer) FinishOrder(ctx context.Context) (order *models.Order, err error) {
	start := time.Now()
	defer func() { c.observe("finish_order", start, err) }()

	c.mu.Lock()
	draft, generation, loaded := c.draftLocked(), c.generation, c.loaded
	c.mu.Unlock()

	switch {
	case c.lifetime.Err() != nil:
		return nil, &SubmitError{FoodID: draft.Food.ID, Err: ErrClosed}
	case !loaded:
		return nil, &SubmitError{FoodID: draft.Food.ID, Err: ErrNotLoaded}
	}

	opCtx, done := c.operationContext(ctx)
	defer done()

	order, err = c.backend.CreateOrder(opCtx, draft.Payload())
	if err != nil {
		return nil, &SubmitError{FoodID: draft.Food.ID, Err: c.cause(err)}
	}
	if order == nil {
		return nil, &SubmitError{FoodID: draft.Food.ID, Err: errors.New("empty order response")}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// The order exists remotely from here on; only the local reset depends on the composer still
	// showing the same food.
	if c.interrupted(opCtx) == nil && generation == c.generation {
		c.resetLocked()
	}

	c.log.Info("order_submitted", "", "Order submitted",
		slog.Uint64("food_id", uint64(draft.Food.ID)),
		slog.Uint64("order_id", uint64(order.ID)),
		slog.String("total", draft.Total().StringFixed(2)),
	)
	return order, nil
}

// Reset clears selected extras and sets the food quantity back to 1
func (c *Composer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Composer) resetLocked() {
	for i := range c.extras {
		c.extras[i].Quantity = 0
	}
	c.foodQuantity = 1
}
