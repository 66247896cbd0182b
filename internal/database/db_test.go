package database

import (
	"testing"

	"gorestaurant/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open("sqlite3", ":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Migrate())
	require.NoError(t, store.Seed())
	return store
}

func TestSeed_IsIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Seed())

	foods, err := store.ListFoods(0)
	require.NoError(t, err)
	assert.Len(t, foods, len(defaultMenu()))
}

func TestGetFood_WithExtras(t *testing.T) {
	store := newTestStore(t)

	food, err := store.GetFood(1)
	require.NoError(t, err)

	assert.Equal(t, "Ao molho", food.Name)
	assert.True(t, decimal.RequireFromString("19.9").Equal(food.Price), "got %s", food.Price)
	require.Len(t, food.Extras, 2)
	assert.Equal(t, "Bacon", food.Extras[0].Name)
	assert.True(t, decimal.RequireFromString("1.5").Equal(food.Extras[0].Value))
	assert.Equal(t, 0, food.Extras[0].Quantity)
}

func TestGetFood_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetFood(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFoods_ByCategory(t *testing.T) {
	store := newTestStore(t)

	pizzas, err := store.ListFoods(CategoryPizza)
	require.NoError(t, err)
	require.Len(t, pizzas, 1)
	assert.Equal(t, "Calabresa", pizzas[0].Name)
}

func TestFavorites_AddListRemove(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.AddFavorite(2))
	require.NoError(t, store.AddFavorite(2))

	favorites, err := store.ListFavorites()
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, uint(2), favorites[0].ID)
	assert.Len(t, favorites[0].Extras, 1)

	require.NoError(t, store.RemoveFavorite(2))
	assert.ErrorIs(t, store.RemoveFavorite(2), ErrNotFound)

	favorites, err = store.ListFavorites()
	require.NoError(t, err)
	assert.Empty(t, favorites)

	// re-adding after removal works
	require.NoError(t, store.AddFavorite(2))
}

func TestAddFavorite_UnknownFood(t *testing.T) {
	store := newTestStore(t)
	assert.ErrorIs(t, store.AddFavorite(999), ErrNotFound)
}

func TestOrders_CreateAndRead(t *testing.T) {
	store := newTestStore(t)

	payload := models.OrderPayload{
		ProductID:   3,
		Name:        "A la Camarón",
		Description: "Macarrão com vegetais de primeira linha e camarão dos 7 mares.",
		Price:       decimal.RequireFromString("25.90"),
		Extras: []models.Extra{
			{ID: 5, Name: "Camarão extra", Value: decimal.RequireFromString("4"), Quantity: 2},
		},
	}

	created, err := store.CreateOrder(payload)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := store.GetOrder(created.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(3), fetched.ProductID)
	require.Len(t, fetched.Extras, 1)
	assert.Equal(t, 2, fetched.Extras[0].Quantity)

	orders, err := store.ListOrders()
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	store := newTestStore(t)

	_, err := store.CreateOrder(models.OrderPayload{ProductID: 999})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetOrder_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetOrder(1)
	assert.ErrorIs(t, err, ErrNotFound)
}
