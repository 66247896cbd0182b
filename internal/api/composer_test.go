package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gorestaurant/internal/composer"
	"gorestaurant/internal/foodapi"
	"gorestaurant/internal/monitoring"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposerAgainstServer(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Router)
	defer ts.Close()

	client := foodapi.NewClient(foodapi.NewHTTPRequester(ts.URL, 5*time.Second))
	operations := monitoring.NewOperationRecorder()
	c := composer.New(client, composer.WithRecorder(operations))
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, client.CheckHealth(ctx))
	require.NoError(t, c.Load(ctx, 1))

	draft := c.Draft()
	assert.Equal(t, "Ao molho", draft.Food.Name)
	assert.Equal(t, 1, draft.FoodQuantity)
	assert.False(t, draft.IsFavorite)

	require.True(t, c.IncrementExtra(1))
	require.True(t, c.IncrementExtra(1))
	c.IncrementFood()
	assert.Equal(t, "R$ 42,80", c.FormattedTotal())

	favorite, err := c.ToggleFavorite(ctx)
	require.NoError(t, err)
	assert.True(t, favorite)

	favorites, err := client.ListFavorites(ctx)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, uint(1), favorites[0].ID)

	order, err := c.FinishOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(1), order.ProductID)
	require.Len(t, order.Extras, 1)
	assert.Equal(t, "Bacon", order.Extras[0].Name)
	assert.Equal(t, 2, order.Extras[0].Quantity)

	// The draft starts over once the order is accepted
	assert.Equal(t, "R$ 19,90", c.FormattedTotal())

	// A fresh load sees the favorite persisted by the server
	other := composer.New(client)
	defer other.Close()
	require.NoError(t, other.Load(ctx, 1))
	assert.True(t, other.IsFavorite())

	w := httptest.NewRecorder()
	promhttp.HandlerFor(operations.Registry(), promhttp.HandlerOpts{}).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `composer_operations_total{operation="finish_order",result="success"} 1`)
	assert.Contains(t, w.Body.String(), `composer_operations_total{operation="toggle_favorite",result="success"} 1`)

	// composer series belong to the client process, not the server
	assert.NotContains(t, doJSON(t, s, http.MethodGet, "/metrics", nil).Body.String(), "composer_operations_total")
}

func TestComposerAgainstServer_UnknownFood(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Router)
	defer ts.Close()

	c := composer.New(foodapi.NewClient(foodapi.NewHTTPRequester(ts.URL, 5*time.Second)))
	defer c.Close()

	err := c.Load(context.Background(), 999)
	var loadErr *composer.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, uint(999), loadErr.FoodID)

	var statusErr *foodapi.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 404, statusErr.Code)
}
