package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/ports"
)

var fixedNow = time.Date(2024, 3, 5, 9, 30, 15, 123_000_000, time.UTC)

var testCatalog = []domain.Product{
	{ID: "1", Name: "Wireless Earbuds", Price: 12800, ImageURL: "https://img/1.jpg", Category: domain.CategoryElectronics, Stock: 5},
	{ID: "2", Name: "Phone Case", Price: 2980, ImageURL: "https://img/2.jpg", Category: domain.CategoryAccessories, Stock: 10},
}

func newTestTracker() (*Tracker, *DataLayer) {
	layer := NewDataLayer(10)
	tr := NewTracker(layer, "https://shop.example/", zerolog.Nop())
	tr.now = func() time.Time { return fixedNow }
	return tr, layer
}

func lastJSON(t *testing.T, layer *DataLayer) string {
	t.Helper()
	events := layer.Snapshot()
	require.NotEmpty(t, events)
	raw, err := json.Marshal(events[len(events)-1])
	require.NoError(t, err)
	return string(raw)
}

func TestTrackProductView(t *testing.T) {
	tr, layer := newTestTracker()

	tr.TrackProductView(testCatalog[0])

	assert.JSONEq(t, `{
		"event": "view_item",
		"item_id": "1",
		"name": "Wireless Earbuds",
		"price": 12800,
		"item_url": "https://shop.example/products/1",
		"item_image_url": "https://img/1.jpg",
		"l_category_name": "electronics",
		"timestamp": "2024-03-05T09:30:15.123Z"
	}`, lastJSON(t, layer))
}

func TestTrackCart_Snapshot(t *testing.T) {
	tr, layer := newTestTracker()
	items := []domain.CartItem{
		{ProductID: "1", Quantity: 2},
		{ProductID: "2", Quantity: 3},
	}

	tr.TrackCart(ports.CartChange{AddedID: "2"}, items, testCatalog)

	assert.JSONEq(t, `{
		"event": "cart",
		"price": 34540,
		"quantity": 5,
		"status": true,
		"items": [
			{"item_id":"1","name":"Wireless Earbuds","price":12800,"quantity":2,"item_url":"https://shop.example/products/1","item_image_url":"https://img/1.jpg","category_name":"electronics"},
			{"item_id":"2","name":"Phone Case","price":2980,"quantity":3,"item_url":"https://shop.example/products/2","item_image_url":"https://img/2.jpg","category_name":"accessories"}
		],
		"added_item_id": "2",
		"deleted_item_id": null,
		"item_ids": ["1","2"],
		"item_names": ["Wireless Earbuds","Phone Case"],
		"item_prices": [12800,2980],
		"item_quantities": [2,3],
		"item_urls": ["https://shop.example/products/1","https://shop.example/products/2"],
		"item_image_urls": ["https://img/1.jpg","https://img/2.jpg"],
		"timestamp": "2024-03-05T09:30:15.123Z"
	}`, lastJSON(t, layer))
}

func TestTrackCart_EmptyAfterRemoval(t *testing.T) {
	tr, layer := newTestTracker()

	tr.TrackCart(ports.CartChange{DeletedID: "1"}, nil, testCatalog)

	assert.JSONEq(t, `{
		"event": "cart",
		"price": 0,
		"quantity": 0,
		"status": false,
		"items": [],
		"added_item_id": null,
		"deleted_item_id": "1",
		"item_ids": [],
		"item_names": [],
		"item_prices": [],
		"item_quantities": [],
		"item_urls": [],
		"item_image_urls": [],
		"timestamp": "2024-03-05T09:30:15.123Z"
	}`, lastJSON(t, layer))
}

func TestTrackCart_MissingProductKeepsIDAndURL(t *testing.T) {
	tr, layer := newTestTracker()

	tr.TrackCart(ports.CartChange{}, []domain.CartItem{{ProductID: "gone", Quantity: 4}}, testCatalog)

	var got CartPayload
	require.NoError(t, json.Unmarshal([]byte(lastJSON(t, layer)), &got))
	assert.Equal(t, 0, got.Price)
	assert.Equal(t, 4, got.Quantity)
	assert.Equal(t, []string{""}, got.ItemNames)
	assert.Equal(t, []int{0}, got.ItemPrices)
	assert.Equal(t, []string{""}, got.ItemImageURLs)
	assert.Equal(t, []string{"gone"}, got.ItemIDs)
	assert.Equal(t, []string{"https://shop.example/products/gone"}, got.ItemURLs)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "https://shop.example/products/gone", got.Items[0].ItemURL)
	assert.Equal(t, "", got.Items[0].CategoryName)
	assert.Nil(t, got.AddedItemID)
	assert.Nil(t, got.DeletedItemID)
}

func TestTrackFavorite_HasNoQuantities(t *testing.T) {
	tr, layer := newTestTracker()

	tr.TrackFavorite(ports.CartChange{AddedID: "2"}, []domain.FavoriteItem{{ProductID: "2"}}, testCatalog)

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(lastJSON(t, layer)), &fields))
	assert.Equal(t, "favorite", fields["event"])
	assert.Equal(t, true, fields["status"])
	assert.Equal(t, "2", fields["added_item_id"])
	assert.NotContains(t, fields, "item_quantities")
	assert.NotContains(t, fields, "quantity")
	assert.Equal(t, []any{"Phone Case"}, fields["item_names"])
}

func TestTrackPurchase(t *testing.T) {
	tr, layer := newTestTracker()
	order := domain.Order{
		ID:            "order_1700000000000",
		TotalQuantity: 2,
		TotalPrice:    25600,
		Lines: []domain.CartLine{
			{CartItem: domain.CartItem{ProductID: "1", Quantity: 2}, Product: testCatalog[0]},
		},
	}

	tr.TrackPurchase(order, testCatalog)

	assert.JSONEq(t, `{
		"event": "buy",
		"order_id": "order_1700000000000",
		"price": 25600,
		"quantity": 2,
		"items": [
			{"item_id":"1","name":"Wireless Earbuds","price":12800,"quantity":2,"item_url":"https://shop.example/products/1","item_image_url":"https://img/1.jpg","category_name":"electronics"}
		],
		"timestamp": "2024-03-05T09:30:15.123Z"
	}`, lastJSON(t, layer))
}

func TestTrackIdentity_Events(t *testing.T) {
	tr, layer := newTestTracker()
	age := 31
	u := domain.User{
		ID:        "user_1",
		Email:     "a@example.com",
		Name:      "Aiko",
		CreatedAt: time.Date(2024, 1, 2, 23, 0, 0, 0, time.UTC),
		Gender:    "female",
		Age:       &age,
	}

	tr.TrackSignup(u)
	assert.JSONEq(t, `{"event":"signup","user_id":"user_1","name":"Aiko","email":"a@example.com","signup_date":"2024-01-02","timestamp":"2024-03-05T09:30:15.123Z"}`, lastJSON(t, layer))

	tr.TrackIdentify(u)
	assert.JSONEq(t, `{"event":"identify","user_id":"user_1","name":"Aiko","email":"a@example.com","age":31,"gender":"female","timestamp":"2024-03-05T09:30:15.123Z"}`, lastJSON(t, layer))

	tr.TrackAttribute(u)
	assert.JSONEq(t, `{"event":"attribute","user_id":"user_1","age":31,"gender":"female","timestamp":"2024-03-05T09:30:15.123Z"}`, lastJSON(t, layer))

	tr.TrackLogin(u)
	assert.JSONEq(t, `{"event":"login","user_id":"user_1","timestamp":"2024-03-05T09:30:15.123Z"}`, lastJSON(t, layer))
}

func TestTrackSearch(t *testing.T) {
	tr, layer := newTestTracker()

	tr.TrackSearch("case", 1)

	assert.JSONEq(t, `{"event":"search","keyword":"case","result_count":1,"timestamp":"2024-03-05T09:30:15.123Z"}`, lastJSON(t, layer))
}

func TestLogOnlyEventsAreNotPushed(t *testing.T) {
	tr, layer := newTestTracker()

	tr.TrackPageView("/products", map[string]any{"category": "electronics"})
	tr.TrackViewCart(2, 1000)
	tr.TrackBeginCheckout(2, 1000)

	assert.Zero(t, layer.Len())
}

func TestSetIdentity_StampsRoutingKey(t *testing.T) {
	tr, layer := newTestTracker()

	tr.TrackSearch("a", 0)
	tr.SetIdentity("user_9")
	tr.TrackSearch("b", 0)
	tr.SetIdentity("")
	tr.TrackSearch("c", 0)

	events := layer.Drain()
	require.Len(t, events, 3)
	assert.Equal(t, "", events[0].UserID)
	assert.Equal(t, "user_9", events[1].UserID)
	assert.Equal(t, "", events[2].UserID)
	assert.NotContains(t, lastJSONOf(t, events[1]), "user_9")
}

func lastJSONOf(t *testing.T, e domain.TagEvent) string {
	t.Helper()
	raw, err := json.Marshal(e)
	require.NoError(t, err)
	return string(raw)
}
