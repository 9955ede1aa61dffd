package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/resell-server/internal/handlers/v1/feed"
	"github.com/carson-networks/resell-server/internal/handlers/v1/item"
	"github.com/carson-networks/resell-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/resell-server/internal/handlers/v1/user"
	"github.com/carson-networks/resell-server/internal/logging"
	"github.com/carson-networks/resell-server/internal/market"
	"github.com/carson-networks/resell-server/internal/operator"
	"github.com/carson-networks/resell-server/internal/service"
	"github.com/carson-networks/resell-server/internal/storage/memstore"
)

func newTestServer(t *testing.T, purchaseRatePerMin int) http.Handler {
	t.Helper()
	logger := logging.SetupLogging("error")
	store := memstore.New()

	op := operator.NewOperatorDelegator(store, 2, logger)
	op.Start()
	t.Cleanup(op.Stop)

	commission, err := market.NewCommissionCalculator(market.DefaultCommissionRate)
	require.NoError(t, err)

	rest := &Rest{
		Logger: logger,
		Service: service.NewService(store, op, service.Options{
			Commission:    commission,
			FeedCacheSize: 16,
		}),
		PurchaseRatePerMin: purchaseRatePerMin,
	}
	return rest.Handler()
}

func do(t *testing.T, h http.Handler, method, path, username string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if username != "" {
		req.Header.Set("X-Username", username)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	return out
}

func register(t *testing.T, h http.Handler, username string) {
	t.Helper()
	w := do(t, h, http.MethodPost, "/v1/users", "", user.RegisterUserBody{Username: username, Email: username + "@example.com"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func listJacket(t *testing.T, h http.Handler, seller, price string) item.Item {
	t.Helper()
	w := do(t, h, http.MethodPost, "/v1/items", seller, item.CreateItemBody{
		Name:        "Denim Jacket",
		Brand:       "Levi's",
		Category:    "OUTERWEAR",
		SubCategory: "JACKETS",
		Condition:   "GOOD",
		Size:        "M",
		Price:       price,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[item.Item](t, w)
}

func TestStatus(t *testing.T) {
	h := newTestServer(t, 0)

	w := do(t, h, http.MethodGet, "/status", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_RegistersEveryRoute(t *testing.T) {
	var h http.Handler
	require.NotPanics(t, func() { h = newTestServer(t, 0) })

	w := do(t, h, http.MethodGet, "/openapi.json", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	doc := decode[struct {
		Paths      map[string]any `json:"paths"`
		Components struct {
			Schemas map[string]any `json:"schemas"`
		} `json:"components"`
	}](t, w)
	for _, path := range []string{
		"/v1/items",
		"/v1/items/{id}/purchase",
		"/v1/items/{id}/transaction",
		"/v1/transaction/list",
		"/v1/feed",
	} {
		assert.Contains(t, doc.Paths, path)
	}
	assert.Contains(t, doc.Components.Schemas, "Transaction")
}

func TestPurchaseFlow(t *testing.T) {
	h := newTestServer(t, 0)
	register(t, h, "bob")
	register(t, h, "alice")
	listed := listJacket(t, h, "bob", "45.00")
	assert.Equal(t, "AVAILABLE", listed.Status)

	page := decode[feed.FeedResponseBody](t, do(t, h, http.MethodGet, "/v1/feed", "", nil))
	require.Len(t, page.Items, 1)

	w := do(t, h, http.MethodPost, "/v1/items/"+listed.ID+"/purchase", "alice", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sale := decode[transaction.Transaction](t, w)
	assert.Equal(t, "45", sale.Amount)
	assert.Equal(t, "4.5", sale.Commission)

	seller := decode[user.User](t, do(t, h, http.MethodGet, "/v1/users/bob", "", nil))
	assert.Equal(t, "40.5", seller.Balance)

	sold := decode[item.Item](t, do(t, h, http.MethodGet, "/v1/items/"+listed.ID, "", nil))
	assert.Equal(t, "SOLD", sold.Status)

	page = decode[feed.FeedResponseBody](t, do(t, h, http.MethodGet, "/v1/feed", "", nil))
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.TotalCount)

	again := do(t, h, http.MethodPost, "/v1/items/"+listed.ID+"/purchase", "alice", nil)
	assert.Equal(t, http.StatusConflict, again.Code)

	recorded := do(t, h, http.MethodGet, "/v1/items/"+listed.ID+"/transaction", "", nil)
	assert.Equal(t, http.StatusOK, recorded.Code)
}

func TestEditBySomeoneElseIsForbidden(t *testing.T) {
	h := newTestServer(t, 0)
	register(t, h, "bob")
	register(t, h, "mallory")
	listed := listJacket(t, h, "bob", "45.00")

	w := do(t, h, http.MethodPut, "/v1/items/"+listed.ID, "mallory", item.UpdateItemBody{
		Name:      "Denim Jacket",
		Brand:     "Levi's",
		Condition: "GOOD",
		Size:      "M",
		Price:     "1.00",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	unchanged := decode[item.Item](t, do(t, h, http.MethodGet, "/v1/items/"+listed.ID, "", nil))
	assert.Equal(t, "45", unchanged.Price)
}

func TestPurchaseRateLimited(t *testing.T) {
	h := newTestServer(t, 1)
	register(t, h, "bob")
	register(t, h, "alice")
	first := listJacket(t, h, "bob", "10")
	second := listJacket(t, h, "bob", "12")

	w := do(t, h, http.MethodPost, "/v1/items/"+first.ID+"/purchase", "alice", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, h, http.MethodPost, "/v1/items/"+second.ID+"/purchase", "alice", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	untouched := decode[item.Item](t, do(t, h, http.MethodGet, "/v1/items/"+second.ID, "", nil))
	assert.Equal(t, "AVAILABLE", untouched.Status)
}
