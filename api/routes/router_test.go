package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	cartsvc "github.com/everestcrafts/souvenirs-backend/internal/cart"
	"github.com/everestcrafts/souvenirs-backend/internal/catalog"
	"github.com/everestcrafts/souvenirs-backend/internal/inventory"
	ordersvc "github.com/everestcrafts/souvenirs-backend/internal/orders"
	"github.com/everestcrafts/souvenirs-backend/pkg/config"
	dbclient "github.com/everestcrafts/souvenirs-backend/pkg/db"
	"github.com/everestcrafts/souvenirs-backend/pkg/db/models"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessions struct {
	key string
}

func (s *stubSessions) Ensure(ctx context.Context, key string) (string, bool, error) {
	if key == s.key {
		return key, false, nil
	}
	return s.key, true, nil
}

type testServer struct {
	handler http.Handler
	db      *gorm.DB
	session string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dsn := "file:routes_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	client := dbclient.FromGorm(db)
	catalogRepo := catalog.NewRepository(db)
	cartRepo := cartsvc.NewRepository(db)

	catalogService, err := catalog.NewService(catalogRepo)
	require.NoError(t, err)
	cartService, err := cartsvc.NewService(cartRepo, client, catalogRepo)
	require.NoError(t, err)
	orderService, err := ordersvc.NewService(ordersvc.NewRepository(db), cartRepo, inventory.NewLedger(db), client)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.Session.TTLHours = 1
	cfg.Session.CookieName = "souvenirs_session"

	sessionKey := uuid.NewString()
	handler := NewRouter(Deps{
		Config:         cfg,
		DB:             stubPinger{},
		Redis:          stubPinger{},
		SessionManager: &stubSessions{key: sessionKey},
		Catalog:        catalogService,
		Cart:           cartService,
		Orders:         orderService,
	})

	return &testServer{handler: handler, db: db, session: sessionKey}
}

func (s *testServer) seedProduct(t *testing.T, price int64, stock int) *models.Product {
	t.Helper()
	category := &models.Category{ID: uuid.New(), Name: "Handicrafts", Slug: "handicrafts"}
	require.NoError(t, s.db.FirstOrCreate(category, models.Category{Slug: "handicrafts"}).Error)
	product := &models.Product{
		ID:            uuid.New(),
		CategoryID:    category.ID,
		Name:          "Khukuri Knife Set " + uuid.NewString(),
		Description:   "Authentic Gurkha Khukuri",
		Price:         decimal.NewFromInt(price),
		OriginalPrice: decimal.NewFromInt(price),
		InStock:       stock,
	}
	require.NoError(t, s.db.Create(product).Error)
	return product
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, path, reader)
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("X-Session-Key", s.session)
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	return envelope.Data
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/health/live", "").Code)
	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/health/ready", "").Code)
}

func TestMetricsEndpointExposed(t *testing.T) {
	srv := newTestServer(t)
	w := srv.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBrowseRoutes(t *testing.T) {
	srv := newTestServer(t)
	product := srv.seedProduct(t, 480, 10)

	w := srv.do(t, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeData(t, w)["all_products_count"])

	w = srv.do(t, http.MethodGet, "/api/products?category=handicrafts", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeData(t, w)["count"])

	w = srv.do(t, http.MethodGet, "/api/products/"+product.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, "/api/products/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartOrderFlow(t *testing.T) {
	srv := newTestServer(t)
	product := srv.seedProduct(t, 100, 5)

	// add 3 to cart
	w := srv.do(t, http.MethodPost, "/api/cart/items", `{"product_id":"`+product.ID.String()+`","quantity":3}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// second add of 3 exceeds stock 5
	w = srv.do(t, http.MethodPost, "/api/cart/items", `{"product_id":"`+product.ID.String()+`","quantity":3}`)
	require.Equal(t, http.StatusConflict, w.Code)

	// cart still shows 3 items
	w = srv.do(t, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, decodeData(t, w)["total_items"])

	// place the order
	w = srv.do(t, http.MethodPost, "/api/orders", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderData := decodeData(t, w)
	assert.Equal(t, "300", orderData["total_amount"])
	assert.Equal(t, "pending", orderData["status"])

	// cart is now empty, stock decremented
	w = srv.do(t, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decodeData(t, w)["total_items"])

	var reloaded models.Product
	require.NoError(t, srv.db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 2, reloaded.InStock)

	// placing again on the empty cart is rejected
	w = srv.do(t, http.MethodPost, "/api/orders", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// order history
	w = srv.do(t, http.MethodGet, "/api/orders", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeData(t, w)["count"])
}

func TestSessionMintedForNewVisitor(t *testing.T) {
	srv := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()
	srv.handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, srv.session, w.Header().Get("X-Session-Key"))
}
