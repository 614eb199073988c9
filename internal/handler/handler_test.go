package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shop-service/internal/middleware"
	"shop-service/internal/model"
	"shop-service/internal/seed"
	"shop-service/internal/session"
	"shop-service/pkg/config"
	"shop-service/pkg/database"
	"shop-service/prometheus"
)

const testSession = "test-session"

func init() {
	prometheus.InitMetrics(&config.Config{
		Metrics: config.MetricsConfig{Prefix: "shop_test"},
	})
}

// setup points the handler package at a fresh database file and a fresh
// session store.
func setup(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Env: "test", Port: "0"},
		Database: config.DatabaseConfig{
			Path:            filepath.Join(t.TempDir(), "test.db"),
			MaxIdleConns:    1,
			MaxOpenConns:    1,
			ConnMaxLifetime: time.Hour,
		},
	}
	require.NoError(t, database.InitDB(cfg))
	Init(session.NewMemoryStore())
	return database.GetDB()
}

func newContext(e *echo.Echo, method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.SessionCookieName, testSession)
	return c, rec
}

func TestHealth(t *testing.T) {
	setup(t)
	e := echo.New()

	c, rec := newContext(e, http.MethodGet, "/health", nil)
	require.NoError(t, Health(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "healthy")
}

func TestAddToCartUnknownProduct(t *testing.T) {
	setup(t)
	e := echo.New()

	c, rec := newContext(e, http.MethodPost, "/shop/add_to_cart/999", nil)
	c.SetParamNames("product_id")
	c.SetParamValues("999")

	require.NoError(t, AddToCart(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddToCartTwiceAggregates(t *testing.T) {
	db := setup(t)
	require.NoError(t, seed.Run(db))
	e := echo.New()

	for i := 0; i < 2; i++ {
		c, rec := newContext(e, http.MethodPost, "/shop/add_to_cart/1", nil)
		c.SetParamNames("product_id")
		c.SetParamValues("1")
		require.NoError(t, AddToCart(c))
		require.Equal(t, http.StatusSeeOther, rec.Code)
	}

	cart, err := sessions.Get(context.Background(), testSession)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	require.Equal(t, 2, cart[0].Quantity)
	require.Equal(t, "Apple", cart[0].Name)
}

func TestClearCart(t *testing.T) {
	db := setup(t)
	require.NoError(t, seed.Run(db))
	e := echo.New()

	require.NoError(t, sessions.Set(context.Background(), testSession,
		model.Cart{{ProductID: 1, Name: "Apple", Price: decimal.NewFromInt(240), Quantity: 1}}))

	c, rec := newContext(e, http.MethodPost, "/shop/clear_cart", nil)
	require.NoError(t, ClearCart(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	cart, err := sessions.Get(context.Background(), testSession)
	require.NoError(t, err)
	require.Empty(t, cart)
}

func TestShopFilterExample(t *testing.T) {
	db := setup(t)
	require.NoError(t, seed.Run(db))
	e := echo.New()

	c, rec := newContext(e, http.MethodGet, "/shop/shop?q=cola&min_price=300", nil)
	require.NoError(t, Shop(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Products []struct {
			Name  string          `json:"name"`
			Price decimal.Decimal `json:"price"`
		} `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Products, 1)
	require.Equal(t, "Cola Lemon", body.Products[0].Name)
	require.True(t, body.Products[0].Price.Equal(decimal.NewFromInt(322)))
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	db := setup(t)
	require.NoError(t, seed.Run(db))
	e := echo.New()

	form := url.Values{"name": {"A"}, "email": {"a@x.com"}, "phone": {"1"}, "address": {"y"}}
	c, rec := newContext(e, http.MethodPost, "/shop/checkout", form)
	require.NoError(t, Checkout(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var orders int64
	db.Model(&model.Order{}).Count(&orders)
	require.Zero(t, orders)
}

func TestCheckoutFlow(t *testing.T) {
	db := setup(t)
	require.NoError(t, seed.Run(db))
	e := echo.New()

	// add_to_cart(1) twice, then checkout
	for i := 0; i < 2; i++ {
		c, _ := newContext(e, http.MethodPost, "/shop/add_to_cart/1", nil)
		c.SetParamNames("product_id")
		c.SetParamValues("1")
		require.NoError(t, AddToCart(c))
	}

	form := url.Values{"name": {"A"}, "email": {"a@x.com"}, "phone": {"1"}, "address": {"y"}}
	c, rec := newContext(e, http.MethodPost, "/shop/checkout", form)
	require.NoError(t, Checkout(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/shop/order/1", rec.Header().Get("Location"))

	var order model.Order
	require.NoError(t, db.Preload("Items").Preload("Client").First(&order, 1).Error)
	require.Equal(t, "a@x.com", order.Client.Email)
	require.Len(t, order.Items, 1)
	require.Equal(t, 2, order.Items[0].Quantity)
	require.True(t, order.TotalPrice.Equal(decimal.NewFromInt(480)),
		"expected 480, got %s", order.TotalPrice)

	// cart is cleared only after the order committed
	cart, err := sessions.Get(context.Background(), testSession)
	require.NoError(t, err)
	require.Empty(t, cart)
}

func TestCheckoutCommitFailureKeepsCart(t *testing.T) {
	db := setup(t)
	require.NoError(t, seed.Run(db))
	e := echo.New()

	carted := model.Cart{{ProductID: 1, Name: "Apple", Price: decimal.NewFromInt(240), Quantity: 2}}
	require.NoError(t, sessions.Set(context.Background(), testSession, carted))

	// kill the database underneath the handler so the transaction cannot
	// commit
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	form := url.Values{"name": {"A"}, "email": {"a@x.com"}, "phone": {"1"}, "address": {"y"}}
	c, rec := newContext(e, http.MethodPost, "/shop/checkout", form)
	require.NoError(t, Checkout(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// the cart survives a failed checkout
	cart, err := sessions.Get(context.Background(), testSession)
	require.NoError(t, err)
	require.Equal(t, carted, cart)
}

func TestCreateFeedbackRequiresNameAndMessage(t *testing.T) {
	setup(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/shop/api/feedback",
		strings.NewReader(`{"name":"A","email":"a@x.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, CreateFeedback(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAndDeleteFeedback(t *testing.T) {
	db := setup(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/shop/api/feedback",
		strings.NewReader(`{"name":"A","message":"great shop"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, CreateFeedback(e.NewContext(req, rec)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var fb model.Feedback
	require.NoError(t, db.First(&fb).Error)
	require.Nil(t, fb.ProductID)

	c, rec := newContext(e, http.MethodDelete, "/shop/api/feedback/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, DeleteFeedback(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	db.Model(&model.Feedback{}).Count(&count)
	require.Zero(t, count)
}

func TestDeleteFeedbackNotFound(t *testing.T) {
	setup(t)
	e := echo.New()

	c, rec := newContext(e, http.MethodDelete, "/shop/api/feedback/42", nil)
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, DeleteFeedback(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrderAPI(t *testing.T) {
	db := setup(t)
	e := echo.New()

	client := model.Client{Name: "A", Email: "a@x.com", Phone: "1", Address: "y"}
	require.NoError(t, db.Create(&client).Error)

	form := url.Values{"client_id": {"1"}}
	c, rec := newContext(e, http.MethodPost, "/api/orders", form)
	require.NoError(t, CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"id":1`)
}

func TestCreateOrderAPIRequiresClientID(t *testing.T) {
	setup(t)
	e := echo.New()

	c, rec := newContext(e, http.MethodPost, "/api/orders", url.Values{})
	require.NoError(t, CreateOrder(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	db := setup(t)
	e := echo.New()

	client := model.Client{Name: "A", Email: "a@x.com", Phone: "1", Address: "y"}
	require.NoError(t, db.Create(&client).Error)
	order := model.Order{Status: "new", ClientID: client.ID}
	require.NoError(t, db.Create(&order).Error)

	form := url.Values{"status": {"shipped"}}
	c, rec := newContext(e, http.MethodPost, "/admin/update_order_status/1", form)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, UpdateOrderStatus(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var got model.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	require.Equal(t, "shipped", got.Status)
}

func TestOrderDetailNotFound(t *testing.T) {
	setup(t)
	e := echo.New()

	c, rec := newContext(e, http.MethodGet, "/shop/order/42", nil)
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, OrderDetail(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminDeleteOrderRemovesItems(t *testing.T) {
	db := setup(t)
	e := echo.New()

	client := model.Client{Name: "A", Email: "a@x.com", Phone: "1", Address: "y"}
	require.NoError(t, db.Create(&client).Error)
	order := model.Order{Status: "new", ClientID: client.ID}
	require.NoError(t, db.Create(&order).Error)
	require.NoError(t, db.Create(&model.OrderItem{OrderID: order.ID, ProductID: 1, Quantity: 2}).Error)

	c, rec := newContext(e, http.MethodPost, "/admin/delete_order/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, DeleteOrder(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var items int64
	db.Model(&model.OrderItem{}).Count(&items)
	require.Zero(t, items)
}
