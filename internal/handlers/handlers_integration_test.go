package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"kiosk/internal/handlers"
	"kiosk/internal/middleware"
	"kiosk/internal/models"
	"kiosk/internal/repositories"
	"kiosk/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testJWTSecret = "test_jwt_secret"

type testEnv struct {
	app      *fiber.App
	userRepo repositories.UserRepository
	db       *gorm.DB
}

// setupApp wires the full stack over a private in-memory SQLite
// database, the same way the composition root does.
func setupApp(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{}, &models.Feedback{}, &models.ContactMessage{},
	))

	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	feedbackRepo := repositories.NewGORMFeedbackRepository(db)
	contactRepo := repositories.NewGORMContactRepository(db)

	authService := services.NewAuthService(userRepo, testJWTSecret)
	productService := services.NewProductService(productRepo, nil)
	cartService := services.NewCartService(cartRepo, productService)
	orderService := services.NewOrderService(orderRepo, nil)
	feedbackService := services.NewFeedbackService(feedbackRepo, contactRepo)

	authRequired := middleware.AuthRequired(authService)
	adminRequired := middleware.AdminRequired()

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1, authRequired)
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1, authRequired, adminRequired)
	handlers.NewCartHandler(cartService).RegisterRoutes(apiV1, authRequired)
	handlers.NewOrderHandler(orderService).RegisterRoutes(apiV1, authRequired)
	handlers.NewFeedbackHandler(feedbackService).RegisterRoutes(apiV1)

	return &testEnv{app: app, userRepo: userRepo, db: db}
}

// doJSON performs a request with an optional JSON body and token cookie.
func (e *testEnv) doJSON(t *testing.T, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// registerAndLogin registers a fresh user and returns their token cookie.
func (e *testEnv) registerAndLogin(t *testing.T, name, email, password string) string {
	t.Helper()

	resp := e.doJSON(t, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"name": name, "email": email, "password": password,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	return e.login(t, email, password)
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()

	resp := e.doJSON(t, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"email": email, "password": password,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	for _, c := range resp.Cookies() {
		if c.Name == middleware.TokenCookie {
			require.True(t, c.HttpOnly)
			require.NotEmpty(t, c.Value)
			return c.Value
		}
	}
	t.Fatal("login did not set a token cookie")
	return ""
}

// seedAdmin provisions an admin directly in the store; registration
// never yields one.
func (e *testEnv) seedAdmin(t *testing.T, email, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, e.userRepo.Create(&models.User{
		Name:     "Admin",
		Email:    email,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}))
	return e.login(t, email, password)
}

func (e *testEnv) createProduct(t *testing.T, adminToken string, name string, price float64) models.Product {
	t.Helper()

	resp := e.doJSON(t, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": name, "price": price,
		"image": "https://example.com/p.png", "category": "misc",
	}, adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Product models.Product `json:"product"`
	}
	decodeBody(t, resp, &created)
	require.NotEmpty(t, created.Product.ID)
	return created.Product
}

func TestRegisterLoginAndMe(t *testing.T) {
	env := setupApp(t)

	// Anonymous /me answers null, never an error.
	resp := env.doJSON(t, http.MethodGet, "/api/v1/auth/me", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me map[string]interface{}
	decodeBody(t, resp, &me)
	assert.Nil(t, me["user"])

	token := env.registerAndLogin(t, "A", "a@x.com", "password")

	resp = env.doJSON(t, http.MethodGet, "/api/v1/auth/me", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var authed struct {
		User *services.Identity `json:"user"`
	}
	decodeBody(t, resp, &authed)
	require.NotNil(t, authed.User)
	assert.Equal(t, "a@x.com", authed.User.Email)
	assert.Equal(t, models.RoleUser, authed.User.Role)

	// Duplicate email registration conflicts.
	resp = env.doJSON(t, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"name": "A2", "email": "a@x.com", "password": "password",
	}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// A client-supplied admin role is ignored on registration.
	resp = env.doJSON(t, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"name": "B", "email": "b@x.com", "password": "password", "role": "admin",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var reg struct {
		User models.User `json:"user"`
	}
	decodeBody(t, resp, &reg)
	assert.Equal(t, models.RoleUser, reg.User.Role)

	// Unknown email and wrong password are distinct failures.
	resp = env.doJSON(t, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"email": "nobody@x.com", "password": "password",
	}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"email": "a@x.com", "password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestLogoutExpiresCookie(t *testing.T) {
	env := setupApp(t)
	token := env.registerAndLogin(t, "A", "a@x.com", "password")

	resp := env.doJSON(t, http.MethodPost, "/api/v1/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == middleware.TokenCookie {
			cleared = c.Value == ""
		}
	}
	assert.True(t, cleared, "logout should overwrite the token cookie with an expired empty value")
}

func TestCartRequiresAuth(t *testing.T) {
	env := setupApp(t)

	for _, call := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/cart"},
		{http.MethodPost, "/api/v1/cart"},
		{http.MethodDelete, "/api/v1/cart"},
		{http.MethodDelete, "/api/v1/cart/clear"},
		{http.MethodPost, "/api/v1/order"},
	} {
		resp := env.doJSON(t, call.method, call.path, map[string]interface{}{}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", call.method, call.path)
		resp.Body.Close()
	}

	// A garbage token is also rejected.
	resp := env.doJSON(t, http.MethodGet, "/api/v1/cart", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestProductWritesRequireAdmin(t *testing.T) {
	env := setupApp(t)
	userToken := env.registerAndLogin(t, "A", "a@x.com", "password")
	adminToken := env.seedAdmin(t, "admin@x.com", "adminpass")

	payload := map[string]interface{}{
		"name": "Widget", "price": 9.5,
		"image": "https://example.com/w.png", "category": "misc",
	}

	resp := env.doJSON(t, http.MethodPost, "/api/v1/products", payload, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodPost, "/api/v1/products", payload, userToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	product := env.createProduct(t, adminToken, "Widget", 9.5)

	// Reads stay public.
	resp = env.doJSON(t, http.MethodGet, "/api/v1/products/"+product.ID, nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodGet, "/api/v1/products", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Update and delete round out the admin surface.
	payload["price"] = 12.0
	resp = env.doJSON(t, http.MethodPut, "/api/v1/products/"+product.ID, payload, adminToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodDelete, "/api/v1/products/"+product.ID, nil, adminToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodGet, "/api/v1/products/"+product.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCheckoutFlow(t *testing.T) {
	env := setupApp(t)
	adminToken := env.seedAdmin(t, "admin@x.com", "adminpass")
	product := env.createProduct(t, adminToken, "P1", 100)

	token := env.registerAndLogin(t, "A", "a@x.com", "password")

	// Add quantity 2 of P1.
	resp := env.doJSON(t, http.MethodPost, "/api/v1/cart", map[string]interface{}{
		"product_id": product.ID, "quantity": 2,
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Cart shows one expanded line, qty 2.
	resp = env.doJSON(t, http.MethodGet, "/api/v1/cart", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cart models.CartView
	decodeBody(t, resp, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "P1", cart.Items[0].Product.Name)
	assert.Equal(t, 100.0, cart.Items[0].Product.Price)

	// Place the order with the snapshot.
	resp = env.doJSON(t, http.MethodPost, "/api/v1/order", map[string]interface{}{
		"name": "A", "email": "a@x.com", "phone": "12345", "address": "1 Main St",
		"items": []map[string]interface{}{
			{"product_id": product.ID, "name": "P1", "price": 100, "quantity": 2},
		},
		"total": 200,
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var placed struct {
		Order models.Order `json:"order"`
	}
	decodeBody(t, resp, &placed)
	assert.Equal(t, 200.0, placed.Order.Total)
	assert.Equal(t, models.OrderStatusPending, placed.Order.Status)

	// Clearing is the caller's separate step.
	resp = env.doJSON(t, http.MethodDelete, "/api/v1/cart/clear", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodGet, "/api/v1/cart", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &cart)
	assert.Empty(t, cart.Items)

	// A later price change does not touch the placed order.
	resp = env.doJSON(t, http.MethodPut, "/api/v1/products/"+product.ID, map[string]interface{}{
		"name": "P1", "price": 999.0,
		"image": "https://example.com/p.png", "category": "misc",
	}, adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodGet, "/api/v1/orders", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []models.Order
	decodeBody(t, resp, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, 200.0, orders[0].Total)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, 100.0, orders[0].Items[0].Price)
}

func TestOrderValidation(t *testing.T) {
	env := setupApp(t)
	token := env.registerAndLogin(t, "A", "a@x.com", "password")

	// Empty item list.
	resp := env.doJSON(t, http.MethodPost, "/api/v1/order", map[string]interface{}{
		"name": "A", "email": "a@x.com", "phone": "12345", "address": "1 Main St",
		"items": []map[string]interface{}{},
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Missing shipping field.
	resp = env.doJSON(t, http.MethodPost, "/api/v1/order", map[string]interface{}{
		"name": "A", "email": "a@x.com", "address": "1 Main St",
		"items": []map[string]interface{}{
			{"product_id": "p1", "name": "P1", "price": 100, "quantity": 1},
		},
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestCartEdgeCases(t *testing.T) {
	env := setupApp(t)
	adminToken := env.seedAdmin(t, "admin@x.com", "adminpass")
	product := env.createProduct(t, adminToken, "P1", 100)
	token := env.registerAndLogin(t, "A", "a@x.com", "password")

	// Zero quantity is rejected before touching the store.
	resp := env.doJSON(t, http.MethodPost, "/api/v1/cart", map[string]interface{}{
		"product_id": product.ID, "quantity": 0,
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Unknown product is a validation error.
	resp = env.doJSON(t, http.MethodPost, "/api/v1/cart", map[string]interface{}{
		"product_id": "ghost", "quantity": 1,
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Removing from a never-created cart is not found.
	resp = env.doJSON(t, http.MethodDelete, "/api/v1/cart", map[string]interface{}{
		"product_id": product.ID,
	}, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Clearing a never-created cart is fine.
	resp = env.doJSON(t, http.MethodDelete, "/api/v1/cart/clear", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Merge semantics through the HTTP surface.
	for i := 0; i < 2; i++ {
		resp = env.doJSON(t, http.MethodPost, "/api/v1/cart", map[string]interface{}{
			"product_id": product.ID, "quantity": 1,
		}, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
	resp = env.doJSON(t, http.MethodGet, "/api/v1/cart", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cart models.CartView
	decodeBody(t, resp, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	// Deleting the product degrades the cart read by omission.
	resp = env.doJSON(t, http.MethodDelete, "/api/v1/products/"+product.ID, nil, adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodGet, "/api/v1/cart", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &cart)
	assert.Empty(t, cart.Items)
}

func TestFeedbackEndpoints(t *testing.T) {
	env := setupApp(t)

	// Missing fields fail fast.
	resp := env.doJSON(t, http.MethodPost, "/api/v1/feedback", map[string]interface{}{
		"product_id": "p1", "name": "A",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	for _, comment := range []string{"first", "second"} {
		resp = env.doJSON(t, http.MethodPost, "/api/v1/feedback", map[string]interface{}{
			"product_id": "p1", "name": "A", "comment": comment, "rating": 4,
		}, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	// Newest first.
	resp = env.doJSON(t, http.MethodGet, "/api/v1/feedback?productId=p1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var feedbacks []models.Feedback
	decodeBody(t, resp, &feedbacks)
	require.Len(t, feedbacks, 2)
	assert.Equal(t, "second", feedbacks[0].Comment)

	// The query parameter is required.
	resp = env.doJSON(t, http.MethodGet, "/api/v1/feedback", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Contact form.
	resp = env.doJSON(t, http.MethodPost, "/api/v1/contact", map[string]interface{}{
		"name": "A", "email": "a@x.com", "message": "hello",
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodPost, "/api/v1/contact", map[string]interface{}{
		"name": "A",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
