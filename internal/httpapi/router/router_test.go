package router_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/auth"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/config"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/httpapi/handler"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/httpapi/router"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/port"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/currency"
)

type apiFixture struct {
	t      *testing.T
	store  *memStore
	jwt    *auth.JWTService
	engine *gin.Engine
}

func newAPIFixture(t *testing.T, rec port.Recommender) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	cartRepo := &memCartRepo{store}
	productRepo := &memProductRepo{store}
	orderRepo := &memOrderRepo{store}
	userRepo := &memUserRepo{store}
	tx := store.txScope()
	logger := zap.NewNop()

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "test",
	})

	userService := service.NewUserService(userRepo)

	handlers := router.Handlers{
		Auth:           handler.NewAuthHandler(userService, jwtService, logger),
		User:           handler.NewUserHandler(userService, logger),
		Product:        handler.NewProductHandler(service.NewCatalogService(productRepo), logger),
		Cart:           handler.NewCartHandler(service.NewCartService(cartRepo, productRepo, tx, logger), logger),
		Order:          handler.NewOrderHandler(service.NewOrderService(orderRepo, cartRepo, tx, logger), logger),
		Recommendation: handler.NewRecommendationHandler(rec, logger),
	}

	return &apiFixture{
		t:      t,
		store:  store,
		jwt:    jwtService,
		engine: router.New(handlers, jwtService, logger),
	}
}

func (f *apiFixture) request(method, path, token, body string) *httptest.ResponseRecorder {
	f.t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

// seedUser creates a user directly in the store and returns a valid token.
func (f *apiFixture) seedUser(role string) (domain.User, string) {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(f.t, err)

	user, err := (&memUserRepo{f.store}).Create(f.t.Context(), domain.User{
		Email:        fmt.Sprintf("%s-%d@example.com", role, len(f.store.users)),
		PasswordHash: string(hash),
		Name:         "Test User",
		Role:         role,
	})
	require.NoError(f.t, err)

	token, _, err := f.jwt.Generate(user.ID, user.Role)
	require.NoError(f.t, err)

	return user, token
}

func (f *apiFixture) seedProduct(stock int32, price float64) domain.Product {
	f.t.Helper()

	product, err := (&memProductRepo{f.store}).Create(f.t.Context(), domain.Product{
		Name:     "widget",
		Price:    domain.NewMoney(decimal.NewFromFloat(price), currency.USD),
		Category: "tools",
		Stock:    stock,
	})
	require.NoError(f.t, err)
	return product
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t, &stubRecommender{})

	w := f.request(http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRegisterAndLogin(t *testing.T) {
	f := newAPIFixture(t, &stubRecommender{})

	w := f.request(http.MethodPost, "/api/auth/register", "",
		`{"email":"ana@example.com","password":"secret123","name":"Ana"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	env := decode(t, w)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"token"`)

	// Duplicate email conflicts
	w = f.request(http.MethodPost, "/api/auth/register", "",
		`{"email":"ana@example.com","password":"secret123","name":"Ana"}`)
	require.Equal(t, http.StatusConflict, w.Code)

	w = f.request(http.MethodPost, "/api/auth/login", "",
		`{"email":"ana@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.request(http.MethodPost, "/api/auth/login", "",
		`{"email":"ana@example.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartRequiresAuth(t *testing.T) {
	f := newAPIFixture(t, &stubRecommender{})

	w := f.request(http.MethodGet, "/api/cart", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.request(http.MethodGet, "/api/cart", "garbage-token", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartFlow(t *testing.T) {
	f := newAPIFixture(t, &stubRecommender{})
	_, token := f.seedUser(domain.RoleUser)
	product := f.seedProduct(5, 19.99)

	// Empty cart on first read
	w := f.request(http.MethodGet, "/api/cart", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"itemCount":0`)

	// Add within stock
	w = f.request(http.MethodPost, "/api/cart/items", token,
		fmt.Sprintf(`{"productId":%q,"quantity":3}`, product.ID))
	require.Equal(t, http.StatusCreated, w.Code)

	// Merge beyond stock is a 400 with the stock error code
	w = f.request(http.MethodPost, "/api/cart/items", token,
		fmt.Sprintf(`{"productId":%q,"quantity":3}`, product.ID))
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, domain.CodeInsufficientStock, env.Error.Code)

	// The failed merge left the cart unchanged
	w = f.request(http.MethodGet, "/api/cart", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"quantity":3`)
	assert.Contains(t, w.Body.String(), `"total":59.97`)
}

func TestAddUnknownProduct(t *testing.T) {
	f := newAPIFixture(t, &stubRecommender{})
	_, token := f.seedUser(domain.RoleUser)

	w := f.request(http.MethodPost, "/api/cart/items", token,
		`{"productId":"11111111-2222-3333-4444-555555555555","quantity":1}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestForeignCartItem(t *testing.T) {
	f := newAPIFixture(t, &stubRecommender{})
	_, ownerToken := f.seedUser(domain.RoleUser)
	_, intruderToken := f.seedUser(domain.RoleUser)
	product := f.seedProduct(5, 10.00)

	w := f.request(http.MethodPost, "/api/cart/items", ownerToken,
		fmt.Sprintf(`{"productId":%q,"quantity":1}`, product.ID))
	require.Equal(t, http.StatusCreated, w.Code)

	var item struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &item))

	w = f.request(http.MethodPut, "/api/cart/items/"+item.ID, intruderToken, `{"quantity":2}`)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = f.request(http.MethodDelete, "/api/cart/items/"+item.ID, intruderToken, "")
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestProductAdminOnly(t *testing.T) {
	f := newAPIFixture(t, &stubRecommender{})
	_, userToken := f.seedUser(domain.RoleUser)
	_, adminToken := f.seedUser(domain.RoleAdmin)

	body := `{"name":"widget","price":9.99,"category":"tools","stock":3}`

	w := f.request(http.MethodPost, "/api/products", "", body)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.request(http.MethodPost, "/api/products", userToken, body)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = f.request(http.MethodPost, "/api/products", adminToken, body)
	require.Equal(t, http.StatusCreated, w.Code)

	// Reads stay public
	w = f.request(http.MethodGet, "/api/products", "", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCheckoutFlow(t *testing.T) {
	f := newAPIFixture(t, &stubRecommender{})
	_, token := f.seedUser(domain.RoleUser)
	product := f.seedProduct(5, 10.00)

	// Checkout with an empty cart fails
	w := f.request(http.MethodPost, "/api/orders", token, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = f.request(http.MethodPost, "/api/cart/items", token,
		fmt.Sprintf(`{"productId":%q,"quantity":2}`, product.ID))
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.request(http.MethodPost, "/api/orders", token, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"total":20`)

	// Cart is empty and stock decremented afterwards
	w = f.request(http.MethodGet, "/api/cart", token, "")
	assert.Contains(t, w.Body.String(), `"itemCount":0`)

	w = f.request(http.MethodGet, "/api/orders", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	updated := f.store.products[product.ID]
	assert.Equal(t, int32(3), updated.Stock)
}

func TestRecommendations(t *testing.T) {
	f := newAPIFixture(t, &stubRecommender{})
	_, userToken := f.seedUser(domain.RoleUser)
	_, adminToken := f.seedUser(domain.RoleAdmin)

	w := f.request(http.MethodGet, "/api/recommendations", userToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"recommendations"`)

	product := f.seedProduct(5, 9.99)
	w = f.request(http.MethodGet, "/api/recommendations/product/"+product.ID.String(), userToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"similar_products"`)

	// Training and the accuracy report are admin only
	w = f.request(http.MethodPost, "/api/recommendations/train", userToken, "")
	require.Equal(t, http.StatusForbidden, w.Code)

	w = f.request(http.MethodPost, "/api/recommendations/train", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"target_met":true`)

	w = f.request(http.MethodGet, "/api/recommendations/accuracy", userToken, "")
	require.Equal(t, http.StatusForbidden, w.Code)

	w = f.request(http.MethodGet, "/api/recommendations/accuracy", adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRecommendationsUnavailable(t *testing.T) {
	f := newAPIFixture(t, &stubRecommender{down: true})
	_, token := f.seedUser(domain.RoleUser)

	w := f.request(http.MethodGet, "/api/recommendations", token, "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	env := decode(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, domain.CodeUnavailable, env.Error.Code)
}
