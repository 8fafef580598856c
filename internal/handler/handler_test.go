package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"
	auth "storefront/internal/usecase/auth_usecase"
	"storefront/internal/validator"
)

type testEnv struct {
	e          *echo.Echo
	issuer     *auth.JWTIssuer
	tx         *TxManagerMock
	products   *ProductRepoMock
	sellers    *SellerRepoMock
	categories *CategoryRepoMock
	audits     *AuditRepoMock
	orders     *OrderRepoMock
	carts      *CartRepoMock
}

func newTestEnv() *testEnv {
	env := &testEnv{
		issuer:     auth.NewJWTIssuer("handler-secret", time.Hour),
		products:   new(ProductRepoMock),
		sellers:    new(SellerRepoMock),
		categories: new(CategoryRepoMock),
		audits:     new(AuditRepoMock),
		orders:     new(OrderRepoMock),
		carts:      new(CartRepoMock),
	}
	env.tx = &TxManagerMock{Repos: &TxReposMock{products: env.products, audits: env.audits}}

	clock := fixedClock{t: time.Now()}
	ids := fixedIDs{id: "cart-new"}

	productUC := usecase.NewProductUsecase(env.tx, env.products, env.sellers, env.categories, env.audits, nil, ids, clock)
	aiUC := usecase.NewAIUsecase(nil, nil, nil)

	e := echo.New()
	e.Validator = validator.New()
	sellerAuth := []echo.MiddlewareFunc{middleware.AuthJWT(env.issuer), middleware.SellerGuard(env.sellers)}

	NewProductHandler(productUC).RegisterRoutes(e, sellerAuth...)
	NewCategoryHandler(usecase.NewCategoryUsecase(env.categories, env.products)).RegisterRoutes(e)
	NewSearchHandler(usecase.NewSearchUsecase(env.products)).RegisterRoutes(e)
	NewCartHandler(usecase.NewCartUsecase(env.carts, env.products, env.tx, nil, ids, clock)).RegisterRoutes(e)
	NewAuthHandler(
		auth.NewRegisterSellerUsecase(env.sellers, auth.NewBcryptPasswordHasher(bcrypt.MinCost), clock),
		auth.NewLoginUsecase(env.sellers, auth.NewBcryptPasswordVerifier(), env.issuer, clock),
	).RegisterRoutes(e)
	NewSellerHandler(
		usecase.NewSellerDashboardUsecase(productUC, env.products),
		productUC,
		aiUC,
		usecase.NewAnalyticsUsecase(env.orders, aiUC, clock),
	).RegisterRoutes(e, sellerAuth...)

	env.e = e
	return env
}

// 出品者7としてログイン済みにする
func (env *testEnv) sellerToken(t *testing.T) string {
	t.Helper()
	env.sellers.On("FindByID", mock.Anything, int64(7)).Return(&model.Seller{ID: 7, Email: "s@example.com"}, nil)
	tok, _, err := env.issuer.Issue(&model.Seller{ID: 7, Email: "s@example.com"}, time.Now())
	require.NoError(t, err)
	return tok
}

func (env *testEnv) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func bearer(tok string) map[string]string {
	return map[string]string{echo.HeaderAuthorization: "Bearer " + tok}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestProducts_List(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodGet, "/api/products?page=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Page must be greater than 0", decode(t, rec)["error"])

	rec = env.do(http.MethodGet, "/api/products?limit=500", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Limit must be between 1 and 100", decode(t, rec)["error"])

	env.products.On("List", mock.Anything, repo.ProductListQuery{Page: 1, Limit: 10, Category: "shoes"}).
		Return([]model.Product{{ID: 1, Name: "Sneaker", Price: decimal.RequireFromString("49.90")}}, int64(1), nil).Once()

	rec = env.do(http.MethodGet, "/api/products?category=shoes", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Products fetched successfully", body["message"])
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, 49.9, data[0].(map[string]any)["price"])
	assert.Equal(t, float64(1), body["pagination"].(map[string]any)["totalPages"])
}

func TestProducts_Detail(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodGet, "/api/products/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid product ID", decode(t, rec)["error"])

	env.products.On("FindByID", mock.Anything, int64(3)).Return(model.Product{}, repo.ErrNotFound).Once()
	rec = env.do(http.MethodGet, "/api/products/3", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decode(t, rec)["error"])

	env.products.On("FindByID", mock.Anything, int64(4)).Return(model.Product{
		ID: 4, Name: "Lamp", SellerID: 7,
		Seller: &model.SellerSummary{ID: 7, Name: "Sam", StoreName: "Sam's"},
	}, nil).Once()
	rec = env.do(http.MethodGet, "/api/products/4", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	seller := decode(t, rec)["data"].(map[string]any)["seller"].(map[string]any)
	assert.Equal(t, map[string]any{"id": float64(7), "name": "Sam", "storeName": "Sam's"}, seller)
}

func TestProducts_CreateRequiresToken(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodPost, "/api/products", `{"name":"x"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication required", decode(t, rec)["error"])

	rec = env.do(http.MethodPost, "/api/products", `{"name":"x"}`, bearer("nope"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", decode(t, rec)["error"])
}

func TestProducts_Create(t *testing.T) {
	env := newTestEnv()
	tok := env.sellerToken(t)

	rec := env.do(http.MethodPost, "/api/products", `{"name":"Lamp","category":"home","seller_id":7}`, bearer(tok))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields: name, price, category, seller_id", decode(t, rec)["error"])

	env.categories.On("FindByName", mock.Anything, "home").Return(model.Category{Name: "home"}, nil).Once()
	env.tx.On("WithinTx", mock.Anything).Return(nil).Once()
	env.products.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Price.Equal(decimal.RequireFromString("12.5")) && p.SellerID == 7
	})).Return(model.Product{ID: 40, Name: "Lamp", SellerID: 7, Price: decimal.RequireFromString("12.5")}, nil).Once()
	env.audits.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	rec = env.do(http.MethodPost, "/api/products", `{"name":"Lamp","price":12.5,"category":"home","seller_id":7}`, bearer(tok))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Product created successfully", body["message"])
	assert.Equal(t, float64(40), body["data"].(map[string]any)["id"])
}

func TestProducts_Delete(t *testing.T) {
	env := newTestEnv()
	tok := env.sellerToken(t)

	env.products.On("FindByID", mock.Anything, int64(5)).Return(model.Product{ID: 5, SellerID: 8}, nil).Once()
	rec := env.do(http.MethodDelete, "/api/products/5", "", bearer(tok))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	env.products.On("FindByID", mock.Anything, int64(6)).Return(model.Product{ID: 6, SellerID: 7}, nil).Once()
	env.tx.On("WithinTx", mock.Anything).Return(nil).Once()
	env.products.On("SoftDelete", mock.Anything, int64(6)).Return(nil).Once()
	env.audits.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	rec = env.do(http.MethodDelete, "/api/products/6", "", bearer(tok))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product deleted successfully", decode(t, rec)["message"])
}

func TestCategories_List(t *testing.T) {
	env := newTestEnv()
	env.categories.On("List", mock.Anything).Return([]model.Category{{ID: 1, Name: "home"}}, nil).Once()

	rec := env.do(http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Categories fetched successfully", decode(t, rec)["message"])
}

func TestAuth_Register(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodPost, "/api/auth/register", `{"email":"bad","password":"123","name":"A","storeName":"S"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Invalid input data", body["error"])
	assert.Len(t, body["details"], 4)

	env.sellers.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.Seller{ID: 1}, nil).Once()
	rec = env.do(http.MethodPost, "/api/auth/register", `{"email":"taken@example.com","password":"secret1","name":"Ann","storeName":"Shop"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Seller with this email already exists", decode(t, rec)["error"])

	rec = env.do(http.MethodPost, "/api/auth/register",
		`{"email":"long@example.com","password":"`+strings.Repeat("a", 80)+`","name":"Ann","storeName":"Shop"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid input data", decode(t, rec)["error"])

	rec = env.do(http.MethodPost, "/api/auth/register",
		`{"email":"long@example.com","password":"`+strings.Repeat("あ", 25)+`","name":"Ann","storeName":"Shop"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password must be at most 72 bytes", decode(t, rec)["error"])

	env.sellers.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, repo.ErrNotFound).Once()
	env.sellers.On("Create", mock.Anything, mock.Anything).Return(nil, int64(9)).Once()
	rec = env.do(http.MethodPost, "/api/auth/register", `{"email":"New@Example.com","password":"secret1","name":"Ann","storeName":"Shop"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, "Seller registered successfully", body["message"])
	seller := body["seller"].(map[string]any)
	assert.Equal(t, "new@example.com", seller["email"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAuth_Login(t *testing.T) {
	env := newTestEnv()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	env.sellers.On("FindByEmail", mock.Anything, "s@example.com").
		Return(&model.Seller{ID: 7, Email: "s@example.com", Name: "Sam", StoreName: "Sam's", PasswordHash: string(hash)}, nil)

	rec := env.do(http.MethodPost, "/api/auth/login", `{"email":"s@example.com","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decode(t, rec)["error"])

	rec = env.do(http.MethodPost, "/api/auth/login", `{"email":"s@example.com","password":"secret1"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, float64(3600), body["expiresIn"])

	claims, err := env.issuer.Parse(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "Sam's", claims.StoreName)
}

func TestSearch(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodGet, "/api/search/nlp", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `Query parameter "q" is required`, decode(t, rec)["error"])

	rec = env.do(http.MethodPost, "/api/search/nlp", `{"query":42}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Query is required and must be a string", decode(t, rec)["error"])

	//空白だけは空ではないので検索する
	env.products.On("ListActive", mock.Anything).Return([]model.Product{}, nil).Once()
	rec = env.do(http.MethodGet, "/api/search/nlp?q=%20%20", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	env.products.On("ListActive", mock.Anything).Return([]model.Product{
		{ID: 1, Name: "Blue Jeans", Category: "clothing", Price: decimal.NewFromInt(40), IsActive: true},
	}, nil).Once()
	rec = env.do(http.MethodPost, "/api/search/nlp", `{"query":"blue jeans"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	md := decode(t, rec)["searchMetadata"].(map[string]any)
	assert.Equal(t, float64(1), md["totalResults"])
	assert.Equal(t, "blue", md["parsedFilters"].(map[string]any)["color"])
}

func TestCart_IssuesID(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodGet, "/api/cart", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cart-new", rec.Header().Get(HeaderCartID))
	assert.Equal(t, "cart-new", decode(t, rec)["cartId"])

	env.carts.On("Get", mock.Anything, "c1").Return(model.Cart{}, repo.ErrNotFound).Once()
	env.products.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, Name: "Lamp", Price: decimal.NewFromInt(10), StockQuantity: 5, IsActive: true, SellerID: 7}, nil).Once()
	env.carts.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	rec = env.do(http.MethodPost, "/api/cart/items", `{"productId":1,"quantity":2}`, map[string]string{HeaderCartID: "c1"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(2), body["totalItems"])
	assert.Equal(t, float64(20), body["totalPrice"])
}

func TestCart_CheckoutEmpty(t *testing.T) {
	env := newTestEnv()
	env.carts.On("Get", mock.Anything, "c1").Return(model.Cart{}, repo.ErrNotFound).Once()

	rec := env.do(http.MethodPost, "/api/cart/checkout", `{"customerName":"Ada","customerEmail":"ada@example.com"}`, map[string]string{HeaderCartID: "c1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cart is empty", decode(t, rec)["error"])
}

func TestSeller_Generate(t *testing.T) {
	env := newTestEnv()
	tok := env.sellerToken(t)

	rec := env.do(http.MethodPost, "/api/seller/products/generate", `{"type":"poem"}`, bearer(tok))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid generation type. Use: from-image, generate-image, or enhance-description", decode(t, rec)["error"])

	rec = env.do(http.MethodPost, "/api/seller/products/generate", `{"type":"enhance-description","title":"Lamp","category":"home"}`, bearer(tok))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Description enhanced successfully", body["message"])
	assert.Equal(t, "Product description", body["description"])
}

func TestSeller_ListProducts(t *testing.T) {
	env := newTestEnv()
	tok := env.sellerToken(t)
	sellerID := int64(7)
	active := false

	env.products.On("List", mock.Anything, repo.ProductListQuery{Page: 1, Limit: 10, SellerID: &sellerID, IsActive: &active}).
		Return([]model.Product{}, int64(0), nil).Once()

	rec := env.do(http.MethodGet, "/api/seller/products?isActive=false", "", bearer(tok))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, map[string]any{"page": float64(1), "limit": float64(10), "total": float64(0), "pages": float64(0)}, body["pagination"])
}

func TestSeller_Analytics(t *testing.T) {
	env := newTestEnv()
	tok := env.sellerToken(t)
	env.orders.On("ListBySellerSince", mock.Anything, int64(7), mock.Anything).Return([]model.Order{}, nil).Once()

	rec := env.do(http.MethodGet, "/api/seller/analytics?period=7", "", bearer(tok))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "7 days", body["metrics"].(map[string]any)["period"])
	assert.Equal(t, "Sales analysis", body["aiInsights"])
}

func multipartFile(t *testing.T, name string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestSeller_Import(t *testing.T) {
	env := newTestEnv()
	tok := env.sellerToken(t)

	body, ct := multipartFile(t, "products.csv", []byte("name,price\n"))
	req := httptest.NewRequest(http.MethodPost, "/api/seller/products/import", body)
	req.Header.Set(echo.HeaderContentType, ct)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Name", "Price", "Category", "Stock Quantity"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Lamp", "10.5", "home", 3}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"Broken", "abc", "home", 1}))
	xlsx, err := f.WriteToBuffer()
	require.NoError(t, err)

	env.categories.On("FindByName", mock.Anything, "home").Return(model.Category{Name: "home"}, nil).Once()
	env.tx.On("WithinTx", mock.Anything).Return(nil).Once()
	env.products.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Lamp" && p.StockQuantity == 3 && p.IsActive
	})).Return(model.Product{ID: 50, Name: "Lamp", SellerID: 7}, nil).Once()
	env.audits.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionImportProduct
	})).Return(nil).Once()

	body, ct = multipartFile(t, "products.xlsx", xlsx.Bytes())
	req = httptest.NewRequest(http.MethodPost, "/api/seller/products/import", body)
	req.Header.Set(echo.HeaderContentType, ct)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	rec = httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Len(t, out["created"], 1)
	failed := out["failed"].([]any)
	require.Len(t, failed, 1)
	assert.Equal(t, float64(3), failed[0].(map[string]any)["row"])
	env.products.AssertExpectations(t)
}
