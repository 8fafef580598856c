package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// =====================
// TxManager / TxRepos
// =====================

// WithinTxの中で渡すreposを固定する
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders    repo.OrderRepository
	inventory repo.InventoryRepository
	products  repo.ProductRepository
	audits    repo.AuditLogRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository        { return r.orders }
func (r *TxReposMock) Inventory() repo.InventoryRepository { return r.inventory }
func (r *TxReposMock) Products() repo.ProductRepository    { return r.products }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository  { return r.audits }

// =====================
// Repository mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) ListActive(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *ProductRepoMock) UpdateDescription(ctx context.Context, id int64, description string) error {
	return m.Called(ctx, id, description).Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type SellerRepoMock struct{ mock.Mock }

func (m *SellerRepoMock) Create(ctx context.Context, s *model.Seller) error {
	return m.Called(ctx, s).Error(0)
}

func (m *SellerRepoMock) FindByID(ctx context.Context, id int64) (*model.Seller, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*model.Seller)
	return s, args.Error(1)
}

func (m *SellerRepoMock) FindByEmail(ctx context.Context, email string) (*model.Seller, error) {
	args := m.Called(ctx, email)
	s, _ := args.Get(0).(*model.Seller)
	return s, args.Error(1)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Category)
	return items, args.Error(1)
}

func (m *CategoryRepoMock) FindByName(ctx context.Context, name string) (model.Category, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) EnsureExists(ctx context.Context, c model.Category) error {
	return m.Called(ctx, c).Error(0)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.AuditLog)
	return items, args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

// IDを振って明細ごと保存した扱いにする
func (m *OrderRepoMock) Create(ctx context.Context, o *model.Order) error {
	args := m.Called(ctx, o)
	if id, ok := args.Get(1).(int64); ok {
		o.ID = id
	}
	return args.Error(0)
}

func (m *OrderRepoMock) ListBySellerSince(ctx context.Context, sellerID int64, since time.Time) ([]model.Order, error) {
	args := m.Called(ctx, sellerID, since)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) Get(ctx context.Context, cartID string) (model.Cart, error) {
	args := m.Called(ctx, cartID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) Save(ctx context.Context, cart model.Cart) error {
	return m.Called(ctx, cart).Error(0)
}

func (m *CartRepoMock) Delete(ctx context.Context, cartID string) error {
	return m.Called(ctx, cartID).Error(0)
}

// =====================
// ports
// =====================

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, ev model.ProductEvent) error {
	return m.Called(ctx, ev).Error(0)
}

type TextGenMock struct{ mock.Mock }

func (m *TextGenMock) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	args := m.Called(ctx, system, user, maxTokens)
	return args.String(0), args.Error(1)
}

type VisionMock struct{ mock.Mock }

func (m *VisionMock) DescribeImage(ctx context.Context, prompt, imageURL string, maxTokens int) (string, error) {
	args := m.Called(ctx, prompt, imageURL, maxTokens)
	return args.String(0), args.Error(1)
}

type ImageGenMock struct{ mock.Mock }

func (m *ImageGenMock) GenerateImage(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fixedIDs struct{ id string }

func (g fixedIDs) NewID() string { return g.id }

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
