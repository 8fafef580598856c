package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

const (
	msgAuthRequired    = "Authentication required"
	msgProductNotFound = "Product not found"
	msgInvalidProduct  = "Invalid product ID"
	msgNotOwner        = "You can only manage your own products"
	msgInvalidCategory = "Invalid category"
)

type ProductUsecase struct {
	tx         repo.TransactionManager
	products   repo.ProductRepository
	sellers    repo.SellerRepository
	categories repo.CategoryRepository
	audits     repo.AuditLogRepository
	events     EventPublisher
	ids        IDGenerator
	clock      Clock
}

// DI
func NewProductUsecase(
	tx repo.TransactionManager,
	products repo.ProductRepository,
	sellers repo.SellerRepository,
	categories repo.CategoryRepository,
	audits repo.AuditLogRepository,
	events EventPublisher,
	ids IDGenerator,
	clock Clock,
) *ProductUsecase {
	return &ProductUsecase{
		tx:         tx,
		products:   products,
		sellers:    sellers,
		categories: categories,
		audits:     audits,
		events:     events,
		ids:        ids,
		clock:      clock,
	}
}

// GET /api/productsの入力DTO
type ListProductsInput struct {
	Page     int
	Limit    int
	Category string
	SellerID *int64
	IsActive *bool
}

type ProductListOutput struct {
	Data       []model.Product `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if err := validatePage(in.Page, in.Limit); err != nil {
		return ProductListOutput{}, err
	}

	items, total, err := u.products.List(ctx, repo.ProductListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		Category: strings.TrimSpace(in.Category),
		SellerID: in.SellerID,
		IsActive: in.IsActive,
	})
	if err != nil {
		return ProductListOutput{}, internalError(err, "list products")
	}

	return ProductListOutput{
		Data:       items,
		Pagination: newPagination(in.Page, in.Limit, total),
	}, nil
}

// 非公開でも返す
func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, msgInvalidProduct)
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, msgProductNotFound)
	}
	if err != nil {
		return model.Product{}, internalError(err, "get product")
	}
	return p, nil
}

type CreateProductInput struct {
	Name          string
	Description   string
	Price         *decimal.Decimal
	Category      string
	ImageURL      string
	StockQuantity int64
	IsActive      *bool
	SellerID      int64
}

// actorSellerIDはトークンの出品者
func (u *ProductUsecase) CreateProduct(ctx context.Context, actorSellerID int64, in CreateProductInput) (model.Product, error) {
	return u.create(ctx, actorSellerID, in, model.AuditActionCreateProduct)
}

func (u *ProductUsecase) create(ctx context.Context, actorSellerID int64, in CreateProductInput, action model.AuditAction) (model.Product, error) {
	if actorSellerID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, msgAuthRequired)
	}

	//必須チェック（価格0も未指定扱い）
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || in.Price == nil || in.Price.IsZero() || category == "" || in.SellerID == 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "Missing required fields: name, price, category, seller_id")
	}
	if in.Price.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "Price must be greater than or equal to 0")
	}
	if in.StockQuantity < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "Stock quantity must be greater than or equal to 0")
	}

	if _, err := u.sellers.FindByID(ctx, in.SellerID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "Invalid seller_id")
		}
		return model.Product{}, internalError(err, "find seller")
	}
	if in.SellerID != actorSellerID {
		return model.Product{}, NewHTTPError(http.StatusForbidden, msgNotOwner)
	}

	cat, err := u.lookupCategory(ctx, category)
	if err != nil {
		return model.Product{}, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	p := model.Product{
		Name:          name,
		Description:   strings.TrimSpace(in.Description),
		Price:         in.Price.Round(2),
		Category:      cat.Name,
		ImageURL:      strings.TrimSpace(in.ImageURL),
		StockQuantity: in.StockQuantity,
		IsActive:      active,
		SellerID:      in.SellerID,
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		created, err := r.Products().Create(ctx, p)
		if err != nil {
			return err
		}
		p = created
		return r.AuditLogs().Create(ctx, auditEntry(actorSellerID, action, p.ID, nil, p, u.clock))
	})
	if err != nil {
		return model.Product{}, internalError(err, "create product")
	}

	publishProductEvent(ctx, u.events, u.ids, u.clock, model.ProductEventCreated, p)
	return p, nil
}

// 未指定(nil)の項目は変更しない
type UpdateProductInput struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	Category      *string
	ImageURL      *string
	StockQuantity *int64
	IsActive      *bool
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, actorSellerID int64, productID int64, in UpdateProductInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, msgInvalidProduct)
	}
	if in.Price != nil && !in.Price.IsPositive() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "Price must be greater than 0")
	}
	if in.StockQuantity != nil && *in.StockQuantity < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "Stock quantity cannot be negative")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "Name cannot be empty")
	}

	before, err := u.ownedProduct(ctx, actorSellerID, productID)
	if err != nil {
		return model.Product{}, err
	}

	after := before
	if in.Name != nil {
		after.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		after.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		after.Price = in.Price.Round(2)
	}
	if in.Category != nil {
		cat, err := u.lookupCategory(ctx, *in.Category)
		if err != nil {
			return model.Product{}, err
		}
		after.Category = cat.Name
	}
	if in.ImageURL != nil {
		after.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.StockQuantity != nil {
		after.StockQuantity = *in.StockQuantity
	}
	if in.IsActive != nil {
		after.IsActive = *in.IsActive
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Products().Update(ctx, after); err != nil {
			return err
		}
		return r.AuditLogs().Create(ctx, auditEntry(actorSellerID, model.AuditActionUpdateProduct, productID, before, after, u.clock))
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, msgProductNotFound)
	}
	if err != nil {
		return model.Product{}, internalError(err, "update product")
	}

	publishProductEvent(ctx, u.events, u.ids, u.clock, model.ProductEventUpdated, after)
	return after, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, actorSellerID int64, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, msgInvalidProduct)
	}

	before, err := u.ownedProduct(ctx, actorSellerID, productID)
	if err != nil {
		return err
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Products().SoftDelete(ctx, productID); err != nil {
			return err
		}
		return r.AuditLogs().Create(ctx, auditEntry(actorSellerID, model.AuditActionDeleteProduct, productID, before, nil, u.clock))
	})
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, msgProductNotFound)
	}
	if err != nil {
		return internalError(err, "delete product")
	}

	publishProductEvent(ctx, u.events, u.ids, u.clock, model.ProductEventDeleted, before)
	return nil
}

// 商品の変更履歴（新しい順）
func (u *ProductUsecase) ProductHistory(ctx context.Context, actorSellerID int64, productID int64) ([]model.AuditLog, error) {
	if productID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, msgInvalidProduct)
	}
	if _, err := u.ownedProduct(ctx, actorSellerID, productID); err != nil {
		return nil, err
	}

	rt := model.AuditResourceProduct
	logs, err := u.audits.List(ctx, repo.AuditLogFilter{ResourceType: &rt, ResourceID: &productID, Limit: 200})
	if err != nil {
		return nil, internalError(err, "list audit logs")
	}
	return logs, nil
}

// 存在確認＋所有チェック
func (u *ProductUsecase) ownedProduct(ctx context.Context, actorSellerID, productID int64) (model.Product, error) {
	if actorSellerID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, msgAuthRequired)
	}
	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, msgProductNotFound)
	}
	if err != nil {
		return model.Product{}, internalError(err, "find product")
	}
	if p.SellerID != actorSellerID {
		return model.Product{}, NewHTTPError(http.StatusForbidden, msgNotOwner)
	}
	return p, nil
}

func (u *ProductUsecase) lookupCategory(ctx context.Context, name string) (model.Category, error) {
	if strings.TrimSpace(name) == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, msgInvalidCategory)
	}
	c, err := u.categories.FindByName(ctx, name)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, msgInvalidCategory)
	}
	if err != nil {
		return model.Category{}, internalError(err, "find category")
	}
	return c, nil
}

// before/afterはJSON文字列で保存する
func auditEntry(actor int64, action model.AuditAction, productID int64, before, after any, clock Clock) model.AuditLog {
	return model.AuditLog{
		ActorSellerID: actor,
		Action:        action,
		ResourceType:  model.AuditResourceProduct,
		ResourceID:    productID,
		BeforeJSON:    toJSON(before),
		AfterJSON:     toJSON(after),
		CreatedAt:     clock.Now(),
	}
}

func toJSON(v any) string {
	if v == nil {
		return ""
	}
	if p, ok := v.(model.Product); ok {
		//出品者情報は履歴に含めない
		p.Seller = nil
		v = p
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
