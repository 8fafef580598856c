package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/validator"
)

// 出品者ダッシュボード。作成処理はProductUsecaseに委譲する
type SellerDashboardUsecase struct {
	products *ProductUsecase
	repo     repo.ProductRepository
}

func NewSellerDashboardUsecase(products *ProductUsecase, productRepo repo.ProductRepository) *SellerDashboardUsecase {
	return &SellerDashboardUsecase{products: products, repo: productRepo}
}

type SellerPagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type SellerProductsOutput struct {
	Products   []model.Product  `json:"products"`
	Pagination SellerPagination `json:"pagination"`
}

type SellerProductsInput struct {
	Page     int
	Limit    int
	Category string
	IsActive *bool
}

// 自分の商品だけ（非公開も含む）
func (u *SellerDashboardUsecase) ListProducts(ctx context.Context, sellerID int64, in SellerProductsInput) (SellerProductsOutput, error) {
	if sellerID <= 0 {
		return SellerProductsOutput{}, NewHTTPError(http.StatusUnauthorized, msgAuthRequired)
	}
	if err := validatePage(in.Page, in.Limit); err != nil {
		return SellerProductsOutput{}, err
	}

	items, total, err := u.repo.List(ctx, repo.ProductListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		Category: strings.TrimSpace(in.Category),
		SellerID: &sellerID,
		IsActive: in.IsActive,
	})
	if err != nil {
		return SellerProductsOutput{}, internalError(err, "list seller products")
	}

	return SellerProductsOutput{
		Products: items,
		Pagination: SellerPagination{
			Page:  in.Page,
			Limit: in.Limit,
			Total: total,
			Pages: totalPages(total, in.Limit),
		},
	}, nil
}

// POST /api/seller/products の入力
type SellerProductInput struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description" validate:"required,min=1"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
	Category    string          `json:"category" validate:"required"`
	Images      []string        `json:"images" validate:"omitempty,dive,url"`
	Stock       int64           `json:"stock" validate:"gte=0"`
}

func (u *SellerDashboardUsecase) CreateProduct(ctx context.Context, sellerID int64, in SellerProductInput) (model.Product, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	if err := validateStruct(in); err != nil {
		return model.Product{}, err
	}

	image := ""
	if len(in.Images) > 0 {
		image = in.Images[0]
	}
	price := in.Price
	return u.products.CreateProduct(ctx, sellerID, CreateProductInput{
		Name:          in.Title,
		Description:   in.Description,
		Price:         &price,
		Category:      in.Category,
		ImageURL:      image,
		StockQuantity: in.Stock,
		SellerID:      sellerID,
	})
}

type ImportFailure struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type ImportOutput struct {
	Created []model.Product `json:"created"`
	Failed  []ImportFailure `json:"failed"`
}

// スプレッドシートの1行
type ImportRow struct {
	Line  int
	Input CreateProductInput
	// 読み取り時点のエラー
	Err error
}

// 行ごとに作成する。失敗した行は理由を返して続行
func (u *SellerDashboardUsecase) ImportProducts(ctx context.Context, sellerID int64, rows []ImportRow) (ImportOutput, error) {
	if sellerID <= 0 {
		return ImportOutput{}, NewHTTPError(http.StatusUnauthorized, msgAuthRequired)
	}

	out := ImportOutput{Created: []model.Product{}, Failed: []ImportFailure{}}
	for _, row := range rows {
		if row.Err != nil {
			out.Failed = append(out.Failed, ImportFailure{Row: row.Line, Error: row.Err.Error()})
			continue
		}

		in := row.Input
		in.SellerID = sellerID
		p, err := u.products.create(ctx, sellerID, in, model.AuditActionImportProduct)
		if err != nil {
			out.Failed = append(out.Failed, ImportFailure{Row: row.Line, Error: importErrorMessage(err)})
			continue
		}
		out.Created = append(out.Created, p)
	}
	return out, nil
}

func importErrorMessage(err error) string {
	he, ok := AsHTTPError(err)
	if !ok {
		return msgInternal
	}
	if fields, ok := he.Details.([]validator.FieldError); ok && len(fields) > 0 {
		return fmt.Sprintf("%s: %s", fields[0].Field, fields[0].Message)
	}
	return he.Message
}
