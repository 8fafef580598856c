package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"storefront/internal/infra/spreadsheet"
	"storefront/internal/logx"
	"storefront/internal/middleware"
	"storefront/internal/usecase"
)

const maxImportSize = 10 << 20

// /api/seller 配下（出品者ダッシュボード）
type SellerHandler struct {
	dashboard *usecase.SellerDashboardUsecase
	products  *usecase.ProductUsecase
	ai        *usecase.AIUsecase
	analytics *usecase.AnalyticsUsecase
}

// DI
func NewSellerHandler(
	dashboard *usecase.SellerDashboardUsecase,
	products *usecase.ProductUsecase,
	ai *usecase.AIUsecase,
	analytics *usecase.AnalyticsUsecase,
) *SellerHandler {
	return &SellerHandler{dashboard: dashboard, products: products, ai: ai, analytics: analytics}
}

func (h *SellerHandler) RegisterRoutes(e *echo.Echo, sellerAuth ...echo.MiddlewareFunc) {
	g := e.Group("/api/seller", sellerAuth...)
	g.GET("/products", h.listProducts)
	g.POST("/products", h.createProduct)
	g.POST("/products/generate", h.generate)
	g.POST("/products/import", h.importProducts)
	g.GET("/products/:id/history", h.history)
	g.GET("/analytics", h.salesAnalytics)
}

func (h *SellerHandler) listProducts(c echo.Context) error {
	page, limit, err := pageParams(c)
	if err != nil {
		return writeError(c, err)
	}
	isActive, err := queryBool(c, "isActive")
	if err != nil {
		return badRequest(c, "Invalid isActive")
	}

	out, err := h.dashboard.ListProducts(c.Request().Context(), middleware.SellerID(c), usecase.SellerProductsInput{
		Page:     page,
		Limit:    limit,
		Category: c.QueryParam("category"),
		IsActive: isActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type sellerProductResponse struct {
	Message string `json:"message"`
	Product any    `json:"product"`
}

func (h *SellerHandler) createProduct(c echo.Context) error {
	var req usecase.SellerProductInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, msgInvalidJSON)
	}

	p, err := h.dashboard.CreateProduct(c.Request().Context(), middleware.SellerID(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, sellerProductResponse{Message: "Product created successfully", Product: p})
}

// typeで処理を切り替える
type generateRequest struct {
	Type        string `json:"type"`
	ImageURL    string `json:"imageUrl"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (h *SellerHandler) generate(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, msgInvalidJSON)
	}

	out, err := h.ai.Generate(c.Request().Context(), usecase.GenerateInput{
		Type:        req.Type,
		ImageURL:    req.ImageURL,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// multipartの"file"に.xlsxを受け取る
func (h *SellerHandler) importProducts(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "File is required")
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		return badRequest(c, "Only .xlsx files are supported")
	}
	if fh.Size > maxImportSize {
		return c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "File is too large"})
	}

	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "File is required")
	}
	defer f.Close()

	rows, err := spreadsheet.ReadProducts(f)
	if err != nil {
		if errors.Is(err, spreadsheet.ErrEmptySheet) || errors.Is(err, spreadsheet.ErrMissingColumn) {
			return badRequest(c, err.Error())
		}
		logx.Warn().Err(err).Str("file", fh.Filename).Msg("unreadable spreadsheet")
		return badRequest(c, "Invalid spreadsheet")
	}

	in := make([]usecase.ImportRow, 0, len(rows))
	for _, r := range rows {
		price := r.Price
		active := r.IsActive
		in = append(in, usecase.ImportRow{
			Line: r.Line,
			Err:  r.Err,
			Input: usecase.CreateProductInput{
				Name:          r.Name,
				Description:   r.Description,
				Price:         &price,
				Category:      r.Category,
				ImageURL:      r.ImageURL,
				StockQuantity: r.StockQuantity,
				IsActive:      &active,
			},
		})
	}

	out, err := h.dashboard.ImportProducts(c.Request().Context(), middleware.SellerID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SellerHandler) history(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "Invalid product ID")
	}

	logs, err := h.products.ProductHistory(c.Request().Context(), middleware.SellerID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dataResponse{Data: logs, Message: "History fetched successfully"})
}

func (h *SellerHandler) salesAnalytics(c echo.Context) error {
	period, err := queryInt(c, "period", 30)
	if err != nil {
		return badRequest(c, "Period must be between 1 and 365")
	}

	out, err := h.analytics.Sales(c.Request().Context(), middleware.SellerID(c), period)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
