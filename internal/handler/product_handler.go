package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"storefront/internal/middleware"
	"storefront/internal/usecase"
)

// /api/products の公開API＋出品者による更新
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 更新系はsellerAuthを通す
func (h *ProductHandler) RegisterRoutes(e *echo.Echo, sellerAuth ...echo.MiddlewareFunc) {
	g := e.Group("/api/products")
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("", h.create, sellerAuth...)
	g.PUT("/:id", h.update, sellerAuth...)
	g.DELETE("/:id", h.delete, sellerAuth...)
}

type productListResponse struct {
	usecase.ProductListOutput
	Message string `json:"message"`
}

func (h *ProductHandler) list(c echo.Context) error {
	page, limit, err := pageParams(c)
	if err != nil {
		return writeError(c, err)
	}

	in := usecase.ListProductsInput{
		Page:     page,
		Limit:    limit,
		Category: c.QueryParam("category"),
	}
	if v := c.QueryParam("seller_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return badRequest(c, "Invalid seller_id")
		}
		in.SellerID = &id
	}
	if in.IsActive, err = queryBool(c, "is_active"); err != nil {
		return badRequest(c, "Invalid is_active")
	}

	out, err := h.uc.ListProducts(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, productListResponse{ProductListOutput: out, Message: "Products fetched successfully"})
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "Invalid product ID")
	}

	p, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dataResponse{Data: p, Message: "Product fetched successfully"})
}

// POST /api/products
type createProductRequest struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Category      string           `json:"category"`
	ImageURL      string           `json:"image_url"`
	StockQuantity int64            `json:"stock_quantity"`
	IsActive      *bool            `json:"is_active"`
	SellerID      int64            `json:"seller_id"`
}

func (h *ProductHandler) create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, msgInvalidJSON)
	}

	p, err := h.uc.CreateProduct(c.Request().Context(), middleware.SellerID(c), usecase.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		StockQuantity: req.StockQuantity,
		IsActive:      req.IsActive,
		SellerID:      req.SellerID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dataResponse{Data: p, Message: "Product created successfully"})
}

// PUT /api/products/:id。送られた項目だけ更新
type updateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Category      *string          `json:"category"`
	ImageURL      *string          `json:"image_url"`
	StockQuantity *int64           `json:"stock_quantity"`
	IsActive      *bool            `json:"is_active"`
}

func (h *ProductHandler) update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "Invalid product ID")
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, msgInvalidJSON)
	}

	p, err := h.uc.UpdateProduct(c.Request().Context(), middleware.SellerID(c), id, usecase.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		StockQuantity: req.StockQuantity,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dataResponse{Data: p, Message: "Product updated successfully"})
}

func (h *ProductHandler) delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "Invalid product ID")
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), middleware.SellerID(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}
