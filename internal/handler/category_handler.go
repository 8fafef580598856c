package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/usecase"
)

type CategoryHandler struct {
	uc *usecase.CategoryUsecase
}

func NewCategoryHandler(uc *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/categories", h.list)
	e.GET("/api/categories/:name/products", h.products)
}

func (h *CategoryHandler) list(c echo.Context) error {
	cats, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dataResponse{Data: cats, Message: "Categories fetched successfully"})
}

type categoryProductsResponse struct {
	usecase.CategoryProductsOutput
	Message string `json:"message"`
}

func (h *CategoryHandler) products(c echo.Context) error {
	page, limit, err := pageParams(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.ListCategoryProducts(c.Request().Context(), c.Param("name"), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, categoryProductsResponse{CategoryProductsOutput: out, Message: "Products fetched successfully"})
}
