package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/usecase"
)

// カートIDはヘッダで受け渡す
const HeaderCartID = "X-Cart-ID"

// /api/cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type addCartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

// /api/cart, /api/cart/items/:productId を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/cart")
	g.GET("", h.getCart)
	g.DELETE("", h.clearCart)
	g.POST("/items", h.addItem)
	g.PATCH("/items/:productId", h.updateItem)
	g.DELETE("/items/:productId", h.removeItem)
	g.POST("/checkout", h.checkout)
}

func cartID(c echo.Context) string {
	return c.Request().Header.Get(HeaderCartID)
}

func writeCart(c echo.Context, out usecase.CartOutput, err error) error {
	if err != nil {
		return writeError(c, err)
	}
	c.Response().Header().Set(HeaderCartID, out.CartID)
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) getCart(c echo.Context) error {
	out, err := h.uc.GetCart(c.Request().Context(), cartID(c))
	return writeCart(c, out, err)
}

func (h *CartHandler) addItem(c echo.Context) error {
	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, msgInvalidJSON)
	}

	out, err := h.uc.AddItem(c.Request().Context(), cartID(c), usecase.AddCartItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	return writeCart(c, out, err)
}

func (h *CartHandler) updateItem(c echo.Context) error {
	productID, ok := pathID(c, "productId")
	if !ok {
		return badRequest(c, "Invalid product ID")
	}
	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, msgInvalidJSON)
	}

	out, err := h.uc.UpdateItem(c.Request().Context(), cartID(c), productID, req.Quantity)
	return writeCart(c, out, err)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	productID, ok := pathID(c, "productId")
	if !ok {
		return badRequest(c, "Invalid product ID")
	}

	out, err := h.uc.RemoveItem(c.Request().Context(), cartID(c), productID)
	return writeCart(c, out, err)
}

func (h *CartHandler) clearCart(c echo.Context) error {
	out, err := h.uc.ClearCart(c.Request().Context(), cartID(c))
	return writeCart(c, out, err)
}

type checkoutResponse struct {
	Message string `json:"message"`
	usecase.CheckoutOutput
}

func (h *CartHandler) checkout(c echo.Context) error {
	var req usecase.CheckoutInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, msgInvalidJSON)
	}

	out, err := h.uc.Checkout(c.Request().Context(), cartID(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, checkoutResponse{Message: "Order placed successfully", CheckoutOutput: out})
}
