package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/usecase"
)

type SearchHandler struct {
	uc *usecase.SearchUsecase
}

func NewSearchHandler(uc *usecase.SearchUsecase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

func (h *SearchHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/search/nlp", h.get)
	e.POST("/api/search/nlp", h.post)
}

func (h *SearchHandler) get(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return badRequest(c, `Query parameter "q" is required`)
	}
	return h.search(c, q)
}

// queryが文字列以外でも400にするためanyで受ける
type searchRequest struct {
	Query any `json:"query"`
}

func (h *SearchHandler) post(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, msgInvalidJSON)
	}
	q, ok := req.Query.(string)
	if !ok || q == "" {
		return badRequest(c, "Query is required and must be a string")
	}
	return h.search(c, q)
}

func (h *SearchHandler) search(c echo.Context, q string) error {
	out, err := h.uc.Search(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
