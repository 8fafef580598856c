package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront/internal/logx"
	"storefront/internal/usecase"
	"storefront/internal/validator"
)

const msgInvalidJSON = "Invalid JSON body"

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type dataResponse struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message, Details: he.Details})
	}

	//500
	logx.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// JSONを読み取ってvalidateタグを検証する。エラーはwriteErrorに渡す
func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, msgInvalidJSON)
	}
	if err := c.Validate(dst); err != nil {
		return usecase.NewHTTPErrorWithDetails(http.StatusBadRequest, "Invalid input data", validator.Details(err))
	}
	return nil
}

// 未指定ならdef
func queryInt(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func queryBool(c echo.Context, name string) (*bool, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// page/limit を読む（default 1/10）。数値でなければ範囲外と同じ扱い
func pageParams(c echo.Context) (int, int, error) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return 0, 0, usecase.NewHTTPError(http.StatusBadRequest, "Page must be greater than 0")
	}
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		return 0, 0, usecase.NewHTTPError(http.StatusBadRequest, "Limit must be between 1 and 100")
	}
	return page, limit, nil
}

func pathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
