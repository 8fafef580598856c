package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/logx"
	"storefront/internal/repository"
)

// トークン発行後に削除された出品者を弾く。AuthJWTの後に置く
func SellerGuard(sellers repository.SellerRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたseller_idを取得する
			sellerID := SellerID(c)
			if sellerID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON(msgAuthRequired))
			}

			//DBから最新の出品者を取得する
			seller, err := sellers.FindByID(c.Request().Context(), sellerID)
			if errors.Is(err, repository.ErrNotFound) || (err == nil && seller == nil) {
				return c.JSON(http.StatusUnauthorized, errorJSON(msgInvalidToken))
			}
			if err != nil {
				logx.Error().Err(err).Int64("seller_id", sellerID).Msg("seller lookup failed")
				return c.JSON(http.StatusInternalServerError, errorJSON("Internal server error"))
			}

			return next(c)
		}
	}
}
