package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	auth "storefront/internal/usecase/auth_usecase"
)

const (
	CtxSellerIDKey    = "seller_id"    // int64
	CtxSellerEmailKey = "seller_email" // string
)

const (
	msgAuthRequired = "Authentication required"
	msgInvalidToken = "Invalid or expired token"
)

// JWTの検証
type TokenParser interface {
	Parse(raw string) (*auth.SellerClaims, error)
}

// bearerAuth用のJWT検証ミドルウェア。
func AuthJWT(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get(echo.HeaderAuthorization)
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON(msgAuthRequired))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON(msgAuthRequired))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON(msgAuthRequired))
			}

			claims, err := parser.Parse(rawToken)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON(msgInvalidToken))
			}
			sellerID, err := claims.SellerID()
			if err != nil || sellerID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON(msgInvalidToken))
			}

			//contextへ保存
			c.Set(CtxSellerIDKey, sellerID)
			c.Set(CtxSellerEmailKey, claims.Email)

			return next(c)
		}
	}
}

// AuthJWTが入れた出品者ID。無ければ0
func SellerID(c echo.Context) int64 {
	id, _ := c.Get(CtxSellerIDKey).(int64)
	return id
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
