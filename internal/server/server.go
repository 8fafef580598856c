// Package server はechoの組み立てとHTTPサーバの起動・停止を行う。
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/cors"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/logx"
	"storefront/internal/middleware"
	"storefront/internal/validator"
)

// ルート登録に必要なハンドラ一式
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Search   *handler.SearchHandler
	Seller   *handler.SellerHandler
	Cart     *handler.CartHandler
}

type Server struct {
	e    *echo.Echo
	http *http.Server
}

// sellerAuthは出品者専用ルートに掛けるミドルウェア
func New(cfg config.Config, h Handlers, sellerAuth ...echo.MiddlewareFunc) *Server {
	e := NewEcho(h, sellerAuth...)

	return &Server{
		e: e,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           corsHandler(cfg.FEURL).Handler(e),
			ReadHeaderTimeout: 10 * time.Second,
			//画像生成を待つので長め
			WriteTimeout: 2 * time.Minute,
		},
	}
}

func NewEcho(h Handlers, sellerAuth ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e, sellerAuth...)
	h.Category.RegisterRoutes(e)
	h.Search.RegisterRoutes(e)
	h.Seller.RegisterRoutes(e, sellerAuth...)
	h.Cart.RegisterRoutes(e)

	return e
}

// FE_URLからのみ許可。カートIDはレスポンスヘッダでも返す
func corsHandler(origin string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"Authorization", "Content-Type", handler.HeaderCartID, echo.HeaderXRequestID},
		ExposedHeaders:   []string{handler.HeaderCartID, echo.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// Shutdownされるまでブロックする
func (s *Server) Start() error {
	logx.Info().Str("addr", s.http.Addr).Msg("http server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// テスト用
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}
