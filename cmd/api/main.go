package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/ai"
	"storefront/internal/infra/cartstore"
	"storefront/internal/infra/db"
	"storefront/internal/infra/events"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/logx"
	"storefront/internal/middleware"
	"storefront/internal/server"
	"storefront/internal/usecase"
	auth "storefront/internal/usecase/auth_usecase"
)

// 登録時のbcryptコスト
const passwordCost = 12

type publisher interface {
	usecase.EventPublisher
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to load config")
	}
	logx.Init(cfg.Env(), cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Connect(cfg.Database, cfg.Env())
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to connect database")
	}
	defer db.Close(gormDB)

	if err := db.Migrate(gormDB); err != nil {
		logx.Fatal().Err(err).Msg("failed to migrate")
	}

	//repository
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	sellerRepo := infraRepo.NewSellerGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	if err := db.SeedCategories(ctx, categoryRepo); err != nil {
		logx.Fatal().Err(err).Msg("failed to seed categories")
	}

	//カート（Redis）
	redisClient, err := cartstore.NewClient(ctx, cfg.Redis.URL)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to connect redis")
	}
	defer redisClient.Close()
	cartRepo := cartstore.NewRedisStore(redisClient, cfg.Redis.CartTTL)

	//商品イベント（Kafka未設定なら送らない）
	var pub publisher = events.NopPublisher{}
	if brokers := cfg.Kafka.BrokerList(); len(brokers) > 0 {
		pub = events.NewKafkaPublisher(brokers, cfg.Kafka.Topic)
	} else {
		logx.Warn().Msg("KAFKA_BROKERS not set, product events are not published")
	}
	defer pub.Close()

	providers, err := ai.NewProviders(ctx, cfg.AI)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to init ai providers")
	}

	clock := usecase.SystemClock{}
	ids := usecase.UUIDGenerator{}
	issuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.JWTTTL)

	//usecase
	productUC := usecase.NewProductUsecase(txm, productRepo, sellerRepo, categoryRepo, auditRepo, pub, ids, clock)
	aiUC := usecase.NewAIUsecase(providers.Text, providers.Vision, providers.Image)

	h := server.Handlers{
		Auth: handler.NewAuthHandler(
			auth.NewRegisterSellerUsecase(sellerRepo, auth.NewBcryptPasswordHasher(passwordCost), clock),
			auth.NewLoginUsecase(sellerRepo, auth.NewBcryptPasswordVerifier(), issuer, clock),
		),
		Product:  handler.NewProductHandler(productUC),
		Category: handler.NewCategoryHandler(usecase.NewCategoryUsecase(categoryRepo, productRepo)),
		Search:   handler.NewSearchHandler(usecase.NewSearchUsecase(productRepo)),
		Seller: handler.NewSellerHandler(
			usecase.NewSellerDashboardUsecase(productUC, productRepo),
			productUC,
			aiUC,
			usecase.NewAnalyticsUsecase(orderRepo, aiUC, clock),
		),
		Cart: handler.NewCartHandler(usecase.NewCartUsecase(cartRepo, productRepo, txm, pub, ids, clock)),
	}

	srv := server.New(cfg, h, middleware.AuthJWT(issuer), middleware.SellerGuard(sellerRepo))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			logx.Error().Err(err).Msg("server stopped")
		}
	case <-ctx.Done():
		logx.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("graceful shutdown failed")
	}
}
