package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/infra/ai"
	"storefront/internal/infra/db"
	"storefront/internal/infra/events"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/logx"
	"storefront/internal/usecase"
	"storefront/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to load config")
	}
	logx.Init(cfg.Env(), cfg.LogLevel)

	brokers := cfg.Kafka.BrokerList()
	if len(brokers) == 0 {
		logx.Fatal().Msg("KAFKA_BROKERS is required for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Connect(cfg.Database, cfg.Env())
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to connect database")
	}
	defer db.Close(gormDB)

	providers, err := ai.NewProviders(ctx, cfg.AI)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to init ai providers")
	}

	consumer := events.NewKafkaConsumer(brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID)
	defer consumer.Close()

	p := worker.NewProcessor(
		consumer,
		infraRepo.NewProductGormRepository(gormDB),
		usecase.NewAIUsecase(providers.Text, providers.Vision, providers.Image),
	)

	logx.Info().Str("topic", cfg.Kafka.Topic).Str("group", cfg.Kafka.GroupID).Msg("worker started")
	if err := p.Run(ctx); err != nil {
		logx.Error().Err(err).Msg("worker stopped")
	}
	logx.Info().Msg("worker stopped")
}
