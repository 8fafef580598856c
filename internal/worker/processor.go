// Package worker は商品イベントを購読して後処理を行う。
package worker

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/infra/events"
	"storefront/internal/logx"
	repo "storefront/internal/repository"
)

// イベントの取り出し口（Kafka）
type EventSource interface {
	Next(ctx context.Context) (model.ProductEvent, func(context.Context) error, error)
}

// 説明文の生成
type Describer interface {
	GenerateDescription(ctx context.Context, title, category string) (string, error)
}

type Processor struct {
	source   EventSource
	products repo.ProductRepository
	ai       Describer
	backoff  time.Duration
}

func NewProcessor(source EventSource, products repo.ProductRepository, ai Describer) *Processor {
	return &Processor{source: source, products: products, ai: ai, backoff: time.Second}
}

// ctxが終わるまでイベントを処理する
func (p *Processor) Run(ctx context.Context) error {
	for {
		ev, ack, err := p.source.Next(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			if errors.Is(err, events.ErrMalformedEvent) {
				logx.Warn().Err(err).Msg("skipping malformed event")
				p.commit(ctx, ack)
				continue
			}
			logx.Error().Err(err).Msg("fetch event failed")
			if !p.wait(ctx) {
				return nil
			}
			continue
		}

		if !p.handleUntilDone(ctx, ev) {
			return nil
		}
		p.commit(ctx, ack)
	}
}

// offsetは累積でcommitされるので、失敗したイベントを飛ばさずその場で再試行する
func (p *Processor) handleUntilDone(ctx context.Context, ev model.ProductEvent) bool {
	for {
		err := p.Handle(ctx, ev)
		if err == nil {
			return true
		}
		logx.Error().Err(err).Str("event_id", ev.ID).Int64("product_id", ev.ProductID).Msg("handle event failed, retrying")
		if !p.wait(ctx) {
			return false
		}
	}
}

// 説明文が空の新規商品に説明文を入れる。それ以外のイベントは何もしない
func (p *Processor) Handle(ctx context.Context, ev model.ProductEvent) error {
	if ev.Type != model.ProductEventCreated {
		return nil
	}

	product, err := p.products.FindByID(ctx, ev.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		//作成直後に削除された
		return nil
	}
	if err != nil {
		return err
	}
	if strings.TrimSpace(product.Description) != "" {
		return nil
	}

	desc, err := p.ai.GenerateDescription(ctx, product.Name, product.Category)
	if err != nil {
		logx.Warn().Err(err).Int64("product_id", product.ID).Msg("description not generated")
		return nil
	}

	if err := p.products.UpdateDescription(ctx, product.ID, desc); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return err
	}
	logx.Info().Int64("product_id", product.ID).Msg("description generated")
	return nil
}

func (p *Processor) commit(ctx context.Context, ack func(context.Context) error) {
	if ack == nil {
		return
	}
	if err := ack(ctx); err != nil && ctx.Err() == nil {
		logx.Warn().Err(err).Msg("commit event failed")
	}
}

func (p *Processor) wait(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	t := time.NewTimer(p.backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
