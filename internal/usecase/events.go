package usecase

import (
	"context"

	"storefront/internal/domain/model"
	"storefront/internal/logx"
)

// 送信失敗はログだけ残して本処理は成功扱い
func publishProductEvent(ctx context.Context, pub EventPublisher, ids IDGenerator, clock Clock, typ model.ProductEventType, p model.Product) {
	if pub == nil {
		return
	}
	ev := model.ProductEvent{
		ID:        ids.NewID(),
		Type:      typ,
		ProductID: p.ID,
		SellerID:  p.SellerID,
		Timestamp: clock.Now().UTC(),
	}
	if err := pub.Publish(ctx, ev); err != nil {
		logx.Warn().Err(err).Str("type", string(typ)).Int64("product_id", p.ID).Msg("failed to publish product event")
	}
}
