// Package events は商品イベントをKafkaへ送受信する。
package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"storefront/internal/domain/model"
)

// kafka.Writerのうち使う部分
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}}
}

// 同じ商品のイベントは同じパーティションへ
func (p *KafkaPublisher) Publish(ctx context.Context, ev model.ProductEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.ProductID, 10)),
		Value: value,
		Time:  ev.Timestamp,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// KAFKA_BROKERS未設定のとき
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, model.ProductEvent) error { return nil }
func (NopPublisher) Close() error                                      { return nil }
