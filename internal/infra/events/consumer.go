package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"storefront/internal/domain/model"
)

// kafka.Readerのうち使う部分
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaConsumer struct {
	reader messageReader
}

func NewKafkaConsumer(brokers []string, topic, groupID string) *KafkaConsumer {
	return &KafkaConsumer{reader: kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        groupID,
		Topic:          topic,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})}
}

// 次のイベントを返す。commitは処理後にAckで行う
func (c *KafkaConsumer) Next(ctx context.Context) (model.ProductEvent, func(context.Context) error, error) {
	msg, err := c.reader.FetchMessage(ctx)
	if err != nil {
		return model.ProductEvent{}, nil, err
	}

	ack := func(ctx context.Context) error {
		return c.reader.CommitMessages(ctx, msg)
	}

	var ev model.ProductEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		return model.ProductEvent{}, ack, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	return ev, ack, nil
}

func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
