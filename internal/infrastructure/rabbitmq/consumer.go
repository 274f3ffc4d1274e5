package rabbitmq

import (
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sanosuguru/go-facility-reservation/internal/application"
	"github.com/sanosuguru/go-facility-reservation/internal/config"
)

// Consumer は予約イベントをキューから購読する
type Consumer struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewConsumer はブローカーに接続し、購読用のキューを宣言する
func NewConsumer(cfg *config.RabbitMQConfig) (*Consumer, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("ブローカー接続に失敗: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("チャネル作成に失敗: %w", err)
	}
	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("キュー宣言に失敗: %w", err)
	}
	return &Consumer{conn: conn, ch: ch, queue: cfg.Queue}, nil
}

// Events はデコード済みイベントのチャネルを返す
// 不正なメッセージは破棄（Nack・再配送なし）される
func (c *Consumer) Events() (<-chan application.BookingEvent, error) {
	deliveries, err := c.ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("購読開始に失敗: %w", err)
	}
	events := make(chan application.BookingEvent)
	go func() {
		defer close(events)
		for d := range deliveries {
			var event application.BookingEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				_ = d.Nack(false, false)
				continue
			}
			events <- event
			_ = d.Ack(false)
		}
	}()
	return events, nil
}

// Close は接続を閉じる
func (c *Consumer) Close() error {
	if err := c.ch.Close(); err != nil {
		return err
	}
	return c.conn.Close()
}
