package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-facility-reservation/internal/application"
	"github.com/sanosuguru/go-facility-reservation/internal/pkg/logger"
)

// EventSource は予約イベントの購読元インターフェース
type EventSource interface {
	Events() (<-chan application.BookingEvent, error)
}

// EventHandler はイベント1件を処理する関数
// nil の場合はログ出力のみ行う
type EventHandler func(ctx context.Context, event application.BookingEvent) error

// NotificationWorker は予約イベントを購読して通知処理を行うワーカー
type NotificationWorker struct {
	source  EventSource
	handler EventHandler
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewNotificationWorker は新しい通知ワーカーを作成
func NewNotificationWorker(source EventSource, handler EventHandler) *NotificationWorker {
	return &NotificationWorker{
		source:  source,
		handler: handler,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// Start はワーカーを開始
func (w *NotificationWorker) Start(ctx context.Context) error {
	events, err := w.source.Events()
	if err != nil {
		close(w.doneCh)
		return err
	}

	logger.Info("通知ワーカー開始")
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("通知ワーカー停止（コンテキストキャンセル）")
			return nil
		case <-w.stopCh:
			logger.Info("通知ワーカー停止（シグナル受信）")
			return nil
		case event, ok := <-events:
			if !ok {
				logger.Warn("イベントチャネルが閉じられました")
				return nil
			}
			w.process(ctx, event)
		}
	}
}

// Stop はワーカーを停止
func (w *NotificationWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

// process はイベント1件を処理
func (w *NotificationWorker) process(ctx context.Context, event application.BookingEvent) {
	log := logger.Get()
	log.Info("予約イベント受信",
		zap.String("type", string(event.Type)),
		zap.String("booking_id", event.BookingID),
		zap.String("account_id", event.AccountID),
		zap.String("facility_id", event.FacilityID),
		zap.String("date", event.Date),
		zap.String("status", event.Status),
		zap.Int("price", event.Price),
	)

	if w.handler == nil {
		return
	}
	if err := w.handler(ctx, event); err != nil {
		log.Error("予約イベントの処理失敗",
			zap.String("booking_id", event.BookingID),
			zap.Error(err),
		)
	}
}
