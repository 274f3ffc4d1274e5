package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-facility-reservation/internal/config"
	"github.com/sanosuguru/go-facility-reservation/internal/infrastructure/rabbitmq"
	"github.com/sanosuguru/go-facility-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-facility-reservation/internal/worker"
)

// 予約イベントを購読してログに記録するワーカープロセス。
// メールやチャット連携はここにハンドラーを差し込んで拡張する。
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger.Set(logger.NewLogger(os.Getenv("APP_ENV")))
	defer logger.Sync()

	if !cfg.RabbitMQ.Enabled() {
		logger.Fatal("RABBITMQ_URL が設定されていません")
	}

	consumer, err := rabbitmq.NewConsumer(&cfg.RabbitMQ)
	if err != nil {
		logger.Fatal("ブローカー接続エラー", zap.Error(err))
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := worker.NewNotificationWorker(consumer, nil)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("通知ワーカーをシャットダウンしています...")
		cancel()
	}()

	if err := w.Start(ctx); err != nil {
		logger.Fatal("通知ワーカー起動エラー", zap.Error(err))
	}
}
