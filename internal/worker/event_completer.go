package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/pkg/logger"
	"github.com/Rohit-Bhardwaj10/EventFlow-v2/internal/pkg/metrics"
)

// EventCompleter は終了日時を過ぎたイベントを完了にするインターフェース
type EventCompleter interface {
	CompletePastEvents(ctx context.Context, now time.Time) (int64, error)
}

// EventCompletionWorker は公開中で終了済みのイベントを定期的に COMPLETED にするワーカー
type EventCompletionWorker struct {
	eventService EventCompleter
	metrics      *metrics.Metrics
	interval     time.Duration
	now          func() time.Time
	stopCh       chan struct{}
	doneCh       chan struct{}
}

// NewEventCompletionWorker は新しいワーカーを作成
func NewEventCompletionWorker(es EventCompleter, m *metrics.Metrics, interval time.Duration) *EventCompletionWorker {
	return &EventCompletionWorker{
		eventService: es,
		metrics:      m,
		interval:     interval,
		now:          time.Now,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// Start はワーカーを開始。起動直後に一度実行する
func (w *EventCompletionWorker) Start(ctx context.Context) {
	logger.Info("イベント完了ワーカー開始", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.doneCh)

	w.complete(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("イベント完了ワーカー停止（コンテキストキャンセル）")
			return
		case <-w.stopCh:
			logger.Info("イベント完了ワーカー停止（シグナル受信）")
			return
		case <-ticker.C:
			w.complete(ctx)
		}
	}
}

// Stop はワーカーを停止
func (w *EventCompletionWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

func (w *EventCompletionWorker) complete(ctx context.Context) {
	log := logger.Get()

	count, err := w.eventService.CompletePastEvents(ctx, w.now())
	if err != nil {
		log.Error("イベントの完了処理に失敗", zap.Error(err))
		return
	}

	if count > 0 {
		w.metrics.AddCompletedEvents(count)
		log.Info("終了したイベントを完了にしました", zap.Int64("count", count))
	} else {
		log.Debug("完了対象のイベントなし")
	}
}
