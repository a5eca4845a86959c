package workers

import (
	"context"

	"smartmatch_backend/internal/logger"
	"smartmatch_backend/internal/models"
	"smartmatch_backend/internal/repositories"
)

const defaultLedgerBuffer = 256

// LedgerWorker drains learning-ledger batches onto storage in the
// background. Recording is loss-tolerant: when the buffer is full the batch
// is dropped and logged, and write failures are logged and forgotten. The
// matching response must never wait on the ledger.
type LedgerWorker struct {
	repo   repositories.MatchingEventRepository
	events chan []models.MatchingEvent
}

func NewLedgerWorker(repo repositories.MatchingEventRepository, buffer int) *LedgerWorker {
	if buffer <= 0 {
		buffer = defaultLedgerBuffer
	}
	return &LedgerWorker{
		repo:   repo,
		events: make(chan []models.MatchingEvent, buffer),
	}
}

// Start launches the drain loop. It returns immediately; the loop exits
// when ctx is cancelled.
func (w *LedgerWorker) Start(ctx context.Context) {
	go w.drain(ctx)
}

// Record enqueues one batch without blocking. A full buffer drops the batch.
func (w *LedgerWorker) Record(events []models.MatchingEvent) {
	if len(events) == 0 {
		return
	}
	select {
	case w.events <- events:
	default:
		logger.Warn("ledger buffer full, dropping batch", "count", len(events))
	}
}

func (w *LedgerWorker) drain(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			logger.Info("ledger worker stopped")
			return
		case batch := <-w.events:
			if err := w.repo.Create(batch); err != nil {
				logger.WorkerLog("ledger_worker", "write_batch", err)
			}
		}
	}
}
