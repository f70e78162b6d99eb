// Package completion периодически переводит бронирования с прошедшим
// интервалом в статус completed.
//
// Переход выполняется одним UPDATE по условию end_time <= now, поэтому
// пропущенный тик или перезапуск сервиса ничего не теряют: следующий
// проход доберет все просроченные строки.
package completion

import (
	"context"
	"time"
)

// Worker фоновый процесс завершения просроченных бронирований
type Worker struct {
	unitRepo     UnitBookingRepo
	eventRepo    EventBookingRepo
	timeProvider TimeProvider
	interval     time.Duration
	logger       Logger
}

// NewWorker создает новый экземпляр воркера
func NewWorker(unitRepo UnitBookingRepo, eventRepo EventBookingRepo, interval time.Duration, logger Logger) *Worker {
	return &Worker{
		unitRepo:     unitRepo,
		eventRepo:    eventRepo,
		timeProvider: &RealTimeProvider{},
		interval:     interval,
		logger:       logger,
	}
}

// Run запускает цикл завершения. Блокируется до отмены контекста.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("completion worker: started, interval=%s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Первый проход сразу при старте, не дожидаясь тика
	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("completion worker: stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep один проход завершения просроченных бронирований
func (w *Worker) sweep(ctx context.Context) {
	now := w.timeProvider.Now()

	units, err := w.unitRepo.CompleteExpired(ctx, now)
	if err != nil {
		w.logger.Error("completion worker: failed to complete expired unit bookings: %v", err)
	}

	events, err := w.eventRepo.CompleteExpired(ctx, now)
	if err != nil {
		w.logger.Error("completion worker: failed to complete expired event bookings: %v", err)
	}

	if units > 0 || events > 0 {
		w.logger.Info("completion worker: completed %d unit and %d event bookings", units, events)
	}
}
