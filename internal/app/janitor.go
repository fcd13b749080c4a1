package app

import (
	"context"
	"time"

	"github.com/Freeeeeet/appointment_service/internal/ratelimit"
	"go.uber.org/zap"
)

// Janitor периодически чистит устаревшие ключи лимитера
type Janitor struct {
	limiter  *ratelimit.Limiter
	interval time.Duration
	maxIdle  time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	done     chan struct{}
}

// NewJanitor создаёт новый janitor
func NewJanitor(limiter *ratelimit.Limiter, interval, maxIdle time.Duration, logger *zap.Logger) *Janitor {
	return &Janitor{
		limiter:  limiter,
		interval: interval,
		maxIdle:  maxIdle,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновую задачу
func (j *Janitor) Start(ctx context.Context) {
	j.logger.Info("Starting rate limiter janitor", zap.Duration("interval", j.interval))
	go j.run(ctx)
}

// Stop останавливает фоновую задачу и ждёт её завершения
func (j *Janitor) Stop() {
	j.logger.Info("Stopping rate limiter janitor")
	close(j.stopChan)
	<-j.done
}

func (j *Janitor) run(ctx context.Context) {
	defer close(j.done)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.sweep()
		case <-j.stopChan:
			j.logger.Info("Rate limiter janitor stopped")
			return
		case <-ctx.Done():
			j.logger.Info("Rate limiter janitor cancelled")
			return
		}
	}
}

func (j *Janitor) sweep() {
	if removed := j.limiter.Sweep(j.maxIdle); removed > 0 {
		j.logger.Debug("Rate limiter entries swept",
			zap.Int("removed", removed),
			zap.Int("remaining", j.limiter.Len()),
		)
	}
}
