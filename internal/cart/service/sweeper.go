package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ridloal/cart-approval-api/internal/platform/logger"
)

const sweepSchedule = "@every 15m"

// ReviewTimeoutSweeper periodically auto-declines carts that have sat in
// pending longer than maxAge.
type ReviewTimeoutSweeper struct {
	carts     CartService
	maxAge    time.Duration
	scheduler *cron.Cron
}

func NewReviewTimeoutSweeper(carts CartService, maxAge time.Duration) *ReviewTimeoutSweeper {
	return &ReviewTimeoutSweeper{
		carts:     carts,
		maxAge:    maxAge,
		scheduler: cron.New(),
	}
}

func (w *ReviewTimeoutSweeper) Start() {
	if w.maxAge <= 0 {
		logger.Info("Review timeout sweeper disabled (PENDING_CART_MAX_AGE_HOURS not set)")
		return
	}
	w.scheduler.AddFunc(sweepSchedule, func() {
		// Background context: the job outlives any request.
		w.carts.ProcessReviewTimeouts(context.Background(), w.maxAge)
	})
	w.scheduler.Start()
	logger.Info(fmt.Sprintf("Review timeout sweeper started with schedule '%s' and max age %v", sweepSchedule, w.maxAge))
}

func (w *ReviewTimeoutSweeper) Stop() {
	w.scheduler.Stop()
}
