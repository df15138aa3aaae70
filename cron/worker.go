package cron

import (
	"context"
	"time"

	"visionhealth/services/payment"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Reconciler is the part of the payment service the worker drives.
type Reconciler interface {
	Reconcile(ctx context.Context) (int, error)
}

var _ Reconciler = (payment.PaymentService)(nil)

// RunReconcile performs one settlement reconciliation pass with a bounded timeout.
func RunReconcile(r Reconciler, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	settled, err := r.Reconcile(ctx)
	if err != nil {
		logger.Error("[SettlementWorker] reconciliation failed", zap.Error(err))
		return
	}
	if settled > 0 {
		logger.Info("[SettlementWorker] settled pending payments", zap.Int("count", settled))
	}
}

// InitSettlementWorker schedules payment reconciliation on schedule and starts it.
// The caller stops the returned scheduler on shutdown.
func InitSettlementWorker(r Reconciler, schedule string, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { RunReconcile(r, logger) }); err != nil {
		return nil, err
	}
	c.Start()
	logger.Info("[SettlementWorker] started", zap.String("schedule", schedule))
	return c, nil
}
