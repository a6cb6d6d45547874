package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/academy_fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/academy_fee_ledger/internal/middleware"
	"github.com/cenkalti/backoff/v4"
)

// FeeScheduler bills the current period on startup and then on every tick.
// It is the only background writer of the ledger.
type FeeScheduler struct {
	fees      portssvc.FeeSvcFacade
	interval  time.Duration
	logger    *slog.Logger
	newPolicy func() backoff.BackOff
}

// NewFeeScheduler creates a scheduler. A non-positive interval runs the
// generator once on startup only.
func NewFeeScheduler(fees portssvc.FeeSvcFacade, interval time.Duration, logger *slog.Logger) *FeeScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeeScheduler{
		fees:     fees,
		interval: interval,
		logger:   logger.With(slog.String("component", "fee_scheduler")),
		newPolicy: func() backoff.BackOff {
			expo := backoff.NewExponentialBackOff()
			expo.InitialInterval = time.Second
			expo.MaxInterval = time.Minute
			expo.MaxElapsedTime = 10 * time.Minute
			return expo
		},
	}
}

// WithRetryPolicy overrides the backoff used when a run fails.
func (s *FeeScheduler) WithRetryPolicy(newPolicy func() backoff.BackOff) *FeeScheduler {
	s.newPolicy = newPolicy
	return s
}

// Start runs the scheduler until ctx is cancelled.
func (s *FeeScheduler) Start(ctx context.Context) {
	ctx = middleware.WithLogger(ctx, s.logger)
	s.RunOnce(ctx)
	if s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Fee scheduler stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce bills the current period, retrying failed runs with exponential
// backoff. Students billed by a failed attempt are skipped by the retry.
func (s *FeeScheduler) RunOnce(ctx context.Context) {
	period := s.fees.CurrentPeriod()
	total := 0
	operation := func() error {
		billed, err := s.fees.GenerateMonthlyFees(ctx, period)
		total += billed
		return err
	}
	notify := func(err error, wait time.Duration) {
		s.logger.Warn("Fee generation failed, retrying",
			slog.String("period", period.String()),
			slog.Duration("retry_in", wait),
			slog.String("error", err.Error()))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(s.newPolicy(), ctx), notify); err != nil {
		s.logger.Error("Fee generation gave up",
			slog.String("period", period.String()),
			slog.Int("billed", total),
			slog.String("error", err.Error()))
		return
	}
	if total > 0 {
		s.logger.Info("Scheduled fee generation finished",
			slog.String("period", period.String()),
			slog.Int("billed", total))
	}
}
