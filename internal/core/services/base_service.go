package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/academy_fee_ledger/internal/apperrors"
	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/academy_fee_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/academy_fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/academy_fee_ledger/internal/middleware"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

// TxRetryConfig bounds how often a transaction that lost a race is re-run.
type TxRetryConfig struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultTxRetryConfig retries five times starting at 20ms.
func DefaultTxRetryConfig() TxRetryConfig {
	return TxRetryConfig{
		MaxRetries:      5,
		InitialInterval: 20 * time.Millisecond,
		MaxInterval:     time.Second,
	}
}

// BaseService provides common functionality for all services
type BaseService struct {
	TxManager portsrepo.TransactionManager
	Policy    domain.LedgerPolicy
	Retry     TxRetryConfig
	Now       func() time.Time
	Publisher portssvc.ActivityPublisher
}

func newBaseService(txManager portsrepo.TransactionManager) BaseService {
	return BaseService{
		TxManager: txManager,
		Policy:    domain.DefaultLedgerPolicy(),
		Retry:     DefaultTxRetryConfig(),
		Now:       time.Now,
	}
}

// Option configures the shared parts of a ledger service.
type Option func(*BaseService)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *BaseService) {
		s.Now = now
	}
}

// WithLedgerPolicy sets the split, precision and due-date rules.
func WithLedgerPolicy(policy domain.LedgerPolicy) Option {
	return func(s *BaseService) {
		s.Policy = policy
	}
}

// WithTxRetry sets the retry budget for conflicting transactions.
func WithTxRetry(cfg TxRetryConfig) Option {
	return func(s *BaseService) {
		s.Retry = cfg
	}
}

// WithActivityPublisher forwards committed activities to publisher.
func WithActivityPublisher(publisher portssvc.ActivityPublisher) Option {
	return func(s *BaseService) {
		s.Publisher = publisher
	}
}

func (s *BaseService) apply(opts []Option) {
	for _, opt := range opts {
		opt(s)
	}
	if s.Now == nil {
		s.Now = time.Now
	}
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a rejected or no-op request
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// now returns the service clock in the policy timezone.
func (s *BaseService) now() time.Time {
	t := s.Now()
	if s.Policy.Location != nil {
		t = t.In(s.Policy.Location)
	}
	return t
}

// runInTx runs fn in one store transaction. When the store aborts the
// transaction because of a concurrent writer the whole of fn is run again
// with exponential backoff. fn must therefore reset any state it captures.
// Once retries are spent domain.ErrConcurrentModification is returned.
func (s *BaseService) runInTx(ctx context.Context, op string, fn func(ctx context.Context, tx portsrepo.TxRepositories) error) error {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = s.Retry.InitialInterval
	if s.Retry.MaxInterval > 0 {
		expo.MaxInterval = s.Retry.MaxInterval
	}
	expo.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(expo, s.Retry.MaxRetries), ctx)

	attempt := 0
	operation := func() error {
		attempt++
		err := s.TxManager.WithinTx(ctx, fn)
		if err == nil {
			return nil
		}
		if errors.Is(err, apperrors.ErrTxConflict) {
			s.LogDebug(ctx, "Transaction conflict, retrying",
				slog.String("operation", op),
				slog.Int("attempt", attempt))
			return err
		}
		return backoff.Permanent(err)
	}

	err := backoff.Retry(operation, policy)
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrTxConflict) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		s.LogWarn(ctx, "Transaction retries exhausted",
			slog.String("operation", op),
			slog.Int("attempts", attempt))
		return domain.ErrConcurrentModification
	}
	return err
}

// newActivity builds a feed entry stamped with the service clock.
func (s *BaseService) newActivity(kind domain.ActivityKind, entityID string, actorID string, message string) domain.Activity {
	if actorID == "" {
		actorID = domain.SystemActor
	}
	return domain.Activity{
		ActivityID: uuid.NewString(),
		Kind:       kind,
		EntityID:   entityID,
		Message:    message,
		CreatedAt:  s.now(),
		CreatedBy:  actorID,
	}
}

// publish forwards activities that were committed with the transaction.
func (s *BaseService) publish(activities ...domain.Activity) {
	if s.Publisher == nil {
		return
	}
	for _, a := range activities {
		s.Publisher.Publish(a)
	}
}
