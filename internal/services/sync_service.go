package services

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"momopress/internal/budget"
	apperrors "momopress/internal/errors"
	"momopress/internal/logger"
	"momopress/internal/metrics"
	"momopress/internal/models"
	"momopress/internal/momo"
	"momopress/internal/notify"
)

// SyncDeps are the collaborators of the sync orchestrator. Notifier and
// Metrics may be nil.
type SyncDeps struct {
	Source      MessageSource
	Users       UserServicer
	Ledger      LedgerServicer
	Budgets     BudgetServicer
	Checkpoints CheckpointServicer
	Notifier    notify.Notifier
	Metrics     *metrics.Metrics
}

// SyncOptions tune a sync orchestrator.
type SyncOptions struct {
	// Sender is the SMS address transactions are read from.
	Sender string
	// FetchTimeout bounds the message source read. Zero means no bound.
	FetchTimeout time.Duration
	// Location decides where months start for budget checks. Defaults to UTC.
	Location *time.Location
}

// syncService reads new messages, records them and checks budgets.
type syncService struct {
	deps    SyncDeps
	opts    SyncOptions
	now     func() time.Time
	running atomic.Bool
}

// NewSyncService creates the sync orchestrator. Create one per process so
// every caller shares the in-flight guard.
func NewSyncService(deps SyncDeps, opts SyncOptions) SyncServicer {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &syncService{deps: deps, opts: opts, now: time.Now}
}

// Sync runs one cycle for phone. A call made while another cycle is running
// returns a skipped result and touches nothing.
func (s *syncService) Sync(ctx context.Context, phone string, incremental bool) (*SyncResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		logger.For(logger.ComponentSync).Infow("Sync already running, skipping", "phone", phone)
		s.deps.Metrics.SyncRun(incremental, metrics.OutcomeSkipped, 0)
		return &SyncResult{Skipped: true, Incremental: incremental}, nil
	}
	defer s.running.Store(false)

	started := time.Now()
	result, err := s.run(ctx, phone, incremental)
	took := time.Since(started)

	outcome := metrics.OutcomeOK
	switch {
	case errors.Is(err, apperrors.ErrMessageFetch):
		outcome = metrics.OutcomeFetchError
	case err != nil:
		outcome = metrics.OutcomeError
	default:
		result.DurationMS = took.Milliseconds()
	}
	s.deps.Metrics.SyncRun(incremental, outcome, took)
	return result, err
}

func (s *syncService) run(ctx context.Context, phone string, incremental bool) (*SyncResult, error) {
	log := logger.For(logger.ComponentSync).With("phone", phone, "incremental", incremental)
	now := s.now().In(s.opts.Location)
	result := &SyncResult{Incremental: incremental, Alerts: []budget.Alert{}}

	previous, err := s.deps.Checkpoints.LastSyncedAt(ctx, phone)
	if err != nil {
		return nil, err
	}
	result.Checkpoint = previous

	var from time.Time
	if incremental && !previous.IsZero() {
		from = previous.Add(time.Millisecond)
	}

	msgs, err := s.fetch(ctx, phone, from, now)
	if err != nil {
		log.Errorw("Failed to read messages", "error", err)
		return nil, apperrors.Wrap(apperrors.ErrMessageFetch, err)
	}
	result.Fetched = len(msgs)

	s.updateBalance(ctx, log, phone, msgs, result)

	var newest, earliestFailed time.Time
	for _, msg := range msgs {
		tx := momo.Parse(msg, phone)
		at := tx.GetDate()
		if at.After(newest) {
			newest = at
		}
		category := string(tx.Category())

		if isBalanceNotice(tx, msg.Body) {
			result.Ignored++
			s.deps.Metrics.Record(category, metrics.RecordIgnored)
			continue
		}

		inserted, err := s.deps.Ledger.Record(ctx, tx)
		switch {
		case err != nil:
			result.Failed++
			if earliestFailed.IsZero() || at.Before(earliestFailed) {
				earliestFailed = at
			}
			s.deps.Metrics.Record(category, metrics.RecordFailed)
			log.Errorw("Failed to record transaction",
				"error", err,
				"transaction_id", tx.GetID(),
				"category", category,
				"date", at,
			)
		case inserted:
			result.Inserted++
			s.deps.Metrics.Record(category, metrics.RecordInserted)
		default:
			result.Duplicates++
			s.deps.Metrics.Record(category, metrics.RecordDuplicate)
		}
	}

	target := checkpointTarget(incremental, result.Inserted, newest, earliestFailed, now)
	cp, err := s.deps.Checkpoints.Advance(ctx, phone, target, now, result.Inserted)
	if err != nil {
		log.Errorw("Failed to advance checkpoint", "error", err, "target", target)
	} else {
		result.Checkpoint = cp.LastSyncedAt
	}

	s.checkBudget(ctx, log, phone, now, result)

	log.Infow("Sync completed",
		"fetched", result.Fetched,
		"inserted", result.Inserted,
		"duplicates", result.Duplicates,
		"ignored", result.Ignored,
		"failed", result.Failed,
		"checkpoint", result.Checkpoint,
		"alerts", len(result.Alerts),
	)
	return result, nil
}

func (s *syncService) fetch(ctx context.Context, phone string, from, to time.Time) ([]models.RawMessage, error) {
	if s.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.FetchTimeout)
		defer cancel()
	}
	return s.deps.Source.ListMessages(ctx, phone, from, to, s.opts.Sender)
}

// updateBalance stores the balance of the first message, in source order,
// that reports one.
func (s *syncService) updateBalance(ctx context.Context, log *zap.SugaredLogger, phone string, msgs []models.RawMessage, result *SyncResult) {
	for _, msg := range msgs {
		balance, ok := momo.ExtractBalance(msg.Body)
		if !ok {
			continue
		}
		if err := s.deps.Users.UpdateBalance(ctx, phone, balance, msg.Timestamp); err != nil {
			log.Warnw("Failed to update balance", "error", err, "balance", balance)
			return
		}
		result.Balance = &balance
		return
	}
}

func (s *syncService) checkBudget(ctx context.Context, log *zap.SugaredLogger, phone string, now time.Time, result *SyncResult) {
	alerts, err := s.deps.Budgets.CheckAlerts(ctx, phone, now)
	if err != nil {
		log.Warnw("Budget check failed", "error", err)
		return
	}
	if len(alerts) == 0 {
		return
	}

	result.Alerts = alerts
	for _, a := range alerts {
		s.deps.Metrics.Alert(a.Label)
	}
	if s.deps.Notifier == nil {
		return
	}
	if err := s.deps.Notifier.BudgetAlerts(ctx, phone, alerts); err != nil {
		log.Warnw("Failed to deliver budget alerts", "error", err, "alerts", len(alerts))
	}
}

// checkpointTarget picks where the checkpoint should move after a cycle.
// The store keeps the larger of this and the current value.
func checkpointTarget(incremental bool, inserted int, newest, earliestFailed, now time.Time) time.Time {
	target := newest
	if !incremental && inserted == 0 {
		target = now
	}
	if !earliestFailed.IsZero() {
		retryFrom := earliestFailed.Add(-time.Millisecond)
		if target.After(retryFrom) {
			target = retryFrom
		}
	}
	return target
}

// isBalanceNotice reports whether tx is a plain balance message, which is
// not a transaction of its own.
func isBalanceNotice(tx models.Transaction, body string) bool {
	if tx.Category() != models.CategoryOther || tx.GetAmount() != 0 {
		return false
	}
	_, ok := momo.ExtractBalance(body)
	return ok
}
