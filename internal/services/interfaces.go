package services

import (
	"context"
	"time"

	"momopress/internal/budget"
	"momopress/internal/models"
	"momopress/internal/pagination"
)

// UserServicer defines the contract for account-related business logic.
type UserServicer interface {
	CreateUser(ctx context.Context, phone, name, password string) (*models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(ctx context.Context, phone, password string) (*models.User, error)
	UpdateName(ctx context.Context, phone, name string) (*models.User, error)
	UpdateBalance(ctx context.Context, phone string, balance int64, at time.Time) error
	ListPhones(ctx context.Context) ([]string, error)
}

// LedgerServicer stores parsed transactions and answers aggregate queries over them.
type LedgerServicer interface {
	// Record inserts tx unless a row with the same id exists. inserted is
	// false for duplicates, which are not an error.
	Record(ctx context.Context, tx models.Transaction) (inserted bool, err error)
	Spending(ctx context.Context, phone string, window budget.Window) (budget.Aggregates, error)
	// Entries lists every transaction of phone, newest first. A nil window
	// means no date filter.
	Entries(ctx context.Context, phone string, window *budget.Window) ([]models.Entry, error)
}

// BudgetServicer defines the contract for budget limits and alert checks.
type BudgetServicer interface {
	GetLimits(ctx context.Context, phone string) (*models.BudgetLimits, error)
	UpsertLimits(ctx context.Context, limits models.BudgetLimits) (*models.BudgetLimits, error)
	SetGeneralLimit(ctx context.Context, phone string, general int64) (*models.BudgetLimits, error)
	CheckAlerts(ctx context.Context, phone string, now time.Time) ([]budget.Alert, error)
}

// CheckpointServicer persists the sync checkpoint of each account.
type CheckpointServicer interface {
	Get(ctx context.Context, phone string) (*models.SyncCheckpoint, error)
	// LastSyncedAt returns the zero time when no checkpoint exists.
	LastSyncedAt(ctx context.Context, phone string) (time.Time, error)
	// Advance moves the checkpoint to at, or leaves it in place when at is older.
	Advance(ctx context.Context, phone string, at, runAt time.Time, inserted int) (*models.SyncCheckpoint, error)
}

// CategorySpend is the spending of one category in an overview.
type CategorySpend struct {
	Category   models.Category `json:"category"`
	Label      string          `json:"label"`
	Amount     int64           `json:"amount"`
	Percentage float64         `json:"percentage"`
}

// ChartPoint is the debit total of one chart bucket.
type ChartPoint struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Amount int64     `json:"amount"`
}

// TransactionCounts counts the transactions of a period by direction.
type TransactionCounts struct {
	Total    int `json:"total"`
	Sent     int `json:"sent"`
	Received int `json:"received"`
}

// SpendingOverview contains the period summary shown on the overview screen.
type SpendingOverview struct {
	Period     budget.Period     `json:"period"`
	Start      time.Time         `json:"start"`
	End        time.Time         `json:"end"`
	Balance    int64             `json:"balance"`
	TotalSpent int64             `json:"total_spent"`
	Categories []CategorySpend   `json:"categories"`
	Chart      []ChartPoint      `json:"chart"`
	Counts     TransactionCounts `json:"counts"`
}

// HistoryFilter holds optional filter parameters for listing transactions.
type HistoryFilter struct {
	Period   *budget.Period
	Category *models.Category
	Search   string
}

// History is a page of merged transactions plus totals over every match.
type History struct {
	pagination.PageResponse[models.Entry]
	TotalReceived int64 `json:"total_received"`
	TotalSent     int64 `json:"total_sent"`
}

// StatsServicer builds read models over the ledger.
type StatsServicer interface {
	Overview(ctx context.Context, phone string, period budget.Period, now time.Time) (*SpendingOverview, error)
	History(ctx context.Context, phone string, filter HistoryFilter, page pagination.PageRequest, now time.Time) (*History, error)
}

// InboxServicer stages SMS uploaded by a device.
type InboxServicer interface {
	// Stage stores msgs for phone and returns how many were new.
	Stage(ctx context.Context, phone string, msgs []models.RawMessage) (int, error)
}

// MessageSource reads raw SMS of one owner received within [from, to] from sender.
type MessageSource interface {
	ListMessages(ctx context.Context, owner string, from, to time.Time, sender string) ([]models.RawMessage, error)
}

// SyncResult summarizes one sync cycle.
type SyncResult struct {
	Skipped     bool           `json:"skipped"`
	Incremental bool           `json:"incremental"`
	Fetched     int            `json:"fetched"`
	Inserted    int            `json:"inserted"`
	Duplicates  int            `json:"duplicates"`
	Ignored     int            `json:"ignored"`
	Failed      int            `json:"failed"`
	Balance     *int64         `json:"balance,omitempty"`
	Checkpoint  time.Time      `json:"checkpoint"`
	Alerts      []budget.Alert `json:"alerts"`
	DurationMS  int64          `json:"duration_ms"`
}

// SyncServicer runs sync cycles. One instance serves the whole process.
type SyncServicer interface {
	Sync(ctx context.Context, phone string, incremental bool) (*SyncResult, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, phone, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
	List(ctx context.Context, phone string, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error)
}
