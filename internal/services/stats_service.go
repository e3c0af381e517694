package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"momopress/internal/budget"
	"momopress/internal/models"
	"momopress/internal/pagination"
)

// fuzzyMinLen is the shortest search term matched with edit distance.
const fuzzyMinLen = 4

// fuzzyMaxDistance is the largest edit distance counted as a match.
const fuzzyMaxDistance = 2

// statsService builds overview and history read models.
type statsService struct {
	ledger LedgerServicer
	users  UserServicer
}

// NewStatsService creates a new StatsServicer.
func NewStatsService(ledger LedgerServicer, users UserServicer) StatsServicer {
	return &statsService{ledger: ledger, users: users}
}

// Overview summarizes the spending of phone over period.
func (s *statsService) Overview(ctx context.Context, phone string, period budget.Period, now time.Time) (*SpendingOverview, error) {
	user, err := s.users.GetUserByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	window := budget.WindowFor(period, now)
	agg, err := s.ledger.Spending(ctx, phone, window)
	if err != nil {
		return nil, err
	}
	entries, err := s.ledger.Entries(ctx, phone, &window)
	if err != nil {
		return nil, err
	}

	total := agg.Total()
	overview := &SpendingOverview{
		Period:     period,
		Start:      window.Start,
		End:        window.End,
		Balance:    user.Balance,
		TotalSpent: total,
		Categories: make([]CategorySpend, 0, len(models.Categories)),
	}

	for _, c := range models.Categories {
		overview.Categories = append(overview.Categories, CategorySpend{
			Category:   c,
			Label:      c.Label(),
			Amount:     agg[c],
			Percentage: percentage(agg[c], total),
		})
	}

	buckets := budget.Buckets(period, now)
	overview.Chart = make([]ChartPoint, len(buckets))
	for i, b := range buckets {
		overview.Chart[i] = ChartPoint{Start: b.Start, End: b.End}
	}

	for _, e := range entries {
		overview.Counts.Total++
		if e.Direction == models.DirectionReceived {
			overview.Counts.Received++
			continue
		}
		overview.Counts.Sent++
		for i, b := range buckets {
			if b.Contains(e.Date) {
				overview.Chart[i].Amount += e.Amount
				break
			}
		}
	}

	return overview, nil
}

// History lists the merged transactions of phone matching filter.
// Totals cover every match, not only the returned page.
func (s *statsService) History(ctx context.Context, phone string, filter HistoryFilter, page pagination.PageRequest, now time.Time) (*History, error) {
	var window *budget.Window
	if filter.Period != nil {
		w := budget.WindowFor(*filter.Period, now)
		window = &w
	}

	entries, err := s.ledger.Entries(ctx, phone, window)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matched := entries[:0]
	var received, sent int64
	for _, e := range entries {
		if filter.Category != nil && e.Category != *filter.Category {
			continue
		}
		if search != "" && !matchesSearch(e, search) {
			continue
		}
		if e.Direction == models.DirectionReceived {
			received += e.Amount
		} else {
			sent += e.Amount
		}
		matched = append(matched, e)
	}

	return &History{
		PageResponse:  pagination.Slice(matched, page),
		TotalReceived: received,
		TotalSent:     sent,
	}, nil
}

// matchesSearch reports whether term occurs in the counterparty, label or
// reference of e, or is within a small edit distance of one of their words.
func matchesSearch(e models.Entry, term string) bool {
	fields := []string{
		strings.ToLower(e.Counterparty),
		strings.ToLower(e.Label),
		strings.ToLower(e.Reference),
	}
	for _, f := range fields {
		if strings.Contains(f, term) {
			return true
		}
	}

	if len(term) < fuzzyMinLen {
		return false
	}
	for _, f := range fields[:2] {
		for _, w := range strings.Fields(f) {
			if levenshtein.ComputeDistance(w, term) <= fuzzyMaxDistance {
				return true
			}
		}
	}
	return false
}

func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
