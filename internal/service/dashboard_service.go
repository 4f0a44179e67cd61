package service

import (
	"context"
	"time"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/repository"
)

// DefaultRecentWindow is the canonical trailing span for "recent activity"
// statistics. The boundary is inclusive: a record dated exactly at
// now-window still counts.
const DefaultRecentWindow = 30 * 24 * time.Hour

// Dashboard is the aggregate view served to the dashboard page.
type Dashboard struct {
	TotalIncome  float64
	TotalExpense float64
	TotalBalance float64
	Recent       []domain.Transaction
}

// CategoryTotal is the summed amount for one category.
type CategoryTotal struct {
	Category string
	Total    float64
	Count    int
}

// ActivitySummary describes the records inside a recency window.
type ActivitySummary struct {
	Count int
	Total float64
}

// KindStats bundles the per-kind figures shown on the income and expense
// pages. Largest is the single biggest record; TopCategory is the category
// with the greatest summed amount.
type KindStats struct {
	Total          float64
	Average        float64
	Largest        domain.Transaction
	TopCategory    CategoryTotal
	RecentActivity ActivitySummary
}

// DashboardService reduces a user's raw transaction records into dashboard
// figures. Aggregation is all-or-nothing: if a fetch fails no partial result
// is returned.
type DashboardService interface {
	BuildDashboard(ctx context.Context, userID int64, recentLimit int) (*Dashboard, error)
	Stats(ctx context.Context, userID int64, kind domain.Kind) (*KindStats, error)
}

type dashboardService struct {
	transactions repository.TransactionRepository
	now          func() time.Time
}

func NewDashboardService(transactions repository.TransactionRepository) DashboardService {
	return &dashboardService{
		transactions: transactions,
		now:          time.Now,
	}
}

// BuildDashboard computes totals over all of the user's records and a
// kind-tagged feed sorted by date descending. The records are fetched in one
// call so the totals and the feed always describe the same snapshot.
// recentLimit bounds the feed; zero or negative means unbounded.
func (s *dashboardService) BuildDashboard(ctx context.Context, userID int64, recentLimit int) (*Dashboard, error) {
	records, err := s.transactions.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{}
	for i := range records {
		switch records[i].Kind {
		case domain.KindIncome:
			dashboard.TotalIncome += records[i].Amount
		case domain.KindExpense:
			dashboard.TotalExpense += records[i].Amount
		}
	}
	dashboard.TotalBalance = dashboard.TotalIncome - dashboard.TotalExpense

	recent := records
	if recentLimit > 0 && len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	dashboard.Recent = recent
	return dashboard, nil
}

// Stats computes the per-kind summary: total, average, largest single record,
// top summed category and the trailing 30-day activity.
func (s *dashboardService) Stats(ctx context.Context, userID int64, kind domain.Kind) (*KindStats, error) {
	records, err := s.transactions.ListByKind(ctx, userID, kind)
	if err != nil {
		return nil, err
	}

	stats := &KindStats{
		Total:          SumAmounts(records),
		Average:        Average(records),
		RecentActivity: RecentActivity(records, s.now().UTC(), DefaultRecentWindow),
	}
	if largest, ok := LargestEntry(records); ok {
		stats.Largest = largest
	}
	if top, ok := TopCategory(records); ok {
		stats.TopCategory = top
	}
	return stats, nil
}

// LargestEntry returns the record with the greatest single amount. Ties go to
// the record appearing first. ok is false for an empty input.
func LargestEntry(records []domain.Transaction) (largest domain.Transaction, ok bool) {
	if len(records) == 0 {
		return domain.Transaction{}, false
	}
	largest = records[0]
	for i := range records[1:] {
		if records[i+1].Amount > largest.Amount {
			largest = records[i+1]
		}
	}
	return largest, true
}

// SumAmounts totals the amounts of records. An empty input sums to 0.
func SumAmounts(records []domain.Transaction) float64 {
	var total float64
	for i := range records {
		total += records[i].Amount
	}
	return total
}

// Average returns the mean amount, or 0 for an empty input.
func Average(records []domain.Transaction) float64 {
	if len(records) == 0 {
		return 0
	}
	return SumAmounts(records) / float64(len(records))
}

// CategoryTotals sums amounts per category, ordered by first appearance in
// records. The ordering makes TopCategory deterministic for a fixed input.
func CategoryTotals(records []domain.Transaction) []CategoryTotal {
	index := make(map[string]int)
	var totals []CategoryTotal
	for i := range records {
		pos, ok := index[records[i].Category]
		if !ok {
			pos = len(totals)
			index[records[i].Category] = pos
			totals = append(totals, CategoryTotal{Category: records[i].Category})
		}
		totals[pos].Total += records[i].Amount
		totals[pos].Count++
	}
	return totals
}

// TopCategory returns the category with the greatest summed amount. Ties go
// to the category encountered first. ok is false for an empty input.
func TopCategory(records []domain.Transaction) (top CategoryTotal, ok bool) {
	totals := CategoryTotals(records)
	if len(totals) == 0 {
		return CategoryTotal{}, false
	}
	top = totals[0]
	for _, ct := range totals[1:] {
		if ct.Total > top.Total {
			top = ct
		}
	}
	return top, true
}

// RecentActivity summarizes the records dated within the trailing window
// ending at now. The window start is inclusive.
func RecentActivity(records []domain.Transaction, now time.Time, window time.Duration) ActivitySummary {
	cutoff := now.Add(-window)
	var summary ActivitySummary
	for i := range records {
		if records[i].Date.Before(cutoff) {
			continue
		}
		summary.Count++
		summary.Total += records[i].Amount
	}
	return summary
}
