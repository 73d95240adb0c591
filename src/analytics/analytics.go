// Package analytics computes the read-side projections of the transaction
// ledger: budget consumption, category breakdowns, monthly trends, and the
// dashboard summary. Every figure is recomputed from the ledger on each call;
// nothing here is cached or stored.
package analytics

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"
)

// Months are YYYY-MM strings and dates YYYY-MM-DD strings throughout, so
// range checks are plain lexicographic comparisons. The analytics window uses
// an inclusive [start-01, end-31] bound; "-31" over-reaches on short months
// but no stored date ever lands in the gap.

const (
	breakdownLimit = 20
	lookbackDays   = 180
	monthPrefixLen = 7
)

// SumSpent totals the expense transactions matching the category exactly and
// the YYYY-MM month prefix. An empty match is 0, not an error; income rows
// never contribute.
func SumSpent(transactions []models.Transaction, category, month string) float64 {
	var total float64
	for _, t := range transactions {
		if t.Type != models.TransactionTypeExpense {
			continue
		}
		if t.Category != category {
			continue
		}
		if !strings.HasPrefix(t.Date, month) {
			continue
		}
		total += t.Amount
	}
	return total
}

// CategoryBreakdown groups expense transactions by category, sorted
// descending by summed amount, keeping the top 20.
func CategoryBreakdown(transactions []models.Transaction) []models.CategoryAmount {
	totals := make(map[string]float64)
	for _, t := range transactions {
		if t.Type != models.TransactionTypeExpense {
			continue
		}
		totals[t.Category] += t.Amount
	}

	breakdown := make([]models.CategoryAmount, 0, len(totals))
	for category, amount := range totals {
		breakdown = append(breakdown, models.CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Amount != breakdown[j].Amount {
			return breakdown[i].Amount > breakdown[j].Amount
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	if len(breakdown) > breakdownLimit {
		breakdown = breakdown[:breakdownLimit]
	}
	return breakdown
}

// MonthlyTrend groups all transactions by (month, type) and pivots into one
// chronological point per month, with the absent type defaulting to 0. Months
// without any transaction are simply absent, not zero-filled.
func MonthlyTrend(transactions []models.Transaction) []models.MonthlyTrendPoint {
	byMonth := make(map[string]*models.MonthlyTrendPoint)
	for _, t := range transactions {
		if len(t.Date) < monthPrefixLen {
			continue
		}
		month := t.Date[:monthPrefixLen]
		point, ok := byMonth[month]
		if !ok {
			point = &models.MonthlyTrendPoint{Month: month}
			byMonth[month] = point
		}
		switch t.Type {
		case models.TransactionTypeIncome:
			point.Income += t.Amount
		case models.TransactionTypeExpense:
			point.Expense += t.Amount
		}
	}

	trend := make([]models.MonthlyTrendPoint, 0, len(byMonth))
	for _, point := range byMonth {
		trend = append(trend, *point)
	}
	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Month < trend[j].Month
	})
	return trend
}

// Summarize builds the dashboard figures for one month. When no budget is
// set, remaining budget and used percent both report 0, which conflates "no
// budget" with "fully used"; callers relying on the distinction need to look
// at TotalBudget.
func Summarize(month string, transactions []models.Transaction, totalBudget float64) models.DashboardSummary {
	var income, expenses float64
	for _, t := range transactions {
		switch t.Type {
		case models.TransactionTypeIncome:
			income += t.Amount
		case models.TransactionTypeExpense:
			expenses += t.Amount
		}
	}

	summary := models.DashboardSummary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       income - expenses,
		TotalBudget:   totalBudget,
		Month:         month,
	}
	if totalBudget > 0 {
		summary.RemainingBudget = totalBudget - expenses
		summary.BudgetUsedPercent = expenses / totalBudget * 100
	}
	return summary
}

// DefaultWindow is the analytics lookback when the caller omits the range:
// 180 days back through the current month.
func DefaultWindow(now time.Time) (startMonth, endMonth string) {
	return now.AddDate(0, 0, -lookbackDays).Format("2006-01"), now.Format("2006-01")
}

// WindowBounds widens a month range to inclusive date-string bounds.
func WindowBounds(startMonth, endMonth string) (startDate, endDate string) {
	return startMonth + "-01", endMonth + "-31"
}

// SpentAmount derives the spent figure attached to a budget: the sum of the
// user's expense transactions in the budget's category and month.
func SpentAmount(ctx context.Context, pool *pgxpool.Pool, userID, category, month string) (float64, error) {
	transactions, err := db.ListTransactions(ctx, pool, userID, db.TransactionFilter{
		Month:    month,
		Type:     models.TransactionTypeExpense,
		Category: category,
		Limit:    -1,
	})
	if err != nil {
		return 0, err
	}
	return SumSpent(transactions, category, month), nil
}

// Compute runs both aggregations over the ledger rows inside the window.
func Compute(ctx context.Context, pool *pgxpool.Pool, userID, startMonth, endMonth string) (*models.AnalyticsResponse, error) {
	startDate, endDate := WindowBounds(startMonth, endMonth)
	transactions, err := db.ListTransactions(ctx, pool, userID, db.TransactionFilter{
		StartDate: startDate,
		EndDate:   endDate,
		SortBy:    "date",
		SortOrder: "asc",
		Limit:     -1,
	})
	if err != nil {
		return nil, err
	}

	return &models.AnalyticsResponse{
		CategoryBreakdown: CategoryBreakdown(transactions),
		MonthlyTrend:      MonthlyTrend(transactions),
		StartMonth:        startMonth,
		EndMonth:          endMonth,
	}, nil
}
