package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-server/src/models"
)

func expense(amount float64, category, date string) models.Transaction {
	return models.Transaction{
		Type:     models.TransactionTypeExpense,
		Amount:   amount,
		Category: category,
		Date:     date,
	}
}

func income(amount float64, category, date string) models.Transaction {
	return models.Transaction{
		Type:     models.TransactionTypeIncome,
		Amount:   amount,
		Category: category,
		Date:     date,
	}
}

func sampleLedger() []models.Transaction {
	return []models.Transaction{
		expense(100, "Food", "2024-03-05"),
		expense(50, "Food", "2024-03-20"),
		income(3000, "Salary", "2024-03-01"),
	}
}

func TestSumSpent(t *testing.T) {
	tests := []struct {
		name     string
		ledger   []models.Transaction
		category string
		month    string
		want     float64
	}{
		{
			name:     "sums matching expenses",
			ledger:   sampleLedger(),
			category: "Food",
			month:    "2024-03",
			want:     150,
		},
		{
			name:     "empty ledger is zero",
			ledger:   nil,
			category: "Food",
			month:    "2024-03",
			want:     0,
		},
		{
			name:     "no matching category is zero",
			ledger:   sampleLedger(),
			category: "Rent",
			month:    "2024-03",
			want:     0,
		},
		{
			name:     "category match is case-sensitive",
			ledger:   sampleLedger(),
			category: "food",
			month:    "2024-03",
			want:     0,
		},
		{
			name:     "other months excluded",
			ledger:   sampleLedger(),
			category: "Food",
			month:    "2024-04",
			want:     0,
		},
		{
			name: "income in same category never contributes",
			ledger: append(sampleLedger(),
				income(500, "Food", "2024-03-10")),
			category: "Food",
			month:    "2024-03",
			want:     150,
		},
		{
			name:     "malformed month yields zero, not an error",
			ledger:   sampleLedger(),
			category: "Food",
			month:    "not-a-month",
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SumSpent(tt.ledger, tt.category, tt.month))
		})
	}
}

func TestSumSpentLargeLedger(t *testing.T) {
	// Every matching row counts, however many there are.
	ledger := make([]models.Transaction, 0, 1500)
	for i := 0; i < 1500; i++ {
		ledger = append(ledger, expense(1, "Food", "2024-03-15"))
	}

	assert.Equal(t, float64(1500), SumSpent(ledger, "Food", "2024-03"))
}

func TestSumSpentIdempotent(t *testing.T) {
	ledger := sampleLedger()
	first := SumSpent(ledger, "Food", "2024-03")
	second := SumSpent(ledger, "Food", "2024-03")
	assert.Equal(t, first, second)
}

func TestCategoryBreakdown(t *testing.T) {
	ledger := []models.Transaction{
		expense(30, "Food", "2024-03-01"),
		expense(120, "Rent", "2024-03-02"),
		expense(70, "Food", "2024-03-15"),
		expense(40, "Transportation", "2024-03-20"),
		income(5000, "Salary", "2024-03-01"),
	}

	breakdown := CategoryBreakdown(ledger)
	require.Len(t, breakdown, 3)

	assert.Equal(t, models.CategoryAmount{Category: "Rent", Amount: 120}, breakdown[0])
	assert.Equal(t, models.CategoryAmount{Category: "Food", Amount: 100}, breakdown[1])
	assert.Equal(t, models.CategoryAmount{Category: "Transportation", Amount: 40}, breakdown[2])

	// Sorted descending, no income contribution.
	for i := 1; i < len(breakdown); i++ {
		assert.GreaterOrEqual(t, breakdown[i-1].Amount, breakdown[i].Amount)
	}
	for _, c := range breakdown {
		assert.NotEqual(t, "Salary", c.Category)
	}
}

func TestCategoryBreakdownTopTwenty(t *testing.T) {
	var ledger []models.Transaction
	for i := 0; i < 25; i++ {
		ledger = append(ledger, expense(float64(i+1), string(rune('A'+i)), "2024-03-01"))
	}

	breakdown := CategoryBreakdown(ledger)
	require.Len(t, breakdown, 20)
	// The five smallest groups fall off the end.
	assert.Equal(t, float64(25), breakdown[0].Amount)
	assert.Equal(t, float64(6), breakdown[19].Amount)
}

func TestMonthlyTrend(t *testing.T) {
	ledger := []models.Transaction{
		expense(100, "Food", "2024-03-05"),
		expense(50, "Food", "2024-03-20"),
		income(3000, "Salary", "2024-03-01"),
		expense(75, "Rent", "2024-04-02"),
		income(200, "Freelance", "2024-02-11"),
	}

	trend := MonthlyTrend(ledger)
	require.Len(t, trend, 3)

	assert.Equal(t, models.MonthlyTrendPoint{Month: "2024-02", Income: 200, Expense: 0}, trend[0])
	assert.Equal(t, models.MonthlyTrendPoint{Month: "2024-03", Income: 3000, Expense: 150}, trend[1])
	assert.Equal(t, models.MonthlyTrendPoint{Month: "2024-04", Income: 0, Expense: 75}, trend[2])
}

func TestMonthlyTrendSkipsMonthsWithoutActivity(t *testing.T) {
	ledger := []models.Transaction{
		expense(10, "Food", "2024-01-15"),
		expense(20, "Food", "2024-05-15"),
	}

	trend := MonthlyTrend(ledger)
	require.Len(t, trend, 2)
	assert.Equal(t, "2024-01", trend[0].Month)
	assert.Equal(t, "2024-05", trend[1].Month)
}

func TestMonthlyTrendIdempotent(t *testing.T) {
	ledger := sampleLedger()
	assert.Equal(t, MonthlyTrend(ledger), MonthlyTrend(ledger))
}

func TestSummarize(t *testing.T) {
	summary := Summarize("2024-03", sampleLedger(), 500)

	assert.Equal(t, float64(3000), summary.TotalIncome)
	assert.Equal(t, float64(150), summary.TotalExpenses)
	assert.Equal(t, float64(2850), summary.Balance)
	assert.Equal(t, float64(500), summary.TotalBudget)
	assert.Equal(t, float64(350), summary.RemainingBudget)
	assert.InDelta(t, 30, summary.BudgetUsedPercent, 0.0001)
	assert.Equal(t, "2024-03", summary.Month)
}

func TestSummarizeWithoutBudget(t *testing.T) {
	// No budget set reports 0 remaining and 0 percent used, conflating "no
	// budget" with "fully used".
	summary := Summarize("2024-03", sampleLedger(), 0)

	assert.Equal(t, float64(0), summary.RemainingBudget)
	assert.Equal(t, float64(0), summary.BudgetUsedPercent)
}

func TestSummarizeOverspent(t *testing.T) {
	summary := Summarize("2024-03", sampleLedger(), 100)

	assert.Equal(t, float64(-50), summary.RemainingBudget)
	assert.InDelta(t, 150, summary.BudgetUsedPercent, 0.0001)
}

func TestDefaultWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	start, end := DefaultWindow(now)

	assert.Equal(t, "2023-12", start)
	assert.Equal(t, "2024-06", end)
}

func TestWindowBounds(t *testing.T) {
	start, end := WindowBounds("2024-03", "2024-03")
	assert.Equal(t, "2024-03-01", start)
	assert.Equal(t, "2024-03-31", end)

	// The loose "-31" bound still admits every real date of a short month.
	assert.True(t, "2024-02-29" >= "2024-02-01" && "2024-02-29" <= "2024-02-31")
	// A date outside the window compares outside the bounds.
	assert.False(t, "2024-04-01" <= end)
}
