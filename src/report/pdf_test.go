package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-server/src/models"
)

func TestBuildMonthlyReport(t *testing.T) {
	summary := models.DashboardSummary{
		Month:             "2024-03",
		TotalIncome:       3000,
		TotalExpenses:     150,
		Balance:           2850,
		TotalBudget:       500,
		RemainingBudget:   350,
		BudgetUsedPercent: 30,
		RecentTransactions: []models.Transaction{
			{Type: models.TransactionTypeExpense, Amount: 100, Category: "Food", Date: "2024-03-05"},
			{Type: models.TransactionTypeIncome, Amount: 3000, Category: "Salary", Date: "2024-03-01"},
		},
	}

	out, err := BuildMonthlyReport("Ada", summary)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestBuildMonthlyReportEmptyMonth(t *testing.T) {
	out, err := BuildMonthlyReport("Ada", models.DashboardSummary{Month: "2024-04"})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestBuildMonthlyReportNegativeBalance(t *testing.T) {
	summary := models.DashboardSummary{
		Month:         "2024-05",
		TotalExpenses: 900,
		Balance:       -900,
	}
	out, err := BuildMonthlyReport("Ada", summary)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
