package models

type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type MonthlyTrendPoint struct {
	Month   string  `json:"month"` // YYYY-MM
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

type AnalyticsResponse struct {
	CategoryBreakdown []CategoryAmount    `json:"category_breakdown"`
	MonthlyTrend      []MonthlyTrendPoint `json:"monthly_trend"`
	StartMonth        string              `json:"start_month"`
	EndMonth          string              `json:"end_month"`
}

type DashboardSummary struct {
	TotalIncome        float64       `json:"total_income"`
	TotalExpenses      float64       `json:"total_expenses"`
	Balance            float64       `json:"balance"`
	TotalBudget        float64       `json:"total_budget"`
	RemainingBudget    float64       `json:"remaining_budget"`
	BudgetUsedPercent  float64       `json:"budget_used_percent"`
	RecentTransactions []Transaction `json:"recent_transactions"`
	Month              string        `json:"month"`
}
