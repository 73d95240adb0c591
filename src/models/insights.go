package models

type AIInsightRequest struct {
	Months int `json:"months"`
}

type SpendingPattern struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type BudgetRecommendation struct {
	Category        string  `json:"category"`
	SuggestedBudget float64 `json:"suggested_budget"`
}

type AIInsightResponse struct {
	Insights              string                 `json:"insights"`
	SpendingPatterns      []SpendingPattern      `json:"spending_patterns"`
	SavingsSuggestions    []string               `json:"savings_suggestions"`
	BudgetRecommendations []BudgetRecommendation `json:"budget_recommendations"`
	PredictedExpenses     map[string]float64     `json:"predicted_expenses"`
	HealthScore           int                    `json:"health_score"`
}
