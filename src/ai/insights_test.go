package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-server/src/models"
)

// stubClient returns a fixed reply or error for every completion.
type stubClient struct {
	reply string
	err   error
}

func (s *stubClient) Complete(_ context.Context, _, _ string) (string, error) {
	return s.reply, s.err
}

func insightLedger() []models.Transaction {
	return []models.Transaction{
		{Type: models.TransactionTypeExpense, Amount: 600, Category: "Rent", Date: "2024-03-01"},
		{Type: models.TransactionTypeExpense, Amount: 300, Category: "Food", Date: "2024-03-05"},
		{Type: models.TransactionTypeExpense, Amount: 100, Category: "Transportation", Date: "2024-03-10"},
		{Type: models.TransactionTypeIncome, Amount: 2000, Category: "Salary", Date: "2024-03-01"},
	}
}

func TestBuildInsightsEmptyLedger(t *testing.T) {
	resp := BuildInsights(context.Background(), nil, nil, 3)

	assert.Equal(t, "No transaction data available for analysis.", resp.Insights)
	assert.Empty(t, resp.SpendingPatterns)
	assert.Equal(t, []string{"Start tracking your expenses to get personalized insights!"}, resp.SavingsSuggestions)
	assert.Empty(t, resp.PredictedExpenses)
	assert.Equal(t, 50, resp.HealthScore)
}

func TestBuildInsightsWithoutClient(t *testing.T) {
	resp := BuildInsights(context.Background(), nil, insightLedger(), 3)

	assert.Equal(t, "Based on your spending data, you've spent $1000.00 across 3 categories.", resp.Insights)
	assert.Equal(t, fallbackSuggestions, resp.SavingsSuggestions)

	require.Len(t, resp.SpendingPatterns, 3)
	assert.Equal(t, "Rent", resp.SpendingPatterns[0].Category)
	assert.Equal(t, float64(600), resp.SpendingPatterns[0].Amount)
	assert.InDelta(t, 60, resp.SpendingPatterns[0].Percentage, 0.0001)

	require.Len(t, resp.BudgetRecommendations, 3)
	assert.Equal(t, "Rent", resp.BudgetRecommendations[0].Category)
	assert.InDelta(t, 540, resp.BudgetRecommendations[0].SuggestedBudget, 0.0001)

	// amount / months * 1.05
	assert.InDelta(t, 210, resp.PredictedExpenses["Rent"], 0.0001)
	assert.InDelta(t, 105, resp.PredictedExpenses["Food"], 0.0001)

	// savings rate 50% -> score 100
	assert.Equal(t, 100, resp.HealthScore)
}

func TestBuildInsightsClientError(t *testing.T) {
	client := &stubClient{err: errors.New("upstream down")}
	resp := BuildInsights(context.Background(), client, insightLedger(), 3)

	assert.Equal(t, "Based on your spending data, you've spent $1000.00 across 3 categories.", resp.Insights)
	assert.Equal(t, fallbackSuggestions, resp.SavingsSuggestions)
}

func TestBuildInsightsParsesReply(t *testing.T) {
	client := &stubClient{reply: "ASSESSMENT: Spending is rent-heavy but sustainable.\n" +
		"SAVINGS:\n- Cook at home more often\n- Negotiate the rent\n- Use transit passes\n" +
		"RECOMMENDATIONS:\n- Cap Food at $270"}
	resp := BuildInsights(context.Background(), client, insightLedger(), 3)

	assert.Equal(t, "Spending is rent-heavy but sustainable.", resp.Insights)
	assert.Equal(t, []string{
		"Cook at home more often",
		"Negotiate the rent",
		"Use transit passes",
	}, resp.SavingsSuggestions)
}

func TestBuildInsightsDefaultsMonths(t *testing.T) {
	resp := BuildInsights(context.Background(), nil, insightLedger(), 0)
	// months defaults to 3
	assert.InDelta(t, 210, resp.PredictedExpenses["Rent"], 0.0001)
}

func TestParseInsightReply(t *testing.T) {
	tests := []struct {
		name         string
		reply        string
		wantInsights string
		wantSavings  []string
	}{
		{
			name: "sectioned reply",
			reply: "ASSESSMENT: Looks healthy.\nSAVINGS:\n- One\n- Two\n" +
				"RECOMMENDATIONS:\n- Cap rent",
			wantInsights: "Looks healthy.",
			wantSavings:  []string{"One", "Two"},
		},
		{
			name:         "unsectioned reply passes through whole",
			reply:        "You spend a lot on rent.",
			wantInsights: "You spend a lot on rent.",
			wantSavings:  nil,
		},
		{
			name: "savings capped at three",
			reply: "ASSESSMENT: ok\nSAVINGS:\n- a\n- b\n- c\n- d\n- e\n" +
				"RECOMMENDATIONS:\n- x",
			wantInsights: "ok",
			wantSavings:  []string{"a", "b", "c"},
		},
		{
			name:         "savings without recommendations section",
			reply:        "ASSESSMENT: fine\nSAVINGS:\n- only one",
			wantInsights: "fine",
			wantSavings:  []string{"only one"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insights, savings := ParseInsightReply(tt.reply)
			assert.Equal(t, tt.wantInsights, insights)
			assert.Equal(t, tt.wantSavings, savings)
		})
	}
}

func TestHealthScore(t *testing.T) {
	tests := []struct {
		name     string
		income   float64
		expenses float64
		want     int
	}{
		{"no income is neutral", 0, 500, 50},
		{"break even", 1000, 1000, 50},
		{"20 percent saved", 1000, 800, 70},
		{"capped at 100", 1000, 0, 100},
		{"floored at 0", 1000, 2000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HealthScore(tt.income, tt.expenses))
		})
	}
}

func TestBuildInsightPrompt(t *testing.T) {
	ranked := []models.CategoryAmount{
		{Category: "Rent", Amount: 600},
		{Category: "Food", Amount: 400},
	}
	prompt := BuildInsightPrompt(3, 2000, 1000, ranked)

	assert.Contains(t, prompt, "Total Income (last 3 months): $2000.00")
	assert.Contains(t, prompt, "Total Expenses: $1000.00")
	assert.Contains(t, prompt, "Savings Rate: 50.0%")
	assert.Contains(t, prompt, "- Rent: $600.00 (60.0%)")
	assert.Contains(t, prompt, "ASSESSMENT:")
}

func TestCategorize(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		client Client
		want   string
	}{
		{"nil client falls back", nil, "Other"},
		{"client error falls back", &stubClient{err: errors.New("boom")}, "Other"},
		{"exact match", &stubClient{reply: "Food"}, "Food"},
		{"case-insensitive match normalized", &stubClient{reply: "transportation"}, "Transportation"},
		{"whitespace trimmed", &stubClient{reply: "  Rent\n"}, "Rent"},
		{"unknown category falls back", &stubClient{reply: "Spaceships"}, "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(ctx, tt.client, "some purchase"))
		})
	}
}
