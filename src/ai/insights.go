package ai

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"fintrack-server/src/models"
)

const insightSystemPrompt = "You are a financial advisor AI. Analyze spending data and provide actionable insights. Be concise and specific."

// Canned suggestions served whenever the AI collaborator fails. The response
// is indistinguishable from a real reply on purpose: total visible failure is
// avoided at the cost of sometimes serving synthetic content.
var fallbackSuggestions = []string{
	"Consider reducing spending in your highest expense category",
	"Set up automatic savings transfers",
	"Review subscription services for unused memberships",
}

// BuildInsights analyzes the given window of ledger rows. The numeric parts
// (patterns, predictions, health score) are always computed locally; only the
// narrative assessment and savings suggestions come from the AI client, and
// they degrade to deterministic content when the client is nil or errors.
func BuildInsights(ctx context.Context, client Client, transactions []models.Transaction, months int) models.AIInsightResponse {
	if months <= 0 {
		months = 3
	}

	if len(transactions) == 0 {
		return models.AIInsightResponse{
			Insights:           "No transaction data available for analysis.",
			SpendingPatterns:   []models.SpendingPattern{},
			SavingsSuggestions: []string{"Start tracking your expenses to get personalized insights!"},
			PredictedExpenses:  map[string]float64{},
			HealthScore:        50,
		}
	}

	categoryTotals := make(map[string]float64)
	var totalIncome, totalExpenses float64
	for _, t := range transactions {
		switch t.Type {
		case models.TransactionTypeExpense:
			categoryTotals[t.Category] += t.Amount
			totalExpenses += t.Amount
		case models.TransactionTypeIncome:
			totalIncome += t.Amount
		}
	}

	ranked := rankedCategories(categoryTotals)

	insights, savings := askForAssessment(ctx, client, months, totalIncome, totalExpenses, ranked)

	patterns := make([]models.SpendingPattern, 0, 5)
	for _, c := range ranked {
		if len(patterns) == 5 {
			break
		}
		var pct float64
		if totalExpenses > 0 {
			pct = c.Amount / totalExpenses * 100
		}
		patterns = append(patterns, models.SpendingPattern{
			Category:   c.Category,
			Amount:     c.Amount,
			Percentage: pct,
		})
	}

	recommendations := make([]models.BudgetRecommendation, 0, 3)
	for _, c := range ranked {
		if len(recommendations) == 3 {
			break
		}
		recommendations = append(recommendations, models.BudgetRecommendation{
			Category:        c.Category,
			SuggestedBudget: c.Amount * 0.9,
		})
	}

	predicted := make(map[string]float64, len(categoryTotals))
	for category, amount := range categoryTotals {
		predicted[category] = amount / float64(months) * 1.05
	}

	return models.AIInsightResponse{
		Insights:              insights,
		SpendingPatterns:      patterns,
		SavingsSuggestions:    savings,
		BudgetRecommendations: recommendations,
		PredictedExpenses:     predicted,
		HealthScore:           HealthScore(totalIncome, totalExpenses),
	}
}

func askForAssessment(ctx context.Context, client Client, months int, totalIncome, totalExpenses float64, ranked []models.CategoryAmount) (string, []string) {
	fallback := fmt.Sprintf("Based on your spending data, you've spent $%.2f across %d categories.",
		totalExpenses, len(ranked))

	if client == nil {
		return fallback, fallbackSuggestions
	}

	prompt := BuildInsightPrompt(months, totalIncome, totalExpenses, ranked)
	reply, err := client.Complete(ctx, insightSystemPrompt, prompt)
	if err != nil {
		log.Printf("ERROR: AI insight request failed: %v", err)
		return fallback, fallbackSuggestions
	}

	insights, savings := ParseInsightReply(reply)
	if len(savings) == 0 {
		savings = []string{"Track more expenses for personalized suggestions"}
	}
	return insights, savings
}

// BuildInsightPrompt renders the spending summary the model is asked to
// assess, with categories listed largest first.
func BuildInsightPrompt(months int, totalIncome, totalExpenses float64, ranked []models.CategoryAmount) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this financial data:\n\n")
	fmt.Fprintf(&b, "Total Income (last %d months): $%.2f\n", months, totalIncome)
	fmt.Fprintf(&b, "Total Expenses: $%.2f\n", totalExpenses)
	fmt.Fprintf(&b, "Savings Rate: %.1f%%\n\n", savingsRate(totalIncome, totalExpenses))
	b.WriteString("Spending by Category:\n")
	for _, c := range ranked {
		var pct float64
		if totalExpenses > 0 {
			pct = c.Amount / totalExpenses * 100
		}
		fmt.Fprintf(&b, "- %s: $%.2f (%.1f%%)\n", c.Category, c.Amount, pct)
	}
	b.WriteString("\nProvide:\n")
	b.WriteString("1. Brief overall assessment (2-3 sentences)\n")
	b.WriteString("2. Top 3 savings suggestions\n")
	b.WriteString("3. Budget recommendations\n\n")
	b.WriteString("Format your response as:\n")
	b.WriteString("ASSESSMENT: [your assessment]\n")
	b.WriteString("SAVINGS:\n- [suggestion 1]\n- [suggestion 2]\n- [suggestion 3]\n")
	b.WriteString("RECOMMENDATIONS:\n- [recommendation 1]\n- [recommendation 2]")
	return b.String()
}

// ParseInsightReply extracts the assessment text and up to three savings
// suggestions from the model's sectioned reply. A reply without the expected
// sections is passed through whole as the assessment.
func ParseInsightReply(reply string) (insights string, savings []string) {
	insights = reply

	if idx := strings.Index(reply, "SAVINGS:"); idx >= 0 {
		section := reply[idx+len("SAVINGS:"):]
		if end := strings.Index(section, "RECOMMENDATIONS:"); end >= 0 {
			section = section[:end]
		}
		for _, line := range strings.Split(strings.TrimSpace(section), "\n") {
			line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
			if line == "" {
				continue
			}
			savings = append(savings, line)
			if len(savings) == 3 {
				break
			}
		}
	}

	if idx := strings.Index(reply, "ASSESSMENT:"); idx >= 0 {
		section := reply[idx+len("ASSESSMENT:"):]
		if end := strings.Index(section, "SAVINGS:"); end >= 0 {
			section = section[:end]
		}
		insights = strings.TrimSpace(section)
	}

	return insights, savings
}

// HealthScore maps the savings rate onto 0-100, centered at 50.
func HealthScore(totalIncome, totalExpenses float64) int {
	score := 50 + int(savingsRate(totalIncome, totalExpenses))
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

func savingsRate(totalIncome, totalExpenses float64) float64 {
	if totalIncome <= 0 {
		return 0
	}
	return (totalIncome - totalExpenses) / totalIncome * 100
}

func rankedCategories(totals map[string]float64) []models.CategoryAmount {
	ranked := make([]models.CategoryAmount, 0, len(totals))
	for category, amount := range totals {
		ranked = append(ranked, models.CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Amount != ranked[j].Amount {
			return ranked[i].Amount > ranked[j].Amount
		}
		return ranked[i].Category < ranked[j].Category
	})
	return ranked
}
