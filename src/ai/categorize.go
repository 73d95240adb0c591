package ai

import (
	"context"
	"log"
	"strings"
)

const categorizeSystemPrompt = "You are a transaction categorizer. Given a transaction description, return ONLY the category name from: Food, Rent, Utilities, Transportation, Entertainment, Shopping, Health, Salary, Freelance, Investment, Other"

var validCategories = []string{
	"Food",
	"Rent",
	"Utilities",
	"Transportation",
	"Entertainment",
	"Shopping",
	"Health",
	"Salary",
	"Freelance",
	"Investment",
	"Other",
}

// Categorize asks the model to pick a category for a transaction
// description. Any failure, or an answer outside the fixed vocabulary, falls
// back to "Other".
func Categorize(ctx context.Context, client Client, description string) string {
	if client == nil {
		return "Other"
	}

	reply, err := client.Complete(ctx, categorizeSystemPrompt, "Categorize this transaction: "+description)
	if err != nil {
		log.Printf("ERROR: AI categorization failed: %v", err)
		return "Other"
	}

	reply = strings.TrimSpace(reply)
	for _, name := range validCategories {
		if strings.EqualFold(name, reply) {
			return name
		}
	}
	return "Other"
}
