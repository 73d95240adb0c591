package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/analytics"
	db "fintrack-server/src/db/sql"
	"fintrack-server/src/middleware"
	"fintrack-server/src/models"
)

func buildDashboardSummary(ctx context.Context, pool *pgxpool.Pool, userID, month string) (models.DashboardSummary, error) {
	// Uncapped read: the month totals must cover every row.
	transactions, err := db.ListTransactions(ctx, pool, userID, db.TransactionFilter{Month: month, Limit: -1})
	if err != nil {
		return models.DashboardSummary{}, err
	}

	totalBudget, err := db.SumBudgetsForMonth(ctx, pool, userID, month)
	if err != nil {
		return models.DashboardSummary{}, err
	}

	summary := analytics.Summarize(month, transactions, totalBudget)

	recent, err := db.GetRecentTransactions(ctx, pool, userID, 5)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	if recent == nil {
		recent = []models.Transaction{}
	}
	summary.RecentTransactions = recent

	return summary, nil
}

func GetDashboard(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)

		month := r.URL.Query().Get("month")
		if month == "" {
			month = time.Now().UTC().Format("2006-01")
		}

		summary, err := buildDashboardSummary(r.Context(), pool, user.ID, month)
		if err != nil {
			log.Printf("ERROR: Failed to build dashboard for user %s: %v", user.ID, err)
			http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	}
}

func GetAnalytics(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)

		q := r.URL.Query()
		startMonth := q.Get("start_month")
		endMonth := q.Get("end_month")

		defaultStart, defaultEnd := analytics.DefaultWindow(time.Now().UTC())
		if startMonth == "" {
			startMonth = defaultStart
		}
		if endMonth == "" {
			endMonth = defaultEnd
		}

		result, err := analytics.Compute(r.Context(), pool, user.ID, startMonth, endMonth)
		if err != nil {
			log.Printf("ERROR: Failed to compute analytics for user %s: %v", user.ID, err)
			http.Error(w, "failed to compute analytics", http.StatusInternalServerError)
			return
		}
		if result.CategoryBreakdown == nil {
			result.CategoryBreakdown = []models.CategoryAmount{}
		}
		if result.MonthlyTrend == nil {
			result.MonthlyTrend = []models.MonthlyTrendPoint{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}
