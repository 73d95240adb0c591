package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/ai"
	db "fintrack-server/src/db/sql"
	"fintrack-server/src/middleware"
	"fintrack-server/src/models"
	"fintrack-server/src/report"
)

func GetAIInsights(pool *pgxpool.Pool, client ai.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)

		req := models.AIInsightRequest{Months: 3}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			log.Printf("ERROR: Failed to decode insight request body for user %s: %v", user.ID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Months <= 0 {
			req.Months = 3
		}

		startDate := time.Now().UTC().AddDate(0, 0, -req.Months*30).Format("2006-01-02")
		transactions, err := db.ListTransactions(r.Context(), pool, user.ID, db.TransactionFilter{StartDate: startDate})
		if err != nil {
			log.Printf("ERROR: Failed to load transactions for insights, user %s: %v", user.ID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		insights := ai.BuildInsights(r.Context(), client, transactions, req.Months)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(insights)
	}
}

func AutoCategorize(client ai.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		category := ai.Categorize(r.Context(), client, req.Description)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"category": category})
	}
}

func GetPDFReport(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)

		month := r.URL.Query().Get("month")
		if month == "" {
			month = time.Now().UTC().Format("2006-01")
		}

		summary, err := buildDashboardSummary(r.Context(), pool, user.ID, month)
		if err != nil {
			log.Printf("ERROR: Failed to build report data for user %s: %v", user.ID, err)
			http.Error(w, "failed to build report", http.StatusInternalServerError)
			return
		}

		pdfBytes, err := report.BuildMonthlyReport(user.Name, summary)
		if err != nil {
			log.Printf("ERROR: Failed to render PDF report for user %s: %v", user.ID, err)
			http.Error(w, "failed to render report", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename=budget_report_`+month+`.pdf`)
		w.Write(pdfBytes)
	}
}
