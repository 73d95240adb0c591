package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/analytics"
	db "fintrack-server/src/db/sql"
	"fintrack-server/src/middleware"
	"fintrack-server/src/models"
)

func CreateBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)

		var req models.BudgetCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create budget request body for user %s: %v", user.ID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		// Pre-check only; not atomic with the insert.
		exists, err := db.BudgetExists(r.Context(), pool, user.ID, req.Category, req.Month)
		if err != nil {
			log.Printf("ERROR: Failed budget existence check for user %s: %v", user.ID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if exists {
			http.Error(w, "budget already exists for this category/month", http.StatusConflict)
			return
		}

		budget := &models.Budget{
			ID:       uuid.NewString(),
			UserID:   user.ID,
			Category: req.Category,
			Amount:   req.Amount,
			Month:    req.Month,
		}
		created, err := db.CreateBudget(r.Context(), pool, budget)
		if err != nil {
			log.Printf("ERROR: Failed to create budget for user %s: %v", user.ID, err)
			http.Error(w, "failed to create budget", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Created budget %s for user %s, category %s month %s", created.ID, user.ID, created.Category, created.Month)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetBudgets(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)
		month := r.URL.Query().Get("month")

		budgets, err := db.GetBudgetsForUser(r.Context(), pool, user.ID, month)
		if err != nil {
			log.Printf("ERROR: Failed to get budgets for user %s: %v", user.ID, err)
			http.Error(w, "failed to get budgets", http.StatusInternalServerError)
			return
		}
		if budgets == nil {
			budgets = []models.Budget{}
		}

		// Attach the derived spent figure to every budget.
		for i := range budgets {
			spent, err := analytics.SpentAmount(r.Context(), pool, user.ID, budgets[i].Category, budgets[i].Month)
			if err != nil {
				log.Printf("ERROR: Failed to compute spent for budget %s: %v", budgets[i].ID, err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			budgets[i].Spent = spent
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(budgets)
	}
}

func UpdateBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)
		budgetID := chi.URLParam(r, "budget_id")

		var req models.BudgetUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update budget request body for user %s: %v", user.ID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if req.Amount == nil && req.Month == nil {
			http.Error(w, "no data to update", http.StatusBadRequest)
			return
		}

		updated, err := db.UpdateBudget(r.Context(), pool, user.ID, budgetID, req)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "budget not found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to update budget %s for user %s: %v", budgetID, user.ID, err)
			http.Error(w, "failed to update budget", http.StatusInternalServerError)
			return
		}

		spent, err := analytics.SpentAmount(r.Context(), pool, user.ID, updated.Category, updated.Month)
		if err != nil {
			log.Printf("ERROR: Failed to compute spent for budget %s: %v", updated.ID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		updated.Spent = spent

		log.Printf("INFO: Updated budget %s for user %s", updated.ID, user.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)
		budgetID := chi.URLParam(r, "budget_id")

		if err := db.DeleteBudget(r.Context(), pool, user.ID, budgetID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "budget not found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to delete budget %s for user %s: %v", budgetID, user.ID, err)
			http.Error(w, "failed to delete budget", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Deleted budget %s for user %s", budgetID, user.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "budget deleted"})
	}
}
