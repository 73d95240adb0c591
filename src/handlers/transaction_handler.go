package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/middleware"
	"fintrack-server/src/models"
)

func CreateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)

		var req models.TransactionCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create transaction request body for user %s: %v", user.ID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if req.Type != models.TransactionTypeIncome && req.Type != models.TransactionTypeExpense {
			http.Error(w, "type must be income or expense", http.StatusBadRequest)
			return
		}
		if req.Amount < 0 {
			http.Error(w, "amount must be non-negative", http.StatusBadRequest)
			return
		}

		transaction := &models.Transaction{
			ID:          uuid.NewString(),
			UserID:      user.ID,
			Type:        req.Type,
			Amount:      req.Amount,
			Category:    req.Category,
			Description: req.Description,
			Date:        req.Date,
			Notes:       req.Notes,
		}
		created, err := db.CreateTransaction(r.Context(), pool, transaction)
		if err != nil {
			log.Printf("ERROR: Failed to create transaction for user %s: %v", user.ID, err)
			http.Error(w, "failed to create transaction", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Created transaction %s for user %s, category %s", created.ID, user.ID, created.Category)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)

		q := r.URL.Query()
		filter := db.TransactionFilter{
			Month:     q.Get("month"),
			Type:      q.Get("type"),
			Category:  q.Get("category"),
			Search:    q.Get("search"),
			SortBy:    q.Get("sort_by"),
			SortOrder: q.Get("sort_order"),
		}

		transactions, err := db.ListTransactions(r.Context(), pool, user.ID, filter)
		if err != nil {
			log.Printf("ERROR: Failed to list transactions for user %s: %v", user.ID, err)
			http.Error(w, "failed to get transactions", http.StatusInternalServerError)
			return
		}
		if transactions == nil {
			transactions = []models.Transaction{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transactions)
	}
}

func GetTransactionByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)
		transactionID := chi.URLParam(r, "transaction_id")

		transaction, err := db.GetTransactionByID(r.Context(), pool, user.ID, transactionID)
		if err != nil {
			log.Printf("ERROR: Transaction %s not found for user %s: %v", transactionID, user.ID, err)
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transaction)
	}
}

func UpdateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)
		transactionID := chi.URLParam(r, "transaction_id")

		var req models.TransactionUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update transaction request body for user %s: %v", user.ID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if req.Type == nil && req.Amount == nil && req.Category == nil &&
			req.Description == nil && req.Date == nil && req.Notes == nil {
			http.Error(w, "no data to update", http.StatusBadRequest)
			return
		}

		updated, err := db.UpdateTransaction(r.Context(), pool, user.ID, transactionID, req)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "transaction not found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to update transaction %s for user %s: %v", transactionID, user.ID, err)
			http.Error(w, "failed to update transaction", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Updated transaction %s for user %s", updated.ID, user.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeleteTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)
		transactionID := chi.URLParam(r, "transaction_id")

		if err := db.DeleteTransaction(r.Context(), pool, user.ID, transactionID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "transaction not found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to delete transaction %s for user %s: %v", transactionID, user.ID, err)
			http.Error(w, "failed to delete transaction", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Deleted transaction %s for user %s", transactionID, user.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "transaction deleted"})
	}
}
