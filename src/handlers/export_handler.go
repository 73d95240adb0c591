package handlers

import (
	"encoding/csv"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/middleware"
	"fintrack-server/src/models"
)

// WriteTransactionsCSV streams the ledger rows as CSV with a fixed header.
func WriteTransactionsCSV(w io.Writer, transactions []models.Transaction) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Date", "Type", "Category", "Amount", "Description", "Notes"}); err != nil {
		return err
	}

	for _, t := range transactions {
		description := ""
		if t.Description != nil {
			description = *t.Description
		}
		notes := ""
		if t.Notes != nil {
			notes = *t.Notes
		}
		record := []string{
			t.Date,
			t.Type,
			t.Category,
			strconv.FormatFloat(t.Amount, 'f', -1, 64),
			description,
			notes,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func ExportCSV(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)
		month := r.URL.Query().Get("month")

		transactions, err := db.ListTransactions(r.Context(), pool, user.ID, db.TransactionFilter{
			Month: month,
			Limit: 10000,
		})
		if err != nil {
			log.Printf("ERROR: Failed to export transactions for user %s: %v", user.ID, err)
			http.Error(w, "failed to export transactions", http.StatusInternalServerError)
			return
		}

		filename := "transactions_all.csv"
		if month != "" {
			filename = "transactions_" + month + ".csv"
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename=`+filename)
		if err := WriteTransactionsCSV(w, transactions); err != nil {
			log.Printf("ERROR: Failed to write CSV for user %s: %v", user.ID, err)
		}
	}
}
