package db

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/models"
)

const transactionColumns = `id, user_id, type, amount, category, description, date, notes, created_at`

// TransactionFilter narrows a ledger read. Month matches by YYYY-MM date
// prefix; StartDate/EndDate compare the stored date string lexicographically.
// Limit caps the rows returned: 0 falls back to the 1000-row default and a
// negative value reads the whole match. Aggregation callers pass a negative
// limit because a capped read would undercount their totals.
type TransactionFilter struct {
	Month     string
	Type      string
	Category  string
	Search    string
	StartDate string
	EndDate   string
	SortBy    string
	SortOrder string
	Limit     int
}

var sortColumns = map[string]string{
	"date":       "date",
	"amount":     "amount",
	"category":   "category",
	"created_at": "created_at",
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Type,
		&t.Amount,
		&t.Category,
		&t.Description,
		&t.Date,
		&t.Notes,
		&t.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &t, nil
}

func collectTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Category, &t.Description, &t.Date, &t.Notes, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, t *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (id, user_id, type, amount, category, description, date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + transactionColumns + `
	`
	return scanTransaction(pool.QueryRow(ctx, query,
		t.ID, t.UserID, t.Type, t.Amount, t.Category, t.Description, t.Date, t.Notes))
}

func buildListQuery(userID string, filter TransactionFilter) (string, []interface{}) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}

	addArg := func(value interface{}) string {
		args = append(args, value)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Month != "" {
		conditions = append(conditions, "date LIKE "+addArg(filter.Month+"%"))
	}
	if filter.Type != "" {
		conditions = append(conditions, "type = "+addArg(filter.Type))
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = "+addArg(filter.Category))
	}
	if filter.Search != "" {
		pattern := addArg("%" + filter.Search + "%")
		conditions = append(conditions,
			"(description ILIKE "+pattern+" OR notes ILIKE "+pattern+" OR category ILIKE "+pattern+")")
	}
	if filter.StartDate != "" {
		conditions = append(conditions, "date >= "+addArg(filter.StartDate))
	}
	if filter.EndDate != "" {
		conditions = append(conditions, "date <= "+addArg(filter.EndDate))
	}

	sortBy, ok := sortColumns[filter.SortBy]
	if !ok {
		sortBy = "date"
	}
	order := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		order = "ASC"
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` +
		strings.Join(conditions, " AND ") +
		` ORDER BY ` + sortBy + ` ` + order

	limit := filter.Limit
	if limit == 0 {
		limit = 1000
	}
	if limit > 0 {
		query += ` LIMIT ` + strconv.Itoa(limit)
	}

	return query, args
}

func ListTransactions(ctx context.Context, pool *pgxpool.Pool, userID string, filter TransactionFilter) ([]models.Transaction, error) {
	query, args := buildListQuery(userID, filter)
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

func GetTransactionByID(ctx context.Context, pool *pgxpool.Pool, userID, transactionID string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_id = $2`
	return scanTransaction(pool.QueryRow(ctx, query, transactionID, userID))
}

// UpdateTransaction applies a partial update; nil fields keep their value.
func UpdateTransaction(ctx context.Context, pool *pgxpool.Pool, userID, transactionID string, req models.TransactionUpdateRequest) (*models.Transaction, error) {
	sets := []string{}
	args := []interface{}{}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if req.Type != nil {
		addSet("type", *req.Type)
	}
	if req.Amount != nil {
		addSet("amount", *req.Amount)
	}
	if req.Category != nil {
		addSet("category", *req.Category)
	}
	if req.Description != nil {
		addSet("description", *req.Description)
	}
	if req.Date != nil {
		addSet("date", *req.Date)
	}
	if req.Notes != nil {
		addSet("notes", *req.Notes)
	}

	if len(sets) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	args = append(args, transactionID, userID)
	query := `
		UPDATE transactions SET ` + strings.Join(sets, ", ") + `
		WHERE id = $` + strconv.Itoa(len(args)-1) + ` AND user_id = $` + strconv.Itoa(len(args)) + `
		RETURNING ` + transactionColumns + `
	`
	return scanTransaction(pool.QueryRow(ctx, query, args...))
}

func DeleteTransaction(ctx context.Context, pool *pgxpool.Pool, userID, transactionID string) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, transactionID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func GetRecentTransactions(ctx context.Context, pool *pgxpool.Pool, userID string, limit int) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + ` FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2
	`
	rows, err := pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}
