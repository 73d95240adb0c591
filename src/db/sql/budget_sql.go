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

const budgetColumns = `id, user_id, category, amount, month`

func scanBudget(row pgx.Row) (*models.Budget, error) {
	var b models.Budget
	err := row.Scan(&b.ID, &b.UserID, &b.Category, &b.Amount, &b.Month)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &b, nil
}

func CreateBudget(ctx context.Context, pool *pgxpool.Pool, b *models.Budget) (*models.Budget, error) {
	query := `
		INSERT INTO budgets (id, user_id, category, amount, month)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + budgetColumns + `
	`
	return scanBudget(pool.QueryRow(ctx, query, b.ID, b.UserID, b.Category, b.Amount, b.Month))
}

// BudgetExists is the creation pre-check for the one-budget-per
// (user, category, month) rule. It is not atomic with the insert; two
// concurrent creates can both pass it.
func BudgetExists(ctx context.Context, pool *pgxpool.Pool, userID, category, month string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM budgets WHERE user_id = $1 AND category = $2 AND month = $3)`
	var exists bool
	if err := pool.QueryRow(ctx, query, userID, category, month).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func GetBudgetsForUser(ctx context.Context, pool *pgxpool.Pool, userID, month string) ([]models.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1`
	args := []interface{}{userID}
	if month != "" {
		query += ` AND month = $2`
		args = append(args, month)
	}
	query += ` ORDER BY month DESC, category ASC`

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.Amount, &b.Month); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// UpdateBudget applies a partial update; nil fields keep their value.
func UpdateBudget(ctx context.Context, pool *pgxpool.Pool, userID, budgetID string, req models.BudgetUpdateRequest) (*models.Budget, error) {
	sets := []string{}
	args := []interface{}{}

	if req.Amount != nil {
		args = append(args, *req.Amount)
		sets = append(sets, "amount = $"+strconv.Itoa(len(args)))
	}
	if req.Month != nil {
		args = append(args, *req.Month)
		sets = append(sets, "month = $"+strconv.Itoa(len(args)))
	}

	if len(sets) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	args = append(args, budgetID, userID)
	query := `
		UPDATE budgets SET ` + strings.Join(sets, ", ") + `
		WHERE id = $` + strconv.Itoa(len(args)-1) + ` AND user_id = $` + strconv.Itoa(len(args)) + `
		RETURNING ` + budgetColumns + `
	`
	return scanBudget(pool.QueryRow(ctx, query, args...))
}

func DeleteBudget(ctx context.Context, pool *pgxpool.Pool, userID, budgetID string) error {
	query := `DELETE FROM budgets WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, budgetID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SumBudgetsForMonth totals every budget the user set for the month,
// regardless of category spend.
func SumBudgetsForMonth(ctx context.Context, pool *pgxpool.Pool, userID, month string) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM budgets WHERE user_id = $1 AND month = $2`
	var total float64
	if err := pool.QueryRow(ctx, query, userID, month).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
