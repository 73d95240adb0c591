package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/models"
)

const categoryColumns = `id, user_id, name, color, icon, is_default`

// DefaultCategories are seeded for every new user. Seeded rows are flagged
// is_default and cannot be updated or deleted.
var DefaultCategories = []models.Category{
	{Name: "Food", Color: "#ef4444", Icon: "utensils"},
	{Name: "Rent", Color: "#3b82f6", Icon: "home"},
	{Name: "Utilities", Color: "#f59e0b", Icon: "zap"},
	{Name: "Transportation", Color: "#8b5cf6", Icon: "car"},
	{Name: "Entertainment", Color: "#ec4899", Icon: "film"},
	{Name: "Shopping", Color: "#10b981", Icon: "shopping-bag"},
	{Name: "Health", Color: "#06b6d4", Icon: "heart"},
	{Name: "Other", Color: "#6b7280", Icon: "more-horizontal"},
	{Name: "Salary", Color: "#22c55e", Icon: "briefcase"},
	{Name: "Freelance", Color: "#14b8a6", Icon: "laptop"},
	{Name: "Investment", Color: "#f97316", Icon: "trending-up"},
}

func scanCategory(row pgx.Row) (*models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.Icon, &c.IsDefault)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &c, nil
}

func CreateCategory(ctx context.Context, pool *pgxpool.Pool, c *models.Category) (*models.Category, error) {
	query := `
		INSERT INTO categories (id, user_id, name, color, icon, is_default)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + categoryColumns + `
	`
	return scanCategory(pool.QueryRow(ctx, query, c.ID, c.UserID, c.Name, c.Color, c.Icon, c.IsDefault))
}

func SeedDefaultCategories(ctx context.Context, pool *pgxpool.Pool, userID string) error {
	query := `
		INSERT INTO categories (id, user_id, name, color, icon, is_default)
		VALUES ($1, $2, $3, $4, $5, TRUE)
	`
	for _, c := range DefaultCategories {
		if _, err := pool.Exec(ctx, query, uuid.NewString(), userID, c.Name, c.Color, c.Icon); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.Name, err)
		}
	}
	return nil
}

func GetCategoriesForUser(ctx context.Context, pool *pgxpool.Pool, userID string) ([]models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 ORDER BY is_default DESC, name ASC`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.Icon, &c.IsDefault); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateCategory only touches user-created rows; default rows fall through to
// ErrNotFound.
func UpdateCategory(ctx context.Context, pool *pgxpool.Pool, userID, categoryID string, req models.CategoryRequest) (*models.Category, error) {
	query := `
		UPDATE categories SET name = $1, color = $2, icon = $3
		WHERE id = $4 AND user_id = $5 AND is_default = FALSE
		RETURNING ` + categoryColumns + `
	`
	return scanCategory(pool.QueryRow(ctx, query, req.Name, req.Color, req.Icon, categoryID, userID))
}

func DeleteCategory(ctx context.Context, pool *pgxpool.Pool, userID, categoryID string) error {
	query := `DELETE FROM categories WHERE id = $1 AND user_id = $2 AND is_default = FALSE`
	cmd, err := pool.Exec(ctx, query, categoryID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
