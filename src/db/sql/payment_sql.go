package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/models"
)

const paymentColumns = `id, user_id, session_id, amount, currency, status, payment_status, created_at`

func scanPayment(row pgx.Row) (*models.PaymentTransaction, error) {
	var p models.PaymentTransaction
	err := row.Scan(&p.ID, &p.UserID, &p.SessionID, &p.Amount, &p.Currency, &p.Status, &p.PaymentStatus, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &p, nil
}

func CreatePaymentTransaction(ctx context.Context, pool *pgxpool.Pool, p *models.PaymentTransaction) (*models.PaymentTransaction, error) {
	query := `
		INSERT INTO payment_transactions (id, user_id, session_id, amount, currency, status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + paymentColumns + `
	`
	return scanPayment(pool.QueryRow(ctx, query,
		p.ID, p.UserID, p.SessionID, p.Amount, p.Currency, p.Status, p.PaymentStatus))
}

func GetPaymentBySessionID(ctx context.Context, pool *pgxpool.Pool, sessionID string) (*models.PaymentTransaction, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_transactions WHERE session_id = $1`
	return scanPayment(pool.QueryRow(ctx, query, sessionID))
}

func MarkPaymentCompleted(ctx context.Context, pool *pgxpool.Pool, sessionID string) error {
	query := `
		UPDATE payment_transactions
		SET status = 'completed', payment_status = 'paid'
		WHERE session_id = $1
	`
	_, err := pool.Exec(ctx, query, sessionID)
	return err
}
