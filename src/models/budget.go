package models

type Budget struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Month    string  `json:"month"` // YYYY-MM
	// Spent is derived from the transaction ledger on every read, never stored.
	Spent float64 `json:"spent"`
}

type BudgetCreateRequest struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Month    string  `json:"month"`
}

type BudgetUpdateRequest struct {
	Amount *float64 `json:"amount"`
	Month  *string  `json:"month"`
}
