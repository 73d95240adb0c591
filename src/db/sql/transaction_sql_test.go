package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildListQueryLimit(t *testing.T) {
	tests := []struct {
		name   string
		filter TransactionFilter
		want   string
	}{
		{"zero falls back to the default cap", TransactionFilter{}, "LIMIT 1000"},
		{"explicit cap is kept", TransactionFilter{Limit: 10000}, "LIMIT 10000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, _ := buildListQuery("u-1", tt.filter)
			assert.Contains(t, query, tt.want)
		})
	}
}

func TestBuildListQueryNegativeLimitUncapped(t *testing.T) {
	// Aggregation reads (spent, dashboard, analytics) pass -1; the query must
	// not cap them or their totals miss rows past the cap.
	query, _ := buildListQuery("u-1", TransactionFilter{Month: "2024-03", Limit: -1})
	assert.NotContains(t, query, "LIMIT")
}

func TestBuildListQueryFilters(t *testing.T) {
	query, args := buildListQuery("u-1", TransactionFilter{
		Month:    "2024-03",
		Type:     "expense",
		Category: "Food",
		Limit:    -1,
	})

	assert.Contains(t, query, "user_id = $1")
	assert.Contains(t, query, "date LIKE $2")
	assert.Contains(t, query, "type = $3")
	assert.Contains(t, query, "category = $4")
	assert.Equal(t, []interface{}{"u-1", "2024-03%", "expense", "Food"}, args)
}

func TestBuildListQueryDateRange(t *testing.T) {
	query, args := buildListQuery("u-1", TransactionFilter{
		StartDate: "2024-03-01",
		EndDate:   "2024-03-31",
		SortOrder: "asc",
		Limit:     -1,
	})

	assert.Contains(t, query, "date >= $2")
	assert.Contains(t, query, "date <= $3")
	assert.Contains(t, query, "ORDER BY date ASC")
	assert.Equal(t, []interface{}{"u-1", "2024-03-01", "2024-03-31"}, args)
}

func TestBuildListQuerySortWhitelist(t *testing.T) {
	query, _ := buildListQuery("u-1", TransactionFilter{SortBy: "amount; DROP TABLE users"})
	assert.Contains(t, query, "ORDER BY date DESC")

	query, _ = buildListQuery("u-1", TransactionFilter{SortBy: "amount"})
	assert.Contains(t, query, "ORDER BY amount DESC")
}

func TestBuildListQuerySearch(t *testing.T) {
	query, args := buildListQuery("u-1", TransactionFilter{Search: "coffee"})
	assert.Contains(t, query, "description ILIKE $2")
	assert.Contains(t, query, "notes ILIKE $2")
	assert.Contains(t, query, "category ILIKE $2")
	assert.Equal(t, []interface{}{"u-1", "%coffee%"}, args)
}
