package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitOrigins(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"wildcard", "*", []string{"*"}},
		{"single origin", "https://app.example.com", []string{"https://app.example.com"}},
		{
			"multiple with spaces",
			"https://a.example.com, https://b.example.com",
			[]string{"https://a.example.com", "https://b.example.com"},
		},
		{"empty entries dropped", "https://a.example.com,,", []string{"https://a.example.com"}},
		{"empty value", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitOrigins(tt.value))
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("FINTRACK_TEST_KEY", "set")
	assert.Equal(t, "set", getEnv("FINTRACK_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", getEnv("FINTRACK_TEST_MISSING", "fallback"))
}

func TestGetEnvInt64(t *testing.T) {
	t.Setenv("FINTRACK_TEST_PRICE", "1299")
	assert.Equal(t, int64(1299), getEnvInt64("FINTRACK_TEST_PRICE", 999))
	assert.Equal(t, int64(999), getEnvInt64("FINTRACK_TEST_PRICE_MISSING", 999))
}
