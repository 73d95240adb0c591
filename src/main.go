package main

import (
	"log"
	"net/http"

	"fintrack-server/src/ai"
	"fintrack-server/src/api"
	"fintrack-server/src/config"
	"fintrack-server/src/db"
	"fintrack-server/src/payments"
)

func main() {
	cfg := config.Load()

	// Connect to database
	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("DB migration failed: %v", err)
	}

	db.InitCache()
	payments.Init(cfg.StripeAPIKey)

	// Insights degrade to deterministic fallbacks when no AI key is set.
	var aiClient ai.Client
	if cfg.OpenAIAPIKey != "" {
		aiClient, err = ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			log.Fatalf("AI client init failed: %v", err)
		}
	} else {
		log.Println("WARN: OPENAI_API_KEY not set, AI features will serve fallback content")
	}

	// Router
	router := api.NewRouter(pool, aiClient, cfg)

	log.Println("API server running on port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
