package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/ai"
	"fintrack-server/src/config"
	"fintrack-server/src/handlers"
	"fintrack-server/src/middleware"
)

func NewRouter(pool *pgxpool.Pool, aiClient ai.Client, cfg config.Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middleware.DemoModeMiddleware(cfg.DemoMode))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", handlers.Register(pool))
		r.Post("/auth/login", handlers.Login(pool))
		r.Post("/auth/forgot-password", handlers.ForgotPassword(pool))
		r.Post("/webhook/stripe", handlers.StripeWebhook(pool, cfg.StripeWebhookSecret))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware(pool)).Group(func(r chi.Router) {
			// Auth
			r.Get("/auth/me", handlers.Me())
			r.Put("/auth/pin", handlers.UpdatePin(pool))
			r.Post("/auth/verify-pin", handlers.VerifyPin())

			// Transactions
			r.Post("/transactions", handlers.CreateTransaction(pool))
			r.Get("/transactions", handlers.GetTransactions(pool))
			r.Get("/transactions/{transaction_id}", handlers.GetTransactionByID(pool))
			r.Put("/transactions/{transaction_id}", handlers.UpdateTransaction(pool))
			r.Delete("/transactions/{transaction_id}", handlers.DeleteTransaction(pool))

			// Budgets
			r.Post("/budgets", handlers.CreateBudget(pool))
			r.Get("/budgets", handlers.GetBudgets(pool))
			r.Put("/budgets/{budget_id}", handlers.UpdateBudget(pool))
			r.Delete("/budgets/{budget_id}", handlers.DeleteBudget(pool))

			// Categories
			r.Post("/categories", handlers.CreateCategory(pool))
			r.Get("/categories", handlers.GetCategories(pool))
			r.Put("/categories/{category_id}", handlers.UpdateCategory(pool))
			r.Delete("/categories/{category_id}", handlers.DeleteCategory(pool))

			// Dashboard and analytics
			r.Get("/dashboard", handlers.GetDashboard(pool))
			r.Get("/analytics", handlers.GetAnalytics(pool))

			// Payments
			r.Post("/payments/checkout", handlers.CreateCheckout(pool, cfg.ProPriceCents))
			r.Get("/payments/status/{session_id}", handlers.CheckPaymentStatus(pool))

			// Export
			r.Get("/export/csv", handlers.ExportCSV(pool))
		})

		// Pro routes
		r.With(middleware.JWTAuthMiddleware(pool), middleware.ProMiddleware).Group(func(r chi.Router) {
			r.Post("/ai/insights", handlers.GetAIInsights(pool, aiClient))
			r.Post("/ai/categorize", handlers.AutoCategorize(aiClient))
			r.Get("/ai/report/pdf", handlers.GetPDFReport(pool))
		})
	})

	return r
}
