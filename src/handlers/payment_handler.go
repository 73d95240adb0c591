package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stripe/stripe-go/v79"

	store "fintrack-server/src/db"
	db "fintrack-server/src/db/sql"
	"fintrack-server/src/middleware"
	"fintrack-server/src/models"
	"fintrack-server/src/payments"
)

func CreateCheckout(pool *pgxpool.Pool, priceCents int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)

		var req models.CheckoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode checkout request body for user %s: %v", user.ID, err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		session, err := payments.CreateProCheckout(req.OriginURL, user.ID, priceCents)
		if err != nil {
			log.Printf("ERROR: Failed to create checkout session for user %s: %v", user.ID, err)
			http.Error(w, "failed to create checkout session", http.StatusInternalServerError)
			return
		}

		payment := &models.PaymentTransaction{
			ID:            uuid.NewString(),
			UserID:        user.ID,
			SessionID:     session.ID,
			Amount:        float64(priceCents) / 100,
			Currency:      "usd",
			Status:        "pending",
			PaymentStatus: "initiated",
		}
		if _, err := db.CreatePaymentTransaction(r.Context(), pool, payment); err != nil {
			log.Printf("ERROR: Failed to record payment transaction for user %s: %v", user.ID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Created checkout session %s for user %s", session.ID, user.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.CheckoutResponse{URL: session.URL, SessionID: session.ID})
	}
}

func CheckPaymentStatus(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)
		sessionID := chi.URLParam(r, "session_id")

		session, err := payments.GetCheckoutSession(sessionID)
		if err != nil {
			log.Printf("ERROR: Failed to fetch checkout session %s: %v", sessionID, err)
			http.Error(w, "failed to fetch payment status", http.StatusInternalServerError)
			return
		}

		if session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
			if err := db.MarkPaymentCompleted(r.Context(), pool, sessionID); err != nil {
				log.Printf("ERROR: Failed to mark payment %s completed: %v", sessionID, err)
			}
			if err := db.SetUserPro(r.Context(), pool, user.ID); err != nil {
				log.Printf("ERROR: Failed to set pro for user %s: %v", user.ID, err)
			}
			store.DelUserCache(user.ID)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":         string(session.Status),
			"payment_status": string(session.PaymentStatus),
			"amount":         float64(session.AmountTotal) / 100, // convert from cents
			"currency":       string(session.Currency),
		})
	}
}

// StripeWebhook acknowledges every verified event; processing failures are
// logged and reported in the body rather than surfaced as HTTP errors so
// Stripe does not retry indefinitely.
func StripeWebhook(pool *pgxpool.Pool, webhookSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Printf("ERROR: Failed to read webhook body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		event, err := payments.VerifyWebhook(body, r.Header.Get("Stripe-Signature"), webhookSecret)
		if err != nil {
			log.Printf("ERROR: Webhook verification failed: %v", err)
			json.NewEncoder(w).Encode(map[string]interface{}{"received": false, "error": err.Error()})
			return
		}

		if event.Type == "checkout.session.completed" {
			var session stripe.CheckoutSession
			if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
				log.Printf("ERROR: Failed to parse webhook session: %v", err)
				json.NewEncoder(w).Encode(map[string]interface{}{"received": false, "error": err.Error()})
				return
			}

			if session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
				if err := db.MarkPaymentCompleted(r.Context(), pool, session.ID); err != nil {
					log.Printf("ERROR: Failed to mark payment %s completed: %v", session.ID, err)
				}

				payment, err := db.GetPaymentBySessionID(r.Context(), pool, session.ID)
				if err != nil {
					if !errors.Is(err, db.ErrNotFound) {
						log.Printf("ERROR: Failed to look up payment %s: %v", session.ID, err)
					}
				} else {
					if err := db.SetUserPro(r.Context(), pool, payment.UserID); err != nil {
						log.Printf("ERROR: Failed to set pro for user %s: %v", payment.UserID, err)
					}
					store.DelUserCache(payment.UserID)
					log.Printf("INFO: Pro unlocked for user %s via session %s", payment.UserID, session.ID)
				}
			}
		}

		json.NewEncoder(w).Encode(map[string]interface{}{"received": true})
	}
}
