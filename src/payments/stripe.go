package payments

import (
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
)

const proProductName = "Pro Subscription"

func Init(apiKey string) {
	stripe.Key = apiKey
}

// CreateProCheckout opens a Stripe checkout session for the pro upgrade.
// Success and cancel URLs are derived from the caller's origin so the hosted
// page returns to the right frontend.
func CreateProCheckout(originURL, userID string, priceCents int64) (*stripe.CheckoutSession, error) {
	origin := strings.TrimRight(originURL, "/")

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(priceCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(proProductName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(origin + "/payment/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(origin + "/settings"),
	}
	params.AddMetadata("user_id", userID)
	params.AddMetadata("product", "pro_subscription")

	return session.New(params)
}

func GetCheckoutSession(sessionID string) (*stripe.CheckoutSession, error) {
	return session.Get(sessionID, nil)
}

// VerifyWebhook checks the Stripe-Signature header against the endpoint
// secret and returns the decoded event.
func VerifyWebhook(payload []byte, signature, endpointSecret string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signature, endpointSecret)
}
