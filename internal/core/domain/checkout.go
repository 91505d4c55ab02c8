package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutOutcome is the result of passing a session through the checkout gate.
type CheckoutOutcome string

const (
	OutcomeUnauthenticated CheckoutOutcome = "unauthenticated"
	OutcomeApproved        CheckoutOutcome = "approved"
)

// MessageKind classifies a user-facing message.
type MessageKind string

const (
	MessageError   MessageKind = "error"
	MessageSuccess MessageKind = "success"
)

// Message is shown to the customer next to the cart.
type Message struct {
	Kind MessageKind
	Text string
}

const (
	msgLoginRequired  = "You must log in to proceed to payment."
	msgPaymentSuccess = "Payment completed successfully."
)

// CheckoutResult carries the gate decision together with the cart it was
// taken on.
type CheckoutResult struct {
	Outcome CheckoutOutcome
	Lines   []CartLine
	Total   decimal.Decimal
	Message Message
}

// Approved reports whether the simulated payment went through.
func (r CheckoutResult) Approved() bool {
	return r.Outcome == OutcomeApproved
}

// AttemptCheckout decides whether the session may pay. Payment is simulated
// and always succeeds once a user is signed in. The cart is not modified.
func AttemptCheckout(s *Session) CheckoutResult {
	res := CheckoutResult{
		Lines: s.Cart.Lines,
		Total: s.Cart.Total(),
	}
	if !s.Authenticated() {
		res.Outcome = OutcomeUnauthenticated
		res.Message = Message{Kind: MessageError, Text: msgLoginRequired}
		return res
	}
	res.Outcome = OutcomeApproved
	res.Message = Message{Kind: MessageSuccess, Text: msgPaymentSuccess}
	return res
}

// CheckoutReceipt is the audit record written for every approved checkout.
type CheckoutReceipt struct {
	SessionID   string          `json:"session_id"`
	UserID      string          `json:"user_id"`
	Lines       []CartLine      `json:"lines"`
	Total       decimal.Decimal `json:"total"`
	CompletedAt time.Time       `json:"completed_at"`
}
