// internal/domain/checkout/orchestrator.go
package checkout

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/domain/session"
	"github.com/your-org/storefront-gateway/internal/infrastructure/backend"
)

// Step tracks where a checkout attempt currently is. Steps only advance after
// the previous remote call succeeded; a failure drops back to idle.
type Step int

// Checkout steps
const (
	StepIdle Step = iota
	StepValidating
	StepCreatingOrder
	StepInitializingPayment
	StepRedirectingToGateway
	StepVerifyingPayment
)

// String returns a human-readable name for the step
func (s Step) String() string {
	switch s {
	case StepValidating:
		return "validating"
	case StepCreatingOrder:
		return "creating_order"
	case StepInitializingPayment:
		return "initializing_payment"
	case StepRedirectingToGateway:
		return "redirecting_to_gateway"
	case StepVerifyingPayment:
		return "verifying_payment"
	default:
		return "idle"
	}
}

// VerificationOutcome is the result of confirming a payment after the
// provider redirects back
type VerificationOutcome int

// Verification outcomes. Providers settle asynchronously, so a non-success
// answer from a reachable backend means "pending", not "failed"; only a
// failed verification call itself is a failure.
const (
	VerificationPending VerificationOutcome = iota
	Verified
	VerificationFailed
)

// String returns a human-readable name for the outcome
func (v VerificationOutcome) String() string {
	switch v {
	case Verified:
		return "verified"
	case VerificationFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Backend is the slice of the commerce API the orchestrator needs
type Backend interface {
	Checkout(ctx context.Context, shippingAddress string, useLoyaltyPoints bool) (*backend.Order, error)
	InitializePayment(ctx context.Context, order *backend.Order, email string) (*backend.PaymentInitResponse, error)
	VerifyPayment(ctx context.Context, verifyID, txRef string) (*backend.VerifyResponse, error)
}

// Cart is the slice of the cart manager the orchestrator needs
type Cart interface {
	IsEmpty() bool
	Refresh(ctx context.Context) error
}

// Sessions supplies the active session
type Sessions interface {
	Current() (session.Session, bool)
}

// PartialFailureError reports an order that was created but whose payment
// could not be started. The order is real and stays PENDING on the backend;
// payment can be retried from order history.
type PartialFailureError struct {
	Order *backend.Order
	Err   error
}

func (e *PartialFailureError) Error() string {
	return "your order was created but payment could not be started, please retry from your order history"
}

func (e *PartialFailureError) Unwrap() error { return e.Err }

// Result is a successful handoff to the payment provider
type Result struct {
	Order       *backend.Order `json:"order"`
	CheckoutURL string         `json:"checkoutUrl"`
}

// Orchestrator drives the checkout sequence: validate, create the order,
// initialize payment, hand off to the provider's hosted page, and verify the
// outcome on return. Order creation and payment initialization are separate
// backend calls, so the seam between them is handled explicitly rather than
// pretended away.
type Orchestrator struct {
	mu   sync.Mutex
	step Step

	backend      Backend
	cart         Cart
	sessions     Sessions
	defaultEmail string
	log          *logrus.Entry
}

// NewOrchestrator creates a checkout orchestrator
func NewOrchestrator(api Backend, cart Cart, sessions Sessions, cfg *config.Config, log *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		backend:      api,
		cart:         cart,
		sessions:     sessions,
		defaultEmail: cfg.Backend.DefaultEmail,
		log:          log.WithField("component", "checkout_orchestrator"),
	}
}

// Step returns the current checkout step
func (o *Orchestrator) Step() Step {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.step
}

func (o *Orchestrator) setStep(s Step) {
	o.mu.Lock()
	o.step = s
	o.mu.Unlock()
}

// Checkout runs the full sequence for the current cart. All preconditions are
// checked before any network call: an active session, a shipping address and
// a non-empty cart.
func (o *Orchestrator) Checkout(ctx context.Context, shippingAddress string, useLoyaltyPoints bool) (*Result, error) {
	o.setStep(StepValidating)

	sess, ok := o.sessions.Current()
	if !ok {
		o.setStep(StepIdle)
		return nil, backend.NewValidationError("please login to checkout")
	}
	if strings.TrimSpace(shippingAddress) == "" {
		o.setStep(StepIdle)
		return nil, backend.NewValidationError("shipping address is required")
	}
	if o.cart.IsEmpty() {
		o.setStep(StepIdle)
		return nil, backend.NewValidationError("your cart is empty")
	}

	o.setStep(StepCreatingOrder)
	order, err := o.backend.Checkout(ctx, shippingAddress, useLoyaltyPoints)
	if err != nil {
		o.setStep(StepIdle)
		return nil, err
	}
	o.log.WithField("order_id", order.ID).Info("Order created")

	return o.startPayment(ctx, order, sess.Email)
}

// PayNow retries payment for an existing unpaid order, typically after a
// partial checkout failure or an abandoned provider page.
func (o *Orchestrator) PayNow(ctx context.Context, order *backend.Order) (*Result, error) {
	sess, ok := o.sessions.Current()
	if !ok {
		return nil, backend.NewValidationError("please login to pay for your order")
	}
	if order == nil || order.ID == "" {
		return nil, backend.NewValidationError("order is required")
	}
	if order.PaymentStatus == backend.PaymentStatusPaid {
		return nil, backend.NewValidationError("this order is already paid")
	}
	return o.startPayment(ctx, order, sess.Email)
}

// startPayment initializes payment for an already-created order. Any failure
// past this point leaves the order behind as PENDING, which is reported as a
// partial failure rather than a generic error.
func (o *Orchestrator) startPayment(ctx context.Context, order *backend.Order, email string) (*Result, error) {
	o.setStep(StepInitializingPayment)

	if email == "" {
		email = o.defaultEmail
	}

	init, err := o.backend.InitializePayment(ctx, order, email)
	if err != nil {
		o.setStep(StepIdle)
		return nil, &PartialFailureError{Order: order, Err: err}
	}
	if !init.Succeeded() {
		o.setStep(StepIdle)
		o.log.WithFields(logrus.Fields{
			"order_id": order.ID,
			"status":   init.Status,
		}).Warn("Payment initialization refused")
		return nil, &PartialFailureError{Order: order}
	}

	o.setStep(StepRedirectingToGateway)

	// The backend consumed the cart when it created the order; refetch so the
	// local view agrees. Best effort, the handoff already succeeded.
	if err := o.cart.Refresh(ctx); err != nil {
		o.log.WithError(err).Warn("Cart refresh after checkout failed")
	}

	return &Result{Order: order, CheckoutURL: init.Data.CheckoutURL}, nil
}

// VerifyReturn confirms the payment outcome after the provider redirects back
// with a verification id and optional transaction reference. Safe to call
// more than once for the same id.
func (o *Orchestrator) VerifyReturn(ctx context.Context, verifyID, txRef string) (VerificationOutcome, error) {
	o.setStep(StepVerifyingPayment)
	defer o.setStep(StepIdle)

	resp, err := o.backend.VerifyPayment(ctx, verifyID, txRef)
	if err != nil {
		// A non-2xx answer from a reachable backend is still an answer: the
		// provider has not confirmed yet. Only an unreachable verify endpoint
		// is a failure.
		if backend.KindOf(err) == backend.KindBackend {
			o.log.WithError(err).WithField("verify_id", verifyID).Info("Verification not confirmed yet")
			return VerificationPending, nil
		}
		return VerificationFailed, err
	}
	if resp.Succeeded() {
		o.log.WithField("verify_id", verifyID).Info("Payment verified")
		return Verified, nil
	}
	return VerificationPending, nil
}

// Reset drops any in-flight step. Registered as a session logout hook.
func (o *Orchestrator) Reset() {
	o.setStep(StepIdle)
}
