package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/domain/checkout"
	"github.com/your-org/storefront-gateway/internal/domain/session"
	"github.com/your-org/storefront-gateway/internal/infrastructure/backend"
)

type fakeCheckoutBackend struct {
	verifyResp *backend.VerifyResponse
	verifyErr  error
	verifyIDs  []string
}

func (f *fakeCheckoutBackend) Checkout(ctx context.Context, shippingAddress string, useLoyaltyPoints bool) (*backend.Order, error) {
	return nil, &backend.Error{Kind: backend.KindBackend, Message: "not scripted"}
}

func (f *fakeCheckoutBackend) InitializePayment(ctx context.Context, order *backend.Order, email string) (*backend.PaymentInitResponse, error) {
	return nil, &backend.Error{Kind: backend.KindBackend, Message: "not scripted"}
}

func (f *fakeCheckoutBackend) VerifyPayment(ctx context.Context, verifyID, txRef string) (*backend.VerifyResponse, error) {
	f.verifyIDs = append(f.verifyIDs, verifyID)
	return f.verifyResp, f.verifyErr
}

type noSessions struct{}

func (noSessions) Current() (session.Session, bool) { return session.Session{}, false }

type emptyCart struct{}

func (emptyCart) IsEmpty() bool                     { return true }
func (emptyCart) Refresh(ctx context.Context) error { return nil }

func returnTestRouter(fb *fakeCheckoutBackend) (*gin.Engine, *config.Config) {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{
		Backend: config.BackendConfig{DefaultEmail: "fallback@example.com"},
		Payment: config.PaymentConfig{ReturnPath: "/api/v1/payment/return", LandingPath: "/orders"},
	}

	orchestrator := checkout.NewOrchestrator(fb, emptyCart{}, noSessions{}, cfg, log)
	h := NewCheckoutHandler(orchestrator, nil, cfg, log)

	router := gin.New()
	router.GET("/api/v1/payment/return", h.PaymentReturn)
	return router, cfg
}

func TestPaymentReturnStripsVerificationMarkers(t *testing.T) {
	fb := &fakeCheckoutBackend{verifyResp: &backend.VerifyResponse{Status: "success"}}
	router, cfg := returnTestRouter(fb)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", cfg.Payment.ReturnPath+"?verify=v123&tx_ref=tx-9", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)

	assert.Equal(t, "/orders", location.Path)
	assert.Equal(t, "verified", location.Query().Get("payment"))
	// A reload of the landing page must not re-trigger verification
	assert.Empty(t, location.Query().Get("verify"))
	assert.Empty(t, location.Query().Get("tx_ref"))
	assert.Equal(t, []string{"v123"}, fb.verifyIDs)
}

func TestPaymentReturnReportsPendingOutcome(t *testing.T) {
	fb := &fakeCheckoutBackend{verifyResp: &backend.VerifyResponse{Status: "pending"}}
	router, cfg := returnTestRouter(fb)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", cfg.Payment.ReturnPath+"?verify=v123", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/orders?payment=pending", rec.Header().Get("Location"))
}

func TestPaymentReturnReportsFailureWhenVerifyUnreachable(t *testing.T) {
	fb := &fakeCheckoutBackend{verifyErr: &backend.Error{Kind: backend.KindNetwork, Message: "network error"}}
	router, cfg := returnTestRouter(fb)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", cfg.Payment.ReturnPath+"?verify=v123", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/orders?payment=failed", rec.Header().Get("Location"))
}

func TestPaymentReturnWithoutMarkersJustRedirects(t *testing.T) {
	fb := &fakeCheckoutBackend{}
	router, cfg := returnTestRouter(fb)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", cfg.Payment.ReturnPath, nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/orders", rec.Header().Get("Location"))
	assert.Empty(t, fb.verifyIDs)
}

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", backend.NewValidationError("your cart is empty"), http.StatusBadRequest, "your cart is empty"},
		{"auth expired", &backend.Error{Kind: backend.KindAuthExpired, Message: "your session has expired, please log in again"}, http.StatusUnauthorized, "your session has expired, please log in again"},
		{"timeout", &backend.Error{Kind: backend.KindTimeout, Message: "request timed out"}, http.StatusGatewayTimeout, "request timed out"},
		{"network", &backend.Error{Kind: backend.KindNetwork, Message: "network error"}, http.StatusBadGateway, "network error"},
		{"backend with status", &backend.Error{Kind: backend.KindBackend, Status: 409, Message: "insufficient stock"}, http.StatusConflict, "insufficient stock"},
		{"backend without status", &backend.Error{Kind: backend.KindBackend, Message: "invalid response from server"}, http.StatusBadGateway, "invalid response from server"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/boom", func(c *gin.Context) { respondError(c, tt.err) })

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", "/boom", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
