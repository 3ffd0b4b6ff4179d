package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-gateway/internal/config"
)

type staticTokens struct {
	token string
	ok    bool
}

func (s staticTokens) Token() (string, bool) { return s.token, s.ok }

func newTestClient(t *testing.T, baseURL string, timeout time.Duration) *Client {
	t.Helper()
	cfg := &config.Config{}
	cfg.Backend.BaseURL = baseURL
	cfg.Backend.RequestTimeout = timeout

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return NewClient(cfg, staticTokens{token: "test-token", ok: true}, log)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, time.Second)
	_, err := c.GetCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.NotEmpty(t, srv.URL)
}

func TestAuthExpiredFiresHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, time.Second)
	var hookCalls atomic.Int32
	c.SetAuthExpiredHook(func() { hookCalls.Add(1) })

	_, err := c.GetCart(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindAuthExpired, KindOf(err))
	require.Eventually(t, func() bool { return hookCalls.Load() == 1 }, time.Second, time.Millisecond)
}

func TestAuthExpiredHookDoesNotBlockTheFailingCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, time.Second)

	// A hook that waits on the failing call's own completion models the real
	// wiring, where logout stops the poller whose fetch got the 401
	callReturned := make(chan struct{})
	hookDone := make(chan struct{})
	c.SetAuthExpiredHook(func() {
		<-callReturned
		close(hookDone)
	})

	_, err := c.GetCart(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindAuthExpired, KindOf(err))
	close(callReturned)

	select {
	case <-hookDone:
	case <-time.After(time.Second):
		t.Fatal("auth-expired hook never ran")
	}
}

func TestUnauthenticatedCallDoesNotFireHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, time.Second)
	var hookCalls atomic.Int32
	c.SetAuthExpiredHook(func() { hookCalls.Add(1) })

	_, err := c.VerifyPayment(context.Background(), "order-1", "")
	require.Error(t, err)
	assert.Equal(t, KindAuthExpired, KindOf(err))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), hookCalls.Load())
}

func TestBackendErrorMessageVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Insufficient stock for item"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, time.Second)
	_, err := c.Checkout(context.Background(), "Bole, Addis Ababa", false)
	require.Error(t, err)
	assert.Equal(t, KindBackend, KindOf(err))
	assert.Equal(t, "Insufficient stock for item", err.Error())
}

func TestNetworkErrorKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := newTestClient(t, srv.URL, time.Second)
	_, err := c.GetCart(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestTimeoutErrorKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 20*time.Millisecond)
	_, err := c.GetCart(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindTimeout, KindOf(err))
}

func TestEmptyBodyIsEmptyCart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, time.Second)
	cart, err := c.GetCart(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Empty(t, cart.Items)
}

func TestLoginRejectsIncompleteResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":""}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, time.Second)
	_, err := c.Login(context.Background(), "a@b.c", "pw")
	require.Error(t, err)
	assert.Equal(t, KindBackend, KindOf(err))
}

func TestDecodesOrderMoneyAsDecimal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"o1","totalPrice":1900,"paymentStatus":"PENDING","items":[{"id":"i1","quantity":2,"price":500,"material":{"id":"m1","title":"Chair","price":500}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, time.Second)
	order, err := c.GetOrder(context.Background(), "o1")
	require.NoError(t, err)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(1900)))
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].Price.Equal(decimal.NewFromInt(500)))
}

func TestVerifyResponseSucceeded(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"top-level success", `{"status":"success"}`, true},
		{"nested success", `{"status":"ok","data":{"status":"success"}}`, true},
		{"pending", `{"status":"pending"}`, false},
		{"failed", `{"status":"failed"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL, time.Second)
			resp, err := c.VerifyPayment(context.Background(), "tx-1", "ref-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Succeeded())
		})
	}
}
