package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-gateway/internal/domain/session"
	"github.com/your-org/storefront-gateway/internal/infrastructure/backend"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

type fakeSessions struct {
	mu   sync.Mutex
	sess *session.Session
}

func (f *fakeSessions) Current() (session.Session, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sess == nil {
		return session.Session{}, false
	}
	return *f.sess, true
}

func (f *fakeSessions) set(s *session.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sess = s
}

func loggedIn() *fakeSessions {
	return &fakeSessions{sess: &session.Session{Token: "tok", UserID: "u1", Role: session.RoleCustomer, Email: "a@b.c"}}
}

// fakeBackend models the server's cart bookkeeping: line items keyed by
// material plus variant selection, quantities folded on repeat adds.
type fakeBackend struct {
	mu          sync.Mutex
	lines       []backend.CartItem
	getCalls    int
	writeCalls  int
	failNextGet error
	failNextAdd error
}

func sameLine(l backend.CartItem, materialID string, sel backend.VariantSelection) bool {
	return l.Material.ID == materialID && l.VariantSelection == sel
}

func (f *fakeBackend) GetCart(ctx context.Context) (*backend.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.failNextGet != nil {
		err := f.failNextGet
		f.failNextGet = nil
		return nil, err
	}
	items := make([]backend.CartItem, len(f.lines))
	copy(items, f.lines)
	return &backend.Cart{Items: items}, nil
}

func (f *fakeBackend) AddToCart(ctx context.Context, materialID string, sel backend.VariantSelection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeCalls++
	if f.failNextAdd != nil {
		err := f.failNextAdd
		f.failNextAdd = nil
		return err
	}
	for i := range f.lines {
		if sameLine(f.lines[i], materialID, sel) {
			f.lines[i].Quantity++
			return nil
		}
	}
	f.lines = append(f.lines, backend.CartItem{
		ID:               "line-" + materialID + sel.SelectedSize + sel.SelectedColor + sel.SelectedStorage,
		Quantity:         1,
		VariantSelection: sel,
		Material:         backend.Material{ID: materialID, Title: "Material " + materialID, Price: decimal.NewFromInt(100)},
	})
	return nil
}

func (f *fakeBackend) RemoveFromCart(ctx context.Context, materialID string, sel backend.VariantSelection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeCalls++
	for i := range f.lines {
		if sameLine(f.lines[i], materialID, sel) {
			f.lines[i].Quantity--
			if f.lines[i].Quantity <= 0 {
				f.lines = append(f.lines[:i], f.lines[i+1:]...)
			}
			return nil
		}
	}
	return nil
}

func (f *fakeBackend) DeleteFromCart(ctx context.Context, materialID string, sel backend.VariantSelection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeCalls++
	for i := range f.lines {
		if sameLine(f.lines[i], materialID, sel) {
			f.lines = append(f.lines[:i], f.lines[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeBackend) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls + f.writeCalls
}

func TestAddItemWithoutSessionMakesNoNetworkCalls(t *testing.T) {
	fb := &fakeBackend{}
	m := NewManager(fb, &fakeSessions{}, testLogger())

	err := m.AddItem(context.Background(), "m1", backend.VariantSelection{})
	require.Error(t, err)
	assert.Equal(t, backend.KindValidation, backend.KindOf(err))
	assert.Contains(t, err.Error(), "login")
	assert.Equal(t, 0, fb.totalCalls())
}

func TestRefreshIsIdempotent(t *testing.T) {
	fb := &fakeBackend{}
	require.NoError(t, fb.AddToCart(context.Background(), "m1", backend.VariantSelection{SelectedSize: "M"}))
	m := NewManager(fb, loggedIn(), testLogger())

	require.NoError(t, m.Refresh(context.Background()))
	first := m.Items()
	require.NoError(t, m.Refresh(context.Background()))
	second := m.Items()

	assert.Equal(t, first, second)
	assert.Equal(t, StateReady, m.State())
}

func TestAddItemFoldsIntoExistingLine(t *testing.T) {
	fb := &fakeBackend{}
	m := NewManager(fb, loggedIn(), testLogger())
	sel := backend.VariantSelection{SelectedSize: "M", SelectedColor: "black"}

	require.NoError(t, m.AddItem(context.Background(), "m1", sel))
	require.NoError(t, m.AddItem(context.Background(), "m1", sel))

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "m1", items[0].MaterialID)

	// A different variant of the same material is a distinct line item
	require.NoError(t, m.AddItem(context.Background(), "m1", backend.VariantSelection{SelectedSize: "L", SelectedColor: "black"}))
	items = m.Items()
	require.Len(t, items, 2)
	assert.NotEqual(t, items[0].Key(), items[1].Key())
}

func TestDeleteLastItemYieldsEmptyCart(t *testing.T) {
	fb := &fakeBackend{}
	m := NewManager(fb, loggedIn(), testLogger())
	sel := backend.VariantSelection{}

	require.NoError(t, m.AddItem(context.Background(), "m1", sel))
	require.Len(t, m.Items(), 1)

	require.NoError(t, m.DeleteItem(context.Background(), "m1", sel))
	assert.True(t, m.IsEmpty())
	assert.Equal(t, StateReady, m.State())
}

func TestRemoveOneUnitAtQuantityOneDropsTheLine(t *testing.T) {
	fb := &fakeBackend{}
	m := NewManager(fb, loggedIn(), testLogger())
	sel := backend.VariantSelection{}

	require.NoError(t, m.AddItem(context.Background(), "m1", sel))
	require.NoError(t, m.RemoveOneUnit(context.Background(), "m1", sel))

	assert.True(t, m.IsEmpty())
}

func TestFailedAddLeavesCartUntouched(t *testing.T) {
	fb := &fakeBackend{}
	m := NewManager(fb, loggedIn(), testLogger())
	require.NoError(t, m.AddItem(context.Background(), "m1", backend.VariantSelection{}))
	before := m.Items()

	fb.failNextAdd = &backend.Error{Kind: backend.KindBackend, Message: "out of stock"}
	err := m.AddItem(context.Background(), "m2", backend.VariantSelection{})
	require.Error(t, err)
	assert.Equal(t, "out of stock", err.Error())
	assert.Equal(t, before, m.Items())
}

func TestFailedRefreshKeepsPreviousView(t *testing.T) {
	fb := &fakeBackend{}
	m := NewManager(fb, loggedIn(), testLogger())
	require.NoError(t, m.AddItem(context.Background(), "m1", backend.VariantSelection{}))
	before := m.Items()

	fb.failNextGet = &backend.Error{Kind: backend.KindNetwork, Message: "network error"}
	err := m.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, backend.KindNetwork, backend.KindOf(err))
	assert.Equal(t, before, m.Items())
	assert.Equal(t, StateReady, m.State())
}

func TestRefreshWithoutSessionYieldsEmptyCartWithoutNetwork(t *testing.T) {
	fb := &fakeBackend{}
	sessions := loggedIn()
	m := NewManager(fb, sessions, testLogger())
	require.NoError(t, m.AddItem(context.Background(), "m1", backend.VariantSelection{}))

	sessions.set(nil)
	calls := fb.totalCalls()

	require.NoError(t, m.Refresh(context.Background()))
	assert.True(t, m.IsEmpty())
	assert.Equal(t, calls, fb.totalCalls())
}

func TestResetDropsAllState(t *testing.T) {
	fb := &fakeBackend{}
	m := NewManager(fb, loggedIn(), testLogger())
	require.NoError(t, m.AddItem(context.Background(), "m1", backend.VariantSelection{}))

	m.Reset()
	assert.True(t, m.IsEmpty())
	assert.Equal(t, StateUninitialized, m.State())
}

type getResult struct {
	cart *backend.Cart
	err  error
}

// blockingBackend parks every GetCart until the test releases it, so response
// arrival order can be forced.
type blockingBackend struct {
	mu      sync.Mutex
	pending []chan getResult
}

func (b *blockingBackend) GetCart(ctx context.Context) (*backend.Cart, error) {
	ch := make(chan getResult)
	b.mu.Lock()
	b.pending = append(b.pending, ch)
	b.mu.Unlock()
	r := <-ch
	return r.cart, r.err
}

func (b *blockingBackend) AddToCart(ctx context.Context, materialID string, sel backend.VariantSelection) error {
	return nil
}
func (b *blockingBackend) RemoveFromCart(ctx context.Context, materialID string, sel backend.VariantSelection) error {
	return nil
}
func (b *blockingBackend) DeleteFromCart(ctx context.Context, materialID string, sel backend.VariantSelection) error {
	return nil
}

func (b *blockingBackend) waitPending(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		return len(b.pending) >= n
	}, time.Second, time.Millisecond)
}

func (b *blockingBackend) release(i int, r getResult) {
	b.mu.Lock()
	ch := b.pending[i]
	b.mu.Unlock()
	ch <- r
}

func cartWith(materialID string) *backend.Cart {
	return &backend.Cart{Items: []backend.CartItem{{
		ID:       "line-" + materialID,
		Quantity: 1,
		Material: backend.Material{ID: materialID, Title: "Material " + materialID, Price: decimal.NewFromInt(100)},
	}}}
}

func TestSlowStaleResponseDoesNotOverwriteNewerOne(t *testing.T) {
	bb := &blockingBackend{}
	m := NewManager(bb, loggedIn(), testLogger())

	firstDone := make(chan error, 1)
	go func() { firstDone <- m.Refresh(context.Background()) }()
	bb.waitPending(t, 1)

	secondDone := make(chan error, 1)
	go func() { secondDone <- m.Refresh(context.Background()) }()
	bb.waitPending(t, 2)

	// The newer request answers first...
	bb.release(1, getResult{cart: cartWith("newer")})
	require.NoError(t, <-secondDone)

	// ...then the stale one trickles in and must be discarded
	bb.release(0, getResult{cart: cartWith("older")})
	require.NoError(t, <-firstDone)

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "newer", items[0].MaterialID)
	assert.Equal(t, StateReady, m.State())
}
