package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"pizza-ordering/internal/catalogclient"
	"pizza-ordering/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	memberID string
	err      error
}

func (f *fakeVerifier) Verify(token string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.memberID, nil
}

type fakeResolver struct {
	mu       sync.Mutex
	ids      map[string]string // "name/size" -> pizza id
	down     bool
	calls    int
	lastName string
}

func (f *fakeResolver) Resolve(ctx context.Context, name, size string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastName = name
	if f.down {
		return "", &catalogclient.LookupError{Name: name, Size: size, Unavailable: true}
	}
	id, ok := f.ids[name+"/"+size]
	if !ok {
		return "", &catalogclient.LookupError{Name: name, Size: size}
	}
	return id, nil
}

type fakeOrderStore struct {
	mu       sync.Mutex
	orders   []models.Order
	details  []models.OrderDetail
	failTx   bool
	txCalls  int
	branches []models.Branch
	lines    map[string][]models.OrderLine
}

func (f *fakeOrderStore) CreateOrderTx(ctx context.Context, order *models.Order, details []models.OrderDetail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txCalls++
	if f.failTx {
		return errors.New("connection reset")
	}
	f.orders = append(f.orders, *order)
	f.details = append(f.details, details...)
	return nil
}

func (f *fakeOrderStore) GetOrderLinesByMemberID(ctx context.Context, memberID string) ([]models.OrderLine, error) {
	return f.lines[memberID], nil
}

func (f *fakeOrderStore) GetBranches(ctx context.Context) ([]models.Branch, error) {
	return f.branches, nil
}

func validRequest() *PlaceOrderRequest {
	return &PlaceOrderRequest{
		BranchID: "B001",
		Lines: []OrderLineRequest{
			{Name: "Margherita", Size: "Small", Quantity: 2},
		},
	}
}

func TestPlaceOrderSuccess(t *testing.T) {
	store := &fakeOrderStore{}
	resolver := &fakeResolver{ids: map[string]string{"Margherita/Small": "P001_S"}}
	svc := NewOrderService(store, &fakeVerifier{memberID: "u1"}, resolver)

	resp, err := svc.PlaceOrder(context.Background(), "tok", validRequest())
	require.NoError(t, err)
	require.NotEmpty(t, resp.OrderID)

	require.Len(t, store.orders, 1)
	assert.Equal(t, "u1", store.orders[0].MemberID)
	assert.Equal(t, "B001", store.orders[0].BranID)
	assert.Equal(t, resp.OrderID, store.orders[0].OrderID)

	require.Len(t, store.details, 1)
	assert.Equal(t, "P001_S", store.details[0].PizzaID)
	assert.Equal(t, 2, store.details[0].Quantity)
	assert.Equal(t, resp.OrderID, store.details[0].OrderID)
}

func TestPlaceOrderUnauthorized(t *testing.T) {
	store := &fakeOrderStore{}
	resolver := &fakeResolver{ids: map[string]string{"Margherita/Small": "P001_S"}}
	svc := NewOrderService(store, &fakeVerifier{err: errors.New("bad signature")}, resolver)

	_, err := svc.PlaceOrder(context.Background(), "tok", validRequest())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, store.txCalls)
	assert.Zero(t, resolver.calls)
}

func TestPlaceOrderMissingToken(t *testing.T) {
	svc := NewOrderService(&fakeOrderStore{}, &fakeVerifier{memberID: "u1"}, &fakeResolver{})

	_, err := svc.PlaceOrder(context.Background(), "", validRequest())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestPlaceOrderValidation(t *testing.T) {
	tests := []struct {
		name string
		req  *PlaceOrderRequest
	}{
		{"missing branch", &PlaceOrderRequest{Lines: []OrderLineRequest{{Name: "Margherita", Size: "Small", Quantity: 1}}}},
		{"empty lines", &PlaceOrderRequest{BranchID: "B001", Lines: nil}},
		{"zero quantity", &PlaceOrderRequest{BranchID: "B001", Lines: []OrderLineRequest{{Name: "Margherita", Size: "Small", Quantity: 0}}}},
		{"negative quantity", &PlaceOrderRequest{BranchID: "B001", Lines: []OrderLineRequest{{Name: "Margherita", Size: "Small", Quantity: -1}}}},
		{"missing name", &PlaceOrderRequest{BranchID: "B001", Lines: []OrderLineRequest{{Size: "Small", Quantity: 1}}}},
		{"missing size", &PlaceOrderRequest{BranchID: "B001", Lines: []OrderLineRequest{{Name: "Margherita", Quantity: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeOrderStore{}
			resolver := &fakeResolver{ids: map[string]string{"Margherita/Small": "P001_S"}}
			svc := NewOrderService(store, &fakeVerifier{memberID: "u1"}, resolver)

			_, err := svc.PlaceOrder(context.Background(), "tok", tt.req)
			assert.ErrorIs(t, err, ErrInvalidOrder)

			// rejected before any network call or write
			assert.Zero(t, resolver.calls)
			assert.Zero(t, store.txCalls)
		})
	}
}

func TestPlaceOrderLookupNotFound(t *testing.T) {
	store := &fakeOrderStore{}
	// second line resolves, first does not: nothing may be persisted
	resolver := &fakeResolver{ids: map[string]string{"Pepperoni/Large": "P002_L"}}
	svc := NewOrderService(store, &fakeVerifier{memberID: "u1"}, resolver)

	req := &PlaceOrderRequest{
		BranchID: "B001",
		Lines: []OrderLineRequest{
			{Name: "Margherita", Size: "Small", Quantity: 2},
			{Name: "Pepperoni", Size: "Large", Quantity: 1},
		},
	}

	_, err := svc.PlaceOrder(context.Background(), "tok", req)
	assert.ErrorIs(t, err, ErrPizzaNotFound)
	assert.Zero(t, store.txCalls)
	assert.Empty(t, store.orders)
	assert.Empty(t, store.details)
}

func TestPlaceOrderAbortsOnFirstFailure(t *testing.T) {
	store := &fakeOrderStore{}
	resolver := &fakeResolver{ids: map[string]string{"Margherita/Small": "P001_S"}}
	svc := NewOrderService(store, &fakeVerifier{memberID: "u1"}, resolver)

	req := &PlaceOrderRequest{
		BranchID: "B001",
		Lines: []OrderLineRequest{
			{Name: "Margherita", Size: "Small", Quantity: 1},
			{Name: "Nonexistent", Size: "Small", Quantity: 1},
			{Name: "Margherita", Size: "Small", Quantity: 1},
		},
	}

	_, err := svc.PlaceOrder(context.Background(), "tok", req)
	assert.ErrorIs(t, err, ErrPizzaNotFound)

	// lines are resolved in submitted order; the third never runs
	assert.Equal(t, 2, resolver.calls)
	assert.Zero(t, store.txCalls)
}

func TestPlaceOrderCatalogUnavailable(t *testing.T) {
	store := &fakeOrderStore{}
	resolver := &fakeResolver{down: true}
	svc := NewOrderService(store, &fakeVerifier{memberID: "u1"}, resolver)

	_, err := svc.PlaceOrder(context.Background(), "tok", validRequest())
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.Zero(t, store.txCalls)
}

func TestPlaceOrderPersistenceFailure(t *testing.T) {
	store := &fakeOrderStore{failTx: true}
	resolver := &fakeResolver{ids: map[string]string{"Margherita/Small": "P001_S"}}
	svc := NewOrderService(store, &fakeVerifier{memberID: "u1"}, resolver)

	_, err := svc.PlaceOrder(context.Background(), "tok", validRequest())
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Empty(t, store.orders)
	assert.Empty(t, store.details)
}

func TestPlaceOrderAtomicRowCounts(t *testing.T) {
	store := &fakeOrderStore{}
	resolver := &fakeResolver{ids: map[string]string{
		"Margherita/Small": "P001_S",
		"Pepperoni/Large":  "P002_L",
		"Hawaiian/Medium":  "P003_M",
	}}
	svc := NewOrderService(store, &fakeVerifier{memberID: "u1"}, resolver)

	req := &PlaceOrderRequest{
		BranchID: "B001",
		Lines: []OrderLineRequest{
			{Name: "Margherita", Size: "Small", Quantity: 2},
			{Name: "Pepperoni", Size: "Large", Quantity: 1},
			{Name: "Hawaiian", Size: "Medium", Quantity: 3},
		},
	}

	_, err := svc.PlaceOrder(context.Background(), "tok", req)
	require.NoError(t, err)

	// exactly one Order row and exactly N OrderDetail rows
	assert.Len(t, store.orders, 1)
	assert.Len(t, store.details, 3)
	for _, d := range store.details {
		assert.Equal(t, store.orders[0].OrderID, d.OrderID)
	}
}

func TestPlaceOrderConcurrentIDsDistinct(t *testing.T) {
	const concurrency = 50

	store := &fakeOrderStore{}
	resolver := &fakeResolver{ids: map[string]string{"Margherita/Small": "P001_S"}}
	svc := NewOrderService(store, &fakeVerifier{memberID: "u1"}, resolver)

	var wg sync.WaitGroup
	ids := make(chan string, concurrency)
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := svc.PlaceOrder(context.Background(), "tok", validRequest())
			if err == nil {
				ids <- resp.OrderID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate order id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, concurrency)

	detailIDs := make(map[string]bool)
	for _, d := range store.details {
		assert.False(t, detailIDs[d.OrderDetailID], "duplicate detail id")
		detailIDs[d.OrderDetailID] = true
	}
}

func TestMyOrdersFiltersByMember(t *testing.T) {
	store := &fakeOrderStore{
		lines: map[string][]models.OrderLine{
			"u1": {{OrderID: "o1", PizzaID: "P001_S", Quantity: 2, Date: "2024-01-15", Time: "12:30:00"}},
			"u2": {{OrderID: "o2", PizzaID: "P002_L", Quantity: 1, Date: "2024-01-16", Time: "18:00:00"}},
		},
	}
	svc := NewOrderService(store, &fakeVerifier{memberID: "u1"}, &fakeResolver{})

	lines, err := svc.MyOrders(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "o1", lines[0].OrderID)
}

func TestMyOrdersUnauthorized(t *testing.T) {
	svc := NewOrderService(&fakeOrderStore{}, &fakeVerifier{err: errors.New("expired")}, &fakeResolver{})

	_, err := svc.MyOrders(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestBranches(t *testing.T) {
	store := &fakeOrderStore{branches: []models.Branch{
		{BranID: "B001", BranNm: "Gangnam"},
		{BranID: "B002", BranNm: "Hongdae"},
	}}
	svc := NewOrderService(store, &fakeVerifier{}, &fakeResolver{})

	branches, err := svc.Branches(context.Background())
	require.NoError(t, err)
	assert.Len(t, branches, 2)
}

func TestPlaceOrderScenario(t *testing.T) {
	// {lines: [{Margherita, Small, 2}], branchId: B001} for member u1,
	// catalog resolving to P001_S
	store := &fakeOrderStore{}
	resolver := &fakeResolver{ids: map[string]string{"Margherita/Small": "P001_S"}}
	svc := NewOrderService(store, &fakeVerifier{memberID: "u1"}, resolver)

	resp, err := svc.PlaceOrder(context.Background(), "tok", validRequest())
	require.NoError(t, err)

	require.Len(t, store.orders, 1)
	require.Len(t, store.details, 1)
	assert.Equal(t, models.Order{
		OrderID:  resp.OrderID,
		MemberID: "u1",
		BranID:   "B001",
		Date:     store.orders[0].Date,
		Time:     store.orders[0].Time,
	}, store.orders[0])
	assert.Equal(t, "P001_S", store.details[0].PizzaID)
	assert.Equal(t, 2, store.details[0].Quantity)
	assert.NotEmpty(t, store.orders[0].Date)
	assert.NotEmpty(t, store.orders[0].Time)
}
