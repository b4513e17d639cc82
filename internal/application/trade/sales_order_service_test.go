package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erp/selling/internal/domain/partner"
	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type salesOrderFixture struct {
	orders      *MockSalesOrderRepository
	parties     *MockPartyValidator
	credit      *MockCreditChecker
	series      *MockNamingSeries
	publisher   *MockEventPublisher
	idempotency *MockIdempotencyStore
	metrics     *MockDocumentMetrics
	service     *SalesOrderService
}

func newSalesOrderFixture() *salesOrderFixture {
	f := &salesOrderFixture{
		orders:      new(MockSalesOrderRepository),
		parties:     new(MockPartyValidator),
		credit:      new(MockCreditChecker),
		series:      new(MockNamingSeries),
		publisher:   new(MockEventPublisher),
		idempotency: new(MockIdempotencyStore),
		metrics:     new(MockDocumentMetrics),
	}
	f.service = NewSalesOrderService(f.orders, f.parties, f.credit, f.series, nil)
	f.service.SetEventPublisher(f.publisher)
	f.service.SetIdempotencyStore(f.idempotency, time.Hour)
	f.service.SetMetrics(f.metrics)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	return f
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decEq(s string) any {
	want := dec(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func newTestCustomer(t *testing.T, tenantID uuid.UUID, name string) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer(tenantID, name, name, partner.CustomerTypeCompany, "_Test Customer Group", "_Test Territory")
	require.NoError(t, err)
	customer.SetDefaults("_Test Price List", "INR")
	customer.ClearDomainEvents()
	return customer
}

func newDraftOrder(t *testing.T, tenantID uuid.UUID, name string) *trade.SalesOrder {
	t.Helper()
	order, err := trade.NewSalesOrder(tenantID, name, "_Test Customer", "_Test Company", time.Time{}, time.Time{})
	require.NoError(t, err)
	_, err = order.AddItem("_Test Item", "", dec("10"), dec("20"))
	require.NoError(t, err)
	return order
}

func TestSalesOrderService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	clerk := shared.Actor{Username: "clerk"}
	req := CreateSalesOrderRequest{
		Customer: "_Test Customer",
		Company:  "_Test Company",
		Items:    []LineItemRequest{{ItemCode: "_Test Item", Qty: dec("10"), Rate: dec("20")}},
		Taxes:    []TaxLineRequest{{Description: "VAT", Rate: dec("10")}},
	}

	t.Run("saves a named draft with customer defaults", func(t *testing.T) {
		f := newSalesOrderFixture()
		f.series.On("Next", ctx, tenantID, SalesOrderSeries).Return(int64(1), nil)
		f.parties.On("ValidateParty", ctx, tenantID, "_Test Customer", clerk).Return(newTestCustomer(t, tenantID, "_Test Customer"), nil)
		f.orders.On("Save", ctx, mock.AnythingOfType("*trade.SalesOrder")).Return(nil)

		resp, err := f.service.Create(ctx, tenantID, req, clerk)

		require.NoError(t, err)
		assert.Equal(t, "SO-00001", resp.Name)
		assert.Equal(t, "_Test Customer", resp.CustomerName)
		assert.Equal(t, "INR", resp.Currency)
		assert.Equal(t, "_Test Price List", resp.SellingPriceList)
		assert.True(t, resp.NetTotal.Equal(dec("200")))
		assert.True(t, resp.TotalTaxes.Equal(dec("20")))
		assert.True(t, resp.GrandTotal.Equal(dec("220")))
		assert.Equal(t, trade.StatusDraft, resp.Status)
		f.orders.AssertExpectations(t)
	})

	t.Run("frozen customer blocks save", func(t *testing.T) {
		f := newSalesOrderFixture()
		f.series.On("Next", ctx, tenantID, SalesOrderSeries).Return(int64(2), nil)
		f.parties.On("ValidateParty", ctx, tenantID, "_Test Customer", clerk).
			Return(nil, shared.NewDomainError(shared.CodePartyFrozen, "Customer _Test Customer is frozen"))

		_, err := f.service.Create(ctx, tenantID, req, clerk)

		assert.True(t, errors.Is(err, shared.ErrPartyFrozen))
		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("disabled customer blocks save", func(t *testing.T) {
		f := newSalesOrderFixture()
		f.series.On("Next", ctx, tenantID, SalesOrderSeries).Return(int64(3), nil)
		f.parties.On("ValidateParty", ctx, tenantID, "_Test Customer", clerk).
			Return(nil, shared.NewDomainError(shared.CodePartyDisabled, "Customer _Test Customer is disabled"))

		_, err := f.service.Create(ctx, tenantID, req, clerk)

		assert.True(t, errors.Is(err, shared.ErrPartyDisabled))
		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("invalid row", func(t *testing.T) {
		f := newSalesOrderFixture()
		f.series.On("Next", ctx, tenantID, SalesOrderSeries).Return(int64(4), nil)
		bad := req
		bad.Items = []LineItemRequest{{ItemCode: "_Test Item", Qty: dec("0"), Rate: dec("20")}}

		_, err := f.service.Create(ctx, tenantID, bad, clerk)

		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestSalesOrderService_Submit(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	clerk := shared.Actor{Username: "clerk"}
	key := submitKey(tenantID, trade.DocTypeSalesOrder, "SO-00001", "req-1")

	t.Run("checks credit with the grand total", func(t *testing.T) {
		f := newSalesOrderFixture()
		order := newDraftOrder(t, tenantID, "SO-00001")
		f.orders.On("FindByName", ctx, tenantID, "SO-00001").Return(order, nil)
		f.idempotency.On("IsProcessed", ctx, key).Return(false, nil)
		f.parties.On("ValidateParty", ctx, tenantID, "_Test Customer", clerk).Return(newTestCustomer(t, tenantID, "_Test Customer"), nil)
		f.credit.On("CheckCreditLimit", ctx, tenantID, "_Test Customer", "_Test Company", decEq("200"), clerk).Return(nil)
		f.orders.On("SaveWithLock", ctx, order).Return(nil)
		f.metrics.On("RecordSubmit", ctx, trade.DocTypeSalesOrder).Return()
		f.idempotency.On("MarkProcessed", ctx, key, time.Hour).Return(true, nil)

		resp, err := f.service.Submit(ctx, tenantID, "SO-00001", "req-1", clerk)

		require.NoError(t, err)
		assert.Equal(t, 1, resp.DocStatus)
		assert.Equal(t, trade.StatusToBill, resp.Status)
		f.credit.AssertExpectations(t)
		f.metrics.AssertExpectations(t)
		f.idempotency.AssertExpectations(t)
		f.publisher.AssertCalled(t, "Publish", ctx, mock.Anything)
	})

	t.Run("credit limit crossed", func(t *testing.T) {
		f := newSalesOrderFixture()
		order := newDraftOrder(t, tenantID, "SO-00001")
		f.orders.On("FindByName", ctx, tenantID, "SO-00001").Return(order, nil)
		f.parties.On("ValidateParty", ctx, tenantID, "_Test Customer", clerk).Return(newTestCustomer(t, tenantID, "_Test Customer"), nil)
		f.credit.On("CheckCreditLimit", ctx, tenantID, "_Test Customer", "_Test Company", mock.Anything, clerk).
			Return(shared.NewDomainError(shared.CodeCreditLimitExceeded, "Credit limit has been crossed for customer _Test Customer (1060.00/1000.00)"))
		f.metrics.On("RecordCreditBlock", ctx, trade.DocTypeSalesOrder).Return()

		_, err := f.service.Submit(ctx, tenantID, "SO-00001", "", clerk)

		assert.True(t, errors.Is(err, shared.ErrCreditLimitExceeded))
		f.orders.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
		f.metrics.AssertNotCalled(t, "RecordSubmit", mock.Anything, mock.Anything)
		f.idempotency.AssertNotCalled(t, "IsProcessed", mock.Anything, mock.Anything)
	})

	t.Run("replayed key returns the stored order", func(t *testing.T) {
		f := newSalesOrderFixture()
		order := newDraftOrder(t, tenantID, "SO-00001")
		require.NoError(t, order.Submit())
		order.ClearDomainEvents()
		f.orders.On("FindByName", ctx, tenantID, "SO-00001").Return(order, nil)
		f.idempotency.On("IsProcessed", ctx, key).Return(true, nil)

		resp, err := f.service.Submit(ctx, tenantID, "SO-00001", "req-1", clerk)

		require.NoError(t, err)
		assert.Equal(t, trade.StatusToBill, resp.Status)
		f.parties.AssertNotCalled(t, "ValidateParty", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.orders.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("already submitted", func(t *testing.T) {
		f := newSalesOrderFixture()
		order := newDraftOrder(t, tenantID, "SO-00001")
		require.NoError(t, order.Submit())
		f.orders.On("FindByName", ctx, tenantID, "SO-00001").Return(order, nil)
		f.parties.On("ValidateParty", ctx, tenantID, "_Test Customer", clerk).Return(newTestCustomer(t, tenantID, "_Test Customer"), nil)

		_, err := f.service.Submit(ctx, tenantID, "SO-00001", "", clerk)

		assert.True(t, errors.Is(err, shared.ErrInvalidState))
	})
}

func TestSalesOrderService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	clerk := shared.Actor{Username: "clerk"}

	t.Run("replaces rows of a draft", func(t *testing.T) {
		f := newSalesOrderFixture()
		order := newDraftOrder(t, tenantID, "SO-00001")
		f.orders.On("FindByName", ctx, tenantID, "SO-00001").Return(order, nil)
		f.parties.On("ValidateParty", ctx, tenantID, "_Test Customer", clerk).Return(newTestCustomer(t, tenantID, "_Test Customer"), nil)
		f.orders.On("SaveWithLock", ctx, order).Return(nil)
		remarks := "rush"

		resp, err := f.service.Update(ctx, tenantID, "SO-00001", UpdateSalesOrderRequest{
			UpdateSalesDocumentRequest: UpdateSalesDocumentRequest{
				Items:   []LineItemRequest{{ItemCode: "_Test Item 2", Qty: dec("5"), Rate: dec("100")}},
				Remarks: &remarks,
			},
		}, clerk)

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "_Test Item 2", resp.Items[0].ItemCode)
		assert.True(t, resp.GrandTotal.Equal(dec("500")))
		assert.Equal(t, "rush", resp.Remarks)
	})

	t.Run("stale version", func(t *testing.T) {
		f := newSalesOrderFixture()
		order := newDraftOrder(t, tenantID, "SO-00001")
		f.orders.On("FindByName", ctx, tenantID, "SO-00001").Return(order, nil)
		stale := order.Version + 1

		_, err := f.service.Update(ctx, tenantID, "SO-00001", UpdateSalesOrderRequest{
			UpdateSalesDocumentRequest: UpdateSalesDocumentRequest{Version: &stale},
		}, clerk)

		assert.True(t, errors.Is(err, shared.ErrConcurrencyConflict))
	})

	t.Run("submitted order is read only", func(t *testing.T) {
		f := newSalesOrderFixture()
		order := newDraftOrder(t, tenantID, "SO-00001")
		require.NoError(t, order.Submit())
		f.orders.On("FindByName", ctx, tenantID, "SO-00001").Return(order, nil)

		_, err := f.service.Update(ctx, tenantID, "SO-00001", UpdateSalesOrderRequest{}, clerk)

		assert.True(t, errors.Is(err, shared.ErrInvalidState))
	})
}

func TestSalesOrderService_CloseAndReopen(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	f := newSalesOrderFixture()
	order := newDraftOrder(t, tenantID, "SO-00001")
	require.NoError(t, order.Submit())
	f.orders.On("FindByName", ctx, tenantID, "SO-00001").Return(order, nil)
	f.orders.On("SaveWithLock", ctx, order).Return(nil)

	resp, err := f.service.Close(ctx, tenantID, "SO-00001")
	require.NoError(t, err)
	assert.Equal(t, trade.StatusClosed, resp.Status)
	assert.True(t, order.UnbilledAmount().IsZero())

	resp, err = f.service.Reopen(ctx, tenantID, "SO-00001")
	require.NoError(t, err)
	assert.Equal(t, trade.StatusToBill, resp.Status)
	assert.True(t, order.UnbilledAmount().Equal(dec("200")))
}

func TestSalesOrderService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("draft", func(t *testing.T) {
		f := newSalesOrderFixture()
		f.orders.On("FindByName", ctx, tenantID, "SO-00001").Return(newDraftOrder(t, tenantID, "SO-00001"), nil)
		f.orders.On("Delete", ctx, tenantID, "SO-00001").Return(nil)

		require.NoError(t, f.service.Delete(ctx, tenantID, "SO-00001"))
		f.orders.AssertExpectations(t)
	})

	t.Run("submitted", func(t *testing.T) {
		f := newSalesOrderFixture()
		order := newDraftOrder(t, tenantID, "SO-00001")
		require.NoError(t, order.Submit())
		f.orders.On("FindByName", ctx, tenantID, "SO-00001").Return(order, nil)

		err := f.service.Delete(ctx, tenantID, "SO-00001")

		assert.True(t, errors.Is(err, shared.ErrInvalidState))
		f.orders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSalesOrderService_List(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	f := newSalesOrderFixture()
	docStatus := 1
	matchFilter := mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Filters["customer"] == "_Test Customer" && filter.Filters["doc_status"] == 1 && filter.PageSize == 20
	})
	f.orders.On("FindAllForTenant", ctx, tenantID, matchFilter).Return([]trade.SalesOrder{*newDraftOrder(t, tenantID, "SO-00001")}, nil)
	f.orders.On("CountForTenant", ctx, tenantID, matchFilter).Return(int64(1), nil)

	orders, total, err := f.service.List(ctx, tenantID, SalesDocumentListFilter{Customer: "_Test Customer", DocStatus: &docStatus})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
	assert.Equal(t, "SO-00001", orders[0].Name)
}
