package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erp/selling/internal/domain/finance"
	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type salesInvoiceFixture struct {
	invoices *MockSalesInvoiceRepository
	orders   *MockSalesOrderRepository
	notes    *MockDeliveryNoteRepository
	gl       *MockGLEntryRepository
	parties  *MockPartyValidator
	credit   *MockCreditChecker
	series   *MockNamingSeries
	service  *SalesInvoiceService
}

func newSalesInvoiceFixture() *salesInvoiceFixture {
	f := &salesInvoiceFixture{
		invoices: new(MockSalesInvoiceRepository),
		orders:   new(MockSalesOrderRepository),
		notes:    new(MockDeliveryNoteRepository),
		gl:       new(MockGLEntryRepository),
		parties:  new(MockPartyValidator),
		credit:   new(MockCreditChecker),
		series:   new(MockNamingSeries),
	}
	scope := NewNoOpTransactionScope(f.orders, f.notes, f.invoices, f.gl)
	f.service = NewSalesInvoiceService(f.invoices, f.orders, f.notes, scope, f.parties, f.credit, f.series, nil)
	return f
}

// newSubmittedOrder returns a submitted 10 x 20 order with 10% tax
func newSubmittedOrder(t *testing.T, tenantID uuid.UUID) *trade.SalesOrder {
	t.Helper()
	order := newDraftOrder(t, tenantID, "SO-00001")
	require.NoError(t, order.SetTaxes([]trade.TaxLine{{Description: "VAT", Rate: dec("10")}}))
	require.NoError(t, order.Submit())
	order.ClearDomainEvents()
	return order
}

func TestSalesInvoiceService_MakeFromSalesOrder(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	clerk := shared.Actor{Username: "clerk"}

	t.Run("maps the unbilled remainder", func(t *testing.T) {
		f := newSalesInvoiceFixture()
		order := newSubmittedOrder(t, tenantID)
		f.orders.On("FindByName", ctx, tenantID, "SO-00001").Return(order, nil)
		f.series.On("Next", ctx, tenantID, SalesInvoiceSeries).Return(int64(3), nil)
		f.parties.On("ValidateParty", ctx, tenantID, "_Test Customer", clerk).Return(newTestCustomer(t, tenantID, "_Test Customer"), nil)
		f.invoices.On("Save", ctx, mock.AnythingOfType("*trade.SalesInvoice")).Return(nil)

		resp, err := f.service.MakeFromSalesOrder(ctx, tenantID, "SO-00001", MakeSalesInvoiceRequest{}, clerk)

		require.NoError(t, err)
		assert.Equal(t, "SINV-00003", resp.Name)
		assert.Equal(t, trade.StatusDraft, resp.Status)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "SO-00001", resp.Items[0].SalesOrder)
		assert.Equal(t, order.Items[0].ID, *resp.Items[0].SODetail)
		assert.True(t, resp.Items[0].Amount.Equal(dec("200")))
		assert.True(t, resp.GrandTotal.Equal(dec("220")))
	})

	t.Run("draft order cannot be invoiced", func(t *testing.T) {
		f := newSalesInvoiceFixture()
		f.orders.On("FindByName", ctx, tenantID, "SO-00001").Return(newDraftOrder(t, tenantID, "SO-00001"), nil)
		f.series.On("Next", ctx, tenantID, SalesInvoiceSeries).Return(int64(4), nil)

		_, err := f.service.MakeFromSalesOrder(ctx, tenantID, "SO-00001", MakeSalesInvoiceRequest{}, clerk)

		assert.True(t, errors.Is(err, shared.ErrInvalidState))
		f.invoices.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSalesInvoiceService_Submit(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	clerk := shared.Actor{Username: "clerk"}

	t.Run("posts receivable and bills the order", func(t *testing.T) {
		f := newSalesInvoiceFixture()
		order := newSubmittedOrder(t, tenantID)
		invoice, err := trade.MakeSalesInvoice(order, "SINV-00001", time.Time{})
		require.NoError(t, err)

		f.invoices.On("FindByName", ctx, tenantID, "SINV-00001").Return(invoice, nil)
		f.parties.On("ValidateParty", ctx, tenantID, "_Test Customer", clerk).Return(newTestCustomer(t, tenantID, "_Test Customer"), nil)
		f.invoices.On("SaveWithLock", ctx, invoice).Return(nil)
		f.gl.On("Create", ctx, mock.MatchedBy(func(entries []*finance.GLEntry) bool {
			return len(entries) == 1 &&
				entries[0].Debit.Equal(dec("220")) &&
				entries[0].Credit.IsZero() &&
				entries[0].VoucherNo == "SINV-00001" &&
				entries[0].VoucherType == finance.VoucherTypeSalesInvoice
		})).Return(nil)
		f.orders.On("FindByName", ctx, tenantID, "SO-00001").Return(order, nil)
		f.orders.On("SaveWithLock", ctx, order).Return(nil)

		resp, err := f.service.Submit(ctx, tenantID, "SINV-00001", "", clerk)

		require.NoError(t, err)
		assert.Equal(t, trade.StatusUnpaid, resp.Status)
		assert.True(t, resp.OutstandingAmount.Equal(dec("220")))
		assert.Equal(t, trade.StatusCompleted, order.Status)
		assert.True(t, order.PerBilled.Equal(dec("100")))
		f.credit.AssertNotCalled(t, "CheckCreditLimit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.gl.AssertExpectations(t)
	})

	t.Run("free rows run the credit check", func(t *testing.T) {
		f := newSalesInvoiceFixture()
		invoice, err := trade.NewSalesInvoice(tenantID, "SINV-00002", "_Test Customer", "_Test Company", time.Time{}, time.Time{})
		require.NoError(t, err)
		_, err = invoice.AddItem("_Test Item", "", dec("5"), dec("100"))
		require.NoError(t, err)

		f.invoices.On("FindByName", ctx, tenantID, "SINV-00002").Return(invoice, nil)
		f.parties.On("ValidateParty", ctx, tenantID, "_Test Customer", clerk).Return(newTestCustomer(t, tenantID, "_Test Customer"), nil)
		f.credit.On("CheckCreditLimit", ctx, tenantID, "_Test Customer", "_Test Company", decEq("500"), clerk).
			Return(shared.NewDomainError(shared.CodeCreditLimitExceeded, "Credit limit has been crossed"))

		_, err = f.service.Submit(ctx, tenantID, "SINV-00002", "", clerk)

		assert.True(t, errors.Is(err, shared.ErrCreditLimitExceeded))
		f.invoices.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
		f.gl.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ledger failure surfaces", func(t *testing.T) {
		f := newSalesInvoiceFixture()
		order := newSubmittedOrder(t, tenantID)
		invoice, err := trade.MakeSalesInvoice(order, "SINV-00001", time.Time{})
		require.NoError(t, err)

		f.invoices.On("FindByName", ctx, tenantID, "SINV-00001").Return(invoice, nil)
		f.parties.On("ValidateParty", ctx, tenantID, "_Test Customer", clerk).Return(newTestCustomer(t, tenantID, "_Test Customer"), nil)
		f.orders.On("FindByName", ctx, tenantID, "SO-00001").Return(order, nil)
		f.invoices.On("SaveWithLock", ctx, invoice).Return(nil)
		f.gl.On("Create", ctx, mock.Anything).Return(errors.New("connection reset"))

		_, err = f.service.Submit(ctx, tenantID, "SINV-00001", "", clerk)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "post ledger entry")
		f.orders.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestSalesInvoiceService_SubmitChecksReferences(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	clerk := shared.Actor{Username: "clerk"}

	expectRejected := func(t *testing.T, f *salesInvoiceFixture, invoice *trade.SalesInvoice, err error, want error) {
		t.Helper()
		assert.True(t, errors.Is(err, want), "got %v", err)
		assert.True(t, invoice.IsDraft())
		f.invoices.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
		f.gl.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.credit.AssertNotCalled(t, "CheckCreditLimit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	}
	newInvoice := func(t *testing.T, customer string, line trade.LineItem) *trade.SalesInvoice {
		t.Helper()
		invoice, err := trade.NewSalesInvoice(tenantID, "SINV-00001", customer, "_Test Company", time.Time{}, time.Time{})
		require.NoError(t, err)
		_, err = invoice.AddLine(line)
		require.NoError(t, err)
		return invoice
	}

	t.Run("made-up delivery note does not skip the credit check", func(t *testing.T) {
		f := newSalesInvoiceFixture()
		detail := uuid.New()
		invoice := newInvoice(t, "_Test Customer", trade.LineItem{
			ItemCode: "_Test Item", Qty: dec("50"), Rate: dec("100"), DeliveryNote: "NO-SUCH-DN", DNDetail: &detail,
		})
		f.invoices.On("FindByName", ctx, tenantID, "SINV-00001").Return(invoice, nil)
		f.parties.On("ValidateParty", ctx, tenantID, "_Test Customer", clerk).Return(newTestCustomer(t, tenantID, "_Test Customer"), nil)
		f.notes.On("FindByName", ctx, tenantID, "NO-SUCH-DN").Return(nil, shared.ErrNotFound)

		_, err := f.service.Submit(ctx, tenantID, "SINV-00001", "", clerk)

		expectRejected(t, f, invoice, err, shared.ErrInvalidInput)
	})

	t.Run("another customer's sales order", func(t *testing.T) {
		f := newSalesInvoiceFixture()
		order := newSubmittedOrder(t, tenantID)
		row := order.Items[0].ID
		invoice := newInvoice(t, "_Test Customer 2", trade.LineItem{
			ItemCode: "_Test Item", Qty: dec("10"), Rate: dec("20"), SalesOrder: "SO-00001", SODetail: &row,
		})
		f.invoices.On("FindByName", ctx, tenantID, "SINV-00001").Return(invoice, nil)
		f.parties.On("ValidateParty", ctx, tenantID, "_Test Customer 2", clerk).Return(newTestCustomer(t, tenantID, "_Test Customer 2"), nil)
		f.orders.On("FindByName", ctx, tenantID, "SO-00001").Return(order, nil)

		_, err := f.service.Submit(ctx, tenantID, "SINV-00001", "", clerk)

		expectRejected(t, f, invoice, err, shared.ErrInvalidInput)
		assert.True(t, order.BilledAmount.IsZero())
	})

	t.Run("delivery note row already billed", func(t *testing.T) {
		f := newSalesInvoiceFixture()
		note := newDraftNote(t, tenantID, trade.LineItem{ItemCode: "_Test Item", Qty: dec("4"), Rate: dec("25")})
		require.NoError(t, note.Submit())
		row := note.Items[0].ID
		invoice := newInvoice(t, "_Test Customer", trade.LineItem{
			ItemCode: "_Test Item", Qty: dec("2"), Rate: dec("25"), DeliveryNote: "DN-00001", DNDetail: &row,
		})
		f.invoices.On("FindByName", ctx, tenantID, "SINV-00001").Return(invoice, nil)
		f.parties.On("ValidateParty", ctx, tenantID, "_Test Customer", clerk).Return(newTestCustomer(t, tenantID, "_Test Customer"), nil)
		f.notes.On("FindByName", ctx, tenantID, "DN-00001").Return(note, nil)
		f.invoices.On("BilledByDeliveryNoteRows", ctx, tenantID, []uuid.UUID{row}).
			Return(map[uuid.UUID]decimal.Decimal{row: dec("75")}, nil)

		_, err := f.service.Submit(ctx, tenantID, "SINV-00001", "", clerk)

		expectRejected(t, f, invoice, err, shared.ErrInvalidState)
	})

	t.Run("unbilled delivery note row", func(t *testing.T) {
		f := newSalesInvoiceFixture()
		note := newDraftNote(t, tenantID, trade.LineItem{ItemCode: "_Test Item", Qty: dec("4"), Rate: dec("25")})
		require.NoError(t, note.Submit())
		row := note.Items[0].ID
		invoice := newInvoice(t, "_Test Customer", trade.LineItem{
			ItemCode: "_Test Item", Qty: dec("2"), Rate: dec("25"), DeliveryNote: "DN-00001", DNDetail: &row,
		})
		f.invoices.On("FindByName", ctx, tenantID, "SINV-00001").Return(invoice, nil)
		f.parties.On("ValidateParty", ctx, tenantID, "_Test Customer", clerk).Return(newTestCustomer(t, tenantID, "_Test Customer"), nil)
		f.notes.On("FindByName", ctx, tenantID, "DN-00001").Return(note, nil)
		f.invoices.On("BilledByDeliveryNoteRows", ctx, tenantID, []uuid.UUID{row}).
			Return(map[uuid.UUID]decimal.Decimal{row: dec("50")}, nil)
		f.invoices.On("SaveWithLock", ctx, invoice).Return(nil)
		f.gl.On("Create", ctx, mock.Anything).Return(nil)

		resp, err := f.service.Submit(ctx, tenantID, "SINV-00001", "", clerk)

		require.NoError(t, err)
		assert.True(t, resp.OutstandingAmount.Equal(dec("50")))
		f.credit.AssertNotCalled(t, "CheckCreditLimit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("second invoice for a fully billed order", func(t *testing.T) {
		f := newSalesInvoiceFixture()
		order := newSubmittedOrder(t, tenantID)
		first, err := trade.MakeSalesInvoice(order, "SINV-00001", time.Time{})
		require.NoError(t, err)
		second, err := trade.MakeSalesInvoice(order, "SINV-00002", time.Time{})
		require.NoError(t, err)
		require.NoError(t, order.BillInvoice(first, decimal.NewFromInt(1)))

		f.invoices.On("FindByName", ctx, tenantID, "SINV-00002").Return(second, nil)
		f.parties.On("ValidateParty", ctx, tenantID, "_Test Customer", clerk).Return(newTestCustomer(t, tenantID, "_Test Customer"), nil)
		f.orders.On("FindByName", ctx, tenantID, "SO-00001").Return(order, nil)
		f.invoices.On("SaveWithLock", ctx, second).Return(nil)
		f.gl.On("Create", ctx, mock.Anything).Return(nil)

		_, err = f.service.Submit(ctx, tenantID, "SINV-00002", "", clerk)

		assert.True(t, errors.Is(err, shared.ErrInvalidState), "got %v", err)
		assert.Equal(t, "200.00", order.BilledAmount.StringFixed(2))
		f.orders.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestSalesInvoiceService_Cancel(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	f := newSalesInvoiceFixture()

	order := newSubmittedOrder(t, tenantID)
	invoice, err := trade.MakeSalesInvoice(order, "SINV-00001", time.Time{})
	require.NoError(t, err)
	require.NoError(t, invoice.Submit())
	require.NoError(t, order.ApplyBilling(order.Items[0].ID, dec("200")))
	require.Equal(t, trade.StatusCompleted, order.Status)

	debit, err := finance.NewDebitEntry(tenantID, "_Test Customer", "_Test Company", dec("220"),
		finance.VoucherTypeSalesInvoice, "SINV-00001", time.Now())
	require.NoError(t, err)

	f.invoices.On("FindByName", ctx, tenantID, "SINV-00001").Return(invoice, nil)
	f.invoices.On("SaveWithLock", ctx, invoice).Return(nil)
	f.gl.On("FindByVoucher", ctx, tenantID, finance.VoucherTypeSalesInvoice, "SINV-00001").Return([]finance.GLEntry{*debit}, nil)
	f.gl.On("Create", ctx, mock.MatchedBy(func(entries []*finance.GLEntry) bool {
		return len(entries) == 1 && entries[0].Credit.Equal(dec("220")) && entries[0].IsCancelled
	})).Return(nil)
	f.orders.On("FindByName", ctx, tenantID, "SO-00001").Return(order, nil)
	f.orders.On("SaveWithLock", ctx, order).Return(nil)

	resp, err := f.service.Cancel(ctx, tenantID, "SINV-00001")

	require.NoError(t, err)
	assert.Equal(t, trade.StatusCancelled, resp.Status)
	assert.True(t, resp.OutstandingAmount.IsZero())
	assert.Equal(t, trade.StatusToBill, order.Status)
	assert.True(t, order.BilledAmount.IsZero())
	f.gl.AssertExpectations(t)

	_, err = f.service.Cancel(ctx, tenantID, "SINV-00001")
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
}
