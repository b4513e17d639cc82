package trade

import (
	"errors"
	"testing"
	"time"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeSalesInvoice(t *testing.T) {
	t.Run("maps unbilled remainder of a submitted order", func(t *testing.T) {
		order := newTestOrder(t)
		order.Currency = "INR"
		require.NoError(t, order.SetTaxes([]TaxLine{{Description: "VAT", Rate: d("10")}}))
		require.NoError(t, order.Submit())
		require.NoError(t, order.ApplyBilling(order.Items[0].ID, d("400")))

		invoice, err := MakeSalesInvoice(order, "SINV-00001", time.Time{})

		require.NoError(t, err)
		assert.True(t, invoice.IsDraft())
		assert.Equal(t, "_Test Customer", invoice.Customer)
		assert.Equal(t, "INR", invoice.Currency)
		require.Len(t, invoice.Items, 1)
		assert.Equal(t, "600.00", invoice.NetTotal.StringFixed(2))
		assert.Equal(t, "660.00", invoice.GrandTotal.StringFixed(2))
		assert.Equal(t, "SO-00001", invoice.Items[0].SalesOrder)
		assert.Equal(t, order.Items[0].ID, *invoice.Items[0].SODetail)
		assert.False(t, invoice.NeedsCreditCheck())
	})

	t.Run("draft order is rejected", func(t *testing.T) {
		_, err := MakeSalesInvoice(newTestOrder(t), "SINV-1", time.Time{})
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
	})

	t.Run("fully billed order is rejected", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.Submit())
		require.NoError(t, order.ApplyBilling(order.Items[0].ID, d("1000")))

		_, err := MakeSalesInvoice(order, "SINV-1", time.Time{})
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
	})

	t.Run("closed order is rejected", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.Submit())
		require.NoError(t, order.Close())

		_, err := MakeSalesInvoice(order, "SINV-1", time.Time{})
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
	})
}

func TestSalesInvoice_Lifecycle(t *testing.T) {
	invoice, err := NewSalesInvoice(uuid.New(), "SINV-00002", "_Test Customer", "_Test Company", time.Now(), time.Time{})
	require.NoError(t, err)
	_, err = invoice.AddItem("_Test Item", "", d("5"), d("20"))
	require.NoError(t, err)

	assert.True(t, invoice.NeedsCreditCheck())

	require.NoError(t, invoice.Submit())
	assert.Equal(t, StatusUnpaid, invoice.Status)
	assert.Equal(t, "100.00", invoice.OutstandingAmount.StringFixed(2))

	require.NoError(t, invoice.Cancel())
	assert.True(t, invoice.OutstandingAmount.IsZero())
	assert.Equal(t, StatusCancelled, invoice.Status)

	types := []string{}
	for _, e := range invoice.GetDomainEvents() {
		types = append(types, e.EventType())
	}
	assert.Equal(t, []string{EventTypeSalesInvoiceSubmitted, EventTypeSalesInvoiceCancelled}, types)
}

func TestSalesInvoice_DueDate(t *testing.T) {
	now := time.Now()
	_, err := NewSalesInvoice(uuid.New(), "SINV-1", "C", "Co", now, now.AddDate(0, 0, -3))
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestSalesInvoice_BillingBySalesOrder(t *testing.T) {
	rowA, rowB := uuid.New(), uuid.New()
	invoice, err := NewSalesInvoice(uuid.New(), "SINV-3", "C", "Co", time.Now(), time.Time{})
	require.NoError(t, err)
	for _, line := range []LineItem{
		{ItemCode: "A", Qty: d("1"), Rate: d("10"), SalesOrder: "SO-1", SODetail: &rowA},
		{ItemCode: "A", Qty: d("2"), Rate: d("10"), SalesOrder: "SO-1", SODetail: &rowA},
		{ItemCode: "B", Qty: d("1"), Rate: d("5"), SalesOrder: "SO-2", SODetail: &rowB},
		{ItemCode: "C", Qty: d("1"), Rate: d("7")},
	} {
		_, err := invoice.AddLine(line)
		require.NoError(t, err)
	}

	billing := invoice.BillingBySalesOrder()

	require.Len(t, billing, 2)
	assert.Equal(t, "30", billing["SO-1"][rowA].String())
	assert.Equal(t, "5", billing["SO-2"][rowB].String())
	assert.True(t, invoice.NeedsCreditCheck())
}

func TestDeliveryNote(t *testing.T) {
	newNote := func(t *testing.T) *DeliveryNote {
		note, err := NewDeliveryNote(uuid.New(), "DN-00001", "_Test Customer", "_Test Company", time.Now())
		require.NoError(t, err)
		return note
	}

	t.Run("credit check only for free rows", func(t *testing.T) {
		note := newNote(t)
		soRow := uuid.New()
		_, err := note.AddLine(LineItem{ItemCode: "A", Qty: d("1"), Rate: d("10"), SalesOrder: "SO-1", SODetail: &soRow})
		require.NoError(t, err)
		assert.False(t, note.NeedsCreditCheck())

		_, err = note.AddItem("B", "", d("1"), d("10"))
		require.NoError(t, err)
		assert.True(t, note.NeedsCreditCheck())
	})

	t.Run("unbilled amount includes taxes and subtracts invoiced rows", func(t *testing.T) {
		note := newNote(t)
		free, err := note.AddItem("A", "", d("2"), d("50"))
		require.NoError(t, err)
		freeID := free.ID
		soRow := uuid.New()
		_, err = note.AddLine(LineItem{ItemCode: "B", Qty: d("1"), Rate: d("100"), SalesOrder: "SO-1", SODetail: &soRow})
		require.NoError(t, err)
		require.NoError(t, note.SetTaxes([]TaxLine{{Description: "VAT", Rate: d("10")}}))

		assert.True(t, note.UnbilledAmount(nil).IsZero(), "draft notes are not outstanding")

		require.NoError(t, note.Submit())

		assert.Equal(t, "110.00", note.UnbilledAmount(nil).StringFixed(2))
		billed := map[uuid.UUID]decimal.Decimal{freeID: d("40")}
		assert.Equal(t, "66.00", note.UnbilledAmount(billed).StringFixed(2))
		billed[freeID] = d("150")
		assert.True(t, note.UnbilledAmount(billed).IsZero())

		require.NoError(t, note.Close())
		assert.True(t, note.UnbilledAmount(nil).IsZero())
	})

	t.Run("cancel", func(t *testing.T) {
		note := newNote(t)
		_, err := note.AddItem("A", "", d("1"), d("1"))
		require.NoError(t, err)
		assert.Error(t, note.Cancel())
		require.NoError(t, note.Submit())
		require.NoError(t, note.Cancel())
		assert.True(t, note.IsCancelled())
	})
}
