package persistence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	apptrade "github.com/erp/selling/internal/application/trade"
	"github.com/erp/selling/internal/domain/finance"
	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoredOrder(t *testing.T, repo *GormSalesOrderRepository, tenantID uuid.UUID, name string, submit bool) *trade.SalesOrder {
	t.Helper()
	order, err := trade.NewSalesOrder(tenantID, name, "_Test Customer", "_Test Company", time.Now(), time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)
	_, err = order.AddItem("_Test Item", "Test Item", decimal.NewFromInt(10), decimal.NewFromInt(20))
	require.NoError(t, err)
	_, err = order.AddItem("_Test Item 2", "", decimal.NewFromInt(1), decimal.NewFromInt(50))
	require.NoError(t, err)
	require.NoError(t, order.SetTaxes([]trade.TaxLine{{Description: "VAT", Rate: decimal.NewFromInt(10)}}))
	if submit {
		require.NoError(t, order.Submit())
	}
	require.NoError(t, repo.Save(context.Background(), order))
	return order
}

func TestGormSalesOrderRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewGormSalesOrderRepository(newTestDB(t))
	tenantID := uuid.New()
	order := newStoredOrder(t, repo, tenantID, "SO-00001", false)

	found, err := repo.FindByName(ctx, tenantID, "SO-00001")
	require.NoError(t, err)
	require.Len(t, found.Items, 2)
	assert.Equal(t, "_Test Item", found.Items[0].ItemCode)
	assert.Equal(t, order.Items[0].ID, found.Items[0].ID)
	assert.Equal(t, "_Test Item 2", found.Items[1].ItemName)
	assert.True(t, found.NetTotal.Equal(decimal.NewFromInt(250)))
	assert.True(t, found.GrandTotal.Equal(decimal.NewFromInt(275)))
	require.Len(t, found.Taxes, 1)
	assert.Equal(t, "VAT", found.Taxes[0].Description)
	assert.Equal(t, trade.DocStatusDraft, found.DocStatus)

	require.NoError(t, found.ClearItems())
	_, err = found.AddItem("_Test Item 3", "", decimal.NewFromInt(2), decimal.NewFromInt(5))
	require.NoError(t, err)
	require.NoError(t, repo.SaveWithLock(ctx, found))

	found, err = repo.FindByName(ctx, tenantID, "SO-00001")
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, 2, found.Version)

	stale := *order
	err = repo.SaveWithLock(ctx, &stale)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	require.NoError(t, repo.Delete(ctx, tenantID, "SO-00001"))
	_, err = repo.FindByName(ctx, tenantID, "SO-00001")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormSalesOrderRepository_FindUnbilled(t *testing.T) {
	ctx := context.Background()
	repo := NewGormSalesOrderRepository(newTestDB(t))
	tenantID := uuid.New()

	newStoredOrder(t, repo, tenantID, "SO-00001", false)
	newStoredOrder(t, repo, tenantID, "SO-00002", true)
	billed := newStoredOrder(t, repo, tenantID, "SO-00003", true)
	for _, row := range billed.Items {
		require.NoError(t, billed.ApplyBilling(row.ID, row.Amount))
	}
	require.NoError(t, repo.SaveWithLock(ctx, billed))
	closed := newStoredOrder(t, repo, tenantID, "SO-00004", true)
	require.NoError(t, closed.Close())
	require.NoError(t, repo.SaveWithLock(ctx, closed))

	orders, err := repo.FindUnbilled(ctx, tenantID, "_Test Customer", "_Test Company")

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "SO-00002", orders[0].Name)
	assert.Len(t, orders[0].Items, 2)
}

func TestGormSalesInvoiceRepository_BilledByDeliveryNoteRows(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	tenantID := uuid.New()

	note, err := trade.NewDeliveryNote(tenantID, "DN-00001", "_Test Customer", "_Test Company", time.Now())
	require.NoError(t, err)
	row, err := note.AddItem("_Test Item", "", decimal.NewFromInt(4), decimal.NewFromInt(25))
	require.NoError(t, err)
	rowID := row.ID
	require.NoError(t, note.Submit())
	require.NoError(t, NewGormDeliveryNoteRepository(db).Save(ctx, note))

	invoices := NewGormSalesInvoiceRepository(db)
	saveInvoice := func(name string, qty int64, submit bool) {
		invoice, err := trade.NewSalesInvoice(tenantID, name, "_Test Customer", "_Test Company", time.Now(), time.Time{})
		require.NoError(t, err)
		_, err = invoice.AddLine(trade.LineItem{
			ItemCode:     "_Test Item",
			Qty:          decimal.NewFromInt(qty),
			Rate:         decimal.NewFromInt(25),
			DeliveryNote: "DN-00001",
			DNDetail:     &rowID,
		})
		require.NoError(t, err)
		if submit {
			require.NoError(t, invoice.Submit())
		}
		require.NoError(t, invoices.Save(ctx, invoice))
	}
	saveInvoice("SINV-00001", 1, true)
	saveInvoice("SINV-00002", 2, true)
	saveInvoice("SINV-00003", 1, false)

	billed, err := invoices.BilledByDeliveryNoteRows(ctx, tenantID, []uuid.UUID{rowID, uuid.New()})

	require.NoError(t, err)
	require.Len(t, billed, 1)
	assert.True(t, billed[rowID].Equal(decimal.NewFromInt(75)), billed[rowID].String())
	assert.True(t, note.UnbilledAmount(billed).Equal(decimal.NewFromInt(25)))

	empty, err := invoices.BilledByDeliveryNoteRows(ctx, tenantID, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGormGLEntryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormGLEntryRepository(newTestDB(t))
	tenantID := uuid.New()

	debit, err := finance.NewDebitEntry(tenantID, "_Test Customer", "_Test Company", decimal.NewFromInt(500), finance.VoucherTypeSalesInvoice, "SINV-00001", time.Now())
	require.NoError(t, err)
	credit, err := finance.NewCreditEntry(tenantID, "_Test Customer", "_Test Company", decimal.NewFromInt(150), finance.VoucherTypePayment, "PE-00001", time.Now())
	require.NoError(t, err)
	other, err := finance.NewDebitEntry(tenantID, "_Test Customer", "_Test Company 1", decimal.NewFromInt(90), finance.VoucherTypeSalesInvoice, "SINV-00002", time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, debit, credit, other))

	balance, err := repo.PartyBalance(ctx, tenantID, "_Test Customer", "_Test Company")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(350)), balance.String())

	entries, err := repo.FindByVoucher(ctx, tenantID, finance.VoucherTypeSalesInvoice, "SINV-00001")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Debit.Equal(decimal.NewFromInt(500)))

	entries, err = repo.FindByParty(ctx, tenantID, "_Test Customer", "_Test Company")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	balance, err = repo.PartyBalance(ctx, tenantID, "_Nobody", "_Test Company")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestGormTransactionScope(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	scope := NewGormTransactionScope(db)
	tenantID := uuid.New()

	t.Run("commits", func(t *testing.T) {
		err := scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
			order, err := trade.NewSalesOrder(tenantID, "SO-00010", "_Test Customer", "_Test Company", time.Now(), time.Time{})
			if err != nil {
				return err
			}
			if _, err := order.AddItem("_Test Item", "", decimal.NewFromInt(1), decimal.NewFromInt(10)); err != nil {
				return err
			}
			return repos.SalesOrders().Save(ctx, order)
		})
		require.NoError(t, err)

		_, err = NewGormSalesOrderRepository(db).FindByName(ctx, tenantID, "SO-00010")
		assert.NoError(t, err)
	})

	t.Run("rolls back every write on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
			order, err := trade.NewSalesOrder(tenantID, "SO-00011", "_Test Customer", "_Test Company", time.Now(), time.Time{})
			if err != nil {
				return err
			}
			if err := repos.SalesOrders().Save(ctx, order); err != nil {
				return err
			}
			entry, err := finance.NewDebitEntry(tenantID, "_Test Customer", "_Test Company", decimal.NewFromInt(10), finance.VoucherTypeSalesInvoice, "SINV-00011", time.Now())
			if err != nil {
				return err
			}
			if err := repos.GLEntries().Create(ctx, entry); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = NewGormSalesOrderRepository(db).FindByName(ctx, tenantID, "SO-00011")
		assert.ErrorIs(t, err, shared.ErrNotFound)
		entries, err := NewGormGLEntryRepository(db).FindByVoucher(ctx, tenantID, finance.VoucherTypeSalesInvoice, "SINV-00011")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestGormNamingSeries_Next(t *testing.T) {
	ctx := context.Background()
	series := NewGormNamingSeries(newTestDB(t))
	tenantID := uuid.New()

	for want := int64(1); want <= 3; want++ {
		n, err := series.Next(ctx, tenantID, "SO-")
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	n, err := series.Next(ctx, tenantID, "SINV-")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = series.Next(ctx, uuid.New(), "SO-")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	t.Run("concurrent callers get distinct numbers", func(t *testing.T) {
		const workers = 8
		results := make(chan int64, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				n, err := series.Next(ctx, tenantID, "DN-")
				assert.NoError(t, err)
				results <- n
			}()
		}
		wg.Wait()
		close(results)

		seen := make(map[int64]bool, workers)
		for n := range results {
			assert.False(t, seen[n], "duplicate number %d", n)
			seen[n] = true
		}
		assert.Len(t, seen, workers)
	})
}
