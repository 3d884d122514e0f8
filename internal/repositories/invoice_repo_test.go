package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/prudhvinik1/odoosync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceRepository_CRUD(t *testing.T) {
	store := getTestStore(t)
	repo := NewSQLInvoiceRepository(store.DB(), store.Dialect())
	ctx := context.Background()

	invoice := &models.Invoice{RemoteID: 101, Number: strPtr("INV101"), AmountTotal: floatPtr(100.5)}
	require.NoError(t, repo.Create(ctx, invoice))
	assert.NotZero(t, invoice.ID)

	retrieved, err := repo.GetByRemoteID(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, "INV101", *retrieved.Number)
	assert.Equal(t, 100.5, *retrieved.AmountTotal)

	retrieved.AmountTotal = nil
	require.NoError(t, repo.Update(ctx, retrieved))

	byID, err := repo.GetByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Nil(t, byID.AmountTotal)

	_, err = repo.GetByID(ctx, invoice.ID+1)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestInvoiceRepository_InsideTransaction tests that the repository can run
// against a transaction and that rollback discards its writes
func TestInvoiceRepository_InsideTransaction(t *testing.T) {
	store := getTestStore(t)
	ctx := context.Background()

	tx, err := store.DB().BeginTx(ctx, nil)
	require.NoError(t, err)

	txRepo := NewSQLInvoiceRepository(tx, store.Dialect())
	require.NoError(t, txRepo.Create(ctx, &models.Invoice{RemoteID: 1}))
	require.NoError(t, txRepo.Create(ctx, &models.Invoice{RemoteID: 2}))

	inTx, err := txRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, inTx, 2)

	require.NoError(t, tx.Rollback())

	invoices, err := NewSQLInvoiceRepository(store.DB(), store.Dialect()).List(ctx)
	require.NoError(t, err)
	assert.Len(t, invoices, 0)
	assert.ErrorIs(t, tx.Commit(), sql.ErrTxDone)
}

func TestInvoiceRepository_Prune(t *testing.T) {
	store := getTestStore(t)
	repo := NewSQLInvoiceRepository(store.DB(), store.Dialect())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Invoice{RemoteID: 101}))
	require.NoError(t, repo.Create(ctx, &models.Invoice{RemoteID: 999}))

	deleted, err := repo.Prune(ctx, []int64{101, 102})

	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	_, err = repo.GetByRemoteID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
