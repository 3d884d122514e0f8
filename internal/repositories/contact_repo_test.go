package repositories

import (
	"context"
	"testing"

	"github.com/prudhvinik1/odoosync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestContactRepository_CreateAndGet tests insert and both lookup paths
func TestContactRepository_CreateAndGet(t *testing.T) {
	store := getTestStore(t)
	repo := NewSQLContactRepository(store.DB(), store.Dialect())
	ctx := context.Background()

	// ACT: Create a contact
	contact := &models.Contact{RemoteID: 7, Name: strPtr("Alice"), Email: strPtr("alice@example.com")}
	err := repo.Create(ctx, contact)

	// ASSERT: local id assigned, both lookups find it
	require.NoError(t, err)
	assert.NotZero(t, contact.ID, "ID should be generated")

	byID, err := repo.GetByID(ctx, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, contact, byID)

	byRemote, err := repo.GetByRemoteID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, contact.ID, byRemote.ID)
}

// TestContactRepository_NullFields tests that absent fields round-trip as NULL
func TestContactRepository_NullFields(t *testing.T) {
	store := getTestStore(t)
	repo := NewSQLContactRepository(store.DB(), store.Dialect())
	ctx := context.Background()

	contact := &models.Contact{RemoteID: 8}
	require.NoError(t, repo.Create(ctx, contact))

	retrieved, err := repo.GetByRemoteID(ctx, 8)

	require.NoError(t, err)
	assert.Nil(t, retrieved.Name)
	assert.Nil(t, retrieved.Email)
}

// TestContactRepository_UniqueRemoteID tests the remote_id constraint
func TestContactRepository_UniqueRemoteID(t *testing.T) {
	store := getTestStore(t)
	repo := NewSQLContactRepository(store.DB(), store.Dialect())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Contact{RemoteID: 1}))

	err := repo.Create(ctx, &models.Contact{RemoteID: 1})

	assert.Error(t, err, "duplicate remote_id must be rejected")
}

// TestContactRepository_Update tests overwriting mutable fields
func TestContactRepository_Update(t *testing.T) {
	store := getTestStore(t)
	repo := NewSQLContactRepository(store.DB(), store.Dialect())
	ctx := context.Background()

	contact := &models.Contact{RemoteID: 3, Name: strPtr("Bob"), Email: strPtr("bob@example.com")}
	require.NoError(t, repo.Create(ctx, contact))

	// ACT: clear email, rename
	contact.Name = strPtr("Robert")
	contact.Email = nil
	err := repo.Update(ctx, contact)

	// ASSERT
	require.NoError(t, err)
	retrieved, err := repo.GetByID(ctx, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "Robert", *retrieved.Name)
	assert.Nil(t, retrieved.Email)

	// Updating a row that does not exist
	err = repo.Update(ctx, &models.Contact{ID: 9999, RemoteID: 4})
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestContactRepository_GetMissing tests not-found lookups
func TestContactRepository_GetMissing(t *testing.T) {
	store := getTestStore(t)
	repo := NewSQLContactRepository(store.DB(), store.Dialect())
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByRemoteID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestContactRepository_ListOrdered tests that List returns rows by local id
func TestContactRepository_ListOrdered(t *testing.T) {
	store := getTestStore(t)
	repo := NewSQLContactRepository(store.DB(), store.Dialect())
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty, "empty list should not be nil")
	assert.Len(t, empty, 0)

	for _, remoteID := range []int64{30, 10, 20} {
		require.NoError(t, repo.Create(ctx, &models.Contact{RemoteID: remoteID}))
	}

	contacts, err := repo.List(ctx)

	require.NoError(t, err)
	require.Len(t, contacts, 3)
	assert.Equal(t, []int64{30, 10, 20}, []int64{contacts[0].RemoteID, contacts[1].RemoteID, contacts[2].RemoteID})
}

// TestContactRepository_Prune tests deleting rows absent from the keep set
func TestContactRepository_Prune(t *testing.T) {
	store := getTestStore(t)
	repo := NewSQLContactRepository(store.DB(), store.Dialect())
	ctx := context.Background()

	for _, remoteID := range []int64{1, 2, 3, 4} {
		require.NoError(t, repo.Create(ctx, &models.Contact{RemoteID: remoteID}))
	}

	// ACT: keep 2 and 4, plus an id we do not have locally
	deleted, err := repo.Prune(ctx, []int64{2, 4, 99})

	// ASSERT
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	contacts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, int64(2), contacts[0].RemoteID)
	assert.Equal(t, int64(4), contacts[1].RemoteID)

	// Empty keep set empties the table
	deleted, err = repo.Prune(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}

// TestContactRepository_PruneLargeSet tests batching past the parameter limit
func TestContactRepository_PruneLargeSet(t *testing.T) {
	store := getTestStore(t)
	repo := NewSQLContactRepository(store.DB(), store.Dialect())
	ctx := context.Background()

	total := pruneBatchSize*2 + 17
	for i := 1; i <= total; i++ {
		require.NoError(t, repo.Create(ctx, &models.Contact{RemoteID: int64(i)}))
	}

	deleted, err := repo.Prune(ctx, []int64{1})

	require.NoError(t, err)
	assert.Equal(t, int64(total-1), deleted)
}
