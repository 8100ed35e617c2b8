package persistence

import (
	"context"
	"testing"

	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test 1: History 由新到舊
func TestTransactionLog_History_NewestFirst(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	txLog := NewTransactionLogRepository(db)
	u := createTestUser(t, db, "alice", 0)

	first, _ := points.EarnedEntry(u.UserID(), mustAmount(t, 10), mustDescription(t, "stream"))
	second, _ := points.AdminAddedEntry(u.UserID(), mustAmount(t, 5), mustDescription(t, "bonus"))
	require.NoError(t, txLog.Append(nil, first))
	require.NoError(t, txLog.Append(nil, second))

	// Act
	history, err := txLog.History(nil, u.UserID())

	// Assert
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, points.TransactionTypeAdminAdded, history[0].Type())
	assert.Equal(t, points.TransactionTypeEarned, history[1].Type())
	assert.True(t, history[0].ID().Equals(second.ID()))
}

// Test 2: 對帳：每次帳本變動都寫入審計時，總和等於餘額
func TestTransactionLog_SumByUser_ReconcilesWithLedger(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	txManager := NewGORMTransactionManager(db)
	ledger := NewLedgerRepository(db)
	txLog := NewTransactionLogRepository(db)
	u := createTestUser(t, db, "alice", 0)
	ctx := context.Background()

	// Act
	err := txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		if _, err := ledger.Credit(tx, u.UserID(), mustAmount(t, 1000)); err != nil {
			return err
		}
		entry, _ := points.AdminAddedEntry(u.UserID(), mustAmount(t, 1000), mustDescription(t, "seed"))
		return txLog.Append(tx, entry)
	})
	require.NoError(t, err)

	err = txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		if _, err := ledger.Debit(tx, u.UserID(), mustAmount(t, 300)); err != nil {
			return err
		}
		entry, _ := points.SpentEntry(u.UserID(), mustAmount(t, 300), "Hydrate")
		return txLog.Append(tx, entry)
	})
	require.NoError(t, err)

	err = txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		result, err := ledger.Adjust(tx, u.UserID(), -5000)
		if err != nil {
			return err
		}
		entry, _ := points.AdminRemovedEntry(u.UserID(), result, mustDescription(t, "reset"))
		return txLog.Append(tx, entry)
	})
	require.NoError(t, err)

	// Assert
	balance, _ := ledger.GetBalance(nil, u.UserID())
	sum, err := txLog.SumByUser(nil, u.UserID())
	require.NoError(t, err)
	assert.Equal(t, 0, balance)
	assert.Equal(t, balance, sum)
}

// Test 3: 沒有記錄時總和為 0
func TestTransactionLog_SumByUser_Empty(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	txLog := NewTransactionLogRepository(db)
	u := createTestUser(t, db, "alice", 0)

	// Act
	sum, err := txLog.SumByUser(nil, u.UserID())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, sum)
}
