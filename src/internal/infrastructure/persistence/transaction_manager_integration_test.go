package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// TransactionManager Integration Tests
// ===========================
//
// 這些測試驗證 TransactionManager 的核心保證：
// 1. 事務隔離：錯誤時回滾，成功時提交
// 2. Panic 處理：panic 時自動回滾
// 3. 保存點：單筆失敗只回滾自己的寫入

// TestRollbackOnError_DoesNotCommit 扣款與審計記錄在錯誤時一起回滾
func TestRollbackOnError_DoesNotCommit(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	txManager := NewGORMTransactionManager(db)
	ledger := NewLedgerRepository(db)
	txLog := NewTransactionLogRepository(db)
	u := createTestUser(t, db, "alice", 100)

	// Act: 扣款與寫入審計後返回錯誤
	err := txManager.InTransaction(context.Background(), func(tx shared.TransactionContext) error {
		_, err := ledger.Debit(tx, u.UserID(), mustAmount(t, 40))
		require.NoError(t, err)

		entry, err := points.SpentEntry(u.UserID(), mustAmount(t, 40), "Hydrate")
		require.NoError(t, err)
		require.NoError(t, txLog.Append(tx, entry))

		return errors.New("simulated error - trigger rollback")
	})

	// Assert
	require.Error(t, err)
	assert.Equal(t, "simulated error - trigger rollback", err.Error())

	balance, err := ledger.GetBalance(nil, u.UserID())
	require.NoError(t, err)
	assert.Equal(t, 100, balance, "balance should be restored after rollback")

	history, err := txLog.History(nil, u.UserID())
	require.NoError(t, err)
	assert.Empty(t, history, "no audit entry should survive rollback")
}

// TestCommitOnSuccess_SavesData 成功時扣款與審計記錄一起提交
func TestCommitOnSuccess_SavesData(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	txManager := NewGORMTransactionManager(db)
	ledger := NewLedgerRepository(db)
	txLog := NewTransactionLogRepository(db)
	u := createTestUser(t, db, "alice", 100)

	// Act
	err := txManager.InTransaction(context.Background(), func(tx shared.TransactionContext) error {
		if _, err := ledger.Debit(tx, u.UserID(), mustAmount(t, 40)); err != nil {
			return err
		}
		entry, err := points.SpentEntry(u.UserID(), mustAmount(t, 40), "Hydrate")
		if err != nil {
			return err
		}
		return txLog.Append(tx, entry)
	})

	// Assert
	require.NoError(t, err)

	balance, _ := ledger.GetBalance(nil, u.UserID())
	assert.Equal(t, 60, balance)

	history, _ := txLog.History(nil, u.UserID())
	require.Len(t, history, 1)
	assert.Equal(t, -40, history[0].Amount())
	assert.Equal(t, "Redeemed: Hydrate", history[0].Description())
}

// TestPanicRecovery_RollsBackAndRepanics panic 時回滾並重新拋出
func TestPanicRecovery_RollsBackAndRepanics(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	txManager := NewGORMTransactionManager(db)
	ledger := NewLedgerRepository(db)
	u := createTestUser(t, db, "alice", 100)

	// Act & Assert
	assert.Panics(t, func() {
		_ = txManager.InTransaction(context.Background(), func(tx shared.TransactionContext) error {
			_, err := ledger.Credit(tx, u.UserID(), mustAmount(t, 50))
			require.NoError(t, err)
			panic("simulated panic - should rollback")
		})
	}, "panic should be re-thrown")

	balance, err := ledger.GetBalance(nil, u.UserID())
	require.NoError(t, err)
	assert.Equal(t, 100, balance, "credit should be rolled back after panic")
}

// TestInSavepoint_FailureOnlyRollsBackSavepoint 保存點失敗不影響外層事務
func TestInSavepoint_FailureOnlyRollsBackSavepoint(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	txManager := NewGORMTransactionManager(db)
	ledger := NewLedgerRepository(db)
	alice := createTestUser(t, db, "alice", 0)
	bob := createTestUser(t, db, "bob", 0)

	// Act
	err := txManager.InTransaction(context.Background(), func(tx shared.TransactionContext) error {
		okErr := txManager.InSavepoint(tx, func(sp shared.TransactionContext) error {
			_, err := ledger.Credit(sp, alice.UserID(), mustAmount(t, 10))
			return err
		})
		require.NoError(t, okErr)

		failErr := txManager.InSavepoint(tx, func(sp shared.TransactionContext) error {
			if _, err := ledger.Credit(sp, bob.UserID(), mustAmount(t, 20)); err != nil {
				return err
			}
			return errors.New("item failed")
		})
		require.Error(t, failErr)
		return nil
	})

	// Assert
	require.NoError(t, err)

	aliceBalance, _ := ledger.GetBalance(nil, alice.UserID())
	bobBalance, _ := ledger.GetBalance(nil, bob.UserID())
	assert.Equal(t, 10, aliceBalance)
	assert.Equal(t, 0, bobBalance, "failed savepoint should leave no credit")
}

// TestRepository_NilContext_AutoCommitMode nil context 的讀操作直接執行
func TestRepository_NilContext_AutoCommitMode(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	u := createTestUser(t, db, "alice", 0)

	// Act
	found, err := repo.FindByID(nil, u.UserID())

	// Assert
	require.NoError(t, err)
	assert.True(t, found.UserID().Equals(u.UserID()))

	_, err = repo.FindByID(nil, user.NewUserID())
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
