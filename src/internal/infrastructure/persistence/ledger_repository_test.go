package persistence

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// LedgerRepository Integration Tests
// ===========================

// Test 1: 餘額足夠時扣款成功
func TestLedger_Debit_SufficientBalance(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	ledger := NewLedgerRepository(db)
	u := createTestUser(t, db, "alice", 1000)

	// Act
	result, err := ledger.Debit(nil, u.UserID(), mustAmount(t, 500))

	// Assert
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 500, result.Balance)
}

// Test 2: 餘額不足時不修改任何資料，返回目前餘額
func TestLedger_Debit_InsufficientBalance_NoChange(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	ledger := NewLedgerRepository(db)
	u := createTestUser(t, db, "alice", 100)

	// Act
	result, err := ledger.Debit(nil, u.UserID(), mustAmount(t, 500))

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, points.ErrInsufficientPoints)
	assert.Equal(t, shared.KindInsufficientFunds, shared.KindOf(err))
	assert.False(t, result.Success)
	assert.Equal(t, 100, result.Balance)

	balance, _ := ledger.GetBalance(nil, u.UserID())
	assert.Equal(t, 100, balance)
}

// Test 3: 使用者不存在
func TestLedger_Debit_UnknownUser(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	ledger := NewLedgerRepository(db)

	// Act
	_, err := ledger.Debit(nil, user.NewUserID(), mustAmount(t, 1))

	// Assert
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	assert.Equal(t, shared.KindNotFound, shared.KindOf(err))
}

// Test 4: 扣款剛好等於餘額時成功，餘額為 0
func TestLedger_Debit_ExactBalance(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	ledger := NewLedgerRepository(db)
	u := createTestUser(t, db, "alice", 250)

	// Act
	result, err := ledger.Debit(nil, u.UserID(), mustAmount(t, 250))

	// Assert
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 0, result.Balance)
}

// Test 5: 併發扣款只有 floor(B/A) 次成功，餘額不會變成負數
func TestLedger_Debit_Concurrent_NoOverdraft(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	ledger := NewLedgerRepository(db)
	u := createTestUser(t, db, "alice", 1000)

	const workers = 20
	const cost = 300 // floor(1000/300) = 3

	var succeeded, rejected int32
	var wg sync.WaitGroup

	// Act
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := ledger.Debit(nil, u.UserID(), mustAmount(t, cost))
			switch {
			case err == nil && result.Success:
				atomic.AddInt32(&succeeded, 1)
			case err != nil && shared.KindOf(err) == shared.KindInsufficientFunds:
				atomic.AddInt32(&rejected, 1)
			}
		}()
	}
	wg.Wait()

	// Assert
	assert.Equal(t, int32(3), succeeded)
	assert.Equal(t, int32(workers-3), rejected)

	balance, err := ledger.GetBalance(nil, u.UserID())
	require.NoError(t, err)
	assert.Equal(t, 100, balance)
}

// Test 6: Credit 返回新餘額
func TestLedger_Credit(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	ledger := NewLedgerRepository(db)
	u := createTestUser(t, db, "alice", 10)

	// Act
	balance, err := ledger.Credit(nil, u.UserID(), mustAmount(t, 15))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 25, balance)

	_, err = ledger.Credit(nil, user.NewUserID(), mustAmount(t, 15))
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

// Test 7: Adjust 結果低於 0 時截斷，返回實際變動量
func TestLedger_Adjust_ClampsAtZero(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	ledger := NewLedgerRepository(db)
	u := createTestUser(t, db, "alice", 30)

	// Act
	result, err := ledger.Adjust(nil, u.UserID(), -100)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 30, result.Previous)
	assert.Equal(t, 0, result.Balance)
	assert.Equal(t, -30, result.Applied())
}

// Test 8: 併發 Adjust 不會遺失更新
func TestLedger_Adjust_Concurrent_NoLostUpdate(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	ledger := NewLedgerRepository(db)
	u := createTestUser(t, db, "alice", 0)

	var wg sync.WaitGroup

	// Act
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Adjust(nil, u.UserID(), 7)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Assert
	balance, _ := ledger.GetBalance(nil, u.UserID())
	assert.Equal(t, 70, balance)
}

// Test 9: SetBalance 返回設定前後的值
func TestLedger_SetBalance(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	ledger := NewLedgerRepository(db)
	u := createTestUser(t, db, "alice", 300)

	// Act
	result, err := ledger.SetBalance(nil, u.UserID(), mustAmount(t, 100))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 300, result.Previous)
	assert.Equal(t, 100, result.Balance)
	assert.Equal(t, -200, result.Applied())
}

// Test 10: 轉帳成功
func TestLedger_Transfer_Success(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	ledger := NewLedgerRepository(db)
	from := createTestUser(t, db, "alice", 100)
	to := createTestUser(t, db, "bob", 5)

	// Act
	result, err := ledger.Transfer(nil, from.UserID(), to.UserID(), mustAmount(t, 60))

	// Assert
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 40, result.FromBalance)
	assert.Equal(t, 65, result.ToBalance)
}

// Test 11: 目的使用者不存在時整體回滾，來源餘額不變
func TestLedger_Transfer_MissingDestination_RollsBack(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	ledger := NewLedgerRepository(db)
	from := createTestUser(t, db, "alice", 100)

	// Act
	result, err := ledger.Transfer(nil, from.UserID(), user.NewUserID(), mustAmount(t, 60))

	// Assert
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	assert.False(t, result.Success)

	balance, _ := ledger.GetBalance(nil, from.UserID())
	assert.Equal(t, 100, balance, "source debit should be rolled back")
}

// Test 12: 在外層事務中轉帳失敗，外層事務先前的寫入不受影響
func TestLedger_Transfer_InsideTransaction_UsesSavepoint(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	txManager := NewGORMTransactionManager(db)
	ledger := NewLedgerRepository(db)
	from := createTestUser(t, db, "alice", 100)

	// Act
	err := txManager.InTransaction(context.Background(), func(tx shared.TransactionContext) error {
		_, err := ledger.Transfer(tx, from.UserID(), user.NewUserID(), mustAmount(t, 60))
		require.ErrorIs(t, err, user.ErrUserNotFound)

		balance, err := ledger.GetBalance(tx, from.UserID())
		require.NoError(t, err)
		assert.Equal(t, 100, balance, "debit inside failed transfer should not be visible")
		return nil
	})

	// Assert
	require.NoError(t, err)
}

// Test 13: 餘額不足的轉帳
func TestLedger_Transfer_Insufficient(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	ledger := NewLedgerRepository(db)
	from := createTestUser(t, db, "alice", 10)
	to := createTestUser(t, db, "bob", 0)

	// Act
	result, err := ledger.Transfer(nil, from.UserID(), to.UserID(), mustAmount(t, 60))

	// Assert
	assert.ErrorIs(t, err, points.ErrInsufficientPoints)
	assert.False(t, result.Success)
	assert.Equal(t, 10, result.FromBalance)

	toBalance, _ := ledger.GetBalance(nil, to.UserID())
	assert.Equal(t, 0, toBalance)
}

// Test 14: 不能轉給自己
func TestLedger_Transfer_SameUser(t *testing.T) {
	// Arrange
	db := setupTestDB(t)
	ledger := NewLedgerRepository(db)
	u := createTestUser(t, db, "alice", 10)

	// Act
	_, err := ledger.Transfer(nil, u.UserID(), u.UserID(), mustAmount(t, 1))

	// Assert
	assert.ErrorIs(t, err, points.ErrSameUserTransfer)
}
