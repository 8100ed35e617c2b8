package points

import (
	"context"
	"testing"

	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
	"github.com/jackyeh168/channel_points/src/internal/infrastructure/persistence"
	"github.com/jackyeh168/channel_points/src/internal/infrastructure/persistence/persistencetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ===========================
// 整合測試（SQLite in-memory）
// ===========================

func newIntegrationDeps(db *gorm.DB) Dependencies {
	return Dependencies{
		Users:     persistence.NewUserRepository(db),
		Ledger:    persistence.NewLedgerRepository(db),
		TxLog:     persistence.NewTransactionLogRepository(db),
		TxManager: persistence.NewGORMTransactionManager(db),
		Publisher: &recordingPublisher{},
	}
}

// seedBalance 以加點建立初始餘額（留下審計記錄，帳目可對帳）
func seedBalance(t *testing.T, deps Dependencies, u *user.User, amount int) {
	t.Helper()
	_, err := NewGivePointsUseCase(deps).Execute(context.Background(), GivePointsCommand{
		UserID:      u.UserID().String(),
		Amount:      amount,
		Description: "seed",
	})
	require.NoError(t, err)
}

// Test 1: 餘額 300 設為 100 → 餘額 100，一筆 admin_removed -200
func TestSetPoints_Integration_300To100(t *testing.T) {
	// Arrange
	db := persistencetest.NewDB(t)
	deps := newIntegrationDeps(db)
	u := persistencetest.NewUser(t, db, "alice")
	seedBalance(t, deps, u, 300)

	// Act
	result, err := NewSetPointsUseCase(deps).Execute(context.Background(), SetPointsCommand{
		UserID:      u.UserID().String(),
		Amount:      100,
		Description: "correction",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 100, result.Points)

	history, err := deps.TxLog.History(nil, u.UserID())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, -200, history[0].Amount())
	assert.Equal(t, points.TransactionTypeAdminRemoved, history[0].Type())
	assert.Equal(t, "correction", history[0].Description())
}

// Test 2: 轉給不存在的使用者 → UserNotFound，來源餘額不變且無記錄
func TestTransferPoints_Integration_MissingRecipient_RollsBack(t *testing.T) {
	// Arrange
	db := persistencetest.NewDB(t)
	deps := newIntegrationDeps(db)
	from := persistencetest.NewUser(t, db, "bob")
	seedBalance(t, deps, from, 100)

	// Act
	_, err := NewTransferPointsUseCase(deps).Execute(context.Background(), TransferPointsCommand{
		FromUserID:  from.UserID().String(),
		ToUserID:    user.NewUserID().String(),
		Amount:      50,
		Description: "gift",
	})

	// Assert
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	balance, err := deps.Ledger.GetBalance(nil, from.UserID())
	require.NoError(t, err)
	assert.Equal(t, 100, balance)

	history, err := deps.TxLog.History(nil, from.UserID())
	require.NoError(t, err)
	assert.Len(t, history, 1, "只有初始加點")
}

// Test 3: 餘額不足的轉帳整筆回滾
func TestTransferPoints_Integration_Insufficient_RollsBack(t *testing.T) {
	// Arrange
	db := persistencetest.NewDB(t)
	deps := newIntegrationDeps(db)
	from := persistencetest.NewUser(t, db, "carol")
	to := persistencetest.NewUser(t, db, "dave")
	seedBalance(t, deps, from, 30)

	// Act
	_, err := NewTransferPointsUseCase(deps).Execute(context.Background(), TransferPointsCommand{
		FromUserID:  from.UserID().String(),
		ToUserID:    to.UserID().String(),
		Amount:      50,
		Description: "gift",
	})

	// Assert
	assert.ErrorIs(t, err, points.ErrInsufficientPoints)
	fromBalance, _ := deps.Ledger.GetBalance(nil, from.UserID())
	toBalance, _ := deps.Ledger.GetBalance(nil, to.UserID())
	assert.Equal(t, 30, fromBalance)
	assert.Equal(t, 0, toBalance)
}

// Test 4: 批次入帳：不存在的使用者只讓該筆失敗
func TestBulkUpdate_Integration_PartialSuccess(t *testing.T) {
	// Arrange
	db := persistencetest.NewDB(t)
	deps := newIntegrationDeps(db)
	a := persistencetest.NewUser(t, db, "erin")
	b := persistencetest.NewUser(t, db, "frank")

	// Act
	result, err := NewBulkUpdatePointsUseCase(deps).Execute(context.Background(), BulkUpdateCommand{
		Updates: []BulkUpdateItem{
			{UserID: a.UserID().String(), PointsEarned: 40},
			{UserID: user.NewUserID().String(), PointsEarned: 10},
			{UserID: b.UserID().String(), PointsEarned: 60},
		},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 1, result.Failed)

	balanceA, _ := deps.Ledger.GetBalance(nil, a.UserID())
	balanceB, _ := deps.Ledger.GetBalance(nil, b.UserID())
	assert.Equal(t, 40, balanceA)
	assert.Equal(t, 60, balanceB)
}

// Test 5: 一連串操作後審計總和等於餘額
func TestPointsOperations_Integration_Reconciles(t *testing.T) {
	// Arrange
	db := persistencetest.NewDB(t)
	deps := newIntegrationDeps(db)
	a := persistencetest.NewUser(t, db, "grace")
	b := persistencetest.NewUser(t, db, "heidi")
	ctx := context.Background()

	// Act
	seedBalance(t, deps, a, 500)
	_, err := NewRemovePointsUseCase(deps).Execute(ctx, RemovePointsCommand{
		UserID: a.UserID().String(), Amount: 80, Description: "penalty",
	})
	require.NoError(t, err)
	_, err = NewTransferPointsUseCase(deps).Execute(ctx, TransferPointsCommand{
		FromUserID: a.UserID().String(), ToUserID: b.UserID().String(), Amount: 120, Description: "gift",
	})
	require.NoError(t, err)
	_, err = NewRemovePointsUseCase(deps).Execute(ctx, RemovePointsCommand{
		UserID: b.UserID().String(), Amount: 1000, Description: "reset",
	})
	require.NoError(t, err)

	// Assert
	balanceUseCase := NewGetPointsBalanceUseCase(deps)
	for _, u := range []*user.User{a, b} {
		result, err := balanceUseCase.Execute(ctx, GetPointsBalanceQuery{UserID: u.UserID().String()})
		require.NoError(t, err)
		assert.True(t, result.Reconciled, "user %s", u.DisplayName())
	}

	resultA, _ := balanceUseCase.Execute(ctx, GetPointsBalanceQuery{UserID: a.UserID().String()})
	resultB, _ := balanceUseCase.Execute(ctx, GetPointsBalanceQuery{UserID: b.UserID().String()})
	assert.Equal(t, 300, resultA.Balance)
	assert.Equal(t, 0, resultB.Balance)
}

// Test 6: 不存在的使用者查詢歷史
func TestGetHistory_Integration_UnknownUser_ReturnsNotFound(t *testing.T) {
	// Arrange
	db := persistencetest.NewDB(t)
	deps := newIntegrationDeps(db)

	// Act
	_, err := NewGetHistoryUseCase(deps).Execute(context.Background(), GetHistoryQuery{
		UserID: user.NewUserID().String(),
	})

	// Assert
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
