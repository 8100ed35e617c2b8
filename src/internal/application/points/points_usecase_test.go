package points

import (
	"context"
	"errors"
	"testing"

	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===========================
// GivePoints Tests
// ===========================

// Test 1: 加點成功：入帳、admin_added 記錄、事件
func TestGivePointsUseCase_Execute_Success(t *testing.T) {
	// Arrange
	m, deps := newMockDeps()
	u := newTestUser("alice")
	m.ledger.On("Credit", mock.Anything, u.UserID(), mock.Anything).Return(150, nil)
	m.txLog.On("Append", mock.Anything, mock.Anything).Return(nil)
	m.users.On("FindByID", mock.Anything, u.UserID()).Return(u, nil)
	useCase := NewGivePointsUseCase(deps)

	// Act
	result, err := useCase.Execute(context.Background(), GivePointsCommand{
		UserID:      u.UserID().String(),
		Amount:      150,
		Description: "raid bonus",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, u.UserID().String(), result.UserID)
	require.Len(t, m.txLog.entries, 1)
	assert.Equal(t, 150, m.txLog.entries[0].Amount())
	assert.Equal(t, points.TransactionTypeAdminAdded, m.txLog.entries[0].Type())
	assert.Equal(t, "raid bonus", m.txLog.entries[0].Description())

	events := m.publisher.Events()
	require.Len(t, events, 1)
	changed := events[0].(*points.BalanceChangedEvent)
	assert.Equal(t, 150, changed.Delta())
	assert.Equal(t, 150, changed.Balance())
}

// Test 2: 金額不合法時不觸及倉儲
func TestGivePointsUseCase_Execute_InvalidAmount_NoRepositoryCalls(t *testing.T) {
	tests := []struct {
		name   string
		amount int
	}{
		{"零", 0},
		{"負數", -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			m, deps := newMockDeps()
			useCase := NewGivePointsUseCase(deps)

			// Act
			result, err := useCase.Execute(context.Background(), GivePointsCommand{
				UserID:      user.NewUserID().String(),
				Amount:      tt.amount,
				Description: "bonus",
			})

			// Assert
			assert.Nil(t, result)
			assert.Equal(t, shared.KindValidation, shared.KindOf(err))
			m.ledger.AssertNotCalled(t, "Credit")
			m.txLog.AssertNotCalled(t, "Append")
		})
	}
}

// Test 3: 說明為空白
func TestGivePointsUseCase_Execute_BlankDescription_ReturnsError(t *testing.T) {
	// Arrange
	_, deps := newMockDeps()
	useCase := NewGivePointsUseCase(deps)

	// Act
	_, err := useCase.Execute(context.Background(), GivePointsCommand{
		UserID:      user.NewUserID().String(),
		Amount:      10,
		Description: "   ",
	})

	// Assert
	assert.ErrorIs(t, err, points.ErrInvalidDescription)
}

// Test 4: 使用者不存在時不發布事件
func TestGivePointsUseCase_Execute_UserNotFound_NoEvent(t *testing.T) {
	// Arrange
	m, deps := newMockDeps()
	id := user.NewUserID()
	m.ledger.On("Credit", mock.Anything, id, mock.Anything).Return(0, user.ErrUserNotFound)
	useCase := NewGivePointsUseCase(deps)

	// Act
	_, err := useCase.Execute(context.Background(), GivePointsCommand{
		UserID:      id.String(),
		Amount:      10,
		Description: "bonus",
	})

	// Assert
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	assert.Empty(t, m.publisher.Events())
	m.txLog.AssertNotCalled(t, "Append")
}

// ===========================
// RemovePoints Tests
// ===========================

// Test 5: 扣點截斷時記錄實際扣除量
func TestRemovePointsUseCase_Execute_Clamped_AuditsAppliedAmount(t *testing.T) {
	// Arrange
	m, deps := newMockDeps()
	u := newTestUser("bob")
	m.ledger.On("Adjust", mock.Anything, u.UserID(), -500).
		Return(points.AdjustResult{Previous: 120, Balance: 0}, nil)
	m.txLog.On("Append", mock.Anything, mock.Anything).Return(nil)
	m.users.On("FindByID", mock.Anything, u.UserID()).Return(u, nil)
	useCase := NewRemovePointsUseCase(deps)

	// Act
	_, err := useCase.Execute(context.Background(), RemovePointsCommand{
		UserID:      u.UserID().String(),
		Amount:      500,
		Description: "spam penalty",
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, m.txLog.entries, 1)
	assert.Equal(t, -120, m.txLog.entries[0].Amount(), "記錄的是實際扣除量")
	assert.Equal(t, points.TransactionTypeAdminRemoved, m.txLog.entries[0].Type())
}

// ===========================
// SetPoints Tests
// ===========================

// Test 6: 設定較高餘額記為 admin_added
func TestSetPointsUseCase_Execute_Increase_LogsAdminAdded(t *testing.T) {
	// Arrange
	m, deps := newMockDeps()
	u := newTestUser("carol")
	m.ledger.On("SetBalance", mock.Anything, u.UserID(), mock.Anything).
		Return(points.AdjustResult{Previous: 100, Balance: 400}, nil)
	m.txLog.On("Append", mock.Anything, mock.Anything).Return(nil)
	m.users.On("FindByID", mock.Anything, u.UserID()).Return(u, nil)
	useCase := NewSetPointsUseCase(deps)

	// Act
	_, err := useCase.Execute(context.Background(), SetPointsCommand{
		UserID:      u.UserID().String(),
		Amount:      400,
		Description: "correction",
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, m.txLog.entries, 1)
	assert.Equal(t, 300, m.txLog.entries[0].Amount())
	assert.Equal(t, points.TransactionTypeAdminAdded, m.txLog.entries[0].Type())
}

// Test 7: 負數餘額被拒絕
func TestSetPointsUseCase_Execute_NegativeAmount_ReturnsError(t *testing.T) {
	// Arrange
	m, deps := newMockDeps()
	useCase := NewSetPointsUseCase(deps)

	// Act
	_, err := useCase.Execute(context.Background(), SetPointsCommand{
		UserID:      user.NewUserID().String(),
		Amount:      -1,
		Description: "correction",
	})

	// Assert
	assert.ErrorIs(t, err, points.ErrNegativePointsAmount)
	m.ledger.AssertNotCalled(t, "SetBalance")
}

// ===========================
// TransferPoints Tests
// ===========================

// Test 8: 轉給自己在觸及倉儲前被拒絕
func TestTransferPointsUseCase_Execute_SameUser_Rejected(t *testing.T) {
	// Arrange
	m, deps := newMockDeps()
	id := user.NewUserID().String()
	useCase := NewTransferPointsUseCase(deps)

	// Act
	_, err := useCase.Execute(context.Background(), TransferPointsCommand{
		FromUserID:  id,
		ToUserID:    id,
		Amount:      10,
		Description: "gift",
	})

	// Assert
	assert.ErrorIs(t, err, points.ErrSameUserTransfer)
	assert.Equal(t, shared.KindPolicyViolation, shared.KindOf(err))
	m.users.AssertNotCalled(t, "FindByID")
	m.ledger.AssertNotCalled(t, "Transfer")
}

// Test 9: 轉帳成功寫入兩筆配對記錄
func TestTransferPointsUseCase_Execute_Success_AppendsPairedEntries(t *testing.T) {
	// Arrange
	m, deps := newMockDeps()
	from := newTestUser("dave")
	to := newTestUser("erin")
	m.users.On("FindByID", mock.Anything, from.UserID()).Return(from, nil)
	m.users.On("FindByID", mock.Anything, to.UserID()).Return(to, nil)
	m.ledger.On("Transfer", mock.Anything, from.UserID(), to.UserID(), mock.Anything).
		Return(points.TransferResult{Success: true, FromBalance: 50, ToBalance: 50}, nil)
	m.txLog.On("Append", mock.Anything, mock.Anything).Return(nil)
	useCase := NewTransferPointsUseCase(deps)

	// Act
	result, err := useCase.Execute(context.Background(), TransferPointsCommand{
		FromUserID:  from.UserID().String(),
		ToUserID:    to.UserID().String(),
		Amount:      50,
		Description: "gift",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, from.UserID().String(), result.FromUser.UserID)
	assert.Equal(t, to.UserID().String(), result.ToUser.UserID)
	require.Len(t, m.txLog.entries, 2)
	assert.Equal(t, -50, m.txLog.entries[0].Amount())
	assert.Equal(t, "Transfer to erin: gift", m.txLog.entries[0].Description())
	assert.Equal(t, 50, m.txLog.entries[1].Amount())
	assert.Equal(t, "Transfer from dave: gift", m.txLog.entries[1].Description())
	assert.Len(t, m.publisher.Events(), 2)
}

// ===========================
// BulkUpdatePoints Tests
// ===========================

// Test 10: 筆數超出範圍
func TestBulkUpdatePointsUseCase_Execute_InvalidSize_ReturnsError(t *testing.T) {
	// Arrange
	_, deps := newMockDeps()
	useCase := NewBulkUpdatePointsUseCase(deps)

	// Act
	_, errEmpty := useCase.Execute(context.Background(), BulkUpdateCommand{})
	_, errTooMany := useCase.Execute(context.Background(), BulkUpdateCommand{
		Updates: make([]BulkUpdateItem, maxBulkItems+1),
	})

	// Assert
	assert.ErrorIs(t, errEmpty, points.ErrInvalidBatch)
	assert.ErrorIs(t, errTooMany, points.ErrInvalidBatch)
}

// Test 11: 單筆失敗只計數，不中止其他筆
func TestBulkUpdatePointsUseCase_Execute_PartialFailure(t *testing.T) {
	// Arrange
	m, deps := newMockDeps()
	ok1, ok2, missing := user.NewUserID(), user.NewUserID(), user.NewUserID()
	m.ledger.On("Credit", mock.Anything, ok1, mock.Anything).Return(10, nil)
	m.ledger.On("Credit", mock.Anything, ok2, mock.Anything).Return(20, nil)
	m.ledger.On("Credit", mock.Anything, missing, mock.Anything).Return(0, errors.New("boom"))
	m.txLog.On("Append", mock.Anything, mock.Anything).Return(nil)
	useCase := NewBulkUpdatePointsUseCase(deps)

	// Act
	result, err := useCase.Execute(context.Background(), BulkUpdateCommand{
		Updates: []BulkUpdateItem{
			{UserID: ok1.String(), PointsEarned: 10},
			{UserID: missing.String(), PointsEarned: 5},
			{UserID: "not-a-uuid", PointsEarned: 5},
			{UserID: ok2.String(), PointsEarned: 20, Description: "watch time"},
		},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 2, result.Failed)
	assert.Len(t, result.Errors, 2)
	require.Len(t, m.txLog.entries, 2)
	assert.Equal(t, defaultBulkDescription, m.txLog.entries[0].Description())
	assert.Equal(t, points.TransactionTypeEarned, m.txLog.entries[0].Type())
	assert.Equal(t, "watch time", m.txLog.entries[1].Description())
}

// ===========================
// AddPointsByDisplayName Tests
// ===========================

// Test 12: 依顯示名稱找到使用者後加點
func TestAddPointsByDisplayNameUseCase_Execute_Success(t *testing.T) {
	// Arrange
	m, deps := newMockDeps()
	u := newTestUser("Frank")
	m.users.On("FindByDisplayName", mock.Anything, "frank").Return(u, nil)
	m.ledger.On("Credit", mock.Anything, u.UserID(), mock.Anything).Return(25, nil)
	m.txLog.On("Append", mock.Anything, mock.Anything).Return(nil)
	m.users.On("FindByID", mock.Anything, u.UserID()).Return(u, nil)
	useCase := NewAddPointsByDisplayNameUseCase(deps)

	// Act
	result, err := useCase.Execute(context.Background(), AddPointsByDisplayNameCommand{
		DisplayName: " frank ",
		Amount:      25,
		Description: "good question",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Frank", result.DisplayName)
	m.users.AssertExpectations(t)
}
