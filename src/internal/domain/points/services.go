package points

import (
	"fmt"

	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// ===========================
// 審計記錄建構（Domain Service）
// ===========================

// 以下函數把帳本原語的結果轉成對應的審計記錄。
// 金額一律取自原語實際套用的結果，而非請求值。

// AdminAddedEntry 管理員加點
func AdminAddedEntry(userID user.UserID, amount PointsAmount, desc Description) (*PointTransaction, error) {
	return NewPointTransaction(userID, amount.Value(), TransactionTypeAdminAdded, desc.String())
}

// AdminRemovedEntry 管理員扣點（截斷後的實際扣除量）
func AdminRemovedEntry(userID user.UserID, result AdjustResult, desc Description) (*PointTransaction, error) {
	return NewPointTransaction(userID, result.Applied(), TransactionTypeAdminRemoved, desc.String())
}

// SetPointsEntry 直接設定餘額
//
// difference = 新餘額 - 舊餘額；difference >= 0 記為 admin_added，否則 admin_removed。
func SetPointsEntry(userID user.UserID, result AdjustResult, desc Description) (*PointTransaction, error) {
	difference := result.Applied()
	txType := TransactionTypeAdminAdded
	if difference < 0 {
		txType = TransactionTypeAdminRemoved
	}
	return NewPointTransaction(userID, difference, txType, desc.String())
}

// SpentEntry 兌換扣款
func SpentEntry(userID user.UserID, cost PointsAmount, rewardTitle string) (*PointTransaction, error) {
	return NewPointTransaction(userID, cost.Negated(), TransactionTypeSpent, "Redeemed: "+rewardTitle)
}

// EarnedEntry 直播活動累積的積分
func EarnedEntry(userID user.UserID, amount PointsAmount, desc Description) (*PointTransaction, error) {
	return NewPointTransaction(userID, amount.Value(), TransactionTypeEarned, desc.String())
}

// TransferEntries 轉帳的兩筆配對記錄（轉出為負、轉入為正）
func TransferEntries(
	from *user.User,
	to *user.User,
	amount PointsAmount,
	desc Description,
) (debit *PointTransaction, credit *PointTransaction, err error) {
	debit, err = NewPointTransaction(
		from.UserID(),
		amount.Negated(),
		TransactionTypeTransfer,
		fmt.Sprintf("Transfer to %s: %s", to.DisplayName(), desc.String()),
	)
	if err != nil {
		return nil, nil, err
	}
	credit, err = NewPointTransaction(
		to.UserID(),
		amount.Value(),
		TransactionTypeTransfer,
		fmt.Sprintf("Transfer from %s: %s", from.DisplayName(), desc.String()),
	)
	if err != nil {
		return nil, nil, err
	}
	return debit, credit, nil
}
