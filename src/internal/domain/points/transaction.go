package points

import (
	"time"

	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// ===========================
// PointTransaction 審計記錄
// ===========================

// PointTransaction 不可變的積分異動記錄
//
// 不變量：
// 1. 金額正負號與類型一致（見 TransactionType.allowsAmount）
// 2. 建立後不可修改、不可刪除
// 3. 與對應的餘額異動在同一事務中寫入
//
// 同一使用者所有記錄的 amount 總和等於其目前餘額（帳本對帳不變量）。
type PointTransaction struct {
	id          TransactionID
	userID      user.UserID
	amount      int
	txType      TransactionType
	description string
	createdAt   time.Time
}

// NewPointTransaction 建立審計記錄
func NewPointTransaction(
	userID user.UserID,
	amount int,
	txType TransactionType,
	description string,
) (*PointTransaction, error) {
	if !txType.IsValid() {
		return nil, ErrInvalidTransactionType.WithContext("type", string(txType))
	}
	if !txType.allowsAmount(amount) {
		return nil, ErrInvalidPointsAmount.WithContext(
			"type", string(txType),
			"amount", amount,
		)
	}
	desc, err := NewDescription(truncateDescription(description))
	if err != nil {
		return nil, err
	}

	return &PointTransaction{
		id:          NewTransactionID(),
		userID:      userID,
		amount:      amount,
		txType:      txType,
		description: desc.String(),
		createdAt:   time.Now(),
	}, nil
}

// ReconstructPointTransaction 從資料庫重建
func ReconstructPointTransaction(
	id TransactionID,
	userID user.UserID,
	amount int,
	txType TransactionType,
	description string,
	createdAt time.Time,
) *PointTransaction {
	return &PointTransaction{
		id:          id,
		userID:      userID,
		amount:      amount,
		txType:      txType,
		description: description,
		createdAt:   createdAt,
	}
}

func (t *PointTransaction) ID() TransactionID     { return t.id }
func (t *PointTransaction) UserID() user.UserID   { return t.userID }
func (t *PointTransaction) Amount() int           { return t.amount }
func (t *PointTransaction) Type() TransactionType { return t.txType }
func (t *PointTransaction) Description() string   { return t.description }
func (t *PointTransaction) CreatedAt() time.Time  { return t.createdAt }
