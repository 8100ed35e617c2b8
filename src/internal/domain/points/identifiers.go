package points

import (
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
)

// TransactionMarker 交易記錄 ID 標記類型
type TransactionMarker struct{}

// TransactionID 交易記錄 ID
type TransactionID = shared.EntityID[TransactionMarker]

// NewTransactionID 生成新的交易記錄 ID
func NewTransactionID() TransactionID {
	return shared.NewEntityID[TransactionMarker]()
}

// TransactionIDFromString 從字串解析交易記錄 ID
func TransactionIDFromString(s string) (TransactionID, error) {
	return shared.EntityIDFromString[TransactionMarker](s, ErrInvalidTransactionID)
}
