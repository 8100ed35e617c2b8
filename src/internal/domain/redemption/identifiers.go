package redemption

import "github.com/jackyeh168/channel_points/src/internal/domain/shared"

type RedemptionMarker struct{}

// RedemptionID 兌換記錄 ID
type RedemptionID = shared.EntityID[RedemptionMarker]

func NewRedemptionID() RedemptionID {
	return shared.NewEntityID[RedemptionMarker]()
}

func RedemptionIDFromString(s string) (RedemptionID, error) {
	return shared.EntityIDFromString[RedemptionMarker](s, ErrInvalidRedemptionID)
}
