package reward

import "github.com/jackyeh168/channel_points/src/internal/domain/shared"

type RewardMarker struct{}

// RewardID 獎勵 ID
type RewardID = shared.EntityID[RewardMarker]

func NewRewardID() RewardID {
	return shared.NewEntityID[RewardMarker]()
}

func RewardIDFromString(s string) (RewardID, error) {
	return shared.EntityIDFromString[RewardMarker](s, ErrInvalidRewardID)
}

type CategoryMarker struct{}

// CategoryID 獎勵分類 ID
type CategoryID = shared.EntityID[CategoryMarker]

func NewCategoryID() CategoryID {
	return shared.NewEntityID[CategoryMarker]()
}

func CategoryIDFromString(s string) (CategoryID, error) {
	return shared.EntityIDFromString[CategoryMarker](s, ErrInvalidCategoryID)
}
