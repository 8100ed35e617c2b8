package reward

// Tier 獎勵存取等級
type Tier string

const (
	TierCommon  Tier = "common"
	TierPremium Tier = "premium"
)

// ParseTier 解析等級，空字串視為 common
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case "", TierCommon:
		return TierCommon, nil
	case TierPremium:
		return TierPremium, nil
	}
	return "", ErrInvalidTier.WithContext("tier", s)
}

// IsPremium 是否為 premium 等級
func (t Tier) IsPremium() bool {
	return t == TierPremium
}
