// Package httpapi 將應用層的 Use Case 以 JSON over HTTP 對外提供
//
// 身分驗證與授權由前端的反向代理負責；這一層只做輸入解析、
// 錯誤分類與狀態碼的對應，以及指標記錄。
package httpapi

import (
	"log/slog"

	pointsapp "github.com/jackyeh168/channel_points/src/internal/application/points"
	redemptionapp "github.com/jackyeh168/channel_points/src/internal/application/redemption"
	rewardapp "github.com/jackyeh168/channel_points/src/internal/application/reward"
	userapp "github.com/jackyeh168/channel_points/src/internal/application/user"
)

// UseCases HTTP 層使用的全部 Use Case
type UseCases struct {
	// 使用者
	EnsureUser  userapp.EnsureUserUseCase
	GetUser     userapp.GetUserUseCase
	UpdateRoles userapp.UpdateRolesUseCase
	ListUsers   userapp.ListUsersUseCase
	Leaderboard userapp.LeaderboardUseCase

	// 積分
	GivePoints      pointsapp.GivePointsUseCase
	RemovePoints    pointsapp.RemovePointsUseCase
	SetPoints       pointsapp.SetPointsUseCase
	TransferPoints  pointsapp.TransferPointsUseCase
	BulkUpdate      pointsapp.BulkUpdatePointsUseCase
	AddPointsByName pointsapp.AddPointsByDisplayNameUseCase
	GetBalance      pointsapp.GetPointsBalanceUseCase
	GetHistory      pointsapp.GetHistoryUseCase

	// 兌換
	Redeem             redemptionapp.RedeemRewardUseCase
	UpdateStatus       redemptionapp.UpdateRedemptionStatusUseCase
	PendingRedemptions redemptionapp.GetPendingRedemptionsUseCase
	UserRedemptions    redemptionapp.GetUserRedemptionsUseCase

	// 獎勵
	CreateReward   rewardapp.CreateRewardUseCase
	UpdateReward   rewardapp.UpdateRewardUseCase
	ListRewards    rewardapp.ListRewardsUseCase
	ValidateConfig rewardapp.ValidateActionConfigUseCase
	CreateCategory rewardapp.CreateCategoryUseCase
	ListCategories rewardapp.ListCategoriesUseCase
}

// Handler 持有 Use Case 的 HTTP handler 集合
type Handler struct {
	uc     UseCases
	logger *slog.Logger
}

// NewHandler 建立 Handler；logger 為 nil 時使用 slog.Default()
func NewHandler(uc UseCases, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{uc: uc, logger: logger}
}
