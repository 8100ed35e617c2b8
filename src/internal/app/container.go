// Package app 組裝 Repository 與 Use Case
package app

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	pointsapp "github.com/jackyeh168/channel_points/src/internal/application/points"
	redemptionapp "github.com/jackyeh168/channel_points/src/internal/application/redemption"
	rewardapp "github.com/jackyeh168/channel_points/src/internal/application/reward"
	userapp "github.com/jackyeh168/channel_points/src/internal/application/user"
	"github.com/jackyeh168/channel_points/src/internal/domain/action"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/infrastructure/persistence"
	"github.com/jackyeh168/channel_points/src/internal/interfaces/httpapi"
)

// Options 組裝所需的外部資源
type Options struct {
	DB *gorm.DB

	// Actions 必須已註冊所有處理器並 Seal
	Actions *action.Registry

	Publisher     shared.EventPublisher
	ActionTimeout time.Duration
	Logger        *slog.Logger
}

// NewUseCases 以 GORM Repository 建立全部 Use Case
func NewUseCases(opts Options) httpapi.UseCases {
	users := persistence.NewUserRepository(opts.DB)
	ledger := persistence.NewLedgerRepository(opts.DB)
	txLog := persistence.NewTransactionLogRepository(opts.DB)
	rewards := persistence.NewRewardRepository(opts.DB)
	categories := persistence.NewCategoryRepository(opts.DB)
	redemptions := persistence.NewRedemptionRepository(opts.DB)
	txManager := persistence.NewGORMTransactionManager(opts.DB)

	pointsDeps := pointsapp.Dependencies{
		Users:     users,
		Ledger:    ledger,
		TxLog:     txLog,
		TxManager: txManager,
		Publisher: opts.Publisher,
	}
	redemptionDeps := redemptionapp.Dependencies{
		Users:         users,
		Rewards:       rewards,
		Ledger:        ledger,
		TxLog:         txLog,
		Redemptions:   redemptions,
		TxManager:     txManager,
		Publisher:     opts.Publisher,
		Actions:       opts.Actions,
		ActionTimeout: opts.ActionTimeout,
		Logger:        opts.Logger,
	}
	rewardDeps := rewardapp.Dependencies{
		Rewards:    rewards,
		Categories: categories,
		Users:      users,
		Validator:  opts.Actions,
	}

	return httpapi.UseCases{
		EnsureUser:  userapp.NewEnsureUserUseCase(users),
		GetUser:     userapp.NewGetUserUseCase(users),
		UpdateRoles: userapp.NewUpdateRolesUseCase(users),
		ListUsers:   userapp.NewListUsersUseCase(users),
		Leaderboard: userapp.NewLeaderboardUseCase(users),

		GivePoints:      pointsapp.NewGivePointsUseCase(pointsDeps),
		RemovePoints:    pointsapp.NewRemovePointsUseCase(pointsDeps),
		SetPoints:       pointsapp.NewSetPointsUseCase(pointsDeps),
		TransferPoints:  pointsapp.NewTransferPointsUseCase(pointsDeps),
		BulkUpdate:      pointsapp.NewBulkUpdatePointsUseCase(pointsDeps),
		AddPointsByName: pointsapp.NewAddPointsByDisplayNameUseCase(pointsDeps),
		GetBalance:      pointsapp.NewGetPointsBalanceUseCase(pointsDeps),
		GetHistory:      pointsapp.NewGetHistoryUseCase(pointsDeps),

		Redeem:             redemptionapp.NewRedeemRewardUseCase(redemptionDeps),
		UpdateStatus:       redemptionapp.NewUpdateRedemptionStatusUseCase(redemptionDeps),
		PendingRedemptions: redemptionapp.NewGetPendingRedemptionsUseCase(redemptionDeps),
		UserRedemptions:    redemptionapp.NewGetUserRedemptionsUseCase(redemptionDeps),

		CreateReward:   rewardapp.NewCreateRewardUseCase(rewardDeps),
		UpdateReward:   rewardapp.NewUpdateRewardUseCase(rewardDeps),
		ListRewards:    rewardapp.NewListRewardsUseCase(rewardDeps),
		ValidateConfig: rewardapp.NewValidateActionConfigUseCase(rewardDeps),
		CreateCategory: rewardapp.NewCreateCategoryUseCase(rewardDeps),
		ListCategories: rewardapp.NewListCategoriesUseCase(rewardDeps),
	}
}
