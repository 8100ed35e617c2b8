package persistence

import (
	"time"

	"gorm.io/datatypes"
)

// ===========================
// GORM Models
// ===========================
//
// 欄位不設非零的 default：GORM 的 Create 會略過帶 default 的零值欄位，
// false / 0 / "" 會被資料庫預設值取代。預設值一律由 Domain 建構函數給定。

// UserGORM 使用者資料表
//
// points 只能經由 GORMLedgerRepository 的條件更新修改；
// CHECK 約束是最後一道防線。
type UserGORM struct {
	UserID      string `gorm:"column:user_id;type:varchar(36);primaryKey"`
	ExternalID  string `gorm:"column:external_id;type:varchar(255);uniqueIndex;not null"`
	Email       string `gorm:"column:email;type:varchar(255)"`
	DisplayName string `gorm:"column:display_name;type:varchar(100);index;not null"`

	Points int `gorm:"column:points;not null;default:0;check:chk_users_points,points >= 0"`

	IsAdmin   bool `gorm:"column:is_admin;not null;default:false"`
	IsPremium bool `gorm:"column:is_premium;not null;default:false"`
	IsOwner   bool `gorm:"column:is_owner;not null;default:false"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (UserGORM) TableName() string { return "users" }

// PointTransactionGORM 審計記錄資料表（只追加）
//
// seq 自動遞增，作為同一時間戳下的穩定排序依據。
type PointTransactionGORM struct {
	Seq           int64     `gorm:"column:seq;primaryKey;autoIncrement"`
	TransactionID string    `gorm:"column:transaction_id;type:varchar(36);uniqueIndex;not null"`
	UserID        string    `gorm:"column:user_id;type:varchar(36);index;not null"`
	Amount        int       `gorm:"column:amount;not null"`
	Type          string    `gorm:"column:type;type:varchar(20);not null"`
	Description   string    `gorm:"column:description;type:varchar(500);not null"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
}

func (PointTransactionGORM) TableName() string { return "point_transactions" }

// RewardGORM 獎勵資料表
type RewardGORM struct {
	RewardID     string         `gorm:"column:reward_id;type:varchar(36);primaryKey"`
	Title        string         `gorm:"column:title;type:varchar(100);not null"`
	Description  string         `gorm:"column:description;type:text"`
	Cost         int            `gorm:"column:cost;not null;check:chk_rewards_cost,cost > 0"`
	ActionType   string         `gorm:"column:action_type;type:varchar(50);not null"`
	ActionConfig datatypes.JSON `gorm:"column:action_config;not null"`
	Tier         string         `gorm:"column:tier;type:varchar(20);not null"`
	IsActive     bool           `gorm:"column:is_active;not null;index"`
	CategoryID   *string        `gorm:"column:category_id;type:varchar(36);index"`
	CreatedAt    time.Time      `gorm:"column:created_at;not null"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;not null"`
}

func (RewardGORM) TableName() string { return "rewards" }

// RewardCategoryGORM 獎勵分類資料表
type RewardCategoryGORM struct {
	CategoryID string    `gorm:"column:category_id;type:varchar(36);primaryKey"`
	Name       string    `gorm:"column:name;type:varchar(100);uniqueIndex;not null"`
	Icon       string    `gorm:"column:icon;type:varchar(50)"`
	Color      string    `gorm:"column:color;type:varchar(7);not null"`
	SortOrder  int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
}

func (RewardCategoryGORM) TableName() string { return "reward_categories" }

// RedemptionGORM 兌換記錄資料表
type RedemptionGORM struct {
	RedemptionID string         `gorm:"column:redemption_id;type:varchar(36);primaryKey"`
	UserID       string         `gorm:"column:user_id;type:varchar(36);index;not null"`
	RewardID     string         `gorm:"column:reward_id;type:varchar(36);index;not null"`
	Cost         int            `gorm:"column:cost;not null"`
	Status       string         `gorm:"column:status;type:varchar(20);index;not null"`
	Message      string         `gorm:"column:message;type:text"`
	ResultData   datatypes.JSON `gorm:"column:result_data"`
	RedeemedAt   time.Time      `gorm:"column:redeemed_at;index;not null"`
	ProcessedAt  *time.Time     `gorm:"column:processed_at"`
	Version      int            `gorm:"column:version;not null"`
}

func (RedemptionGORM) TableName() string { return "redemptions" }

// AllModels 需要遷移的所有模型
func AllModels() []interface{} {
	return []interface{}{
		&UserGORM{},
		&PointTransactionGORM{},
		&RewardCategoryGORM{},
		&RewardGORM{},
		&RedemptionGORM{},
	}
}
