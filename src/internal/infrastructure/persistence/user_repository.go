package persistence

import (
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ===========================
// GORM UserRepository 實作
// ===========================

// GORMUserRepository GORM 實作的使用者倉儲
//
// 職責：
// - Domain ↔ GORM 的轉換和錯誤映射
// - 不寫入 points 欄位（由 GORMLedgerRepository 負責）
type GORMUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 創建使用者倉儲
func NewUserRepository(db *gorm.DB) user.UserRepository {
	return &GORMUserRepository{db: db}
}

// Create 新增使用者，外部 ID 重複時返回 ErrUserAlreadyExists
func (r *GORMUserRepository) Create(ctx shared.TransactionContext, u *user.User) error {
	db := dbFrom(ctx, r.db)

	if err := db.Create(userToGORM(u)).Error; err != nil {
		return mapError(err, nil, user.ErrUserAlreadyExists)
	}
	return nil
}

// UpdateProfile 更新顯示名稱、電子郵件與角色旗標
//
// 使用 Select 明確列出欄位，避免把聚合中的 points 快照寫回。
func (r *GORMUserRepository) UpdateProfile(ctx shared.TransactionContext, u *user.User) error {
	db := dbFrom(ctx, r.db)
	model := userToGORM(u)

	result := db.Model(&UserGORM{}).
		Where("user_id = ?", model.UserID).
		Select("email", "display_name", "is_admin", "is_premium", "is_owner", "updated_at").
		Updates(model)
	if result.Error != nil {
		return mapError(result.Error, nil, nil)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound.WithContext("user_id", model.UserID)
	}
	return nil
}

// FindByID 根據 ID 查找使用者
func (r *GORMUserRepository) FindByID(ctx shared.TransactionContext, id user.UserID) (*user.User, error) {
	return r.findOne(dbFrom(ctx, r.db), "user_id = ?", id.String())
}

// FindByIDForUpdate 在事務中讀取並鎖定使用者列
//
// PostgreSQL 使用 SELECT ... FOR UPDATE；SQLite 的寫入本來就是序列化的，不加鎖定子句。
func (r *GORMUserRepository) FindByIDForUpdate(ctx shared.TransactionContext, id user.UserID) (*user.User, error) {
	return r.findOne(forUpdate(dbFrom(ctx, r.db)), "user_id = ?", id.String())
}

// FindByExternalID 依外部身分 ID 查找
func (r *GORMUserRepository) FindByExternalID(ctx shared.TransactionContext, externalID user.ExternalID) (*user.User, error) {
	return r.findOne(dbFrom(ctx, r.db), "external_id = ?", externalID.String())
}

// FindByDisplayName 依顯示名稱查找（不分大小寫）
func (r *GORMUserRepository) FindByDisplayName(ctx shared.TransactionContext, displayName string) (*user.User, error) {
	return r.findOne(dbFrom(ctx, r.db), "LOWER(display_name) = LOWER(?)", displayName)
}

// Leaderboard 依積分由高到低列出前 limit 名
func (r *GORMUserRepository) Leaderboard(ctx shared.TransactionContext, limit int) ([]*user.User, error) {
	var models []UserGORM
	err := dbFrom(ctx, r.db).
		Order("points DESC").
		Order("display_name ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, mapError(err, nil, nil)
	}
	return usersToDomain(models)
}

// List 列出所有使用者（依顯示名稱排序）
func (r *GORMUserRepository) List(ctx shared.TransactionContext) ([]*user.User, error) {
	var models []UserGORM
	if err := dbFrom(ctx, r.db).Order("display_name ASC").Find(&models).Error; err != nil {
		return nil, mapError(err, nil, nil)
	}
	return usersToDomain(models)
}

func (r *GORMUserRepository) findOne(db *gorm.DB, query string, arg interface{}) (*user.User, error) {
	var model UserGORM
	if err := db.Where(query, arg).Take(&model).Error; err != nil {
		return nil, mapError(err, user.ErrUserNotFound, nil)
	}
	return userToDomain(&model)
}

func usersToDomain(models []UserGORM) ([]*user.User, error) {
	users := make([]*user.User, 0, len(models))
	for i := range models {
		u, err := userToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// forUpdate 在 PostgreSQL 上加上 FOR UPDATE 子句
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == DriverPostgres {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}
