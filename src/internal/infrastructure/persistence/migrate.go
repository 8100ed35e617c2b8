package persistence

import (
	"fmt"

	"gorm.io/gorm"
)

// AutoMigrate 建立或更新所有資料表
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
