// Package persistencetest 提供其他套件整合測試使用的 SQLite in-memory 資料庫
package persistencetest

import (
	"io"
	"log/slog"
	"testing"

	"github.com/jackyeh168/channel_points/src/internal/domain/user"
	"github.com/jackyeh168/channel_points/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// NewDB 創建已遷移的 SQLite in-memory 資料庫，測試結束時自動關閉
//
// 每次調用得到獨立的資料庫（單一連線，":memory:" 不共享）。
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := persistence.Open(persistence.Options{
		Driver: persistence.DriverSQLite,
		DSN:    ":memory:",
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := persistence.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = persistence.Close(db)
	})
	return db
}

// NewUser 建立餘額為 0 的使用者（外部身分為 "ext-" + displayName）
func NewUser(t testing.TB, db *gorm.DB, displayName string) *user.User {
	t.Helper()

	ext, err := user.NewExternalID("ext-" + displayName)
	if err != nil {
		t.Fatalf("invalid external id: %v", err)
	}
	u, err := user.NewUser(ext, user.Email{}, displayName)
	if err != nil {
		t.Fatalf("invalid user: %v", err)
	}
	if err := persistence.NewUserRepository(db).Create(nil, u); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return u
}
