package persistence

import (
	"io"
	"log/slog"
	"testing"

	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ===========================
// 測試輔助函數
// ===========================

// setupTestDB 創建測試用的 SQLite in-memory 資料庫
//
// 1. 隔離性：每個測試使用獨立的 in-memory DB
// 2. 真實性：使用真實 SQL 引擎，而非 Mock
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Open(Options{
		Driver: DriverSQLite,
		DSN:    ":memory:",
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, AutoMigrate(db), "Failed to migrate test database")

	t.Cleanup(func() {
		_ = Close(db)
	})
	return db
}

// createTestUser 建立使用者並設定初始餘額
func createTestUser(t *testing.T, db *gorm.DB, name string, balance int) *user.User {
	t.Helper()

	ext, err := user.NewExternalID("ext-" + name)
	require.NoError(t, err)
	u, err := user.NewUser(ext, user.Email{}, name)
	require.NoError(t, err)
	require.NoError(t, NewUserRepository(db).Create(nil, u))

	if balance > 0 {
		amount, err := points.NewPointsAmount(balance)
		require.NoError(t, err)
		_, err = NewLedgerRepository(db).SetBalance(nil, u.UserID(), amount)
		require.NoError(t, err)
	}
	return u
}

func mustAmount(t *testing.T, v int) points.PointsAmount {
	t.Helper()
	amount, err := points.NewPointsAmount(v)
	require.NoError(t, err)
	return amount
}

func mustDescription(t *testing.T, s string) points.Description {
	t.Helper()
	desc, err := points.NewDescription(s)
	require.NoError(t, err)
	return desc
}

var _ shared.TransactionManager = (*GORMTransactionManager)(nil)
