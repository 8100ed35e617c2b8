package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 支援的資料庫驅動
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options 資料庫連線設定
type Options struct {
	Driver        string
	DSN           string
	SlowThreshold time.Duration
	Logger        *slog.Logger
}

// Open 建立 GORM 連線
//
// SQLite：
//   - 只開一條連線，寫入在資料庫層序列化（多條連線會遇到 SQLITE_BUSY）
//   - 開啟 foreign_keys 與 busy_timeout
//
// PostgreSQL：使用 pgx 驅動，帳本原語依賴 SELECT ... FOR UPDATE 與條件 UPDATE。
func Open(opts Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch opts.Driver {
	case DriverSQLite, "":
		dialector = sqlite.Open(opts.DSN)
	case DriverPostgres:
		dialector = postgres.Open(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(opts.Logger, opts.SlowThreshold),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialector.Name(), err)
	}

	if dialector.Name() == DriverSQLite {
		if err := configureSQLite(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func configureSQLite(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if err := db.Exec(pragma).Error; err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

// newGormLogger 將 GORM 的日誌導向 slog（Warn 以上，忽略 RecordNotFound）
func newGormLogger(l *slog.Logger, slow time.Duration) logger.Interface {
	if l == nil {
		l = slog.Default()
	}
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}
	return logger.New(
		slog.NewLogLogger(l.Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             slow,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// Close 關閉底層連線
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
