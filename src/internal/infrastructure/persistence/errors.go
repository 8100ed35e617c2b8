package persistence

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"gorm.io/gorm"
)

// pgUniqueViolation PostgreSQL 唯一約束違反的 SQLSTATE
const pgUniqueViolation = "23505"

// mapError 映射資料庫錯誤到 Domain 錯誤
//
// 映射規則：
// - gorm.ErrRecordNotFound                → notFound
// - pgconn.PgError 23505 / ErrDuplicatedKey → alreadyExists
// - SQLite "UNIQUE constraint failed"      → alreadyExists
// - 已經是 DomainError                     → 原樣返回
// - 其他錯誤                               → shared.ErrRepository
//
// notFound / alreadyExists 為 nil 時該類錯誤落入 ErrRepository。
func mapError(err error, notFound, alreadyExists *shared.DomainError) error {
	if err == nil {
		return nil
	}

	if _, ok := shared.AsDomainError(err); ok {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil {
		return notFound
	}

	if alreadyExists != nil && isUniqueViolation(err) {
		return alreadyExists.WithContext("database_error", err.Error())
	}

	return shared.ErrRepository.WithContext("database_error", err.Error())
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	// SQLite 驅動只提供訊息字串
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
