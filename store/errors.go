package store

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound 引用的记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrConstraintViolation 唯一约束或外键约束冲突
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrInvalidValue 数值越界或字符串超长
	ErrInvalidValue = errors.New("invalid value")
	// ErrStoreUnavailable 存储不可用或查询失败
	ErrStoreUnavailable = errors.New("store unavailable")
)

// MySQL / PostgreSQL 错误码
const (
	mysqlDuplicateEntry   = 1062
	mysqlRowIsReferenced  = 1451
	mysqlNoReferencedRow  = 1452
	mysqlOutOfRange       = 1264
	mysqlDataTooLong      = 1406
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNumericOutOfRange   = "22003"
	pgStringTooLong       = "22001"
)

// translateError 将驱动错误归类为存储层错误
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConstraintViolation) ||
		errors.Is(err, ErrInvalidValue) || errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if isConstraintError(err) {
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	}
	if isValueError(err) {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

func isConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry, mysqlRowIsReferenced, mysqlNoReferencedRow:
			return true
		}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation || pgErr.Code == pgForeignKeyViolation
	}
	return false
}

func isValueError(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlOutOfRange || myErr.Number == mysqlDataTooLong
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgNumericOutOfRange || pgErr.Code == pgStringTooLong
	}
	return false
}
