package errors

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound 记录不存在（或不属于当前用户）
	ErrNotFound = errors.New("记录不存在")
	// ErrDuplicate 唯一约束冲突
	ErrDuplicate = errors.New("记录已存在")
)

// Translate 将 GORM 错误统一映射为仓储层哨兵错误，其他错误原样返回
func Translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
