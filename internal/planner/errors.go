package planner

import (
	"errors"
	"fmt"
)

// ── 排课核心错误 ──

var (
	// ErrInvalidBudget 学分上限为负数
	ErrInvalidBudget = errors.New("学分上限不能为负数")
	// ErrTooManyCourses 课程数量超过枚举上限
	ErrTooManyCourses = errors.New("课程数量超过排课枚举上限")
)

// ValidationError 课程字段或时间格式校验失败
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("字段 %s 校验失败: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// GenerationError 枚举或排序过程中的意外失败
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("生成课表失败: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
