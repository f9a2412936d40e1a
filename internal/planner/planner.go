// Package planner 是课表生成的纯计算核心：冲突判断、组合枚举与排序。
// 不做任何 I/O，输入为已校验的课程，输出为排好序的候选课表。
package planner

import (
	"context"
	"errors"
	"fmt"
)

// Options 枚举的部署参数
type Options struct {
	// MaxCourses 单次枚举允许的最大课程数，<=0 表示不限制
	MaxCourses int
	// Workers 按子集大小并行枚举的协程数，<=1 时顺序执行
	Workers int
}

// Planner 带部署参数的排课器，零值可用
type Planner struct {
	opts Options
}

// New 创建 Planner
func New(opts Options) *Planner {
	return &Planner{opts: opts}
}

// Plan 枚举 → 排序一次完成。
// ValidationError / ErrInvalidBudget / ErrTooManyCourses / ctx 错误原样返回，
// 其余意外失败统一包装为 *GenerationError。
func (p *Planner) Plan(ctx context.Context, courses []Course, minCredits, maxCredits int) (ranked []Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			ranked, err = nil, &GenerationError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	candidates, err := p.Enumerate(ctx, courses, maxCredits)
	if err != nil {
		if isKnown(err) {
			return nil, err
		}
		return nil, &GenerationError{Err: err}
	}
	return Rank(candidates, minCredits), nil
}

func isKnown(err error) bool {
	var ve *ValidationError
	var ge *GenerationError
	return errors.As(err, &ve) ||
		errors.As(err, &ge) ||
		errors.Is(err, ErrInvalidBudget) ||
		errors.Is(err, ErrTooManyCourses) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
