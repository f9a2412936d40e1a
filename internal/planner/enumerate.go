package planner

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Candidate 一组互不冲突且不超学分上限的课程组合
type Candidate struct {
	Courses       []Course // 按输入课程顺序排列
	TotalCredits  int
	PriorityCount int
	Name          string // 由 Rank 按最终顺序赋值："Schedule N"
}

// ctxCheckInterval 每访问多少个搜索节点检查一次 ctx
const ctxCheckInterval = 4096

// Enumerate 顺序枚举全部合法组合，等价于 New(Options{}).Enumerate
func Enumerate(courses []Course, creditLimit int) ([]Candidate, error) {
	return New(Options{}).Enumerate(context.Background(), courses, creditLimit)
}

// Enumerate 枚举 courses 的全部非空子集，保留总学分不超过 creditLimit 且两两不冲突的组合。
//
// 输出顺序即"枚举顺序"：先按子集大小 1..n，再按下标字典序。
// 学分累加与冲突检查在搜索中提前剪枝，结果与逐一检查 2^n-1 个子集完全一致。
func (p *Planner) Enumerate(ctx context.Context, courses []Course, creditLimit int) (result []Candidate, err error) {
	if creditLimit < 0 {
		return nil, ErrInvalidBudget
	}
	if len(courses) == 0 {
		return []Candidate{}, nil
	}
	if p.opts.MaxCourses > 0 && len(courses) > p.opts.MaxCourses {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyCourses, len(courses), p.opts.MaxCourses)
	}
	for i := range courses {
		if err := checkCourse(courses[i]); err != nil {
			return nil, err
		}
	}

	defer func() {
		if r := recover(); r != nil {
			result, err = nil, &GenerationError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	e := &enumerator{
		courses:   courses,
		limit:     creditLimit,
		conflicts: newConflictMatrix(courses),
	}

	n := len(courses)
	bySize := make([][]Candidate, n)

	if p.opts.Workers <= 1 {
		for r := 1; r <= n; r++ {
			part, err := e.combinations(ctx, r)
			if err != nil {
				return nil, err
			}
			bySize[r-1] = part
			if len(part) == 0 {
				break // 大小为 r 的合法组合为空时，更大的子集也不可能合法
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.opts.Workers)
		for r := 1; r <= n; r++ {
			r := r
			g.Go(func() (err error) {
				defer func() {
					if rec := recover(); rec != nil {
						err = &GenerationError{Err: fmt.Errorf("panic: %v", rec)}
					}
				}()
				part, err := e.combinations(gctx, r)
				if err != nil {
					return err
				}
				bySize[r-1] = part
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	// 按子集大小合并，保证与顺序路径的枚举顺序一致
	total := 0
	for _, part := range bySize {
		total += len(part)
	}
	result = make([]Candidate, 0, total)
	for _, part := range bySize {
		result = append(result, part...)
	}
	return result, nil
}

// checkCourse 剪枝依赖学分为正、时间窗口有效
func checkCourse(c Course) error {
	if c.Credits <= 0 {
		return invalid("credits", "课程 %q 学分必须大于 0", c.Title)
	}
	if c.Start < 0 || c.End > MinutesPerDay || c.Start >= c.End {
		return invalid("end_time", "课程 %q 时间窗口无效", c.Title)
	}
	if c.Days == 0 {
		return invalid("days", "课程 %q 未设置上课日", c.Title)
	}
	return nil
}

type enumerator struct {
	courses   []Course
	limit     int
	conflicts conflictMatrix
}

// combinations 按字典序生成大小为 size 的全部合法组合
func (e *enumerator) combinations(ctx context.Context, size int) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := len(e.courses)
	var (
		out     []Candidate
		chosen  = make([]int, 0, size)
		visited int
		walkErr error
	)

	var walk func(next, credits int)
	walk = func(next, credits int) {
		if walkErr != nil {
			return
		}
		if len(chosen) == size {
			out = append(out, e.candidate(chosen, credits))
			return
		}
		for k := next; k <= n-(size-len(chosen)); k++ {
			visited++
			if visited%ctxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					walkErr = err
					return
				}
			}
			sum := credits + e.courses[k].Credits
			if sum > e.limit {
				continue // 学分为正，任何超集同样超限
			}
			if e.conflicts.conflictsWithAny(chosen, k) {
				continue
			}
			chosen = append(chosen, k)
			walk(k+1, sum)
			chosen = chosen[:len(chosen)-1]
		}
	}
	walk(0, 0)

	if walkErr != nil {
		return nil, walkErr
	}
	return out, nil
}

func (e *enumerator) candidate(idx []int, credits int) Candidate {
	c := Candidate{
		Courses:      make([]Course, len(idx)),
		TotalCredits: credits,
	}
	for i, k := range idx {
		c.Courses[i] = e.courses[k]
		if e.courses[k].Priority {
			c.PriorityCount++
		}
	}
	return c
}
