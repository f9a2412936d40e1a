package planner

import (
	"fmt"
	"sort"
)

// Rank 过滤掉总学分低于 minCredits 的组合，并按
// 优先课程数降序、总学分降序稳定排序，同分保持枚举顺序。
// 排序后按名次赋予 "Schedule N" 名称。对已排序结果再次调用结果不变。
func Rank(candidates []Candidate, minCredits int) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.TotalCredits < minCredits {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PriorityCount != out[j].PriorityCount {
			return out[i].PriorityCount > out[j].PriorityCount
		}
		return out[i].TotalCredits > out[j].TotalCredits
	})

	for i := range out {
		out[i].Name = DisplayName(i + 1)
	}
	return out
}

// DisplayName 按 1 起始的名次生成课表名称
func DisplayName(rank int) string {
	return fmt.Sprintf("Schedule %d", rank)
}
