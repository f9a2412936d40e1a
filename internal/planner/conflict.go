package planner

// Conflicts 判断两门课程能否同时出现在一张课表中。
// 无公共上课日时不冲突；否则按半开区间 [Start, End) 判断重叠，首尾相接不算冲突。
func Conflicts(a, b Course) bool {
	if !a.Days.Intersects(b.Days) {
		return false
	}
	return a.Start < b.End && b.Start < a.End
}

// conflictMatrix 预计算两两冲突关系
type conflictMatrix [][]bool

func newConflictMatrix(courses []Course) conflictMatrix {
	n := len(courses)
	m := make(conflictMatrix, n)
	for i := range m {
		m[i] = make([]bool, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if Conflicts(courses[i], courses[j]) {
				m[i][j] = true
				m[j][i] = true
			}
		}
	}
	return m
}

// conflictsWithAny 候选下标 k 是否与已选下标中的任意一门冲突
func (m conflictMatrix) conflictsWithAny(chosen []int, k int) bool {
	for _, i := range chosen {
		if m[i][k] {
			return true
		}
	}
	return false
}
