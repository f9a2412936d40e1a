package planner

import (
	"fmt"
	"strings"
)

// MinutesPerDay 一天的分钟数
const MinutesPerDay = 24 * 60

// ParseClock 将 "HH:MM"（24 小时制，小时可不补零）解析为当天分钟数。
// 小时须在 0-23，分钟须为两位且在 0-59。
func ParseClock(text string) (int, error) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return 0, invalid("time", "%q 不是 HH:MM 格式", text)
	}

	hour, ok := parseDigits(parts[0], 1, 2)
	if !ok {
		return 0, invalid("time", "%q 的小时部分无效", text)
	}
	minute, ok := parseDigits(parts[1], 2, 2)
	if !ok {
		return 0, invalid("time", "%q 的分钟部分无效", text)
	}

	if hour > 23 {
		return 0, invalid("time", "%q 的小时超出 0-23", text)
	}
	if minute > 59 {
		return 0, invalid("time", "%q 的分钟超出 0-59", text)
	}
	return hour*60 + minute, nil
}

// FormatClock 将分钟数格式化为 "HH:MM"
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// parseDigits 仅接受 ASCII 数字，长度在 [minLen, maxLen]
func parseDigits(s string, minLen, maxLen int) (int, bool) {
	if len(s) < minLen || len(s) > maxLen {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
