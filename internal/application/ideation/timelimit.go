package ideation

// DefaultTimeLimitHours 未识别的时间限制代码回退到 24 小时
const DefaultTimeLimitHours = 24

var timeLimitHours = map[string]int{
	"24h":   24,
	"48h":   48,
	"72h":   72,
	"1week": 168,
}

// NormalizeTimeLimit 将时间限制代码转换为小时数。
// 匹配区分大小写，未知代码静默回退为 DefaultTimeLimitHours。
func NormalizeTimeLimit(code string) int {
	if h, ok := timeLimitHours[code]; ok {
		return h
	}
	return DefaultTimeLimitHours
}
