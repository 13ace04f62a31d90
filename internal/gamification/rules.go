package gamification

// Counters 奖励事务前后的聚合计数，用于判断成就是否“新达成”
type Counters struct {
	CompletedLessons int
	XP               int
}

// Rule 声明式成就规则：新增里程碑只需加一行数据，不用改代码
type Rule struct {
	Code    string
	TitleFR string
	TitleAR string
	TitleEN string
	Icon    string
	Color   string

	// NewlyTrue 仅在条件由假变真的那次调用返回 true
	NewlyTrue func(before, after Counters) bool
}

func lessonCountRule(n int) func(before, after Counters) bool {
	return func(before, after Counters) bool {
		return before.CompletedLessons < n && after.CompletedLessons >= n
	}
}

func xpThresholdRule(t int) func(before, after Counters) bool {
	return func(before, after Counters) bool {
		return before.XP < t && after.XP >= t
	}
}

var rules = []Rule{
	{
		Code:      "first_lesson",
		TitleFR:   "Première leçon",
		TitleAR:   "الدرس الأول",
		TitleEN:   "First lesson completed",
		Icon:      "star",
		Color:     "#f59e0b",
		NewlyTrue: lessonCountRule(1),
	},
	{
		Code:      "five_lessons",
		TitleFR:   "5 leçons terminées",
		TitleAR:   "أكملت 5 دروس",
		TitleEN:   "5 lessons completed",
		Icon:      "flame",
		Color:     "#ef4444",
		NewlyTrue: lessonCountRule(5),
	},
	{
		Code:      "ten_lessons",
		TitleFR:   "10 leçons terminées",
		TitleAR:   "أكملت 10 دروس",
		TitleEN:   "10 lessons completed",
		Icon:      "award",
		Color:     "#8b5cf6",
		NewlyTrue: lessonCountRule(10),
	},
	{
		Code:      "hundred_xp",
		TitleFR:   "100 XP atteints",
		TitleAR:   "وصلت إلى 100 نقطة",
		TitleEN:   "Reached 100 XP",
		Icon:      "zap",
		Color:     "#3b82f6",
		NewlyTrue: xpThresholdRule(100),
	},
}

// Rules 返回全部成就规则（只读）
func Rules() []Rule {
	return rules
}
