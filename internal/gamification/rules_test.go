package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleByCode(t *testing.T, code string) Rule {
	t.Helper()
	for _, rule := range Rules() {
		if rule.Code == code {
			return rule
		}
	}
	t.Fatalf("rule %s not found", code)
	return Rule{}
}

func TestLessonCountRulesFireOnce(t *testing.T) {
	first := ruleByCode(t, "first_lesson")

	assert.True(t, first.NewlyTrue(
		Counters{CompletedLessons: 0, XP: 0},
		Counters{CompletedLessons: 1, XP: 10},
	))
	// 已经达成过，不再触发
	assert.False(t, first.NewlyTrue(
		Counters{CompletedLessons: 1, XP: 10},
		Counters{CompletedLessons: 2, XP: 20},
	))

	ten := ruleByCode(t, "ten_lessons")
	assert.False(t, ten.NewlyTrue(
		Counters{CompletedLessons: 8, XP: 80},
		Counters{CompletedLessons: 9, XP: 90},
	))
	assert.True(t, ten.NewlyTrue(
		Counters{CompletedLessons: 9, XP: 90},
		Counters{CompletedLessons: 10, XP: 100},
	))
}

func TestXPThresholdRule(t *testing.T) {
	hundred := ruleByCode(t, "hundred_xp")

	assert.True(t, hundred.NewlyTrue(
		Counters{CompletedLessons: 9, XP: 90},
		Counters{CompletedLessons: 10, XP: 100},
	))
	assert.True(t, hundred.NewlyTrue(
		Counters{CompletedLessons: 1, XP: 50},
		Counters{CompletedLessons: 2, XP: 150},
	))
	assert.False(t, hundred.NewlyTrue(
		Counters{CompletedLessons: 10, XP: 100},
		Counters{CompletedLessons: 11, XP: 110},
	))
}

func TestRulesHaveUniqueCodes(t *testing.T) {
	seen := make(map[string]bool)
	for _, rule := range Rules() {
		require.NotEmpty(t, rule.Code)
		require.False(t, seen[rule.Code], "duplicate code %s", rule.Code)
		require.NotNil(t, rule.NewlyTrue)
		seen[rule.Code] = true
	}
}
