package service

import (
	"testing"

	"eduplatform_backend/internal/gamification"
	"eduplatform_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateOnAwardGrantsOnce(t *testing.T) {
	h := newServiceHarness(t)
	grade := h.createGradeLevel(t)
	user := h.createStudent(t, grade.ID, 0)

	before := gamification.Counters{CompletedLessons: 0, XP: 0}
	after := gamification.Counters{CompletedLessons: 1, XP: 10}

	granted := h.achievement.EvaluateOnAward(user.ID, before, after)
	assert.Equal(t, []string{"first_lesson"}, granted)

	// 同一区间重放不得重复授予
	granted = h.achievement.EvaluateOnAward(user.ID, before, after)
	assert.Empty(t, granted)

	var rows int64
	require.NoError(t, h.db.Model(&model.AchievementGrant{}).
		Where("user_id = ?", user.ID).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestEvaluateOnAwardMultipleThresholds(t *testing.T) {
	h := newServiceHarness(t)
	grade := h.createGradeLevel(t)
	user := h.createStudent(t, grade.ID, 0)

	granted := h.achievement.EvaluateOnAward(user.ID,
		gamification.Counters{CompletedLessons: 4, XP: 90},
		gamification.Counters{CompletedLessons: 5, XP: 110},
	)
	assert.ElementsMatch(t, []string{"five_lessons", "hundred_xp"}, granted)
}

func TestGetUserAchievements(t *testing.T) {
	h := newServiceHarness(t)
	grade := h.createGradeLevel(t)
	user := h.createStudent(t, grade.ID, 150)

	h.achievement.EvaluateOnAward(user.ID,
		gamification.Counters{CompletedLessons: 0, XP: 0},
		gamification.Counters{CompletedLessons: 1, XP: 10},
	)

	result, err := h.achievement.GetUserAchievements(user.ID)
	require.NoError(t, err)

	assert.Equal(t, 150, result.TotalXP)
	assert.Equal(t, 2, result.CurrentLevel)
	assert.Equal(t, 200, result.NextLevelXP)
	assert.Len(t, result.Achievements, len(gamification.Rules()))

	earnedByCode := make(map[string]bool)
	for _, a := range result.Achievements {
		earnedByCode[a.Code] = a.Earned
		if a.Earned {
			assert.NotNil(t, a.EarnedAt)
		} else {
			assert.Nil(t, a.EarnedAt)
		}
	}
	assert.True(t, earnedByCode["first_lesson"])
	assert.False(t, earnedByCode["ten_lessons"])
}

func TestGetLeaderboardWithoutRedis(t *testing.T) {
	h := newServiceHarness(t)
	grade := h.createGradeLevel(t)

	names := []string{"Yasmine", "Karim", "Leïla"}
	xps := []int{300, 120, 50}
	for i := range names {
		user := h.createStudent(t, grade.ID, xps[i])
		require.NoError(t, h.db.Model(&model.User{}).Where("id = ?", user.ID).
			Update("name", names[i]).Error)
	}

	entries, err := h.achievement.GetLeaderboard(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "Yasmine", entries[0].Name)
	assert.Equal(t, 300, entries[0].XP)
	assert.Equal(t, 4, entries[0].Level)

	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "Karim", entries[1].Name)
}

func TestLeaderboardExcludesDisabledAndAdmins(t *testing.T) {
	h := newServiceHarness(t)
	grade := h.createGradeLevel(t)

	student := h.createStudent(t, grade.ID, 80)

	disabled := h.createStudent(t, grade.ID, 500)
	require.NoError(t, h.db.Model(&model.User{}).Where("id = ?", disabled.ID).
		Update("disabled", true).Error)

	admin := h.createStudent(t, grade.ID, 900)
	require.NoError(t, h.db.Model(&model.User{}).Where("id = ?", admin.ID).
		Update("role", model.Admin).Error)

	entries, err := h.achievement.GetLeaderboard(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, student.XPPoints, entries[0].XP)
}
