package gamification

import "math"

// XPPerLevel 每级所需经验值，与前端 xp-system.js 中的常量保持一致
const XPPerLevel = 100

// LevelFor 根据累计经验值计算等级，0 XP 对应 1 级
func LevelFor(xp int) int {
	return xp/XPPerLevel + 1
}

// ProgressPercent 当前等级内的进度百分比 [0,100]，保留两位小数
func ProgressPercent(xp int) float64 {
	level := LevelFor(xp)
	xpInLevel := xp - (level-1)*XPPerLevel
	pct := float64(xpInLevel) / float64(XPPerLevel) * 100
	return math.Round(pct*100) / 100
}

// XPForNextLevel 升到下一级所需的累计经验值
func XPForNextLevel(xp int) int {
	return LevelFor(xp) * XPPerLevel
}
