package model

import (
	"time"
)

type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "not_started"
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed" // 终态，不可回退
)

// LessonProgress 记录用户对某节课的完成状态
// (user_id, lesson_id) 唯一索引是幂等加分的关键约束
// swagger:model LessonProgress
type LessonProgress struct {
	BaseModel
	UserID   uint           `gorm:"index:idx_user_lesson,unique;type:bigint unsigned;not null" json:"userId"`
	LessonID uint           `gorm:"index:idx_user_lesson,unique;type:bigint unsigned;not null" json:"lessonId"`
	Status   ProgressStatus `gorm:"size:20;default:'not_started'" json:"status"`

	XPEarned             int  `gorm:"default:0" json:"xpEarned"`
	AntiCheatVerified    bool `gorm:"default:false" json:"antiCheatVerified"` // 客户端上报的防作弊标记，仅作审计记录
	WatchDuration        int  `gorm:"default:0" json:"watchDuration"`
	CompletionPercentage int  `gorm:"default:0" json:"completionPercentage"`

	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
