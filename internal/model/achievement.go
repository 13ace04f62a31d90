package model

import (
	"time"
)

// AchievementDefinition 成就目录（只读），由迁移时按规则表播种
// swagger:model AchievementDefinition
type AchievementDefinition struct {
	BaseModel
	Code    string `gorm:"size:50;unique;not null" json:"code"`
	TitleFR string `gorm:"size:150;not null" json:"titleFr"`
	TitleAR string `gorm:"size:150" json:"titleAr"`
	TitleEN string `gorm:"size:150" json:"titleEn"`
	Icon    string `gorm:"size:50" json:"icon"`
	Color   string `gorm:"size:20" json:"color"`
}

func (AchievementDefinition) TableName() string {
	return "achievement_definitions"
}

// AchievementGrant 一次性解锁记录，(user_id, achievement_id) 唯一
// swagger:model AchievementGrant
type AchievementGrant struct {
	BaseModel
	UserID        uint      `gorm:"index:idx_user_achievement,unique;type:bigint unsigned;not null" json:"userId"`
	AchievementID uint      `gorm:"index:idx_user_achievement,unique;type:bigint unsigned;not null" json:"achievementId"`
	GrantedAt     time.Time `json:"grantedAt"`
}

func (AchievementGrant) TableName() string {
	return "achievement_grants"
}
