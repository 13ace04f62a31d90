package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name         string   `gorm:"size:100;not null" json:"name"`
	Email        string   `gorm:"size:100;unique;not null" json:"email"`
	Password     string   `gorm:"size:100;not null" json:"-"`
	Role         UserRole `gorm:"size:20;default:'student'" json:"role"`
	GradeLevelID uint     `gorm:"index;type:bigint unsigned" json:"gradeLevelId"` // 年级（分组），不是游戏化等级
	XPPoints     int      `gorm:"default:0" json:"xpPoints"`
	CurrentLevel int      `gorm:"default:1" json:"currentLevel"` // 派生字段，始终等于 LevelFor(XPPoints)
	Language     string   `gorm:"size:10;default:'fr'" json:"language"`
	Disabled     bool     `gorm:"default:false" json:"disabled"`

	LastLogin time.Time `json:"lastLogin"`
	LastSeen  time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
