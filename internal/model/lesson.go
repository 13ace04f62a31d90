package model

// swagger:model Lesson
type Lesson struct {
	BaseModel
	SubjectID    uint   `gorm:"index;type:bigint unsigned;not null" json:"subjectId"`
	TitleFR      string `gorm:"size:255;not null" json:"titleFr"`
	TitleAR      string `gorm:"size:255" json:"titleAr"`
	TitleEN      string `gorm:"size:255" json:"titleEn"`
	Content      string `gorm:"type:text" json:"content"`
	VideoURL     string `gorm:"size:255" json:"videoUrl"` // YouTube 链接，前端负责 embed
	XPReward     int    `gorm:"default:10" json:"xpReward"`
	DisplayOrder int    `gorm:"default:0" json:"displayOrder"`
	IsPublished  bool   `gorm:"default:false" json:"isPublished"`

	Subject *Subject `gorm:"foreignKey:SubjectID" json:"-"`
}

func (Lesson) TableName() string {
	return "lessons"
}
