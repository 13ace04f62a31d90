package model

// GradeLevel 年级分组（如“第一年”），用于课程可见范围，与经验等级无关
// swagger:model GradeLevel
type GradeLevel struct {
	BaseModel
	NameFR       string `gorm:"size:100;not null" json:"nameFr"`
	NameAR       string `gorm:"size:100" json:"nameAr"`
	NameEN       string `gorm:"size:100" json:"nameEn"`
	DisplayOrder int    `gorm:"default:0" json:"displayOrder"`
}

func (GradeLevel) TableName() string {
	return "grade_levels"
}
