package model

// swagger:model Subject
type Subject struct {
	BaseModel
	GradeLevelID uint   `gorm:"index;type:bigint unsigned;not null" json:"gradeLevelId"`
	NameFR       string `gorm:"size:150;not null" json:"nameFr"`
	NameAR       string `gorm:"size:150" json:"nameAr"`
	NameEN       string `gorm:"size:150" json:"nameEn"`
	Icon         string `gorm:"size:50" json:"icon"`
	DisplayOrder int    `gorm:"default:0" json:"displayOrder"`
	IsPublished  bool   `gorm:"default:true" json:"isPublished"`
}

func (Subject) TableName() string {
	return "subjects"
}
