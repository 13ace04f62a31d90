package database

import (
	"fmt"
	"log"

	"eduplatform_backend/internal/config"
	"eduplatform_backend/internal/gamification"
	"eduplatform_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")
	return db, nil
}

// Migrate 建表并播种成就目录，测试里也用它初始化 sqlite
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.GradeLevel{},
		&model.Subject{},
		&model.Lesson{},
		&model.LessonProgress{},
		&model.AchievementDefinition{},
		&model.AchievementGrant{},
	)
	if err != nil {
		return err
	}

	return seedAchievementDefinitions(db)
}

// seedAchievementDefinitions 把声明式规则表同步到成就目录，
// 已存在的 code 不重复插入
func seedAchievementDefinitions(db *gorm.DB) error {
	for _, rule := range gamification.Rules() {
		var count int64
		if err := db.Model(&model.AchievementDefinition{}).
			Where("code = ?", rule.Code).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		def := model.AchievementDefinition{
			Code:    rule.Code,
			TitleFR: rule.TitleFR,
			TitleAR: rule.TitleAR,
			TitleEN: rule.TitleEN,
			Icon:    rule.Icon,
			Color:   rule.Color,
		}
		if err := db.Create(&def).Error; err != nil {
			return err
		}
	}
	return nil
}
