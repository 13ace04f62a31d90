package repository

import (
	"time"

	"eduplatform_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) FindDefinitions() ([]model.AchievementDefinition, error) {
	var defs []model.AchievementDefinition
	err := r.DB.Order("id asc").Find(&defs).Error
	return defs, err
}

func (r *AchievementRepository) FindDefinitionByCode(code string) (*model.AchievementDefinition, error) {
	var def model.AchievementDefinition
	err := r.DB.Where("code = ?", code).First(&def).Error
	if err != nil {
		return nil, err
	}
	return &def, nil
}

// GrantIfNew 幂等授予：已存在时靠唯一索引静默跳过，返回是否真的新插入
func (r *AchievementRepository) GrantIfNew(userID, achievementID uint) (bool, error) {
	grant := model.AchievementGrant{
		UserID:        userID,
		AchievementID: achievementID,
		GrantedAt:     time.Now(),
	}
	res := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&grant)
	if res.Error != nil {
		if isDuplicateKeyError(res.Error) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *AchievementRepository) FindGrantsByUserID(userID uint) ([]model.AchievementGrant, error) {
	var grants []model.AchievementGrant
	err := r.DB.Where("user_id = ?", userID).Order("granted_at asc").Find(&grants).Error
	return grants, err
}

func (r *AchievementRepository) CountGrants(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.AchievementGrant{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
