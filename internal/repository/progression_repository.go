package repository

import (
	"errors"
	"strings"
	"time"

	"eduplatform_backend/internal/gamification"
	"eduplatform_backend/internal/model"
	"eduplatform_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressionRepository struct {
	DB *gorm.DB
}

func NewProgressionRepository(db *gorm.DB) *ProgressionRepository {
	return &ProgressionRepository{DB: db}
}

// AwardResult 奖励事务的结果快照
type AwardResult struct {
	AlreadyCompleted bool
	XPEarned         int
	OldXP            int
	NewXP            int
	OldLevel         int
	NewLevel         int
	CompletedLessons int
}

// AwardCompletion 在单个事务内完成加分：
// 锁定进度行和用户行，已完成则幂等短路，否则写入完成状态并更新用户 XP/等级。
// 并发插入同一 (user, lesson) 时唯一索引会使后到者报冲突，由调用方重试一次。
func (r *ProgressionRepository) AwardCompletion(userID, lessonID uint, rewardXP int, verified bool, watchDuration int) (*AwardResult, error) {
	var result AwardResult

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var progress model.LessonProgress
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND lesson_id = ?", userID, lessonID).
			First(&progress).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		exists := err == nil

		var user model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, userID).Error; err != nil {
			return err
		}

		if exists && progress.Status == model.ProgressCompleted {
			// 幂等短路：不再写任何东西
			var completed int64
			if err := tx.Model(&model.LessonProgress{}).
				Where("user_id = ? AND status = ?", userID, model.ProgressCompleted).
				Count(&completed).Error; err != nil {
				return err
			}
			result = AwardResult{
				AlreadyCompleted: true,
				OldXP:            user.XPPoints,
				NewXP:            user.XPPoints,
				OldLevel:         user.CurrentLevel,
				NewLevel:         user.CurrentLevel,
				CompletedLessons: int(completed),
			}
			return nil
		}

		now := time.Now()
		oldXP := user.XPPoints
		newXP := oldXP + rewardXP
		oldLevel := gamification.LevelFor(oldXP)
		newLevel := gamification.LevelFor(newXP)

		if exists {
			updates := map[string]interface{}{
				"status":                model.ProgressCompleted,
				"xp_earned":             rewardXP,
				"anti_cheat_verified":   verified,
				"watch_duration":        watchDuration,
				"completion_percentage": 100,
				"completed_at":          now,
			}
			if err := tx.Model(&progress).Updates(updates).Error; err != nil {
				return err
			}
		} else {
			progress = model.LessonProgress{
				UserID:               userID,
				LessonID:             lessonID,
				Status:               model.ProgressCompleted,
				XPEarned:             rewardXP,
				AntiCheatVerified:    verified,
				WatchDuration:        watchDuration,
				CompletionPercentage: 100,
				CompletedAt:          &now,
			}
			if err := tx.Create(&progress).Error; err != nil {
				if isDuplicateKeyError(err) {
					// 另一个并发请求先插入了同一行
					return util.ErrConflict
				}
				return err
			}
		}

		if err := tx.Model(&model.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"xp_points":     newXP,
				"current_level": newLevel,
			}).Error; err != nil {
			return err
		}

		var completed int64
		if err := tx.Model(&model.LessonProgress{}).
			Where("user_id = ? AND status = ?", userID, model.ProgressCompleted).
			Count(&completed).Error; err != nil {
			return err
		}

		result = AwardResult{
			XPEarned:         rewardXP,
			OldXP:            oldXP,
			NewXP:            newXP,
			OldLevel:         oldLevel,
			NewLevel:         newLevel,
			CompletedLessons: int(completed),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &result, nil
}

// MarkInProgress 首次浏览课程时建进度行，不加 XP，已完成的行不回退
func (r *ProgressionRepository) MarkInProgress(userID, lessonID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var progress model.LessonProgress
		err := tx.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			progress = model.LessonProgress{
				UserID:   userID,
				LessonID: lessonID,
				Status:   model.ProgressInProgress,
			}
			err = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&progress).Error
			if err != nil && isDuplicateKeyError(err) {
				return nil
			}
			return err
		}
		if err != nil {
			return err
		}
		if progress.Status == model.ProgressNotStarted {
			return tx.Model(&progress).Update("status", model.ProgressInProgress).Error
		}
		return nil
	})
}

func (r *ProgressionRepository) FindProgress(userID, lessonID uint) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressionRepository) CountCompleted(userID uint) (int, error) {
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND status = ?", userID, model.ProgressCompleted).
		Count(&count).Error
	return int(count), err
}

// FindCompletionMap 一组课程的完成状态，用于课程列表页
func (r *ProgressionRepository) FindCompletionMap(userID uint, lessonIDs []uint) (map[uint]model.ProgressStatus, error) {
	var rows []model.LessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	statusMap := make(map[uint]model.ProgressStatus, len(rows))
	for _, row := range rows {
		statusMap[row.LessonID] = row.Status
	}
	return statusMap, nil
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
