package repository

import (
	"eduplatform_backend/internal/model"

	"gorm.io/gorm"
)

// ContentRepository 只读内容目录：年级、科目、课程
type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) FindGradeLevels() ([]model.GradeLevel, error) {
	var grades []model.GradeLevel
	err := r.DB.Order("display_order asc, id asc").Find(&grades).Error
	return grades, err
}

func (r *ContentRepository) FindGradeLevelByID(id uint) (*model.GradeLevel, error) {
	var grade model.GradeLevel
	err := r.DB.First(&grade, id).Error
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *ContentRepository) FindSubjectsByGradeLevel(gradeLevelID uint) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Where("grade_level_id = ? AND is_published = ?", gradeLevelID, true).
		Order("display_order asc, id asc").
		Find(&subjects).Error
	return subjects, err
}

func (r *ContentRepository) FindSubjectByID(id uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.First(&subject, id).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *ContentRepository) FindPublishedLessonsBySubject(subjectID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("subject_id = ? AND is_published = ?", subjectID, true).
		Order("display_order asc, id asc").
		Find(&lessons).Error
	return lessons, err
}

// FindPublishedLessonByID 带所属科目，科目的年级决定课程对谁可见
func (r *ContentRepository) FindPublishedLessonByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.Preload("Subject").
		Where("id = ? AND is_published = ?", id, true).
		First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}
