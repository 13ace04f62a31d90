package service

import (
	"errors"

	"eduplatform_backend/internal/model"
	"eduplatform_backend/internal/repository"
	"eduplatform_backend/internal/util"
	"eduplatform_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ContentService struct {
	ContentRepo     *repository.ContentRepository
	ProgressionRepo *repository.ProgressionRepository
}

func NewContentService(contentRepo *repository.ContentRepository, progressionRepo *repository.ProgressionRepository) *ContentService {
	return &ContentService{
		ContentRepo:     contentRepo,
		ProgressionRepo: progressionRepo,
	}
}

func (s *ContentService) GetGradeLevels() ([]model.GradeLevel, error) {
	return s.ContentRepo.FindGradeLevels()
}

func (s *ContentService) GetSubjects(gradeLevelID uint) ([]model.Subject, error) {
	return s.ContentRepo.FindSubjectsByGradeLevel(gradeLevelID)
}

type LessonListItem struct {
	model.Lesson
	Status model.ProgressStatus `json:"status"`
}

// GetLessons 科目下的课程列表，带当前用户的完成状态
// 科目必须已发布且属于该学生的年级
func (s *ContentService) GetLessons(subjectID uint, user *util.Claims) ([]LessonListItem, error) {
	subject, err := s.ContentRepo.FindSubjectByID(subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}
	if !subject.IsPublished {
		return nil, util.ErrSubjectNotFound
	}
	if subject.GradeLevelID != user.GradeLevelID {
		return nil, util.ErrPermissionDenied
	}

	lessons, err := s.ContentRepo.FindPublishedLessonsBySubject(subjectID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(lessons))
	for i, lesson := range lessons {
		ids[i] = lesson.ID
	}

	statusMap, err := s.ProgressionRepo.FindCompletionMap(user.UserID, ids)
	if err != nil {
		return nil, err
	}

	items := make([]LessonListItem, len(lessons))
	for i, lesson := range lessons {
		status, ok := statusMap[lesson.ID]
		if !ok {
			status = model.ProgressNotStarted
		}
		items[i] = LessonListItem{Lesson: lesson, Status: status}
	}
	return items, nil
}

type LessonDetail struct {
	model.Lesson
	Status model.ProgressStatus `json:"status"`
}

// GetLesson 课程详情；学生首次打开时把进度行标记为 in_progress（不加 XP）
func (s *ContentService) GetLesson(lessonID uint, user *util.Claims) (*LessonDetail, error) {
	lesson, err := s.ContentRepo.FindPublishedLessonByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	if lesson.Subject == nil || lesson.Subject.GradeLevelID != user.GradeLevelID {
		return nil, util.ErrLessonNotEligible
	}

	if err := s.ProgressionRepo.MarkInProgress(user.UserID, lessonID); err != nil {
		// 浏览标记失败不应挡住课程内容
		logger.Log.Warn("mark in_progress failed",
			zap.Uint("userID", user.UserID), zap.Uint("lessonID", lessonID), zap.Error(err))
	}

	status := model.ProgressNotStarted
	if progress, err := s.ProgressionRepo.FindProgress(user.UserID, lessonID); err == nil {
		status = progress.Status
	}

	return &LessonDetail{Lesson: *lesson, Status: status}, nil
}
