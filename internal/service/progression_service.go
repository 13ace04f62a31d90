package service

import (
	"errors"

	"eduplatform_backend/internal/gamification"
	"eduplatform_backend/internal/model"
	"eduplatform_backend/internal/repository"
	"eduplatform_backend/internal/util"
	"eduplatform_backend/pkg/logger"
	"eduplatform_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProgressionService struct {
	ProgressionRepo    *repository.ProgressionRepository
	ContentRepo        *repository.ContentRepository
	UserRepo           *repository.UserRepository
	AchievementService *AchievementService
}

func NewProgressionService(
	progressionRepo *repository.ProgressionRepository,
	contentRepo *repository.ContentRepository,
	userRepo *repository.UserRepository,
	achievementService *AchievementService,
) *ProgressionService {
	return &ProgressionService{
		ProgressionRepo:    progressionRepo,
		ContentRepo:        contentRepo,
		UserRepo:           userRepo,
		AchievementService: achievementService,
	}
}

const (
	OutcomeCompleted        = "completed"
	OutcomeAlreadyCompleted = "already_completed"
)

// CompletionOutcome 一次完成请求的响应快照
type CompletionOutcome struct {
	Outcome          string   `json:"outcome"`
	XPEarnedThisCall int      `json:"xpEarnedThisCall"`
	CumulativeXP     int      `json:"cumulativeXp"`
	PreviousLevel    int      `json:"previousLevel"`
	CurrentLevel     int      `json:"currentLevel"`
	LeveledUp        bool     `json:"leveledUp"`
	ProgressPercent  float64  `json:"progressPercent"`
	XPToNextLevel    int      `json:"xpToNextLevel"`
	NewAchievements  []string `json:"newAchievements"`
}

// CompleteLesson 端到端处理一次“完成课程”请求：
// 资格校验 → 原子加分 → 成就评估 → 组装响应。
// verified 和 watchDuration 是客户端上报的防作弊数据，仅记录，不作为放行条件。
func (s *ProgressionService) CompleteLesson(userID, lessonID uint, verified bool, watchDuration int) (*CompletionOutcome, error) {
	lesson, err := s.ContentRepo.FindPublishedLessonByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user.Disabled || user.Role != model.Student {
		return nil, util.ErrPermissionDenied
	}
	if lesson.Subject == nil || lesson.Subject.GradeLevelID != user.GradeLevelID {
		return nil, util.ErrLessonNotEligible
	}

	rewardXP := lesson.XPReward
	if rewardXP < 1 {
		rewardXP = 1
	}

	result, err := s.ProgressionRepo.AwardCompletion(userID, lessonID, rewardXP, verified, watchDuration)
	if errors.Is(err, util.ErrConflict) {
		// 与并发写入者撞上了，用新状态整体重试一次
		logger.Log.Warn("award conflict, retrying",
			zap.Uint("userID", userID), zap.Uint("lessonID", lessonID))
		result, err = s.ProgressionRepo.AwardCompletion(userID, lessonID, rewardXP, verified, watchDuration)
	}
	if err != nil {
		return nil, err
	}

	if result.AlreadyCompleted {
		return &CompletionOutcome{
			Outcome:         OutcomeAlreadyCompleted,
			CumulativeXP:    result.NewXP,
			PreviousLevel:   result.OldLevel,
			CurrentLevel:    result.NewLevel,
			ProgressPercent: gamification.ProgressPercent(result.NewXP),
			XPToNextLevel:   gamification.XPForNextLevel(result.NewXP) - result.NewXP,
			NewAchievements: []string{},
		}, nil
	}

	monitoring.LessonsCompleted.Inc()
	monitoring.XPAwarded.Add(float64(result.XPEarned))

	before := gamification.Counters{CompletedLessons: result.CompletedLessons - 1, XP: result.OldXP}
	after := gamification.Counters{CompletedLessons: result.CompletedLessons, XP: result.NewXP}
	newAchievements := s.AchievementService.EvaluateOnAward(userID, before, after)
	if newAchievements == nil {
		newAchievements = []string{}
	}

	return &CompletionOutcome{
		Outcome:          OutcomeCompleted,
		XPEarnedThisCall: result.XPEarned,
		CumulativeXP:     result.NewXP,
		PreviousLevel:    result.OldLevel,
		CurrentLevel:     result.NewLevel,
		LeveledUp:        result.NewLevel > result.OldLevel,
		ProgressPercent:  gamification.ProgressPercent(result.NewXP),
		XPToNextLevel:    gamification.XPForNextLevel(result.NewXP) - result.NewXP,
		NewAchievements:  newAchievements,
	}, nil
}

// ProgressSummary 学生仪表盘的进度概览
type ProgressSummary struct {
	CompletedLessons   int     `json:"completedLessons"`
	CumulativeXP       int     `json:"cumulativeXp"`
	CurrentLevel       int     `json:"currentLevel"`
	ProgressPercent    float64 `json:"progressPercent"`
	XPToNextLevel      int     `json:"xpToNextLevel"`
	EarnedAchievements int     `json:"earnedAchievements"`
}

func (s *ProgressionService) GetProgressSummary(userID uint) (*ProgressSummary, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	completed, err := s.ProgressionRepo.CountCompleted(userID)
	if err != nil {
		return nil, err
	}

	earned, err := s.AchievementService.CountEarned(userID)
	if err != nil {
		return nil, err
	}

	return &ProgressSummary{
		CompletedLessons:   completed,
		CumulativeXP:       user.XPPoints,
		CurrentLevel:       user.CurrentLevel,
		ProgressPercent:    gamification.ProgressPercent(user.XPPoints),
		XPToNextLevel:      gamification.XPForNextLevel(user.XPPoints) - user.XPPoints,
		EarnedAchievements: earned,
	}, nil
}
