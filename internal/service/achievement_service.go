package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eduplatform_backend/internal/gamification"
	"eduplatform_backend/internal/repository"
	"eduplatform_backend/pkg/logger"
	"eduplatform_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const leaderboardCacheTTL = time.Minute

type AchievementService struct {
	AchievementRepo *repository.AchievementRepository
	UserRepo        *repository.UserRepository
	Redis           *redis.Client
}

func NewAchievementService(
	achievementRepo *repository.AchievementRepository,
	userRepo *repository.UserRepository,
	rdb *redis.Client,
) *AchievementService {
	return &AchievementService{
		AchievementRepo: achievementRepo,
		UserRepo:        userRepo,
		Redis:           rdb,
	}
}

// EvaluateOnAward 根据奖励事务前后的计数判断哪些成就“新达成”并幂等授予。
// 授予失败只记日志，绝不影响已提交的 XP 奖励。
func (s *AchievementService) EvaluateOnAward(userID uint, before, after gamification.Counters) []string {
	var newlyGranted []string

	for _, rule := range gamification.Rules() {
		if !rule.NewlyTrue(before, after) {
			continue
		}

		def, err := s.AchievementRepo.FindDefinitionByCode(rule.Code)
		if err != nil {
			logger.Log.Error("achievement definition missing",
				zap.String("code", rule.Code), zap.Error(err))
			continue
		}

		granted, err := s.AchievementRepo.GrantIfNew(userID, def.ID)
		if err != nil {
			logger.Log.Error("achievement grant failed",
				zap.Uint("userID", userID), zap.String("code", rule.Code), zap.Error(err))
			continue
		}
		if granted {
			monitoring.AchievementsGranted.WithLabelValues(rule.Code).Inc()
			newlyGranted = append(newlyGranted, rule.Code)
		}
	}

	return newlyGranted
}

// CountEarned 仪表盘概览用的已解锁数量
func (s *AchievementService) CountEarned(userID uint) (int, error) {
	count, err := s.AchievementRepo.CountGrants(userID)
	return int(count), err
}

type AchievementView struct {
	Code    string     `json:"code"`
	TitleFR string     `json:"titleFr"`
	TitleAR string     `json:"titleAr"`
	TitleEN string     `json:"titleEn"`
	Icon    string     `json:"icon"`
	Color   string     `json:"color"`
	Earned  bool       `json:"earned"`
	EarnedAt *time.Time `json:"earnedAt,omitempty"`
}

type UserAchievements struct {
	TotalXP      int               `json:"totalXp"`
	CurrentLevel int               `json:"currentLevel"`
	NextLevelXP  int               `json:"nextLevelXp"`
	Achievements []AchievementView `json:"achievements"`
}

func (s *AchievementService) GetUserAchievements(userID uint) (*UserAchievements, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	defs, err := s.AchievementRepo.FindDefinitions()
	if err != nil {
		return nil, err
	}

	grants, err := s.AchievementRepo.FindGrantsByUserID(userID)
	if err != nil {
		return nil, err
	}
	grantedAt := make(map[uint]time.Time, len(grants))
	for _, g := range grants {
		grantedAt[g.AchievementID] = g.GrantedAt
	}

	views := make([]AchievementView, len(defs))
	for i, def := range defs {
		view := AchievementView{
			Code:    def.Code,
			TitleFR: def.TitleFR,
			TitleAR: def.TitleAR,
			TitleEN: def.TitleEN,
			Icon:    def.Icon,
			Color:   def.Color,
		}
		if at, ok := grantedAt[def.ID]; ok {
			view.Earned = true
			t := at
			view.EarnedAt = &t
		}
		views[i] = view
	}

	return &UserAchievements{
		TotalXP:      user.XPPoints,
		CurrentLevel: user.CurrentLevel,
		NextLevelXP:  gamification.XPForNextLevel(user.XPPoints),
		Achievements: views,
	}, nil
}

type LeaderboardEntry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	XP    int    `json:"xp"`
	Level int    `json:"level"`
}

// GetLeaderboard 排行榜只是聚合列的快照读，短 TTL 缓存在 Redis
func (s *AchievementService) GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("leaderboard:top:%d", limit)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	users, err := s.UserRepo.FindTopByXP(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = LeaderboardEntry{
			Rank:  i + 1,
			Name:  user.Name,
			XP:    user.XPPoints,
			Level: user.CurrentLevel,
		}
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, leaderboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}

	return entries, nil
}
