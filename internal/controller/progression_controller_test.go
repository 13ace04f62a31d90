package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"eduplatform_backend/internal/model"
	"eduplatform_backend/internal/repository"
	"eduplatform_backend/internal/service"
	"eduplatform_backend/internal/util"
	"eduplatform_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var controllerDBCounter int64

type controllerHarness struct {
	db     *gorm.DB
	router *gin.Engine
	user   *model.User
	lesson *model.Lesson
}

func newControllerHarness(t *testing.T) *controllerHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:controller_test_%d?mode=memory&cache=shared", atomic.AddInt64(&controllerDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	grade := model.GradeLevel{NameFR: "Troisième année"}
	require.NoError(t, db.Create(&grade).Error)

	user := model.User{
		Name:         "Nadia",
		Email:        fmt.Sprintf("nadia%d@example.com", controllerDBCounter),
		Password:     "x",
		Role:         model.Student,
		GradeLevelID: grade.ID,
		CurrentLevel: 1,
	}
	require.NoError(t, db.Create(&user).Error)

	subject := model.Subject{GradeLevelID: grade.ID, NameFR: "Histoire", IsPublished: true}
	require.NoError(t, db.Create(&subject).Error)
	lesson := model.Lesson{SubjectID: subject.ID, TitleFR: "La révolution", XPReward: 10, IsPublished: true}
	require.NoError(t, db.Create(&lesson).Error)

	userRepo := repository.NewUserRepository(db)
	contentRepo := repository.NewContentRepository(db)
	progressionRepo := repository.NewProgressionRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)

	achievementService := service.NewAchievementService(achievementRepo, userRepo, nil)
	progressionService := service.NewProgressionService(progressionRepo, contentRepo, userRepo, achievementService)
	progressionController := NewProgressionController(progressionService)

	router := gin.New()
	// 测试里直接注入登录态，绕过 JWT 解析
	router.Use(func(c *gin.Context) {
		c.Set("user", &util.Claims{
			UserID:       user.ID,
			Role:         user.Role,
			Email:        user.Email,
			GradeLevelID: user.GradeLevelID,
		})
	})
	router.POST("/api/lessons/:lessonId/complete", progressionController.CompleteLesson)
	router.GET("/api/progress/summary", progressionController.GetProgressSummary)

	return &controllerHarness{db: db, router: router, user: &user, lesson: &lesson}
}

func (h *controllerHarness) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func TestCompleteLessonEndpoint(t *testing.T) {
	h := newControllerHarness(t)

	w := h.do(http.MethodPost, fmt.Sprintf("/api/lessons/%d/complete", h.lesson.ID), `{"verified":true,"watchDuration":300}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp util.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "completed", data["outcome"])
	assert.EqualValues(t, 10, data["xpEarnedThisCall"])
	assert.EqualValues(t, 10, data["cumulativeXp"])
	assert.Contains(t, data["newAchievements"], "first_lesson")

	var progress model.LessonProgress
	require.NoError(t, h.db.Where("user_id = ? AND lesson_id = ?", h.user.ID, h.lesson.ID).First(&progress).Error)
	assert.Equal(t, 300, progress.WatchDuration)
	assert.True(t, progress.AntiCheatVerified)

	// 重放同一请求必须是无副作用的
	w = h.do(http.MethodPost, fmt.Sprintf("/api/lessons/%d/complete", h.lesson.ID), `{"verified":true,"watchDuration":300}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data = resp.Data.(map[string]interface{})
	assert.Equal(t, "already_completed", data["outcome"])
	assert.EqualValues(t, 0, data["xpEarnedThisCall"])
}

func TestCompleteLessonEndpointEmptyBody(t *testing.T) {
	h := newControllerHarness(t)

	w := h.do(http.MethodPost, fmt.Sprintf("/api/lessons/%d/complete", h.lesson.ID), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCompleteLessonEndpointNotFound(t *testing.T) {
	h := newControllerHarness(t)

	w := h.do(http.MethodPost, "/api/lessons/9999/complete", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompleteLessonEndpointBadID(t *testing.T) {
	h := newControllerHarness(t)

	w := h.do(http.MethodPost, "/api/lessons/abc/complete", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProgressSummaryEndpoint(t *testing.T) {
	h := newControllerHarness(t)

	w := h.do(http.MethodPost, fmt.Sprintf("/api/lessons/%d/complete", h.lesson.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodGet, "/api/progress/summary", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp util.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 1, data["completedLessons"])
	assert.EqualValues(t, 10, data["cumulativeXp"])
	assert.EqualValues(t, 1, data["currentLevel"])
	assert.EqualValues(t, 90, data["xpToNextLevel"])
	assert.EqualValues(t, 1, data["earnedAchievements"])
}
