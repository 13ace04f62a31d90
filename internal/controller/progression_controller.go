package controller

import (
	"errors"

	"eduplatform_backend/internal/service"
	"eduplatform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressionController struct {
	ProgressionService *service.ProgressionService
}

func NewProgressionController(progressionService *service.ProgressionService) *ProgressionController {
	return &ProgressionController{ProgressionService: progressionService}
}

type completeLessonRequest struct {
	// 防作弊网关的断言（视频播完/计时器走完）和观看秒数，仅记录
	Verified      bool `json:"verified"`
	WatchDuration int  `json:"watchDuration"`
}

// @Summary 完成课程并领取 XP（幂等）
// @Description 同一课程重复提交只会加一次分，重复调用返回 already_completed
// @Tags 学习进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "课程ID"
// @Param body body completeLessonRequest false "防作弊断言"
// @Success 200 {object} util.Response
// @Router /api/lessons/{lessonId}/complete [post]
func (c *ProgressionController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID := util.MustParseUint(ctx.Param("lessonId"))
	if lessonID == 0 {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	var req completeLessonRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	outcome, err := c.ProgressionService.CompleteLesson(claims.UserID, lessonID, req.Verified, req.WatchDuration)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrLessonNotEligible):
			util.Forbidden(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx, err.Error())
		case errors.Is(err, util.ErrConflict):
			util.Conflict(ctx, "please retry")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, outcome)
}

// @Summary 学习进度概览
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/progress/summary [get]
func (c *ProgressionController) GetProgressSummary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.ProgressionService.GetProgressSummary(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}
