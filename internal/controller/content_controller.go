package controller

import (
	"errors"

	"eduplatform_backend/internal/service"
	"eduplatform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// @Summary 年级列表
// @Tags 内容目录
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/grade-levels [get]
func (c *ContentController) GetGradeLevels(ctx *gin.Context) {
	grades, err := c.ContentService.GetGradeLevels()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, grades)
}

// @Summary 本年级的科目列表
// @Tags 内容目录
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/subjects [get]
func (c *ContentController) GetSubjects(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	subjects, err := c.ContentService.GetSubjects(claims.GradeLevelID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}

// @Summary 科目下的课程列表（带完成状态）
// @Tags 内容目录
// @Produce json
// @Security ApiKeyAuth
// @Param subjectId path int true "科目ID"
// @Success 200 {object} util.Response
// @Router /api/subjects/{subjectId}/lessons [get]
func (c *ContentController) GetLessons(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	subjectID := util.MustParseUint(ctx.Param("subjectId"))
	if subjectID == 0 {
		util.BadRequest(ctx, "invalid subject id")
		return
	}

	lessons, err := c.ContentService.GetLessons(subjectID, claims)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubjectNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lessons)
}

// @Summary 课程详情，首次打开标记 in_progress
// @Tags 内容目录
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{lessonId} [get]
func (c *ContentController) GetLesson(ctx *gin.Context) {
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

	lesson, err := c.ContentService.GetLesson(lessonID, claims)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrLessonNotEligible):
			util.Forbidden(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}
