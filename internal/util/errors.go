package util

import "errors"

var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrEmailRegistered   = errors.New("该邮箱已被注册")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrLessonNotFound    = errors.New("lesson not found")
	ErrSubjectNotFound   = errors.New("subject not found")
	ErrLessonNotEligible = errors.New("lesson not in your grade level")
	ErrConflict          = errors.New("concurrent update conflict")
	ErrGradeLevelUnknown = errors.New("grade level does not exist")
)
