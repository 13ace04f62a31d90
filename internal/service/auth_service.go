package service

import (
	"errors"
	"time"

	"eduplatform_backend/internal/config"
	"eduplatform_backend/internal/model"
	"eduplatform_backend/internal/repository"
	"eduplatform_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo    *repository.UserRepository
	ContentRepo *repository.ContentRepository
	Cfg         *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, contentRepo *repository.ContentRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:    userRepo,
		ContentRepo: contentRepo,
		Cfg:         cfg,
	}
}

type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	GradeLevelID uint   `json:"gradeLevelId" binding:"required"`
	Language     string `json:"language"`
}

func (s *AuthService) Register(req *RegisterRequest) (*model.User, error) {
	_, err := s.UserRepo.FindByEmail(req.Email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.ContentRepo.FindGradeLevelByID(req.GradeLevelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGradeLevelUnknown
		}
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	language := req.Language
	if language == "" {
		language = "fr"
	}

	now := time.Now()
	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		Password:     string(hashedPassword),
		Role:         model.Student,
		GradeLevelID: req.GradeLevelID,
		Language:     language,
		XPPoints:     0,
		CurrentLevel: 1,
		LastLogin:    now,
		LastSeen:     now,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}
	if user.Disabled {
		return "", nil, util.ErrPermissionDenied
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		return "", nil, err
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
