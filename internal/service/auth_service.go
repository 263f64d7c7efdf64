package service

import (
	"errors"
	"time"

	"taxmaster_backend/internal/config"
	"taxmaster_backend/internal/model"
	"taxmaster_backend/internal/repository"
	"taxmaster_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo  *repository.UserRepository
	StatsRepo *repository.StatsRepository
	Cfg       *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, statsRepo *repository.StatsRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:  userRepo,
		StatsRepo: statsRepo,
		Cfg:       cfg,
	}
}

// Register creates the user with a bcrypt-hashed password, derives the
// avatar initials and provisions the zeroed stats row, then issues a
// session token.
func (s *AuthService) Register(username, email, password string) (*model.User, string, error) {
	taken, err := s.UserRepo.ExistsByUsernameOrEmail(username, email, 0)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", util.ErrDuplicateIdentity
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	user := &model.User{
		Username:  username,
		Email:     email,
		Password:  string(hashedPassword),
		Avatar:    model.AvatarInitials(username),
		JoinDate:  now,
		LastLogin: now,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, "", err
	}

	if _, err := s.StatsRepo.GetOrCreate(user.ID); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", util.ErrInvalidCredential
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredential
	}

	user.LastLogin = time.Now()
	if err := s.UserRepo.Update(user); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
