package service

import (
	"errors"

	"taxmaster_backend/internal/model"
	"taxmaster_backend/internal/repository"
	"taxmaster_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// UpdateProfile changes username and/or email. The avatar initials
// follow the username.
func (s *UserService) UpdateProfile(userID uint, username, email string) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if username == "" {
		username = user.Username
	}
	if email == "" {
		email = user.Email
	}

	if username != user.Username || email != user.Email {
		taken, err := s.UserRepo.ExistsByUsernameOrEmail(username, email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, util.ErrDuplicateIdentity
		}
	}

	user.Username = username
	user.Email = email
	user.Avatar = model.AvatarInitials(username)

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
