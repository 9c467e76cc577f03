package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"Vineyard/internal/model"
	"Vineyard/internal/repo"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrHeadExists     = errors.New("department head user already exists")
	ErrUsernameTaken  = errors.New("username already taken")
	ErrEmailTaken     = errors.New("email already taken")
	ErrInvalidRequest = errors.New("invalid request")
)

// UserService — бизнес-логика пользователей.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// Me возвращает пользователя по ID из токена.
func (s *UserService) Me(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// CanCreateHead сообщает, можно ли ещё создать руководителя кафедры.
func (s *UserService) CanCreateHead(ctx context.Context) (bool, error) {
	exists, err := s.repo.ExistsBy(ctx, "role", model.RoleHead)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// HeadUserInput — данные регистрации руководителя.
type HeadUserInput struct {
	Username string
	Email    string
	Password string
}

func (in HeadUserInput) validate() error {
	if in.Username == "" || len(in.Username) > 25 || strings.TrimSpace(in.Username) != in.Username {
		return fmt.Errorf("%w: username must be 1..25 characters", ErrInvalidRequest)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: invalid email", ErrInvalidRequest)
	}
	if len(in.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidRequest)
	}
	return nil
}

// RegisterHeadUser создаёт единственного пользователя с ролью head.
func (s *UserService) RegisterHeadUser(ctx context.Context, in HeadUserInput) (*model.User, error) {
	can, err := s.CanCreateHead(ctx)
	if err != nil {
		return nil, err
	}
	if !can {
		return nil, ErrHeadExists
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if taken, err := s.repo.ExistsBy(ctx, "username", in.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}
	if taken, err := s.repo.ExistsBy(ctx, "email", in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.repo.CreateUser(ctx, &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         model.RoleHead,
	})
}
