package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"Vineyard/internal/model"
)

// UserRepository — контракт доступа к пользователям для слоя сервиса.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	// ExistsBy сообщает, есть ли пользователь с таким значением колонки
	// (username, email или role).
	ExistsBy(ctx context.Context, column, value string) (bool, error)
}

var errUnknownColumn = errors.New("unknown user column")

// ErrInvalidRole — роль пользователя вне head/teacher/student.
var ErrInvalidRole = errors.New("invalid user role")

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository создаёт реализацию репозитория для User.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if !model.ValidRole(user.Role) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, user.Role)
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID возвращает gorm.ErrRecordNotFound, если пользователя нет.
func (r *userRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) ExistsBy(ctx context.Context, column, value string) (bool, error) {
	switch column {
	case "username", "email", "role":
	default:
		return false, errUnknownColumn
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where(column+" = ?", value).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
