package repository

import (
	"context"
	"time"

	"github.com/hantaozhou/docvault/internal/domain"
	"github.com/hantaozhou/docvault/internal/repository/dao"
)

var (
	ErrDuplicateUser = dao.ErrDuplicateEmail
	ErrUserNotFound  = dao.ErrRecordNotFound
)

type UserRepository interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindById(ctx context.Context, uid int64) (domain.User, error)
}

type userRepository struct {
	dao dao.UserDAO
}

func NewUserRepository(dao dao.UserDAO) UserRepository {
	return &userRepository{
		dao: dao,
	}
}

func (repo *userRepository) Create(ctx context.Context, u domain.User) (domain.User, error) {
	entity, err := repo.dao.Insert(ctx, repo.toEntity(u))
	if err != nil {
		return domain.User{}, err
	}
	return repo.toDomain(entity), nil
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	entity, err := repo.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}
	return repo.toDomain(entity), nil
}

func (repo *userRepository) FindById(ctx context.Context, uid int64) (domain.User, error) {
	entity, err := repo.dao.FindById(ctx, uid)
	if err != nil {
		return domain.User{}, err
	}
	return repo.toDomain(entity), nil
}

func (repo *userRepository) toEntity(u domain.User) dao.User {
	return dao.User{
		Id:       u.Id,
		Email:    u.Email,
		Password: u.Password,
	}
}

func (repo *userRepository) toDomain(u dao.User) domain.User {
	return domain.User{
		Id:       u.Id,
		Email:    u.Email,
		Password: u.Password,
		Ctime:    time.UnixMilli(u.Ctime),
	}
}
