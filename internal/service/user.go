package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/hantaozhou/docvault/internal/domain"
	"github.com/hantaozhou/docvault/internal/repository"
)

var (
	ErrDuplicateEmail        = repository.ErrDuplicateUser
	ErrInvalidUserOrPassword = errors.New("unknown user or wrong password")
)

type UserService interface {
	Signup(ctx context.Context, u domain.User) (domain.User, error)
	Signin(ctx context.Context, email string, password string) (domain.User, error)
	FindById(ctx context.Context, uid int64) (domain.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{
		repo: repo,
	}
}

func (svc *userService) Signup(ctx context.Context, u domain.User) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	u.Password = string(hash)
	created, err := svc.repo.Create(ctx, u)
	if err != nil {
		return domain.User{}, err
	}
	created.Password = ""
	return created, nil
}

func (svc *userService) Signin(ctx context.Context, email string, password string) (domain.User, error) {
	u, err := svc.repo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return domain.User{}, ErrInvalidUserOrPassword
	}
	if err != nil {
		return domain.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return domain.User{}, ErrInvalidUserOrPassword
	}
	u.Password = ""
	return u, nil
}

func (svc *userService) FindById(ctx context.Context, uid int64) (domain.User, error) {
	return svc.repo.FindById(ctx, uid)
}
