package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/repository"
)

// usernamePattern 字母、数字及 @ . + - _
var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// maxPasswordBytes bcrypt 只接受 72 字节以内的密码
const maxPasswordBytes = 72

// SignupInput 注册表单
type SignupInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

type AccountService interface {
	Signup(ctx context.Context, in SignupInput) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

type accountService struct {
	userRepo repository.UserRepository
	cost     int
}

func NewAccountService(userRepo repository.UserRepository) AccountService {
	return &accountService{userRepo: userRepo, cost: bcrypt.DefaultCost}
}

func (s *accountService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	username := strings.TrimSpace(in.Username)
	switch {
	case username == "":
		return nil, fieldError("username", "This field is required.")
	case !usernamePattern.MatchString(username):
		return nil, fieldError("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	case len(in.Password) > maxPasswordBytes:
		return nil, fieldError("password", "Ensure this value has at most 72 bytes.")
	}
	taken, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, usernameTaken()
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, fieldError("password", "Ensure this value has at most 72 bytes.")
	}
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Username:     username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, usernameTaken()
		}
		return nil, err
	}
	return u, nil
}

func usernameTaken() error {
	return &FieldError{Field: "username", Message: "A user with that username already exists.", Err: ErrUsernameTaken}
}

func (s *accountService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *accountService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *accountService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

// HashPassword 供种子数据与测试使用
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash), err
}
