package service

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"go-gin-blog/internal/core/auth"
	"go-gin-blog/internal/core/errs"
	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/repo"
	"go-gin-blog/pkg/utils"
)

const (
	msgUserExists         = "User already exists with this email"
	msgInvalidCredentials = "Invalid email or password"
	msgUserNotFound       = "User not found"
	msgPasswordTooLong    = "Password must be at most 72 bytes"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Profile struct {
	UserView
	Bookmarks []string  `json:"bookmarks"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResult struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}

type AuthService struct {
	users *repo.UserRepo
	jwt   *auth.JWTer
}

func NewAuthService(users *repo.UserRepo, jwt *auth.JWTer) *AuthService {
	return &AuthService{users: users, jwt: jwt}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.AlreadyExists(msgUserExists)
	}

	hash, err := utils.HashPassword(in.Password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return nil, errs.Validation(msgPasswordTooLong)
	}
	if err != nil {
		return nil, errs.Internal("hash password failed", err)
	}
	u, err := s.users.Create(ctx, &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	})
	if errors.Is(err, repo.ErrDuplicate) {
		// 并发注册：预检查之后被抢先
		return nil, errs.AlreadyExists(msgUserExists)
	}
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

// Login 用户不存在与密码错误返回同一个错误
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, errs.InvalidCredentials(msgInvalidCredentials)
	}
	return s.issue(u)
}

// Me 当前用户资料（含收藏 id）
func (s *AuthService) Me(ctx context.Context, actor domain.AuthContext) (*Profile, error) {
	u, err := s.users.FindByID(ctx, actor.UserID, repo.PopulateBookmarks)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errs.NotFound(msgUserNotFound)
	}
	p := &Profile{UserView: viewOf(u), Bookmarks: u.Bookmarks, CreatedAt: u.CreatedAt}
	if p.Bookmarks == nil {
		p.Bookmarks = []string{}
	}
	return p, nil
}

func (s *AuthService) issue(u *domain.User) (*AuthResult, error) {
	tok, err := s.jwt.Issue(domain.AuthContext{UserID: u.ID, Email: u.Email, Role: u.Role})
	if err != nil {
		return nil, errs.Internal("issue token failed", err)
	}
	return &AuthResult{
		User:  viewOf(u),
		Token: tok,
	}, nil
}

func viewOf(u *domain.User) UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
