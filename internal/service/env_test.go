package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-gin-blog/internal/core/auth"
	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/repo"
)

type testEnv struct {
	db    *gorm.DB
	users *repo.UserRepo
	blogs *repo.BlogRepo
	cats  *repo.CategoryRepo
	subs  *repo.SubscriberRepo
	jwt   *auth.JWTer

	auth       *AuthService
	blog       *BlogService
	bookmark   *BookmarkService
	category   *CategoryService
	newsletter *NewsletterService
	admin      *AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repo.AutoMigrate(db))

	e := &testEnv{
		db:    db,
		users: repo.NewUserRepo(db),
		blogs: repo.NewBlogRepo(db),
		cats:  repo.NewCategoryRepo(db),
		subs:  repo.NewSubscriberRepo(db),
		jwt:   auth.NewJWTer("test-secret", "test", time.Hour),
	}
	e.auth = NewAuthService(e.users, e.jwt)
	e.blog = NewBlogService(e.blogs, e.users)
	e.bookmark = NewBookmarkService(e.users, e.blogs)
	e.category = NewCategoryService(e.cats)
	e.newsletter = NewNewsletterService(e.subs)
	e.admin = NewAdminService(e.users, e.blogs, e.subs, e.cats, nil, 0)
	return e
}

// register 注册普通用户并返回其 AuthContext
func (e *testEnv) register(t *testing.T, name, email string) domain.AuthContext {
	t.Helper()
	res, err := e.auth.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: "secret1"})
	require.NoError(t, err)
	return domain.AuthContext{UserID: res.User.ID, Email: res.User.Email, Role: res.User.Role}
}

func (e *testEnv) newAdmin(t *testing.T) domain.AuthContext {
	t.Helper()
	a := e.register(t, "Admin", "admin@example.com")
	_, err := e.admin.UpdateUserRole(context.Background(), a.UserID, domain.RoleAdmin)
	require.NoError(t, err)
	a.Role = domain.RoleAdmin
	return a
}
