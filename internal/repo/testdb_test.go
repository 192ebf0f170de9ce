package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-gin-blog/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
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

	require.NoError(t, AutoMigrate(db))
	return db
}

func mustUser(t *testing.T, r *UserRepo, name, email, role string) *domain.User {
	t.Helper()
	u, err := r.Create(context.Background(), &domain.User{Name: name, Email: email, PasswordHash: "x", Role: role})
	require.NoError(t, err)
	return u
}

func mustPost(t *testing.T, r *BlogRepo, p domain.BlogPost, at time.Time) *domain.BlogPost {
	t.Helper()
	p.CreatedAt = at
	out, err := r.Create(context.Background(), &p)
	require.NoError(t, err)
	return out
}
