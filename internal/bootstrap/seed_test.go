package bootstrap

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-gin-blog/internal/core/config"
	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/repo"
	"go-gin-blog/pkg/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:seed_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repo.AutoMigrate(db))
	return db
}

var seedCfg = config.Seed{
	AdminName:     "Admin User",
	AdminEmail:    "Admin@HealthBlog.com",
	AdminPassword: "admin123",
	SamplePosts:   true,
}

func TestSeeder_RunIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	s := NewSeeder(db, seedCfg, nil)

	first, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{AdminCreated: true, CategoriesCreated: 6, PostsCreated: 5}, first)

	second, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{}, second)

	users := repo.NewUserRepo(db)
	admin, err := users.FindByEmail(context.Background(), "admin@healthblog.com")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.True(t, utils.CheckPassword("admin123", admin.PasswordHash))

	blogs := repo.NewBlogRepo(db)
	posts, err := blogs.FindMany(context.Background(), repo.Filter{}, repo.Options{})
	require.NoError(t, err)
	require.Len(t, posts, 5)
	for _, p := range posts {
		assert.Equal(t, admin.ID, p.AuthorID)
		assert.NotEmpty(t, p.Tags)
	}
}

func TestSeeder_SkipsPostsWhenDisabled(t *testing.T) {
	db := setupTestDB(t)
	cfg := seedCfg
	cfg.SamplePosts = false

	res, err := NewSeeder(db, cfg, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.PostsCreated)
	assert.Equal(t, 6, res.CategoriesCreated)
}
