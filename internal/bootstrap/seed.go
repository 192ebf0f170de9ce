// Package bootstrap 初始化数据；只由 cmd/admin seed 显式调用，可重复执行
package bootstrap

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-blog/internal/core/config"
	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/repo"
	"go-gin-blog/pkg/utils"
)

type Result struct {
	AdminCreated      bool
	CategoriesCreated int
	PostsCreated      int
}

type Seeder struct {
	users *repo.UserRepo
	blogs *repo.BlogRepo
	cats  *repo.CategoryRepo
	cfg   config.Seed
	log   *zap.Logger
}

func NewSeeder(db *gorm.DB, cfg config.Seed, l *zap.Logger) *Seeder {
	if l == nil {
		l = zap.NewNop()
	}
	return &Seeder{
		users: repo.NewUserRepo(db),
		blogs: repo.NewBlogRepo(db),
		cats:  repo.NewCategoryRepo(db),
		cfg:   cfg,
		log:   l,
	}
}

// Run 三步各自按存在性判断：管理员按邮箱、分类和文章按表是否为空
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	var res Result
	var err error
	if res.AdminCreated, err = s.seedAdmin(ctx); err != nil {
		return res, err
	}
	if res.CategoriesCreated, err = s.seedCategories(ctx); err != nil {
		return res, err
	}
	if s.cfg.SamplePosts {
		if res.PostsCreated, err = s.seedPosts(ctx); err != nil {
			return res, err
		}
	}
	s.log.Info("seed done",
		zap.Bool("admin_created", res.AdminCreated),
		zap.Int("categories", res.CategoriesCreated),
		zap.Int("posts", res.PostsCreated))
	return res, nil
}

func (s *Seeder) seedAdmin(ctx context.Context) (bool, error) {
	u, err := s.users.FindByEmail(ctx, s.cfg.AdminEmail)
	if err != nil || u != nil {
		return false, err
	}
	hash, err := utils.HashPassword(s.cfg.AdminPassword)
	if err != nil {
		return false, errors.Wrap(err, "hash admin password")
	}
	_, err = s.users.Create(ctx, &domain.User{
		Name:         s.cfg.AdminName,
		Email:        s.cfg.AdminEmail,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		return false, errors.Wrap(err, "create admin")
	}
	s.log.Info("admin user created", zap.String("email", domain.NormalizeEmail(s.cfg.AdminEmail)))
	return true, nil
}

var defaultCategories = []domain.Category{
	{Name: "Nutrition", Description: "Healthy eating and nutrition tips"},
	{Name: "Mental Health", Description: "Mindfulness, stress management and mental wellness"},
	{Name: "Exercise", Description: "Workout guides and physical activity"},
	{Name: "Sleep", Description: "Sleep hygiene, rest and recovery"},
	{Name: "Lifestyle", Description: "Everyday wellness habits"},
	{Name: "Preventive Care", Description: "Screenings, checkups and prevention"},
}

func (s *Seeder) seedCategories(ctx context.Context) (int, error) {
	n, err := s.cats.Count(ctx, repo.Filter{})
	if err != nil || n > 0 {
		return 0, err
	}
	for _, c := range defaultCategories {
		if _, err := s.cats.Create(ctx, &c); err != nil {
			return 0, errors.Wrapf(err, "create category %s", c.Name)
		}
	}
	return len(defaultCategories), nil
}

var samplePosts = []domain.BlogPost{
	{
		Title:      "Ten Habits for Better Sleep",
		Category:   "Sleep",
		Tags:       []string{"sleep", "wellness", "rest"},
		CoverImage: "https://images.unsplash.com/photo-1541781774459-bb2af2f05b55?w=800",
		Content: "Consistent sleep starts with a routine.\n\n" +
			"1. **Keep a fixed schedule**, weekends included.\n" +
			"2. **Keep the bedroom cool and dark.**\n" +
			"3. **Put screens away** an hour before bed.\n" +
			"4. **Stop caffeine** by early afternoon.\n",
	},
	{
		Title:      "A Practical Guide to the Mediterranean Diet",
		Category:   "Nutrition",
		Tags:       []string{"nutrition", "diet", "heart health"},
		CoverImage: "https://images.unsplash.com/photo-1490645935967-10de6ba17061?w=800",
		Content: "## The basics\n\n" +
			"Build meals around vegetables, legumes, whole grains and olive oil. " +
			"Fish a few times a week, red meat rarely.\n",
	},
	{
		Title:      "Getting Started with Mindfulness",
		Category:   "Mental Health",
		Tags:       []string{"mindfulness", "stress", "wellness"},
		CoverImage: "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800",
		Content:    "Sit comfortably, breathe, and bring attention back each time it wanders. Five minutes a day is enough to begin.\n",
	},
	{
		Title:      "HIIT for Busy Schedules",
		Category:   "Exercise",
		Tags:       []string{"fitness", "cardio", "workout"},
		CoverImage: "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=800",
		Content:    "Short bursts of hard effort followed by recovery. Start with 20 seconds on, 40 seconds off, for ten rounds.\n",
	},
	{
		Title:      "Building Habits That Last",
		Category:   "Lifestyle",
		Tags:       []string{"habits", "lifestyle", "wellness"},
		CoverImage: "https://images.unsplash.com/photo-1434030216411-0b793f4b4173?w=800",
		Content:    "Make the habit small, attach it to something you already do, and track it.\n",
	},
}

func (s *Seeder) seedPosts(ctx context.Context) (int, error) {
	n, err := s.blogs.Count(ctx, repo.Filter{})
	if err != nil || n > 0 {
		return 0, err
	}
	admin, err := s.users.FindOne(ctx, repo.Where("role", domain.RoleAdmin))
	if err != nil || admin == nil {
		return 0, err
	}
	for _, p := range samplePosts {
		p.AuthorID = admin.ID
		p.Tags = append([]string(nil), p.Tags...)
		if _, err := s.blogs.Create(ctx, &p); err != nil {
			return 0, errors.Wrapf(err, "create post %q", p.Title)
		}
	}
	return len(samplePosts), nil
}
