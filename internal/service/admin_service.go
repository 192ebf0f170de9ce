package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"go-gin-blog/internal/core/cache"
	"go-gin-blog/internal/core/errs"
	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/repo"
)

const (
	dashboardKey = "admin:dashboard"
	recentLimit  = 5
)

type DashboardStats struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalBlogs       int64 `json:"totalBlogs"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalCategories  int64 `json:"totalCategories"`
}

type RecentActivities struct {
	RecentBlogs []domain.BlogPost `json:"recentBlogs"`
	RecentUsers []domain.User     `json:"recentUsers"`
}

type Dashboard struct {
	Stats            DashboardStats   `json:"stats"`
	RecentActivities RecentActivities `json:"recentActivities"`
}

type AdminUserView struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	BookmarksCount int       `json:"bookmarksCount"`
}

type AdminService struct {
	users *repo.UserRepo
	blogs *repo.BlogRepo
	subs  *repo.SubscriberRepo
	cats  *repo.CategoryRepo

	cache        *cache.Cache // 可为 nil
	dashboardTTL time.Duration
}

func NewAdminService(users *repo.UserRepo, blogs *repo.BlogRepo, subs *repo.SubscriberRepo, cats *repo.CategoryRepo, c *cache.Cache, dashboardTTL time.Duration) *AdminService {
	return &AdminService{users: users, blogs: blogs, subs: subs, cats: cats, cache: c, dashboardTTL: dashboardTTL}
}

// Dashboard 统计 + 最近 5 篇文章 / 5 个普通用户；启用 redis 时短期缓存
func (s *AdminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	if s.dashboardTTL <= 0 {
		return s.loadDashboard(ctx)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, dashboardKey, s.dashboardTTL, s.loadDashboard)
}

func (s *AdminService) loadDashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)
	nonAdmin := repo.Where("role", domain.RoleUser)

	g.Go(func() (err error) {
		d.Stats.TotalUsers, err = s.users.Count(gctx, nonAdmin)
		return
	})
	g.Go(func() (err error) {
		d.Stats.TotalBlogs, err = s.blogs.Count(gctx, repo.Filter{})
		return
	})
	g.Go(func() (err error) {
		d.Stats.TotalSubscribers, err = s.subs.Count(gctx, repo.Filter{})
		return
	})
	g.Go(func() (err error) {
		d.Stats.TotalCategories, err = s.cats.Count(gctx, repo.Filter{})
		return
	})
	g.Go(func() (err error) {
		d.RecentActivities.RecentBlogs, err = s.blogs.FindMany(gctx, repo.Filter{},
			repo.Options{Limit: recentLimit, Populate: []string{repo.PopulateAuthor}})
		return
	})
	g.Go(func() (err error) {
		d.RecentActivities.RecentUsers, err = s.users.FindMany(gctx, nonAdmin, repo.Options{Limit: recentLimit})
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *AdminService) ListUsers(ctx context.Context, page, limit int) (*Page[AdminUserView], error) {
	page, limit = NormalizePage(page, limit)
	users, err := s.users.FindMany(ctx, repo.Filter{}, repo.Options{
		Limit: limit, Skip: Skip(page, limit), Populate: []string{repo.PopulateBookmarks},
	})
	if err != nil {
		return nil, err
	}
	total, err := s.users.Count(ctx, repo.Filter{})
	if err != nil {
		return nil, err
	}
	items := make([]AdminUserView, 0, len(users))
	for _, u := range users {
		items = append(items, AdminUserView{
			ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role,
			CreatedAt: u.CreatedAt, BookmarksCount: len(u.Bookmarks),
		})
	}
	return newPage(items, page, limit, total), nil
}

func (s *AdminService) UpdateUserRole(ctx context.Context, userID, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, errs.Validation("Role must be user or admin")
	}
	u, err := s.users.UpdateByID(ctx, userID, map[string]any{"role": role})
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errs.NotFound(msgUserNotFound)
	}
	s.cache.Invalidate(ctx, dashboardKey)
	return u, nil
}

// DeleteUser 同时删除其收藏；其名下文章保留
func (s *AdminService) DeleteUser(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.DeleteByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errs.NotFound(msgUserNotFound)
	}
	s.cache.Invalidate(ctx, dashboardKey)
	return u, nil
}

func (s *AdminService) ListBlogs(ctx context.Context, page, limit int) (*Page[domain.BlogPost], error) {
	page, limit = NormalizePage(page, limit)
	items, err := s.blogs.FindMany(ctx, repo.Filter{}, repo.Options{
		Limit: limit, Skip: Skip(page, limit), Populate: []string{repo.PopulateAuthor},
	})
	if err != nil {
		return nil, err
	}
	total, err := s.blogs.Count(ctx, repo.Filter{})
	if err != nil {
		return nil, err
	}
	return newPage(items, page, limit, total), nil
}
