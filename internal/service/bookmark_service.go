package service

import (
	"context"

	"go-gin-blog/internal/core/errs"
	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/repo"
)

type BookmarkService struct {
	users *repo.UserRepo
	blogs *repo.BlogRepo
}

func NewBookmarkService(users *repo.UserRepo, blogs *repo.BlogRepo) *BookmarkService {
	return &BookmarkService{users: users, blogs: blogs}
}

// AddBookmark 集合语义，重复收藏不报错；返回当前收藏 id 列表
func (s *BookmarkService) AddBookmark(ctx context.Context, actor domain.AuthContext, blogID string) ([]string, error) {
	if err := s.ensureUser(ctx, actor.UserID); err != nil {
		return nil, err
	}
	n, err := s.blogs.Count(ctx, repo.Where("id", blogID))
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errs.NotFound(msgBlogNotFound)
	}
	if err := s.users.AddBookmark(ctx, actor.UserID, blogID); err != nil {
		return nil, err
	}
	return s.users.BookmarkIDs(ctx, actor.UserID)
}

// RemoveBookmark 未收藏时为空操作
func (s *BookmarkService) RemoveBookmark(ctx context.Context, actor domain.AuthContext, blogID string) ([]string, error) {
	if err := s.ensureUser(ctx, actor.UserID); err != nil {
		return nil, err
	}
	if err := s.users.RemoveBookmark(ctx, actor.UserID, blogID); err != nil {
		return nil, err
	}
	return s.users.BookmarkIDs(ctx, actor.UserID)
}

// GetUserBookmarks 按收藏顺序返回文章；已删除的文章跳过
func (s *BookmarkService) GetUserBookmarks(ctx context.Context, actor domain.AuthContext) ([]domain.BlogPost, error) {
	if err := s.ensureUser(ctx, actor.UserID); err != nil {
		return nil, err
	}
	ids, err := s.users.BookmarkIDs(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.BlogPost{}, nil
	}
	posts, err := s.blogs.FindMany(ctx, repo.Where("id", ids), repo.Options{Populate: []string{repo.PopulateAuthor}})
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.BlogPost, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	out := make([]domain.BlogPost, 0, len(posts))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *BookmarkService) ensureUser(ctx context.Context, id string) error {
	n, err := s.users.Count(ctx, repo.Where("id", id))
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.NotFound(msgUserNotFound)
	}
	return nil
}
