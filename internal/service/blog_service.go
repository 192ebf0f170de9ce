package service

import (
	"context"
	"strings"

	"go-gin-blog/internal/core/errs"
	"go-gin-blog/internal/core/markdown"
	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/repo"
)

const (
	msgBlogNotFound = "Blog not found"
	relatedLimit    = 5
)

// AuthorResolver 批量解析作者；缺失的 id 不出现在结果里
type AuthorResolver interface {
	ResolveAuthors(ctx context.Context, ids []string) (map[string]domain.AuthorSummary, error)
}

type CreateBlogInput struct {
	Title      string
	Content    string
	CoverImage string
	Category   string
	Tags       []string
}

// UpdateBlogInput nil 字段保持不变
type UpdateBlogInput struct {
	Title      *string
	Content    *string
	CoverImage *string
	Category   *string
	Tags       *[]string
}

type BlogDetail struct {
	Blog         *domain.BlogPost  `json:"blog"`
	RelatedBlogs []domain.BlogPost `json:"relatedBlogs"`
}

type BlogService struct {
	blogs   *repo.BlogRepo
	authors AuthorResolver
}

func NewBlogService(blogs *repo.BlogRepo, authors AuthorResolver) *BlogService {
	return &BlogService{blogs: blogs, authors: authors}
}

func (s *BlogService) CreateBlog(ctx context.Context, actor domain.AuthContext, in CreateBlogInput) (*domain.BlogPost, error) {
	tags := domain.CleanTags(in.Tags)
	p, err := s.blogs.Create(ctx, &domain.BlogPost{
		Title:      in.Title,
		Content:    in.Content,
		CoverImage: strings.TrimSpace(in.CoverImage),
		Category:   in.Category,
		Tags:       tags,
		AuthorID:   actor.UserID,
	})
	if err != nil {
		return nil, err
	}
	if err := s.attachAuthors(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *BlogService) GetAllBlogs(ctx context.Context, f repo.BlogFilter, page, limit int) (*Page[domain.BlogPost], error) {
	page, limit = NormalizePage(page, limit)
	items, err := s.blogs.FindWithFilters(ctx, f, limit, Skip(page, limit))
	if err != nil {
		return nil, err
	}
	total, err := s.blogs.CountWithFilters(ctx, f)
	if err != nil {
		return nil, err
	}
	ptrs := make([]*domain.BlogPost, len(items))
	for i := range items {
		ptrs[i] = &items[i]
	}
	if err := s.attachAuthors(ctx, ptrs...); err != nil {
		return nil, err
	}
	return newPage(items, page, limit, total), nil
}

func (s *BlogService) GetBlogByID(ctx context.Context, id string) (*BlogDetail, error) {
	p, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, p)
}

func (s *BlogService) GetBlogBySlug(ctx context.Context, slug string) (*BlogDetail, error) {
	p, err := s.blogs.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, p)
}

func (s *BlogService) detail(ctx context.Context, p *domain.BlogPost) (*BlogDetail, error) {
	if p == nil {
		return nil, errs.NotFound(msgBlogNotFound)
	}
	if err := s.attachAuthors(ctx, p); err != nil {
		return nil, err
	}
	p.ContentHTML = markdown.Render(p.Content)
	related, err := s.blogs.Related(ctx, p, relatedLimit)
	if err != nil {
		return nil, err
	}
	return &BlogDetail{Blog: p, RelatedBlogs: related}, nil
}

// UpdateBlog 部分字段合并；slug 创建后保持不变
func (s *BlogService) UpdateBlog(ctx context.Context, id string, in UpdateBlogInput) (*domain.BlogPost, error) {
	patch := map[string]any{}
	var missing []string
	set := func(col, field string, v *string) {
		if v == nil {
			return
		}
		t := strings.TrimSpace(*v)
		if t == "" && col != "cover_image" {
			missing = append(missing, field+" cannot be empty")
			return
		}
		patch[col] = t
	}
	set("title", "Title", in.Title)
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			missing = append(missing, "Content cannot be empty")
		} else {
			patch["content"] = *in.Content
		}
	}
	set("cover_image", "Cover image", in.CoverImage)
	set("category", "Category", in.Category)
	if len(missing) > 0 {
		return nil, errs.Validation(strings.Join(missing, ", "))
	}

	p, err := s.blogs.UpdatePost(ctx, id, patch, in.Tags)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errs.NotFound(msgBlogNotFound)
	}
	if err := s.attachAuthors(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *BlogService) DeleteBlog(ctx context.Context, id string) (*domain.BlogPost, error) {
	p, err := s.blogs.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errs.NotFound(msgBlogNotFound)
	}
	return p, nil
}

func (s *BlogService) GetBlogsByCategory(ctx context.Context, category string, page, limit int) (*Page[domain.BlogPost], error) {
	return s.GetAllBlogs(ctx, repo.BlogFilter{Category: strings.TrimSpace(category)}, page, limit)
}

func (s *BlogService) SearchBlogs(ctx context.Context, q string, page, limit int) (*Page[domain.BlogPost], error) {
	if strings.TrimSpace(q) == "" {
		return nil, errs.Validation("Search query is required")
	}
	return s.GetAllBlogs(ctx, repo.BlogFilter{Search: q}, page, limit)
}

// attachAuthors 一次批量查询填充 author；作者已删除时为 null
func (s *BlogService) attachAuthors(ctx context.Context, posts ...*domain.BlogPost) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.AuthorID)
	}
	m, err := s.authors.ResolveAuthors(ctx, ids)
	if err != nil {
		return err
	}
	for _, p := range posts {
		if a, ok := m[p.AuthorID]; ok {
			p.Author = &a
		} else {
			p.Author = nil
		}
	}
	return nil
}
