package repo

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"go-gin-blog/internal/domain"
)

const PopulateAuthor = "AuthorRef"

// BlogFilter 列表筛选：分类等值、标签任一命中、标题/正文模糊搜索
type BlogFilter struct {
	Category string
	Tags     []string
	Search   string
}

type BlogRepo struct {
	*GormRepo[domain.BlogPost]
}

func NewBlogRepo(db *gorm.DB) *BlogRepo {
	return &BlogRepo{GormRepo: NewGormRepo[domain.BlogPost](db,
		WithPreload("TagRows", func(q *gorm.DB) *gorm.DB { return q.Order("position") }),
		WithPopulate(PopulateAuthor, func(q *gorm.DB) *gorm.DB { return q.Select("id", "name", "email") }),
	)}
}

func (r *BlogRepo) Filter(bf BlogFilter) (Filter, error) {
	f := Filter{}
	if bf.Category != "" {
		f = f.Eq("category", bf.Category)
	}
	if tags := domain.CleanTags(bf.Tags); len(tags) > 0 {
		sub, args, err := taggedIn(tags)
		if err != nil {
			return f, err
		}
		f = f.Raw("id IN ("+sub+")", args...)
	}
	return f.Contains(bf.Search, "title", "content"), nil
}

func (r *BlogRepo) FindWithFilters(ctx context.Context, bf BlogFilter, limit, skip int) ([]domain.BlogPost, error) {
	f, err := r.Filter(bf)
	if err != nil {
		return nil, err
	}
	return r.FindMany(ctx, f, Options{Limit: limit, Skip: skip})
}

func (r *BlogRepo) CountWithFilters(ctx context.Context, bf BlogFilter) (int64, error) {
	f, err := r.Filter(bf)
	if err != nil {
		return 0, err
	}
	return r.Count(ctx, f)
}

// Related 同分类或标签有交集的其他文章，按时间倒序
func (r *BlogRepo) Related(ctx context.Context, post *domain.BlogPost, limit int) ([]domain.BlogPost, error) {
	f := Where("category", post.Category)
	if tags := domain.CleanTags(post.Tags); len(tags) > 0 {
		sub, args, err := taggedIn(tags)
		if err != nil {
			return nil, err
		}
		f = Filter{}.Raw("(category = ? OR id IN ("+sub+"))", append([]any{post.Category}, args...)...)
	}
	return r.FindMany(ctx, f.Ne("id", post.ID), Options{Limit: limit, Populate: []string{PopulateAuthor}})
}

func (r *BlogRepo) FindBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	return r.FindOne(ctx, Where("slug", slug))
}

// UpdatePost 字段合并 + 可选整体替换标签，单篇文章内事务
func (r *BlogRepo) UpdatePost(ctx context.Context, id string, patch map[string]any, tags *[]string) (*domain.BlogPost, error) {
	var out *domain.BlogPost
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txr := r.WithTx(tx)
		cur, err := txr.UpdateByID(ctx, id, patch)
		if err != nil || cur == nil {
			return err
		}
		if tags != nil {
			if err := tx.Where("blog_id = ?", id).Delete(&domain.BlogTag{}).Error; err != nil {
				return errors.Wrap(err, "clear tags")
			}
			if rows := domain.TagRows(id, *tags); len(rows) > 0 {
				if err := tx.Create(&rows).Error; err != nil {
					return errors.Wrap(err, "insert tags")
				}
			}
			if cur, err = txr.FindByID(ctx, id); err != nil {
				return err
			}
		}
		out = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func taggedIn(tags []string) (string, []any, error) {
	sql, args, err := sq.Select("blog_id").From("blog_tags").Where(sq.Eq{"tag": tags}).ToSql()
	if err != nil {
		return "", nil, errors.Wrap(err, "build tag subquery")
	}
	return sql, args, nil
}
