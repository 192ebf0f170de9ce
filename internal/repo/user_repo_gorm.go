package repo

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-gin-blog/internal/domain"
)

const PopulateBookmarks = "BookmarkRows"

type UserRepo struct {
	*GormRepo[domain.User]
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{GormRepo: NewGormRepo[domain.User](db,
		WithPopulate(PopulateBookmarks, func(q *gorm.DB) *gorm.DB { return q.Order("created_at") }),
	)}
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.FindOne(ctx, Where("email", domain.NormalizeEmail(email)))
}

// AddBookmark 集合语义：已存在则忽略
func (r *UserRepo) AddBookmark(ctx context.Context, userID, blogID string) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.UserBookmark{UserID: userID, BlogID: blogID}).Error
	return errors.Wrap(err, "add bookmark")
}

// RemoveBookmark 不存在时不报错
func (r *UserRepo) RemoveBookmark(ctx context.Context, userID, blogID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Delete(&domain.UserBookmark{}).Error
	return errors.Wrap(err, "remove bookmark")
}

func (r *UserRepo) BookmarkIDs(ctx context.Context, userID string) ([]string, error) {
	ids := make([]string, 0)
	err := r.db.WithContext(ctx).Model(&domain.UserBookmark{}).
		Where("user_id = ?", userID).
		Order("created_at").
		Pluck("blog_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "bookmark ids")
	}
	return ids, nil
}

// ResolveAuthors 批量解析作者，一次 IN 查询
func (r *UserRepo) ResolveAuthors(ctx context.Context, ids []string) (map[string]domain.AuthorSummary, error) {
	out := make(map[string]domain.AuthorSummary, len(ids))
	uniq := make([]string, 0, len(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		if id != "" && !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}
	if len(uniq) == 0 {
		return out, nil
	}
	var users []domain.User
	if err := r.db.WithContext(ctx).Select("id", "name", "email").Where("id IN ?", uniq).Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "resolve authors")
	}
	for _, u := range users {
		out[u.ID] = u.Summary()
	}
	return out, nil
}
