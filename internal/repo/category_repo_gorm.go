package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"go-gin-blog/internal/domain"
)

type CategoryRepo struct {
	*GormRepo[domain.Category]
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{GormRepo: NewGormRepo[domain.Category](db, WithDefaultSort(Sort{Column: "name"}))}
}

func (r *CategoryRepo) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	return r.FindOne(ctx, Where("name", strings.TrimSpace(name)))
}
