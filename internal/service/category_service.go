package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"go-gin-blog/internal/core/errs"
	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/repo"
)

const (
	msgCategoryExists   = "Category already exists"
	msgCategoryNotFound = "Category not found"
)

type CategoryInput struct {
	Name        string
	Description string
}

type CategoryPatch struct {
	Name        *string
	Description *string
}

type CategoryService struct {
	cats *repo.CategoryRepo
}

func NewCategoryService(cats *repo.CategoryRepo) *CategoryService {
	return &CategoryService{cats: cats}
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	existing, err := s.cats.FindByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.AlreadyExists(msgCategoryExists)
	}
	c, err := s.cats.Create(ctx, &domain.Category{Name: in.Name, Description: in.Description})
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, errs.AlreadyExists(msgCategoryExists)
	}
	return c, err
}

// List 按名称排序
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.cats.FindMany(ctx, repo.Filter{}, repo.Options{})
}

func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	c, err := s.cats.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errs.NotFound(msgCategoryNotFound)
	}
	return c, nil
}

// Update 改名时与其他分类重名返回 AlreadyExists；已有文章的 category 字段不随之修改
func (s *CategoryService) Update(ctx context.Context, id string, in CategoryPatch) (*domain.Category, error) {
	patch := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, errs.Validation("Category name cannot be empty")
		}
		other, err := s.cats.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, errs.AlreadyExists(msgCategoryExists)
		}
		patch["name"] = name
	}
	if in.Description != nil {
		patch["description"] = strings.TrimSpace(*in.Description)
	}
	c, err := s.cats.UpdateByID(ctx, id, patch)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, errs.AlreadyExists(msgCategoryExists)
	}
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errs.NotFound(msgCategoryNotFound)
	}
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) (*domain.Category, error) {
	c, err := s.cats.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errs.NotFound(msgCategoryNotFound)
	}
	return c, nil
}
