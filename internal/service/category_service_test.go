package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-blog/internal/core/errs"
)

func TestCategoryService_CRUD(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	c, err := e.category.Create(ctx, CategoryInput{Name: "Sleep", Description: "rest"})
	require.NoError(t, err)

	_, err = e.category.Create(ctx, CategoryInput{Name: " Sleep "})
	assert.True(t, errs.Is(err, errs.KindAlreadyExists))
	assert.Equal(t, "Category already exists", err.Error())

	_, err = e.category.Create(ctx, CategoryInput{Name: "Exercise"})
	require.NoError(t, err)

	list, err := e.category.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Exercise", list[0].Name)

	got, err := e.category.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "rest", got.Description)

	desc := "better rest"
	upd, err := e.category.Update(ctx, c.ID, CategoryPatch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "better rest", upd.Description)
	assert.Equal(t, "Sleep", upd.Name)

	// 与自身同名不算冲突
	same := "Sleep"
	_, err = e.category.Update(ctx, c.ID, CategoryPatch{Name: &same})
	require.NoError(t, err)

	taken := "Exercise"
	_, err = e.category.Update(ctx, c.ID, CategoryPatch{Name: &taken})
	assert.True(t, errs.Is(err, errs.KindAlreadyExists))

	_, err = e.category.Delete(ctx, c.ID)
	require.NoError(t, err)
	_, err = e.category.Get(ctx, c.ID)
	assert.True(t, errs.Is(err, errs.KindNotFound))
	assert.Equal(t, "Category not found", err.Error())
}

func TestCategoryService_MissingID(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	name := "X"

	_, err := e.category.Update(ctx, "missing", CategoryPatch{Name: &name})
	assert.True(t, errs.Is(err, errs.KindNotFound))
	_, err = e.category.Delete(ctx, "missing")
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestCategoryService_BlankName(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.category.Create(context.Background(), CategoryInput{Name: "  "})
	assert.True(t, errs.Is(err, errs.KindValidation))
}
