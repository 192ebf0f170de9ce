package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-blog/internal/core/errs"
	"go-gin-blog/internal/domain"
)

func TestBookmarkService_AddIsIdempotent(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	admin := e.newAdmin(t)
	u := e.register(t, "Ann", "ann@example.com")
	p, err := e.blog.CreateBlog(ctx, admin, CreateBlogInput{Title: "T", Content: "c", Category: "Sleep"})
	require.NoError(t, err)

	ids, err := e.bookmark.AddBookmark(ctx, u, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID}, ids)

	ids, err = e.bookmark.AddBookmark(ctx, u, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID}, ids)

	list, err := e.bookmark.GetUserBookmarks(ctx, u)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "T", list[0].Title)
	assert.NotNil(t, list[0].Author)
}

func TestBookmarkService_AddMissingBlog(t *testing.T) {
	e := newTestEnv(t)
	u := e.register(t, "Ann", "ann@example.com")

	_, err := e.bookmark.AddBookmark(context.Background(), u, "missing")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindNotFound))
	assert.Equal(t, "Blog not found", err.Error())
}

func TestBookmarkService_RemoveNotBookmarked(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	admin := e.newAdmin(t)
	u := e.register(t, "Ann", "ann@example.com")
	p, err := e.blog.CreateBlog(ctx, admin, CreateBlogInput{Title: "T", Content: "c", Category: "Sleep"})
	require.NoError(t, err)
	q, err := e.blog.CreateBlog(ctx, admin, CreateBlogInput{Title: "Q", Content: "c", Category: "Sleep"})
	require.NoError(t, err)
	_, err = e.bookmark.AddBookmark(ctx, u, p.ID)
	require.NoError(t, err)

	ids, err := e.bookmark.RemoveBookmark(ctx, u, q.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID}, ids)

	ids, err = e.bookmark.RemoveBookmark(ctx, u, p.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestBookmarkService_SkipsDeletedPosts(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	admin := e.newAdmin(t)
	u := e.register(t, "Ann", "ann@example.com")
	p, err := e.blog.CreateBlog(ctx, admin, CreateBlogInput{Title: "T", Content: "c", Category: "Sleep"})
	require.NoError(t, err)
	_, err = e.bookmark.AddBookmark(ctx, u, p.ID)
	require.NoError(t, err)
	_, err = e.blog.DeleteBlog(ctx, p.ID)
	require.NoError(t, err)

	list, err := e.bookmark.GetUserBookmarks(ctx, u)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBookmarkService_UnknownUser(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.bookmark.GetUserBookmarks(context.Background(), domain.AuthContext{UserID: "ghost"})
	assert.True(t, errs.Is(err, errs.KindNotFound))
}
