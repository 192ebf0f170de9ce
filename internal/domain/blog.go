package domain

import (
	"strings"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"go-gin-blog/internal/core/errs"
	"go-gin-blog/pkg/utils"
)

type BlogPost struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Slug        string    `gorm:"uniqueIndex;size:191" json:"slug"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	ContentHTML string    `gorm:"-" json:"contentHtml,omitempty"`
	CoverImage  string    `gorm:"size:512" json:"coverImage"`
	AuthorID    string    `gorm:"size:36;index;not null" json:"authorId"`
	Category    string    `gorm:"size:100;index;not null" json:"category"`
	Tags        []string  `gorm:"-" json:"tags"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Author 由 AuthorResolver 或 populate("AuthorRef") 填充
	Author    *AuthorSummary `gorm:"-" json:"author"`
	AuthorRef *User          `gorm:"foreignKey:AuthorID" json:"-"`
	TagRows   []BlogTag      `gorm:"foreignKey:BlogID" json:"-"`
}

func (BlogPost) TableName() string { return "blog_posts" }

func (b *BlogPost) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = utils.NewID()
	}
	b.Title = strings.TrimSpace(b.Title)
	b.Category = strings.TrimSpace(b.Category)
	var missing []string
	if b.Title == "" {
		missing = append(missing, "Title is required")
	}
	if strings.TrimSpace(b.Content) == "" {
		missing = append(missing, "Content is required")
	}
	if b.Category == "" {
		missing = append(missing, "Category is required")
	}
	if b.AuthorID == "" {
		missing = append(missing, "Author is required")
	}
	if len(missing) > 0 {
		return errs.Validation(strings.Join(missing, ", "))
	}
	if b.Slug == "" {
		b.Slug = MakeSlug(b.Title, b.ID)
	}
	if b.TagRows == nil {
		b.TagRows = TagRows(b.ID, b.Tags)
	}
	return nil
}

func (b *BlogPost) AfterFind(*gorm.DB) error {
	b.Tags = make([]string, 0, len(b.TagRows))
	for _, t := range b.TagRows {
		b.Tags = append(b.Tags, t.Tag)
	}
	if b.AuthorRef != nil {
		s := b.AuthorRef.Summary()
		b.Author = &s
	}
	return nil
}

// BlogTag 保持标签顺序：(blog_id, position) 为主键
type BlogTag struct {
	BlogID   string `gorm:"primaryKey;size:36"`
	Position int    `gorm:"primaryKey;autoIncrement:false"`
	Tag      string `gorm:"size:64;not null;index"`
}

func (BlogTag) TableName() string { return "blog_tags" }

// CleanTags 去空白、去空串，保留顺序
func CleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func TagRows(blogID string, tags []string) []BlogTag {
	tags = CleanTags(tags)
	rows := make([]BlogTag, 0, len(tags))
	for i, t := range tags {
		rows = append(rows, BlogTag{BlogID: blogID, Position: i, Tag: t})
	}
	return rows
}

// MakeSlug 标题 slug + id 前 8 位，保证唯一
func MakeSlug(title, id string) string {
	s := slug.Make(title)
	if s == "" {
		s = "post"
	}
	if len(id) > 8 {
		id = id[:8]
	}
	return s + "-" + id
}
