package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"go-gin-blog/internal/core/errs"
	"go-gin-blog/pkg/utils"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

func ValidRole(r string) bool { return r == RoleUser || r == RoleAdmin }

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:64;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Role         string    `gorm:"size:16;not null;default:user;index" json:"role"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// 收藏仅按 id 引用；Bookmarks 在预加载 BookmarkRows 后填充
	BookmarkRows []UserBookmark `gorm:"foreignKey:UserID" json:"-"`
	Bookmarks    []string       `gorm:"-" json:"bookmarks,omitempty"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = utils.NewID()
	}
	u.Name = strings.TrimSpace(u.Name)
	u.Email = NormalizeEmail(u.Email)
	if u.Role == "" {
		u.Role = RoleUser
	}
	var missing []string
	if u.Name == "" {
		missing = append(missing, "Name is required")
	}
	if u.Email == "" {
		missing = append(missing, "Email is required")
	}
	if u.PasswordHash == "" {
		missing = append(missing, "Password is required")
	}
	if !ValidRole(u.Role) {
		missing = append(missing, "Role must be user or admin")
	}
	if len(missing) > 0 {
		return errs.Validation(strings.Join(missing, ", "))
	}
	return nil
}

func (u *User) AfterFind(*gorm.DB) error {
	if u.BookmarkRows != nil {
		u.Bookmarks = make([]string, 0, len(u.BookmarkRows))
		for _, b := range u.BookmarkRows {
			u.Bookmarks = append(u.Bookmarks, b.BlogID)
		}
	}
	return nil
}

func (u *User) Summary() AuthorSummary { return AuthorSummary{Name: u.Name, Email: u.Email} }

// UserBookmark (user_id, blog_id) 联合主键，天然集合语义
type UserBookmark struct {
	UserID    string    `gorm:"primaryKey;size:36"`
	BlogID    string    `gorm:"primaryKey;size:36;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (UserBookmark) TableName() string { return "user_bookmarks" }

// AuthorSummary 文章上反规范化的作者信息
type AuthorSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NormalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
