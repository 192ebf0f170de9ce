package repo

import (
	"gorm.io/gorm"

	"go-gin-blog/internal/domain"
)

func Models() []any {
	return []any{
		&domain.User{},
		&domain.UserBookmark{},
		&domain.BlogPost{},
		&domain.BlogTag{},
		&domain.Category{},
		&domain.Subscriber{},
	}
}

func AutoMigrate(db *gorm.DB) error { return db.AutoMigrate(Models()...) }
