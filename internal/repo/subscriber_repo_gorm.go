package repo

import (
	"context"

	"gorm.io/gorm"

	"go-gin-blog/internal/domain"
)

type SubscriberRepo struct {
	*GormRepo[domain.Subscriber]
}

func NewSubscriberRepo(db *gorm.DB) *SubscriberRepo {
	return &SubscriberRepo{GormRepo: NewGormRepo[domain.Subscriber](db,
		WithDefaultSort(Sort{Column: "subscribed_on", Desc: true}),
	)}
}

func (r *SubscriberRepo) FindByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	return r.FindOne(ctx, Where("email", domain.NormalizeEmail(email)))
}
