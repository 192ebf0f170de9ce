package service

import (
	"context"

	"github.com/pkg/errors"

	"go-gin-blog/internal/core/errs"
	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/repo"
)

const (
	msgAlreadySubscribed = "Email already subscribed to newsletter"
	msgNotSubscribed     = "Email not found in subscribers"
	MsgUnsubscribed      = "Successfully unsubscribed"
)

type NewsletterService struct {
	subs *repo.SubscriberRepo
}

func NewNewsletterService(subs *repo.SubscriberRepo) *NewsletterService {
	return &NewsletterService{subs: subs}
}

func (s *NewsletterService) Subscribe(ctx context.Context, email string) (*domain.Subscriber, error) {
	existing, err := s.subs.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.AlreadyExists(msgAlreadySubscribed)
	}
	sub, err := s.subs.Create(ctx, &domain.Subscriber{Email: email})
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, errs.AlreadyExists(msgAlreadySubscribed)
	}
	return sub, err
}

func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	sub, err := s.subs.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if sub == nil {
		return errs.NotFound(msgNotSubscribed)
	}
	// 并发退订时 DeleteByID 可能返回 nil，结果一致，忽略
	_, err = s.subs.DeleteByID(ctx, sub.ID)
	return err
}

// ListSubscribers 按订阅时间倒序
func (s *NewsletterService) ListSubscribers(ctx context.Context) ([]domain.Subscriber, error) {
	return s.subs.FindMany(ctx, repo.Filter{}, repo.Options{})
}
