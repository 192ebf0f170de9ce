package domain

import (
	"time"

	"gorm.io/gorm"

	"go-gin-blog/internal/core/errs"
	"go-gin-blog/pkg/utils"
)

// Subscriber 与 User 无关联，订阅者不必注册
type Subscriber struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	SubscribedOn time.Time `gorm:"autoCreateTime;index" json:"subscribedOn"`
}

func (Subscriber) TableName() string { return "subscribers" }

func (s *Subscriber) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = utils.NewID()
	}
	s.Email = NormalizeEmail(s.Email)
	if s.Email == "" {
		return errs.Validation("Email is required")
	}
	return nil
}
