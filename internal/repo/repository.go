package repo

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicate 唯一约束冲突（预检查之外的并发兜底）
var ErrDuplicate = errors.New("duplicate key")

type Sort struct {
	Column string
	Desc   bool
}

type Options struct {
	Limit    int
	Skip     int
	Sort     []Sort   // 为空时使用仓储默认排序（按时间倒序）
	Populate []string // 需要解析的引用字段（关联名）
}

// Repository 每种实体一份的通用数据访问接口；查不到时返回 (nil, nil)
type Repository[T any] interface {
	Create(ctx context.Context, m *T) (*T, error)
	FindByID(ctx context.Context, id string, populate ...string) (*T, error)
	FindOne(ctx context.Context, f Filter, populate ...string) (*T, error)
	FindMany(ctx context.Context, f Filter, o Options) ([]T, error)
	UpdateByID(ctx context.Context, id string, patch map[string]any) (*T, error)
	DeleteByID(ctx context.Context, id string) (*T, error)
	Count(ctx context.Context, f Filter) (int64, error)
}

type settings struct {
	defaultSort []Sort
	always      []string
	scopes      map[string]func(*gorm.DB) *gorm.DB
}

type Option func(*settings)

func WithDefaultSort(s ...Sort) Option { return func(st *settings) { st.defaultSort = s } }

// WithPopulate 注册可选关联及其查询范围（列裁剪、排序）
func WithPopulate(name string, scope func(*gorm.DB) *gorm.DB) Option {
	return func(st *settings) { st.scopes[name] = scope }
}

// WithPreload 每次查询都加载的关联
func WithPreload(name string, scope func(*gorm.DB) *gorm.DB) Option {
	return func(st *settings) {
		st.scopes[name] = scope
		st.always = append(st.always, name)
	}
}

type GormRepo[T any] struct {
	db *gorm.DB
	settings
}

var _ Repository[struct{}] = (*GormRepo[struct{}])(nil)

func NewGormRepo[T any](db *gorm.DB, opts ...Option) *GormRepo[T] {
	st := settings{
		defaultSort: []Sort{{Column: "created_at", Desc: true}},
		scopes:      map[string]func(*gorm.DB) *gorm.DB{},
	}
	for _, o := range opts {
		o(&st)
	}
	return &GormRepo[T]{db: db, settings: st}
}

// WithTx 复用同一配置，绑定到事务
func (r *GormRepo[T]) WithTx(tx *gorm.DB) *GormRepo[T] {
	return &GormRepo[T]{db: tx, settings: r.settings}
}

func (r *GormRepo[T]) DB() *gorm.DB { return r.db }

func (r *GormRepo[T]) Create(ctx context.Context, m *T) (*T, error) {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, translate(err, "create")
	}
	return m, nil
}

func (r *GormRepo[T]) FindByID(ctx context.Context, id string, populate ...string) (*T, error) {
	return r.FindOne(ctx, Where("id", id), populate...)
}

func (r *GormRepo[T]) FindOne(ctx context.Context, f Filter, populate ...string) (*T, error) {
	var m T
	q := r.populate(f.apply(r.db.WithContext(ctx)), populate)
	err := q.Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find one")
	}
	return &m, nil
}

func (r *GormRepo[T]) FindMany(ctx context.Context, f Filter, o Options) ([]T, error) {
	q := r.populate(f.apply(r.db.WithContext(ctx).Model(new(T))), o.Populate)
	sorts := o.Sort
	if len(sorts) == 0 {
		sorts = r.defaultSort
	}
	for _, s := range sorts {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: s.Column}, Desc: s.Desc})
	}
	if o.Limit > 0 {
		q = q.Limit(o.Limit)
	}
	if o.Skip > 0 {
		q = q.Offset(o.Skip)
	}
	out := make([]T, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "find many")
	}
	return out, nil
}

// UpdateByID 部分字段合并；patch 的 key 为列名
func (r *GormRepo[T]) UpdateByID(ctx context.Context, id string, patch map[string]any) (*T, error) {
	cur, err := r.FindByID(ctx, id)
	if err != nil || cur == nil {
		return nil, err
	}
	if len(patch) > 0 {
		// 用零值模型，避免把已加载的关联一起 upsert
		if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(patch).Error; err != nil {
			return nil, translate(err, "update")
		}
	}
	return r.FindByID(ctx, id)
}

// DeleteByID 硬删除；同时删除记录自身拥有的 has-many 行（标签、收藏），belongs-to 引用不受影响
func (r *GormRepo[T]) DeleteByID(ctx context.Context, id string) (*T, error) {
	cur, err := r.FindByID(ctx, id)
	if err != nil || cur == nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Select(clause.Associations).Delete(cur).Error; err != nil {
		return nil, errors.Wrap(err, "delete")
	}
	return cur, nil
}

func (r *GormRepo[T]) Count(ctx context.Context, f Filter) (int64, error) {
	var n int64
	if err := f.apply(r.db.WithContext(ctx).Model(new(T))).Count(&n).Error; err != nil {
		return 0, errors.Wrap(err, "count")
	}
	return n, nil
}

func (r *GormRepo[T]) populate(q *gorm.DB, extra []string) *gorm.DB {
	seen := map[string]bool{}
	for _, name := range append(append([]string{}, r.always...), extra...) {
		if seen[name] {
			continue
		}
		seen[name] = true
		if scope := r.scopes[name]; scope != nil {
			q = q.Preload(name, scope)
		} else {
			q = q.Preload(name)
		}
	}
	return q
}

func translate(err error, op string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDupKey(err) {
		return errors.Wrap(ErrDuplicate, op)
	}
	return errors.Wrap(err, op)
}

func isDupKey(err error) bool {
	// 不同驱动的报错文本不一致
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
