package repo

import (
	"reflect"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type condKind int

const (
	condEq condKind = iota
	condNe
	condContains
	condRaw
)

type cond struct {
	kind    condKind
	column  string
	value   any
	columns []string
	sql     string
	args    []any
}

// Filter 声明式查询条件，与具体存储无关；零值表示不过滤
type Filter struct {
	conds []cond
}

// Where 等值条件；value 为切片时按成员关系（IN）匹配
func Where(column string, value any) Filter { return Filter{}.Eq(column, value) }

func (f Filter) with(c cond) Filter {
	conds := make([]cond, 0, len(f.conds)+1)
	conds = append(conds, f.conds...)
	return Filter{conds: append(conds, c)}
}

func (f Filter) Eq(column string, value any) Filter {
	return f.with(cond{kind: condEq, column: column, value: value})
}

func (f Filter) Ne(column string, value any) Filter {
	return f.with(cond{kind: condNe, column: column, value: value})
}

// Contains 大小写不敏感子串匹配，多列之间为 OR；空串忽略
func (f Filter) Contains(term string, columns ...string) Filter {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return f
	}
	return f.with(cond{kind: condContains, value: term, columns: columns})
}

// Raw 由实体仓储组合的原生片段（例如标签子查询）
func (f Filter) Raw(sql string, args ...any) Filter {
	return f.with(cond{kind: condRaw, sql: sql, args: args})
}

func (f Filter) Empty() bool { return len(f.conds) == 0 }

func (f Filter) apply(q *gorm.DB) *gorm.DB {
	for _, c := range f.conds {
		switch c.kind {
		case condEq:
			q = q.Where(clause.Eq{Column: clause.Column{Name: c.column}, Value: normalizeList(c.value)})
		case condNe:
			q = q.Where(clause.Neq{Column: clause.Column{Name: c.column}, Value: normalizeList(c.value)})
		case condContains:
			like := "%" + escapeLike(strings.ToLower(c.value.(string))) + "%"
			parts := make([]string, 0, len(c.columns))
			args := make([]any, 0, len(c.columns))
			for _, col := range c.columns {
				parts = append(parts, "LOWER("+col+") LIKE ? ESCAPE '!'")
				args = append(args, like)
			}
			q = q.Where("("+strings.Join(parts, " OR ")+")", args...)
		case condRaw:
			q = q.Where(c.sql, c.args...)
		}
	}
	return q
}

// clause.Eq 只识别少数切片类型，其余切片统一转成 []any
func normalizeList(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() == reflect.Uint8 {
		return v
	}
	switch v.(type) {
	case []string, []int, []int64, []any:
		return v
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string { return likeEscaper.Replace(s) }
