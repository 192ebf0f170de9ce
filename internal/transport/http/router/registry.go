package router

import (
	"sort"

	"go-gin-blog/internal/transport/http/ez"
)

// Module 业务模块在 /api 下挂载自己的动作
type Module interface{ Mount(ez.EZ) }

// 可选：实现该接口可控制挂载顺序（数值越小越先挂）
// 不实现则默认 100
type prioritizer interface{ Priority() int }

// Registry 模块注册表；每个引擎一份，测试可并行构建
type Registry struct {
	mods []Module
}

func (r *Registry) Register(mods ...Module) { r.mods = append(r.mods, mods...) }

// MountAll 按优先级挂载全部模块
func (r *Registry) MountAll(e ez.EZ) {
	mods := append([]Module(nil), r.mods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.Mount(e)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
