// Package grid 固定尺寸的方形网格：每格 blocked / walkable 标记与可选占据者。
// 越界访问一律返回“不存在”，不会 panic。
package grid

import "tactica/entity"

// Cell 单个格子。Blocked 与 Walkable 由建图阶段独立设置，互不排斥；
// 寻路只看 Blocked。
type Cell struct {
	Blocked  bool
	Walkable bool
	Occupant entity.Ref
}

// Grid size × size 的格子数组（行优先）
type Grid struct {
	size  int
	cells []Cell
}

// New 创建全部为零值格子的网格
func New(size int) *Grid {
	if size < 0 {
		size = 0
	}
	return &Grid{size: size, cells: make([]Cell, size*size)}
}

// Size 边长
func (g *Grid) Size() int { return g.size }

// InBounds 坐标是否在网格内
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.size && c.Y < g.size
}

// Get 返回格子副本；越界时 ok=false
func (g *Grid) Get(c Coord) (Cell, bool) {
	if !g.InBounds(c) {
		return Cell{}, false
	}
	return g.cells[c.Y*g.size+c.X], true
}

// At 返回可修改的格子指针；越界时为 nil
func (g *Grid) At(c Coord) *Cell {
	if !g.InBounds(c) {
		return nil
	}
	return &g.cells[c.Y*g.size+c.X]
}

// IsBlocked 越界或未阻挡都返回 false
func (g *Grid) IsBlocked(c Coord) bool {
	cell, ok := g.Get(c)
	return ok && cell.Blocked
}

// IsWalkable 越界或不可行走都返回 false
func (g *Grid) IsWalkable(c Coord) bool {
	cell, ok := g.Get(c)
	return ok && cell.Walkable
}

// SetOccupant 设置占据者，越界时忽略
func (g *Grid) SetOccupant(c Coord, ref entity.Ref) {
	if cell := g.At(c); cell != nil {
		cell.Occupant = ref
	}
}

// ClearOccupant 仅当占据者是 ref 时清空，避免误清别人的占位
func (g *Grid) ClearOccupant(c Coord, ref entity.Ref) {
	if cell := g.At(c); cell != nil && cell.Occupant == ref {
		cell.Occupant = entity.None
	}
}
