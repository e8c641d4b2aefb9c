package grid

import "fmt"

// Coord 整数网格坐标
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// C 便捷构造
func C(x, y int) Coord { return Coord{X: x, Y: y} }

func (c Coord) Add(o Coord) Coord { return Coord{X: c.X + o.X, Y: c.Y + o.Y} }
func (c Coord) Sub(o Coord) Coord { return Coord{X: c.X - o.X, Y: c.Y - o.Y} }

// Chebyshev 八邻域下的步数距离
func (c Coord) Chebyshev(o Coord) int {
	dx, dy := abs(c.X-o.X), abs(c.Y-o.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Neighbors 八邻域偏移。顺序固定，寻路的平局裁决依赖这个顺序。
var Neighbors = [8]Coord{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
