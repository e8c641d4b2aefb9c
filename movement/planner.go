// Package movement 基于移动预算的可达格计算与路径重建。
// 纯函数：不持有共享状态，查询期间把网格视为只读。
package movement

import (
	"fmt"
	"strings"

	"tactica/grid"
)

// StepCostFt 每一步（正交或斜向）的统一花费，单位英尺
const StepCostFt = 5

// ReachableCell 可达格记录：To 由 From 以累计花费 CostFt 到达
type ReachableCell struct {
	To     grid.Coord `json:"to"`
	From   grid.Coord `json:"from"`
	CostFt int        `json:"cost_ft"`
}

// Strategy 可达格的搜索方式
type Strategy int

const (
	// FloodFill 深度优先的单调松弛，发现更便宜的路线时重新展开
	FloodFill Strategy = iota
	// Dijkstra 优先队列；花费图相同，平局时 From 可能不同
	Dijkstra
)

func (s Strategy) String() string {
	switch s {
	case FloodFill:
		return "floodfill"
	case Dijkstra:
		return "dijkstra"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy 解析配置中的名字，空串为 FloodFill
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "floodfill", "flood_fill":
		return FloodFill, nil
	case "dijkstra":
		return Dijkstra, nil
	default:
		return FloodFill, fmt.Errorf("movement: unknown planner strategy %q", name)
	}
}

// Planner 寻路参数
type Planner struct {
	StepCostFt int
	Strategy   Strategy
}

// Default 5 尺一步的洪泛规划器
var Default = Planner{StepCostFt: StepCostFt, Strategy: FloodFill}

func (p Planner) stepCost() int {
	if p.StepCostFt <= 0 {
		return StepCostFt
	}
	return p.StepCostFt
}

// Reachable 返回从 start 出发在 budgetFt 内可达的所有格子（不含 start）
func (p Planner) Reachable(g *grid.Grid, start grid.Coord, budgetFt int) map[grid.Coord]ReachableCell {
	if budgetFt < 0 {
		return map[grid.Coord]ReachableCell{}
	}
	if p.Strategy == Dijkstra {
		return p.dijkstra(g, start, budgetFt)
	}
	return p.floodFill(g, start, budgetFt)
}

// Path 从 start 到 dest 的路径，按行走顺序排列（第一个元素是第一步）。
// 不可达、被阻挡、超出预算或 dest == start 时返回 nil，这不是错误。
func (p Planner) Path(g *grid.Grid, start grid.Coord, budgetFt int, dest grid.Coord) []ReachableCell {
	if dest == start {
		return nil
	}
	return Walk(p.Reachable(g, start, budgetFt), start, dest)
}

// Reachable 使用默认规划器
func Reachable(g *grid.Grid, start grid.Coord, budgetFt int) map[grid.Coord]ReachableCell {
	return Default.Reachable(g, start, budgetFt)
}

// Path 使用默认规划器
func Path(g *grid.Grid, start grid.Coord, budgetFt int, dest grid.Coord) []ReachableCell {
	return Default.Path(g, start, budgetFt, dest)
}

// Walk 沿 From 指针从 dest 回溯到 start，再翻转成行走顺序
func Walk(cells map[grid.Coord]ReachableCell, start, dest grid.Coord) []ReachableCell {
	if dest == start {
		return nil
	}
	rc, ok := cells[dest]
	if !ok {
		return nil
	}
	var chain []ReachableCell
	for i := 0; i <= len(cells); i++ {
		chain = append(chain, rc)
		if rc.From == start {
			for l, r := 0, len(chain)-1; l < r; l, r = l+1, r-1 {
				chain[l], chain[r] = chain[r], chain[l]
			}
			return chain
		}
		if rc, ok = cells[rc.From]; !ok {
			return nil
		}
	}
	// From 指针成环，说明表被外部改坏了
	return nil
}

// passable 越界与阻挡格都不可通过
func passable(g *grid.Grid, c grid.Coord) bool {
	return g.InBounds(c) && !g.IsBlocked(c)
}
