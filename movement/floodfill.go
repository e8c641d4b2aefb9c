package movement

import "tactica/grid"

// frame 显式栈帧，等价于递归版本中的一次 move_from 调用
type frame struct {
	pos  grid.Coord
	cost int
	next int // 下一个要检查的邻居下标
}

// floodFill 按 grid.Neighbors 的顺序深度优先展开；某格出现更低花费时覆盖记录并从该格重新展开，
// 花费不更低则剪枝。用栈代替递归，长路径不会撑爆调用栈。
func (p Planner) floodFill(g *grid.Grid, start grid.Coord, budgetFt int) map[grid.Coord]ReachableCell {
	step := p.stepCost()
	cells := make(map[grid.Coord]ReachableCell)
	stack := []frame{{pos: start}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(grid.Neighbors) {
			stack = stack[:len(stack)-1]
			continue
		}
		from, cost := top.pos, top.cost
		n := from.Add(grid.Neighbors[top.next])
		top.next++

		if !passable(g, n) {
			continue
		}
		c := cost + step
		if c > budgetFt {
			continue
		}
		if rc, ok := cells[n]; ok && rc.CostFt <= c {
			continue
		}
		cells[n] = ReachableCell{To: n, From: from, CostFt: c}
		stack = append(stack, frame{pos: n, cost: c})
	}

	// 起点可能被邻居以 2 步的花费写入，遍历结束后移除
	delete(cells, start)
	return cells
}
