package movement

import (
	"container/heap"

	"tactica/grid"
)

type openNode struct {
	pos   grid.Coord
	cost  int
	seq   int // 发现顺序，花费相同时先发现者先出队
	index int
}

type openList []*openNode

func (ol openList) Len() int { return len(ol) }
func (ol openList) Less(i, j int) bool {
	if ol[i].cost != ol[j].cost {
		return ol[i].cost < ol[j].cost
	}
	return ol[i].seq < ol[j].seq
}
func (ol openList) Swap(i, j int)       { ol[i], ol[j] = ol[j], ol[i]; ol[i].index = i; ol[j].index = j }
func (ol *openList) Push(x interface{}) { n := x.(*openNode); n.index = len(*ol); *ol = append(*ol, n) }
func (ol *openList) Pop() interface{} {
	old := *ol
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*ol = old[:len(old)-1]
	return n
}

func (p Planner) dijkstra(g *grid.Grid, start grid.Coord, budgetFt int) map[grid.Coord]ReachableCell {
	step := p.stepCost()
	cells := make(map[grid.Coord]ReachableCell)
	best := map[grid.Coord]int{start: 0}

	seq := 0
	ol := &openList{{pos: start}}
	heap.Init(ol)

	for ol.Len() > 0 {
		cur := heap.Pop(ol).(*openNode)
		if cur.cost > best[cur.pos] {
			continue // 过期条目
		}
		for _, d := range grid.Neighbors {
			n := cur.pos.Add(d)
			if !passable(g, n) {
				continue
			}
			c := cur.cost + step
			if c > budgetFt {
				continue
			}
			if b, ok := best[n]; ok && b <= c {
				continue
			}
			best[n] = c
			cells[n] = ReachableCell{To: n, From: cur.pos, CostFt: c}
			seq++
			heap.Push(ol, &openNode{pos: n, cost: c, seq: seq})
		}
	}
	return cells
}
