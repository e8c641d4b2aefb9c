// Package ai 非玩家角色的回合决策：靠近最近的玩家角色，然后结束回合。
package ai

import (
	"go.uber.org/zap"

	"tactica/entity"
	"tactica/grid"
	"tactica/movement"
	"tactica/round"
	"tactica/world"
)

// DefaultTimeout 无事可做时等待多久再结束回合（秒）
const DefaultTimeout = 1.0

// Actors AI 读取的角色视图，由 world.Store 实现
type Actors interface {
	Lookup(ref entity.Ref) (*world.Actor, bool)
	Each(fn func(a *world.Actor))
}

// Controller 每个遭遇一个；只在队列空闲且行动者由 AI 控制时出手，每回合只决策一次
type Controller struct {
	Timeout float64
	Timings round.Timings

	log *zap.SugaredLogger

	// 当前处理中的回合（行动者 + 轮次）
	turn    entity.Ref
	roundNo uint64
	decided bool
	ended   bool
	waited  float64
}

// New 创建控制器；timeout<=0 时使用 DefaultTimeout
func New(timeout float64, log *zap.SugaredLogger) *Controller {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Controller{Timeout: timeout, Timings: round.DefaultTimings, log: log}
}

// Update 在调度器 Tick 之后调用
func (c *Controller) Update(state *round.State, actors Actors, g *grid.Grid, planner movement.Planner, dt float64) {
	if state.IsExecuting() {
		return
	}
	active := state.ActiveEntity
	if active.IsNone() {
		return
	}
	a, ok := actors.Lookup(active)
	if !ok || !a.IsAI() {
		return
	}

	if active != c.turn || state.RoundNum != c.roundNo {
		c.turn, c.roundNo = active, state.RoundNum
		c.decided, c.ended, c.waited = false, false, 0
	}
	if c.ended {
		return
	}

	if !c.decided {
		c.decided = true
		if dest, ok := Approach(a, actors, g, planner); ok {
			c.log.Debugf("ai %s moves %s -> %s", a.Name, a.Pos, dest)
			state.PushBack(c.Timings.MoveFar(active, dest))
			state.PushBack(c.Timings.EndTurn(active))
			c.ended = true
			return
		}
	}

	c.waited += dt
	if c.waited >= c.Timeout {
		c.log.Debugf("ai %s idles, ending turn", a.Name)
		state.PushBack(c.Timings.EndTurn(active))
		c.ended = true
	}
}

// Nearest 距 a 最近（切比雪夫距离）的玩家角色；平局取存储顺序靠前者
func Nearest(a *world.Actor, actors Actors) (*world.Actor, bool) {
	var (
		best     *world.Actor
		bestDist int
	)
	actors.Each(func(o *world.Actor) {
		if o.Ref == a.Ref || o.IsAI() {
			return
		}
		d := a.Pos.Chebyshev(o.Pos)
		if best == nil || d < bestDist {
			best, bestDist = o, d
		}
	})
	return best, best != nil
}

// Approach 选出本回合能到达且离目标最近的空格；无法更近时 ok=false
func Approach(a *world.Actor, actors Actors, g *grid.Grid, planner movement.Planner) (grid.Coord, bool) {
	target, ok := Nearest(a, actors)
	if !ok {
		return grid.Coord{}, false
	}

	var (
		best     movement.ReachableCell
		found    bool
		bestDist = a.Pos.Chebyshev(target.Pos)
	)
	for to, rc := range planner.Reachable(g, a.Pos, a.MovementFt) {
		if cell, ok := g.Get(to); !ok || !cell.Occupant.IsNone() {
			continue
		}
		d := to.Chebyshev(target.Pos)
		if d > bestDist || (d == bestDist && !found) {
			continue
		}
		if found && d == bestDist && !better(rc, best) {
			continue
		}
		best, bestDist, found = rc, d, true
	}
	return best.To, found
}

// better 同距离时：花费更低者优先，再按行优先坐标
func better(x, y movement.ReachableCell) bool {
	if x.CostFt != y.CostFt {
		return x.CostFt < y.CostFt
	}
	if x.To.Y != y.To.Y {
		return x.To.Y < y.To.Y
	}
	return x.To.X < y.To.X
}
