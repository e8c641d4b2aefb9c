package round

import (
	"testing"

	"tactica/entity"
	"tactica/grid"
	"tactica/world"
)

// fixture 一个全开阔网格 + 角色存储 + 调度器，记录所有钩子调用
type fixture struct {
	grid    *grid.Grid
	store   *world.Store
	state   *State
	sched   *Scheduler
	moved   []grid.Coord
	active  []entity.Ref
	dropped []string
	done    []Command
}

func newFixture(t *testing.T, size int) *fixture {
	t.Helper()
	g := grid.New(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			g.At(grid.C(x, y)).Walkable = true
		}
	}
	f := &fixture{grid: g, store: world.NewStore(), state: NewState()}
	f.sched = NewScheduler(f.state, f.store, g, nil)
	f.sched.Hooks = Hooks{
		OnMoved:      func(_ entity.Ref, to grid.Coord) { f.moved = append(f.moved, to) },
		OnTurnActive: func(who entity.Ref) { f.active = append(f.active, who) },
		OnDropped:    func(_ Command, reason string) { f.dropped = append(f.dropped, reason) },
		OnFinished:   func(cmd Command) { f.done = append(f.done, cmd) },
	}
	return f
}

func (f *fixture) spawn(ref entity.Ref, pos grid.Coord, movementFt, speed int) *world.Actor {
	a := &world.Actor{Ref: ref, Name: string(ref), Pos: pos, MovementFt: movementFt}
	if speed > 0 {
		a.Stats = &world.Statblock{Name: string(ref), Speed: speed}
	}
	f.store.Spawn(a)
	f.grid.SetOccupant(pos, ref)
	return a
}

// drain 反复推进直到队列为空，防止死循环设置上限
func (f *fixture) drain(t *testing.T, dt float64) {
	t.Helper()
	for i := 0; f.state.IsExecuting(); i++ {
		if i > 10000 {
			t.Fatal("queue did not drain")
		}
		f.sched.Advance(dt)
	}
}
