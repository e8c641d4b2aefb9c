package round

import (
	"go.uber.org/zap"

	"tactica/entity"
	"tactica/grid"
	"tactica/movement"
	"tactica/world"
)

// 命令被跳过的原因
const (
	ReasonMissingEntity = "missing entity"
	ReasonNoMovement    = "insufficient movement"
	ReasonHalted        = "halted"
	ReasonUnknownKind   = "unknown kind"
)

// Actors 调度器所需的角色存储接口，由 world.Store 实现
type Actors interface {
	Lookup(ref entity.Ref) (*world.Actor, bool)
	Refs() []entity.Ref
}

// Hooks 状态变化通知，全部可选，在 Tick 协程内同步调用
type Hooks struct {
	OnTurnActive func(who entity.Ref)
	OnRoundEnd   func(roundNum uint64)
	OnMoved      func(who entity.Ref, to grid.Coord)
	OnFinished   func(cmd Command)
	OnDropped    func(cmd Command, reason string)
}

// Scheduler 驱动队首命令：推进计时、按进度更新、到时后提交终态效果
type Scheduler struct {
	State   *State
	Actors  Actors
	Grid    *grid.Grid
	Planner movement.Planner
	Timings Timings
	Hooks   Hooks

	log *zap.SugaredLogger
}

// NewScheduler 创建调度器；log 为 nil 时不输出日志
func NewScheduler(state *State, actors Actors, g *grid.Grid, log *zap.SugaredLogger) *Scheduler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Scheduler{
		State:   state,
		Actors:  actors,
		Grid:    g,
		Planner: movement.Default,
		Timings: DefaultTimings,
		log:     log,
	}
}

// Tick 一个完整的 Tick：命令执行 → 先攻分配 → 行动者分配，顺序固定
func (s *Scheduler) Tick(dt float64) {
	s.Advance(dt)
	s.AssignInitiative()
	s.AssignActiveEntity()
}

// Advance 推进队首命令 dt 秒；计时结束则出队并提交效果。
// 提交过程中可能把新命令压到队首，它们会在下一次 Advance 时立即执行。
func (s *Scheduler) Advance(dt float64) {
	cmd := s.State.Front()
	if cmd == nil {
		return
	}
	if dt > 0 {
		cmd.Elapsed += dt
	}
	if cmd.Elapsed > cmd.Timer {
		cmd.Elapsed = cmd.Timer
	}

	s.update(*cmd)
	if !cmd.Done() {
		return
	}

	done, _ := s.State.PopFront()
	s.finish(done)
}

// update 持续效果，只影响表现位置，不提交逻辑状态
func (s *Scheduler) update(cmd Command) {
	switch cmd.Kind {
	case KindMoveTo:
		a, ok := s.Actors.Lookup(cmd.Who)
		if !ok {
			return
		}
		a.Visual = Interpolate(a.Pos, cmd.To, cmd.Alpha())
	case KindNop, KindMoveFar, KindEndTurn, KindRecvTurn, KindEndRound:
	}
}

// finish 终态效果
func (s *Scheduler) finish(cmd Command) {
	switch cmd.Kind {
	case KindNop:
	case KindMoveTo:
		if !s.finishMoveTo(cmd) {
			return
		}
	case KindMoveFar:
		if !s.finishMoveFar(cmd) {
			return
		}
	case KindEndTurn:
		if s.State.ActiveEntity == cmd.Who {
			s.State.ActiveEntity = entity.None
			s.State.MarkActed(cmd.Who)
			s.log.Debugf("turn ended: %s", cmd.Who)
		}
	case KindRecvTurn:
		a, ok := s.Actors.Lookup(cmd.Who)
		if !ok {
			s.drop(cmd, ReasonMissingEntity)
			return
		}
		s.State.ActiveEntity = cmd.Who
		if speed, ok := a.Speed(); ok {
			a.MovementFt = speed
		}
		s.log.Debugf("turn active: %s (%s) movement=%dft", a.Name, cmd.Who, a.MovementFt)
		if s.Hooks.OnTurnActive != nil {
			s.Hooks.OnTurnActive(cmd.Who)
		}
	case KindEndRound:
		s.State.ResetActed()
		s.State.ActiveEntity = entity.None
		s.State.RoundNum++
		s.log.Infof("round %d begins", s.State.RoundNum)
		if s.Hooks.OnRoundEnd != nil {
			s.Hooks.OnRoundEnd(s.State.RoundNum)
		}
	default:
		s.drop(cmd, ReasonUnknownKind)
		return
	}
	if s.Hooks.OnFinished != nil {
		s.Hooks.OnFinished(cmd)
	}
}

// finishMoveTo 以剩余移动力重新规划这一步；付不起时丢弃本步及其后同一角色的连续步
func (s *Scheduler) finishMoveTo(cmd Command) bool {
	a, ok := s.Actors.Lookup(cmd.Who)
	if !ok {
		s.drop(cmd, ReasonMissingEntity)
		return false
	}
	// 原地一步：不花费、不移动，也不影响后续步
	if cmd.To == a.Pos {
		a.Visual = world.CellCenter(a.Pos)
		return true
	}
	path := s.Planner.Path(s.Grid, a.Pos, a.MovementFt, cmd.To)
	if len(path) == 0 {
		a.Visual = world.CellCenter(a.Pos)
		s.drop(cmd, ReasonNoMovement)
		s.haltSteps(cmd.Who)
		return false
	}

	a.MovementFt -= path[len(path)-1].CostFt
	from := a.Pos
	a.Pos = cmd.To
	s.vacate(from, a.Ref)
	s.occupy(a.Pos, a.Ref)
	a.Visual = world.CellCenter(a.Pos)

	if s.Hooks.OnMoved != nil {
		s.Hooks.OnMoved(cmd.Who, cmd.To)
	}
	return true
}

// finishMoveFar 把长距离移动展开为逐步 MoveTo，逆序压到队首，保证按路径顺序紧接着执行
func (s *Scheduler) finishMoveFar(cmd Command) bool {
	a, ok := s.Actors.Lookup(cmd.Who)
	if !ok {
		s.drop(cmd, ReasonMissingEntity)
		return false
	}
	path := s.Planner.Path(s.Grid, a.Pos, a.MovementFt, cmd.To)
	if len(path) == 0 {
		s.log.Debugf("no path for %s from %s to %s with %dft", cmd.Who, a.Pos, cmd.To, a.MovementFt)
	}
	for i := len(path) - 1; i >= 0; i-- {
		s.State.PushFront(s.Timings.MoveTo(cmd.Who, path[i].To))
	}
	return true
}

// occupy 只在格子空着，或记录的占据者已不在该格时写入；不覆盖仍站在那里的角色
func (s *Scheduler) occupy(c grid.Coord, ref entity.Ref) {
	cell, ok := s.Grid.Get(c)
	if !ok {
		return
	}
	if cur := cell.Occupant; !cur.IsNone() && cur != ref {
		if other, ok := s.Actors.Lookup(cur); ok && other.Pos == c {
			return
		}
	}
	s.Grid.SetOccupant(c, ref)
}

// vacate 离开格子；若还有别的角色站在这里，占据者改记为它
func (s *Scheduler) vacate(c grid.Coord, ref entity.Ref) {
	s.Grid.ClearOccupant(c, ref)
	if cell, ok := s.Grid.Get(c); !ok || !cell.Occupant.IsNone() {
		return
	}
	for _, r := range s.Actors.Refs() {
		if r == ref {
			continue
		}
		if other, ok := s.Actors.Lookup(r); ok && other.Pos == c {
			s.Grid.SetOccupant(c, r)
			return
		}
	}
}

// haltSteps 丢弃队首连续的、属于 who 的 MoveTo
func (s *Scheduler) haltSteps(who entity.Ref) {
	for {
		front := s.State.Front()
		if front == nil || front.Kind != KindMoveTo || front.Who != who {
			return
		}
		cmd, _ := s.State.PopFront()
		s.drop(cmd, ReasonHalted)
	}
}

func (s *Scheduler) drop(cmd Command, reason string) {
	s.log.Infof("command dropped: %s (%s)", cmd, reason)
	if s.Hooks.OnDropped != nil {
		s.Hooks.OnDropped(cmd, reason)
	}
}
