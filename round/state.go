// Package round 回合状态、命令队列与调度器。
//
// 单线程、按 Tick 协作推进：每个 Tick 先推进队首命令，再做先攻与行动者分配。
// 外部系统只能通过入队命令影响回合，不能直接修改状态。
package round

import (
	"github.com/zyedidia/generic/mapset"

	"tactica/entity"
)

// State 回合状态：待执行命令队列（队首即正在执行）、当前行动者、先攻顺序与已行动集合
type State struct {
	commands []Command

	ActiveEntity    entity.Ref
	InitiativeOrder []entity.Ref
	HasTakenTurn    mapset.Set[entity.Ref]
	RoundNum        uint64
}

// NewState 创建空的回合状态
func NewState() *State {
	return &State{HasTakenTurn: mapset.New[entity.Ref]()}
}

// PushFront 插到队首，下一个执行
func (s *State) PushFront(cmd Command) {
	s.commands = append(s.commands, Command{})
	copy(s.commands[1:], s.commands)
	s.commands[0] = cmd
}

// PushBack 追加到队尾
func (s *State) PushBack(cmd Command) {
	s.commands = append(s.commands, cmd)
}

// Front 队首命令（可修改），队列为空时为 nil
func (s *State) Front() *Command {
	if len(s.commands) == 0 {
		return nil
	}
	return &s.commands[0]
}

// PopFront 取出队首
func (s *State) PopFront() (Command, bool) {
	if len(s.commands) == 0 {
		return Command{}, false
	}
	cmd := s.commands[0]
	s.commands[0] = Command{}
	s.commands = s.commands[1:]
	return cmd, true
}

// IsExecuting 队列非空即为执行中
func (s *State) IsExecuting() bool { return len(s.commands) > 0 }

func (s *State) Len() int { return len(s.commands) }

// Commands 队列快照（副本）
func (s *State) Commands() []Command {
	out := make([]Command, len(s.commands))
	copy(out, s.commands)
	return out
}

// HasActed 本轮是否已经行动
func (s *State) HasActed(ref entity.Ref) bool { return s.HasTakenTurn.Has(ref) }

// MarkActed 记为本轮已行动
func (s *State) MarkActed(ref entity.Ref) { s.HasTakenTurn.Put(ref) }

// ResetActed 新一轮开始时清空
func (s *State) ResetActed() { s.HasTakenTurn = mapset.New[entity.Ref]() }

// InInitiative 是否已在先攻顺序中
func (s *State) InInitiative(ref entity.Ref) bool {
	for _, r := range s.InitiativeOrder {
		if r == ref {
			return true
		}
	}
	return false
}
