package round

import "tactica/entity"

// AssignInitiative 空闲时同步先攻顺序：新角色追加到末尾并记为本轮已行动（不插队），
// 已消失的角色被剔除，幸存者保持相对顺序。
func (s *Scheduler) AssignInitiative() {
	if s.State.IsExecuting() {
		return
	}

	for _, ref := range s.Actors.Refs() {
		if !s.State.InInitiative(ref) {
			s.State.InitiativeOrder = append(s.State.InitiativeOrder, ref)
			s.State.MarkActed(ref)
			s.log.Debugf("initiative: %s joins at %d", ref, len(s.State.InitiativeOrder))
		}
	}

	kept := make([]entity.Ref, 0, len(s.State.InitiativeOrder))
	for _, ref := range s.State.InitiativeOrder {
		if _, ok := s.Actors.Lookup(ref); ok {
			kept = append(kept, ref)
		}
	}
	s.State.InitiativeOrder = kept

	// 行动者在回合中途消失时释放回合，否则本轮永远卡住
	if active := s.State.ActiveEntity; !active.IsNone() {
		if _, ok := s.Actors.Lookup(active); !ok {
			s.State.ActiveEntity = entity.None
			s.State.MarkActed(active)
			s.log.Infof("active entity %s vanished, releasing turn", active)
		}
	}
}

// AssignActiveEntity 空闲且无人持有回合时，把回合交给先攻顺序中第一个未行动者；
// 全员行动完毕则在队尾追加 EndRound。先攻顺序为空时什么也不做。
func (s *Scheduler) AssignActiveEntity() {
	if s.State.IsExecuting() || !s.State.ActiveEntity.IsNone() {
		return
	}
	if len(s.State.InitiativeOrder) == 0 {
		return
	}

	for _, ref := range s.State.InitiativeOrder {
		if !s.State.HasActed(ref) {
			s.State.PushFront(s.Timings.RecvTurn(ref))
			return
		}
	}
	s.State.PushBack(s.Timings.EndRound())
}
