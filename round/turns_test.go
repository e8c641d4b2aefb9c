package round

import (
	"testing"

	"tactica/entity"
	"tactica/grid"
)

func (f *fixture) assign() {
	f.sched.AssignInitiative()
	f.sched.AssignActiveEntity()
}

func expectFront(t *testing.T, s *State, kind Kind, who entity.Ref) {
	t.Helper()
	front := s.Front()
	if front == nil {
		t.Fatalf("queue empty, want %s{%s}", kind, who)
	}
	if front.Kind != kind || front.Who != who {
		t.Fatalf("front = %s, want %s{%s}", front, kind, who)
	}
}

// 两名角色 [A,B]，都未行动：A 先得到回合，A 结束后轮到 B，B 结束后 EndRound
func TestTurnOrder_TwoActorsOneRound(t *testing.T) {
	f := newFixture(t, 4)
	a := f.spawn("a", grid.C(0, 0), 0, 30)
	f.spawn("b", grid.C(3, 3), 0, 25)
	f.state.InitiativeOrder = []entity.Ref{"a", "b"}

	f.assign()
	expectFront(t, f.state, KindRecvTurn, "a")
	f.drain(t, 0.05)
	if f.state.ActiveEntity != "a" || a.MovementFt != 30 {
		t.Fatalf("active=%s movement=%d", f.state.ActiveEntity, a.MovementFt)
	}

	f.assign()
	if f.state.IsExecuting() {
		t.Fatal("no new turn while someone holds it")
	}

	f.state.PushBack(EndTurn("a"))
	f.drain(t, 0.05)
	f.assign()
	expectFront(t, f.state, KindRecvTurn, "b")
	f.drain(t, 0.05)

	f.state.PushBack(EndTurn("b"))
	f.drain(t, 0.05)
	f.assign()
	expectFront(t, f.state, KindEndRound, "")
	if f.state.RoundNum != 0 {
		t.Fatal("round advanced before EndRound finished")
	}
	f.drain(t, 0.05)
	if f.state.RoundNum != 1 || f.state.HasTakenTurn.Size() != 0 || !f.state.ActiveEntity.IsNone() {
		t.Fatalf("after EndRound: round=%d acted=%d active=%q",
			f.state.RoundNum, f.state.HasTakenTurn.Size(), f.state.ActiveEntity)
	}

	f.assign()
	expectFront(t, f.state, KindRecvTurn, "a")
}

func TestTick_FullRoundsThroughTick(t *testing.T) {
	f := newFixture(t, 4)
	f.spawn("a", grid.C(0, 0), 0, 30)
	f.spawn("b", grid.C(3, 3), 0, 30)
	f.state.InitiativeOrder = []entity.Ref{"a", "b"}

	var rounds []uint64
	f.sched.Hooks.OnRoundEnd = func(n uint64) { rounds = append(rounds, n) }

	for i := 0; i < 2000 && len(f.active) < 4; i++ {
		f.sched.Tick(0.05)
		if !f.state.IsExecuting() && !f.state.ActiveEntity.IsNone() {
			f.state.PushBack(EndTurn(f.state.ActiveEntity))
		}
	}
	want := []entity.Ref{"a", "b", "a", "b"}
	if len(f.active) != len(want) {
		t.Fatalf("turns = %v", f.active)
	}
	for i := range want {
		if f.active[i] != want[i] {
			t.Fatalf("turns = %v, want %v", f.active, want)
		}
	}
	if len(rounds) != 1 || rounds[0] != 1 {
		t.Fatalf("round ends = %v", rounds)
	}
}

func TestAssignInitiative_NewcomersWaitForNextRound(t *testing.T) {
	f := newFixture(t, 4)
	f.spawn("a", grid.C(0, 0), 0, 30)
	f.spawn("b", grid.C(1, 0), 0, 30)

	f.sched.AssignInitiative()
	if len(f.state.InitiativeOrder) != 2 || f.state.InitiativeOrder[0] != "a" || f.state.InitiativeOrder[1] != "b" {
		t.Fatalf("order = %v", f.state.InitiativeOrder)
	}
	if !f.state.HasActed("a") || !f.state.HasActed("b") {
		t.Fatal("newcomers should be marked as having acted")
	}
	f.sched.AssignActiveEntity()
	expectFront(t, f.state, KindEndRound, "")
}

func TestAssignInitiative_PrunesAndSkipsWhileExecuting(t *testing.T) {
	f := newFixture(t, 4)
	for _, r := range []entity.Ref{"a", "b", "c"} {
		f.spawn(r, grid.C(0, 0), 0, 30)
	}
	f.sched.AssignInitiative()

	f.store.Despawn("b")
	f.spawn("d", grid.C(2, 2), 0, 30)
	f.state.PushBack(Nop())
	f.sched.AssignInitiative()
	if len(f.state.InitiativeOrder) != 3 {
		t.Fatal("initiative must not change while a command is executing")
	}

	f.drain(t, 0.5)
	f.sched.AssignInitiative()
	want := []entity.Ref{"a", "c", "d"}
	if len(f.state.InitiativeOrder) != len(want) {
		t.Fatalf("order = %v, want %v", f.state.InitiativeOrder, want)
	}
	for i := range want {
		if f.state.InitiativeOrder[i] != want[i] {
			t.Fatalf("order = %v, want %v", f.state.InitiativeOrder, want)
		}
	}
}

func TestAssignInitiative_ReleasesVanishedActiveEntity(t *testing.T) {
	f := newFixture(t, 4)
	f.spawn("a", grid.C(0, 0), 0, 30)
	f.spawn("b", grid.C(1, 1), 0, 30)
	f.state.InitiativeOrder = []entity.Ref{"a", "b"}
	f.state.ActiveEntity = "a"

	f.store.Despawn("a")
	f.assign()
	if f.state.ActiveEntity == "a" {
		t.Fatal("vanished actor still holds the turn")
	}
	expectFront(t, f.state, KindRecvTurn, "b")
}

func TestAssignActiveEntity_EmptyEncounterIdles(t *testing.T) {
	f := newFixture(t, 4)
	for i := 0; i < 50; i++ {
		f.sched.Tick(0.05)
	}
	if f.state.IsExecuting() || f.state.RoundNum != 0 {
		t.Fatalf("empty encounter should idle, round=%d", f.state.RoundNum)
	}
}
