package round

import (
	"testing"

	"tactica/grid"
)

func TestState_DequeOrder(t *testing.T) {
	s := NewState()
	if s.IsExecuting() || s.Front() != nil {
		t.Fatal("new state should be idle")
	}
	if _, ok := s.PopFront(); ok {
		t.Fatal("pop on empty queue should fail")
	}

	s.PushBack(MoveTo("a", grid.C(1, 0)))
	s.PushBack(EndTurn("a"))
	s.PushFront(Nop())
	if !s.IsExecuting() || s.Len() != 3 {
		t.Fatalf("len = %d", s.Len())
	}

	want := []Kind{KindNop, KindMoveTo, KindEndTurn}
	for i, cmd := range s.Commands() {
		if cmd.Kind != want[i] {
			t.Fatalf("queue[%d] = %s, want %s", i, cmd.Kind, want[i])
		}
	}

	s.Front().Elapsed = 0.3
	cmd, _ := s.PopFront()
	if cmd.Kind != KindNop || cmd.Elapsed != 0.3 {
		t.Fatalf("popped %+v", cmd)
	}
	s.PopFront()
	s.PopFront()
	if s.IsExecuting() {
		t.Fatal("queue should be empty after popping everything")
	}
}

func TestState_CommandsIsACopy(t *testing.T) {
	s := NewState()
	s.PushBack(Nop())
	snap := s.Commands()
	snap[0].Elapsed = 99
	if s.Front().Elapsed != 0 {
		t.Fatal("mutating the snapshot changed the queue")
	}
}

func TestState_Acted(t *testing.T) {
	s := NewState()
	s.MarkActed("a")
	if !s.HasActed("a") || s.HasActed("b") {
		t.Fatal("acted bookkeeping wrong")
	}
	s.ResetActed()
	if s.HasActed("a") || s.HasTakenTurn.Size() != 0 {
		t.Fatal("reset should clear the set")
	}
}
