package world

import (
	"testing"

	"tactica/entity"
	"tactica/grid"
)

func TestStore_SpawnOrderAndDespawn(t *testing.T) {
	s := NewStore()
	a := s.Spawn(&Actor{Ref: "a", Pos: grid.C(1, 1)})
	b := s.Spawn(&Actor{Name: "generated"})
	c := s.Spawn(&Actor{Ref: "c"})

	if b.IsNone() {
		t.Fatal("Spawn should assign a ref")
	}
	refs := s.Refs()
	if len(refs) != 3 || refs[0] != a || refs[1] != b || refs[2] != c {
		t.Fatalf("refs = %v", refs)
	}

	if !s.Despawn(b) {
		t.Fatal("despawn existing should succeed")
	}
	if s.Despawn(b) {
		t.Fatal("second despawn should fail")
	}
	if _, ok := s.Lookup(b); ok {
		t.Fatal("lookup after despawn should miss")
	}
	refs = s.Refs()
	if len(refs) != 2 || refs[0] != a || refs[1] != c {
		t.Fatalf("refs after despawn = %v", refs)
	}
	if s.Len() != 2 {
		t.Fatalf("len = %d", s.Len())
	}
}

func TestStore_SpawnSetsVisualToCellCenter(t *testing.T) {
	s := NewStore()
	ref := s.Spawn(&Actor{Ref: entity.Ref("x"), Pos: grid.C(2, 3)})
	a, _ := s.Lookup(ref)
	if a.Visual != (Vec3{X: 2.5, Y: 3.5}) {
		t.Fatalf("visual = %+v", a.Visual)
	}
}

func TestStore_RespawnKeepsOrder(t *testing.T) {
	s := NewStore()
	s.Spawn(&Actor{Ref: "a"})
	s.Spawn(&Actor{Ref: "b"})
	s.Spawn(&Actor{Ref: "a", Name: "again"})
	refs := s.Refs()
	if len(refs) != 2 || refs[0] != "a" {
		t.Fatalf("refs = %v", refs)
	}
	if a, _ := s.Lookup("a"); a.Name != "again" {
		t.Fatal("respawn should replace the actor")
	}
}

func TestActor_Speed(t *testing.T) {
	a := &Actor{}
	if _, ok := a.Speed(); ok {
		t.Fatal("no statblock should report !ok")
	}
	a.Stats = &Statblock{Speed: 30}
	if v, ok := a.Speed(); !ok || v != 30 {
		t.Fatalf("speed = %d, %v", v, ok)
	}
	if !a.IsAI() {
		t.Fatal("actor without player should be AI")
	}
}
