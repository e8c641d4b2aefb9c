package world

import "tactica/entity"

// Store 按生成顺序保存角色。非并发安全，由 Tick 协程独占。
type Store struct {
	actors map[entity.Ref]*Actor
	order  []entity.Ref
}

// NewStore 创建空存储
func NewStore() *Store {
	return &Store{actors: make(map[entity.Ref]*Actor)}
}

// Spawn 加入角色；Ref 为空时分配新的 ULID。已存在的 Ref 会被替换但保持原顺序。
func (s *Store) Spawn(a *Actor) entity.Ref {
	if a.Ref.IsNone() {
		a.Ref = entity.NewRef()
	}
	if _, ok := s.actors[a.Ref]; !ok {
		s.order = append(s.order, a.Ref)
	}
	a.Visual = CellCenter(a.Pos)
	s.actors[a.Ref] = a
	return a.Ref
}

// Despawn 移除角色，返回是否存在
func (s *Store) Despawn(ref entity.Ref) bool {
	if _, ok := s.actors[ref]; !ok {
		return false
	}
	delete(s.actors, ref)
	for i, r := range s.order {
		if r == ref {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Lookup 按引用查找
func (s *Store) Lookup(ref entity.Ref) (*Actor, bool) {
	a, ok := s.actors[ref]
	return a, ok
}

// Contains 引用是否仍然有效
func (s *Store) Contains(ref entity.Ref) bool {
	_, ok := s.actors[ref]
	return ok
}

// Refs 按生成顺序返回所有引用（副本）
func (s *Store) Refs() []entity.Ref {
	out := make([]entity.Ref, len(s.order))
	copy(out, s.order)
	return out
}

// Each 按生成顺序遍历
func (s *Store) Each(fn func(a *Actor)) {
	for _, r := range s.order {
		fn(s.actors[r])
	}
}

func (s *Store) Len() int { return len(s.order) }
