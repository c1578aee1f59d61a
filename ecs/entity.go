package ecs

import "strconv"

// Entity is a generational handle into a World. A handle stays invalid
// forever once its entity is destroyed, even if the id slot is recycled.
type Entity struct {
	ID  int
	Gen int
}

// Valid reports whether the handle was ever issued by a World.
func (e Entity) Valid() bool {
	return e.ID > 0
}

func (e Entity) String() string {
	return strconv.Itoa(e.ID) + "v" + strconv.Itoa(e.Gen)
}

// entityStore tracks entity generations and free ids.
type entityStore struct {
	nextID int
	gen    []int
	dead   []bool
	free   []int
}

func (s *entityStore) create() Entity {
	var id int
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.nextID++
		id = s.nextID
	}
	for id > len(s.gen) {
		s.gen = append(s.gen, 0)
		s.dead = append(s.dead, false)
	}
	s.dead[id-1] = false
	return Entity{ID: id, Gen: s.gen[id-1]}
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.ID - 1
	s.gen[idx]++
	s.dead[idx] = true
	s.free = append(s.free, e.ID)
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	if e.ID <= 0 || e.ID > len(s.gen) {
		return false
	}
	return !s.dead[e.ID-1] && s.gen[e.ID-1] == e.Gen
}

// byID returns the live handle for a raw id, if the slot is occupied.
func (s *entityStore) byID(id int) (Entity, bool) {
	if id <= 0 || id > len(s.gen) || s.dead[id-1] {
		return Entity{}, false
	}
	return Entity{ID: id, Gen: s.gen[id-1]}, true
}

func (s *entityStore) alive() []Entity {
	out := make([]Entity, 0, s.nextID)
	for i := 0; i < s.nextID; i++ {
		if !s.dead[i] {
			out = append(out, Entity{ID: i + 1, Gen: s.gen[i]})
		}
	}
	return out
}
