package ecs

// intersect returns raw entity ids present in both sets, iterating the
// smaller one. The result is a fresh slice so callers may mutate tables
// while ranging over it.
func intersect(a, b *sparseSet) []int {
	if a == nil || b == nil {
		return nil
	}
	if a.len() > b.len() {
		a, b = b, a
	}
	out := make([]int, 0, a.len())
	for _, id := range a.ids() {
		if b.has(id) {
			out = append(out, id)
		}
	}
	return out
}
