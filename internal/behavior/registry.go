package behavior

import "fmt"

// IDMapping is one raw -> canonical observation id assignment
type IDMapping struct {
	Raw       string `json:"raw_id"`
	Canonical string `json:"canonical_id"`
}

// Registry assigns sequential canonical ids to raw observation ids in
// first-encounter order. Assignments are never changed once committed.
type Registry struct {
	ids   map[string]string
	order []IDMapping
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]string)}
}

// Resolve returns the canonical id for raw, allocating the next one on first sight
func (r *Registry) Resolve(raw string) string {
	if id, ok := r.ids[raw]; ok {
		return id
	}
	id := fmt.Sprintf("%03d", len(r.order)+1)
	r.ids[raw] = id
	r.order = append(r.order, IDMapping{Raw: raw, Canonical: id})
	return id
}

// Lookup returns the canonical id for raw without allocating
func (r *Registry) Lookup(raw string) (string, bool) {
	id, ok := r.ids[raw]
	return id, ok
}

// Len returns the number of assigned ids
func (r *Registry) Len() int {
	return len(r.order)
}

// Mappings returns all assignments in allocation order
func (r *Registry) Mappings() []IDMapping {
	out := make([]IDMapping, len(r.order))
	copy(out, r.order)
	return out
}

// mark returns a position that rollback can return to
func (r *Registry) mark() int {
	return len(r.order)
}

// rollback forgets every assignment made after mark
func (r *Registry) rollback(mark int) {
	for _, m := range r.order[mark:] {
		delete(r.ids, m.Raw)
	}
	r.order = r.order[:mark]
}
