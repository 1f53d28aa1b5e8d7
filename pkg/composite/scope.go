package composite

import "sort"

// Scope records the sub-controller ids a composite owns so a blur can be
// classified as internal without consulting the view.
type Scope struct {
	ids map[string]struct{}
}

// NewScope returns a scope owning ids.
func NewScope(ids ...string) *Scope {
	s := &Scope{ids: make(map[string]struct{}, len(ids))}
	s.Register(ids...)
	return s
}

// Register adds ids to the scope. Blank ids are ignored.
func (s *Scope) Register(ids ...string) {
	for _, id := range ids {
		if id == "" {
			continue
		}
		s.ids[id] = struct{}{}
	}
}

// Contains reports whether id belongs to the scope.
func (s *Scope) Contains(id string) bool {
	if s == nil || id == "" {
		return false
	}
	_, ok := s.ids[id]
	return ok
}

// IDs returns the owned ids in sorted order.
func (s *Scope) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
