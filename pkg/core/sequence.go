package core

// Sequences maps a variable name to the values observed for it, in the order
// they appeared in the input.
type Sequences struct {
	values map[string][]string
	order  []string
}

// NewSequences creates an empty mapping.
func NewSequences() *Sequences {
	return &Sequences{values: make(map[string][]string)}
}

// Append records value as the next observation for name.
func (s *Sequences) Append(name, value string) {
	if _, ok := s.values[name]; !ok {
		s.order = append(s.order, name)
	}
	s.values[name] = append(s.values[name], value)
}

// Values returns the observations for name. ok is false if name never
// appeared; a present name always has at least one value.
func (s *Sequences) Values(name string) (values []string, ok bool) {
	values, ok = s.values[name]
	return values, ok
}

// Names returns every observed name in first-seen order.
func (s *Sequences) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of distinct names.
func (s *Sequences) Len() int {
	return len(s.order)
}
