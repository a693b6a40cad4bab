package param

import "fmt"

// Space is an ordered collection of uniquely named domains. Iteration
// order is the insertion order and is fixed once the space is built;
// strategies rely on it when enumerating combinations. A Space is
// read-only after construction and safe to share by reference.
type Space struct {
	domains []Domain
	byName  map[string]Domain
}

// NewSpace builds a space from the given domains, preserving order.
func NewSpace(domains ...Domain) (*Space, error) {
	s := &Space{byName: make(map[string]Domain, len(domains))}
	for _, d := range domains {
		if err := s.Insert(d); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Insert appends a domain. Names must be unique within the space.
func (s *Space) Insert(d Domain) error {
	if s.byName == nil {
		s.byName = make(map[string]Domain)
	}
	if _, ok := s.byName[d.Name()]; ok {
		return fmt.Errorf("duplicate parameter name %q", d.Name())
	}
	s.domains = append(s.domains, d)
	s.byName[d.Name()] = d
	return nil
}

// Domains returns the domains in insertion order. The returned slice
// must not be modified.
func (s *Space) Domains() []Domain { return s.domains }

// Get returns the domain with the given name, if present.
func (s *Space) Get(name string) (Domain, bool) {
	d, ok := s.byName[name]
	return d, ok
}

// Len returns the number of domains.
func (s *Space) Len() int { return len(s.domains) }
