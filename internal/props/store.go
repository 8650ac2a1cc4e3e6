package props

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
)

// Declaration is a single named build variable together with the source
// range it was declared at, kept for diagnostics.
type Declaration struct {
	Name      string
	Value     string
	DeclRange hcl.Range
}

// Store is the root property store. It is not safe for concurrent
// declaration; Seal is the barrier after which concurrent reads are safe.
type Store struct {
	decls  map[string]Declaration
	sealed bool
}

// NewStore creates an empty, unsealed property store.
func NewStore() *Store {
	return &Store{decls: make(map[string]Declaration)}
}

// Declare adds a variable to the store. Declaring a name twice returns a
// DuplicateVariableError naming both declaration sites. Declaring after
// Seal is a programmer error and panics.
func (s *Store) Declare(d Declaration) error {
	if s.sealed {
		panic("props: Declare called on a sealed store")
	}
	if prev, exists := s.decls[d.Name]; exists {
		return &DuplicateVariableError{
			Name:   d.Name,
			First:  prev.DeclRange,
			Second: d.DeclRange,
		}
	}
	s.decls[d.Name] = d
	return nil
}

// Seal ends the declare phase. After Seal the store is read-only and
// Resolve may be called from multiple goroutines.
func (s *Store) Seal() {
	s.sealed = true
}

// Sealed reports whether the declare phase has ended.
func (s *Store) Sealed() bool {
	return s.sealed
}

// Resolve returns the declared value for name, or an
// UndeclaredVariableError if the name was never declared. There is no
// default and no fallback: an unresolved reference is always an error.
func (s *Store) Resolve(name string) (string, error) {
	d, ok := s.decls[name]
	if !ok {
		return "", &UndeclaredVariableError{Name: name}
	}
	return d.Value, nil
}

// Has reports whether name is declared, without constructing an error.
func (s *Store) Has(name string) bool {
	_, ok := s.decls[name]
	return ok
}

// Names returns all declared names in lexical order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.decls))
	for name := range s.decls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of declared variables.
func (s *Store) Len() int {
	return len(s.decls)
}
