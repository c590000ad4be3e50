package ast

// Scope is a lexical symbol table.  Entries are kept in the order they were
// first bound.  The parent link is a back-reference: a scope never owns its
// parent.
type Scope struct {
	Parent *Scope

	entries []*Decl
}

// NewScope creates a new empty scope.  The root scope has a nil parent.
func NewScope(parent *Scope) *Scope {
	return &Scope{Parent: parent}
}

// Lookup finds the nearest binding for name, walking outward to the root.
func (s *Scope) Lookup(name string) (*Decl, bool) {
	for scope := s; scope != nil; scope = scope.Parent {
		if decl, ok := scope.LookupLocal(name); ok {
			return decl, true
		}
	}

	return nil, false
}

// LookupLocal finds a binding for name in this scope only.
func (s *Scope) LookupLocal(name string) (*Decl, bool) {
	if i := s.indexOf(name); i >= 0 {
		return s.entries[i], true
	}

	return nil, false
}

// Bind binds a declaration by its name.  If the name is already bound in this
// scope, the binding is overwritten in place; otherwise a new entry is
// appended.
func (s *Scope) Bind(decl *Decl) {
	if i := s.indexOf(decl.Name); i >= 0 {
		s.entries[i] = decl
	} else {
		s.entries = append(s.entries, decl)
	}
}

// Decls returns the declarations bound in this scope in binding order.
func (s *Scope) Decls() []*Decl {
	return s.entries
}

func (s *Scope) indexOf(name string) int {
	for i, decl := range s.entries {
		if decl.Name == name {
			return i
		}
	}

	return -1
}
