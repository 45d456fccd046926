package semantic

import (
	"strings"

	"lintel/internal/syntax"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolNamespace
	SymbolNamedType
	SymbolMethod
	SymbolField
	SymbolParameter
	SymbolLocal
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolNamespace:
		return "namespace"
	case SymbolNamedType:
		return "type"
	case SymbolMethod:
		return "method"
	case SymbolField:
		return "field"
	case SymbolParameter:
		return "parameter"
	case SymbolLocal:
		return "local"
	default:
		return "invalid"
	}
}

// TypeKind refines SymbolNamedType.
type TypeKind uint8

const (
	TypeNone TypeKind = iota
	TypeClass
	TypeInterface
	TypeStruct
	TypeArray
	TypeParameter
	// TypeError marks types the binder could not resolve. Hierarchy walks stop at them.
	TypeError
)

// MethodKind distinguishes ordinary methods from special members.
type MethodKind uint8

const (
	MethodOrdinary MethodKind = iota
	MethodConstructor
	MethodStaticConstructor
	MethodDestructor
)

func (k MethodKind) String() string {
	switch k {
	case MethodConstructor:
		return "constructor"
	case MethodStaticConstructor:
		return "static constructor"
	case MethodDestructor:
		return "destructor"
	default:
		return "method"
	}
}

// Accessibility of a member or type.
type Accessibility uint8

const (
	AccessDefault Accessibility = iota
	AccessPrivate
	AccessProtected
	AccessInternal
	AccessPublic
)

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint8

const (
	FlagAbstract SymbolFlags = 1 << iota
	FlagStatic
	FlagConst
	FlagReadonly
	FlagVirtual
	FlagOverride
	FlagSealed
	// FlagBuiltin marks symbols of the built-in library.
	FlagBuiltin
)

// Symbol is a named program entity. Symbols of one Model form a graph through
// Container, Base, Interfaces and Members and are read-only once bound.
type Symbol struct {
	Kind       SymbolKind
	Name       string // NFC
	TypeKind   TypeKind
	MethodKind MethodKind
	Access     Accessibility
	Flags      SymbolFlags
	Implicit   bool // synthesized, e.g. the default constructor

	Container  *Symbol
	Base       *Symbol // nil at hierarchy root
	Interfaces []*Symbol
	Members    []*Symbol

	// Type is the declared type of fields, parameters and locals and the return type of methods.
	Type *Symbol
	// Elem is the element type of arrays.
	Elem *Symbol
	// TypeParams of a generic definition; TypeArgs and Origin of a constructed type.
	TypeParams []*Symbol
	TypeArgs   []*Symbol
	Origin     *Symbol

	Params     []*Symbol
	Capability Capability
	Decls      []syntax.Ref // declaring references; empty for library symbols
}

func (s *Symbol) IsAbstract() bool { return s.Flags&FlagAbstract != 0 }
func (s *Symbol) IsStatic() bool   { return s.Flags&FlagStatic != 0 }
func (s *Symbol) IsConst() bool    { return s.Flags&FlagConst != 0 }
func (s *Symbol) IsBuiltin() bool  { return s.Flags&FlagBuiltin != 0 }

// IsType reports named types of any TypeKind.
func (s *Symbol) IsType() bool { return s != nil && s.Kind == SymbolNamedType }

// IsError reports unresolved types.
func (s *Symbol) IsError() bool { return s != nil && s.TypeKind == TypeError }

// Definition returns the generic definition of a constructed type or s itself.
func (s *Symbol) Definition() *Symbol {
	if s != nil && s.Origin != nil {
		return s.Origin
	}
	return s
}

// QualifiedName joins container names with '.'; generic arity is shown as <T>.
func (s *Symbol) QualifiedName() string {
	if s == nil {
		return "<nil>"
	}
	var parts []string
	for cur := s; cur != nil; cur = cur.Container {
		if cur.Kind == SymbolNamespace && cur.Name == "" {
			break
		}
		parts = append(parts, cur.displayName())
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

func (s *Symbol) String() string { return s.QualifiedName() }

func (s *Symbol) displayName() string {
	switch {
	case s.TypeKind == TypeArray && s.Elem != nil:
		return s.Elem.displayName() + "[]"
	case len(s.TypeArgs) > 0:
		args := make([]string, len(s.TypeArgs))
		for i, a := range s.TypeArgs {
			args[i] = a.displayName()
		}
		return s.Name + "<" + strings.Join(args, ", ") + ">"
	case len(s.TypeParams) > 0:
		args := make([]string, len(s.TypeParams))
		for i, a := range s.TypeParams {
			args[i] = a.Name
		}
		return s.Name + "<" + strings.Join(args, ", ") + ">"
	}
	return s.Name
}

// Lookup returns the members of s named name, in declaration order.
func (s *Symbol) Lookup(name string) []*Symbol {
	var out []*Symbol
	for _, m := range s.Definition().Members {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// Methods returns member methods, constructors and destructors included.
func (s *Symbol) Methods() []*Symbol {
	var out []*Symbol
	for _, m := range s.Definition().Members {
		if m.Kind == SymbolMethod {
			out = append(out, m)
		}
	}
	return out
}

// DeclaringSyntax returns the declaration nodes of s.
func (s *Symbol) DeclaringSyntax() []syntax.Ref { return s.Decls }
