package checks

import (
	"fmt"

	"lintel/internal/diag"
	"lintel/internal/rule"
	"lintel/internal/semantic"
	"lintel/internal/syntax"
)

const AbstractClassShapeID = "abstract-class-shape"

// AbstractClassShape flags abstract classes that are really interfaces (only
// abstract methods) or really concrete classes (no abstract method at all).
func AbstractClassShape() *rule.Descriptor {
	return &rule.Descriptor{
		ID:    AbstractClassShapeID,
		Title: "An abstract class should have both abstract and concrete methods",
		Description: "An abstract class provides heritable behavior and leaves some methods to subclasses. " +
			`A class without abstract methods made abstract only to prevent instantiation should be a concrete ` +
			`class with a private constructor. A class with only abstract methods should be an interface.`,
		Severity:       diag.SevMinor,
		DefaultEnabled: false,
		Tags:           []string{"convention"},
		Actions: []rule.Action{{
			Interest: rule.Interest{Symbols: []semantic.SymbolKind{semantic.SymbolNamedType}},
			Run:      checkAbstractClass,
		}},
	}
}

func checkAbstractClass(c *rule.Context) {
	sym := c.Symbol()
	if sym.TypeKind != semantic.TypeClass || !sym.IsAbstract() {
		return
	}
	methods := declaredMethods(sym)
	var target string
	switch {
	case shouldBeInterface(sym, methods):
		target = "an interface"
	case shouldBeConcrete(methods):
		target = "a concrete class with a private constructor"
	default:
		return
	}
	for _, decl := range sym.DeclaringSyntax() {
		if decl.Is(syntax.ClassDecl) {
			c.ReportAt(decl.Child(syntax.TypeName), fmt.Sprintf("Convert this \"abstract\" class to %s", target))
		}
	}
}

// declaredMethods skips the implicit constructors.
func declaredMethods(sym *semantic.Symbol) []*semantic.Symbol {
	var out []*semantic.Symbol
	for _, m := range sym.Methods() {
		ctor := m.MethodKind == semantic.MethodConstructor || m.MethodKind == semantic.MethodStaticConstructor
		if m.Implicit && ctor {
			continue
		}
		out = append(out, m)
	}
	return out
}

func shouldBeInterface(sym *semantic.Symbol, methods []*semantic.Symbol) bool {
	if sym.Base == nil || sym.Base.Capability != semantic.CapObject || len(methods) == 0 {
		return false
	}
	for _, m := range methods {
		if !m.IsAbstract() {
			return false
		}
	}
	return true
}

func shouldBeConcrete(methods []*semantic.Symbol) bool {
	for _, m := range methods {
		if m.IsAbstract() {
			return false
		}
	}
	return true
}
