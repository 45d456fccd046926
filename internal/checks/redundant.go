package checks

import (
	"lintel/internal/diag"
	"lintel/internal/fix"
	"lintel/internal/rule"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

const RedundantCtorDtorID = "redundant-ctor-dtor"

const (
	titleRemoveBaseCall    = `Remove "base()" call`
	titleRemoveConstructor = "Remove constructor"
	titleRemoveDestructor  = "Remove destructor"
)

// RedundantCtorDtor flags empty destructors, constructors the compiler would
// generate anyway and `base()` initializers without arguments.
func RedundantCtorDtor() *rule.Descriptor {
	return &rule.Descriptor{
		ID:             RedundantCtorDtorID,
		Title:          "Redundant parts of constructors and destructors should be removed",
		Description:    "An empty public parameterless constructor that is the only one of its class, an empty destructor and a base() call without arguments add nothing and should be removed.",
		Severity:       diag.SevMinor,
		DefaultEnabled: true,
		Tags:           []string{"clumsy", "finding"},
		Actions: []rule.Action{
			{Interest: rule.Interest{Nodes: []syntax.Kind{syntax.ConstructorInitializer}}, Run: func(c *rule.Context) {
				init := c.Node()
				if redundantBaseCall(init) && !redundantCtor(init.Parent()) {
					c.ReportAt(init, `Remove this redundant "base()" call.`)
				}
			}},
			{Interest: rule.Interest{Nodes: []syntax.Kind{syntax.ConstructorDecl}}, Run: func(c *rule.Context) {
				if redundantCtor(c.Node()) {
					c.ReportAt(c.Node().Child(syntax.CtorName), "Remove this redundant constructor.")
				}
			}},
			{Interest: rule.Interest{Nodes: []syntax.Kind{syntax.DestructorDecl}}, Run: func(c *rule.Context) {
				if emptyBlock(c.Node().Child(syntax.DtorBody)) {
					c.ReportAt(c.Node().Child(syntax.DtorName), "Remove this redundant destructor.")
				}
			}},
		},
	}
}

// redundantBaseCall matches `: base()`.
func redundantBaseCall(init syntax.Ref) bool {
	return init.Is(syntax.ConstructorInitializer) &&
		init.Child(syntax.InitKeyword).TokenKind() == token.KwBase &&
		len(init.Child(syntax.InitArgs).Child(syntax.DelimItems).Children()) == 0
}

func emptyBlock(b syntax.Ref) bool {
	return b.Is(syntax.Block) && len(b.Child(syntax.BlockStatements).Children()) == 0
}

// redundantCtor matches the only instance constructor of a class when it is
// public, parameterless and empty.
func redundantCtor(ctor syntax.Ref) bool {
	if !ctor.Is(syntax.ConstructorDecl) || !emptyBlock(ctor.Child(syntax.CtorBody)) {
		return false
	}
	if init := ctor.Child(syntax.CtorInitializer); !init.IsZero() && !redundantBaseCall(init) {
		return false
	}
	if len(ctor.Child(syntax.CtorParams).Child(syntax.DelimItems).Children()) != 0 {
		return false
	}
	if !hasModifier(ctor.Child(syntax.CtorModifiers), token.KwPublic) || hasModifier(ctor.Child(syntax.CtorModifiers), token.KwStatic) {
		return false
	}
	class := ctor.Ancestor(syntax.ClassDecl, syntax.StructDecl)
	if !class.Is(syntax.ClassDecl) {
		return false
	}
	n := 0
	for _, m := range class.Child(syntax.TypeMembers).Children() {
		if m.Is(syntax.ConstructorDecl) && !hasModifier(m.Child(syntax.CtorModifiers), token.KwStatic) {
			n++
		}
	}
	return n == 1
}

func hasModifier(list syntax.Ref, k token.Kind) bool {
	for _, m := range list.Children() {
		if m.TokenKind() == k {
			return true
		}
	}
	return false
}

// RedundantCtorDtorFix removes what RedundantCtorDtor flags. Offered actions
// re-check the flagged shape, so a second application finds nothing.
func RedundantCtorDtorFix() *fix.Provider {
	return &fix.Provider{
		FixableIDs:    []string{RedundantCtorDtorID},
		Applicability: fix.AlwaysSafe,
		Offer: func(tree *syntax.Tree, d diag.Diagnostic) []fix.Action {
			if init, ok := tree.Find(d.Primary, syntax.ConstructorInitializer); ok {
				if !redundantBaseCall(init) {
					return nil
				}
				return []fix.Action{fix.RemoveNode(titleRemoveBaseCall, init, fix.Preferred())}
			}
			name, ok := tree.Find(d.Primary)
			if !ok {
				return nil
			}
			switch decl := name.Ancestor(syntax.ConstructorDecl, syntax.DestructorDecl); {
			case decl.Is(syntax.ConstructorDecl) && decl.Child(syntax.CtorName).Node() == name.Node() && redundantCtor(decl):
				return []fix.Action{fix.RemoveNode(titleRemoveConstructor, decl, fix.Preferred())}
			case decl.Is(syntax.DestructorDecl) && decl.Child(syntax.DtorName).Node() == name.Node() && emptyBlock(decl.Child(syntax.DtorBody)):
				return []fix.Action{fix.RemoveNode(titleRemoveDestructor, decl, fix.Preferred())}
			}
			return nil
		},
	}
}
