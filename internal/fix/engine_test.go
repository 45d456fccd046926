package fix

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lintel/internal/diag"
	"lintel/internal/parser"
	"lintel/internal/source"
	"lintel/internal/syntax"
)

func parseFile(t *testing.T, fs *source.FileSet, id source.FileID) *syntax.Tree {
	t.Helper()
	res, err := parser.Parse(fs.Get(id), parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return res.Tree
}

func parse(t *testing.T, src string) *syntax.Tree {
	t.Helper()
	fs := source.NewFileSet()
	return parseFile(t, fs, fs.AddVirtual("a.cs", []byte(src)))
}

// fieldProvider removes the flagged field declaration.
var fieldProvider = &Provider{
	FixableIDs: []string{"unused-field"},
	Offer: func(tree *syntax.Tree, d diag.Diagnostic) []Action {
		r, ok := tree.Find(d.Primary, syntax.FieldDecl)
		if !ok {
			return nil
		}
		return []Action{RemoveNode("Remove field", r)}
	},
}

func fieldDiags(tree *syntax.Tree) []diag.Diagnostic {
	var out []diag.Diagnostic
	for r := range tree.Root().Preorder() {
		if r.Is(syntax.FieldDecl) {
			out = append(out, diag.NewRule("unused-field", diag.SevMinor, r.Span(), "unused").WithPath(tree.Path()))
		}
	}
	return out
}

func TestPlanAll(t *testing.T) {
	tree := parse(t, "class A {\n    int x;\n    int y;\n    void M() { }\n}\n")
	res, err := NewEngine(fieldProvider).Plan(context.Background(), tree, fieldDiags(tree), Options{Mode: ModeAll})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(res.Applied) != 2 || len(res.Skipped) != 0 {
		t.Fatalf("applied %d, skipped %v", len(res.Applied), res.Skipped)
	}
	want := "class A {\n    void M() { }\n}\n"
	if string(res.Content) != want {
		t.Fatalf("got %q, want %q", res.Content, want)
	}
}

func TestPlanOnce(t *testing.T) {
	tree := parse(t, "class A {\n    int x;\n    int y;\n}\n")
	res, err := NewEngine(fieldProvider).Plan(context.Background(), tree, fieldDiags(tree), Options{Mode: ModeOnce})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if want := "class A {\n    int y;\n}\n"; string(res.Content) != want {
		t.Fatalf("got %q, want %q", res.Content, want)
	}
}

func TestPlanByID(t *testing.T) {
	tree := parse(t, "class A { int x; }")
	diags := fieldDiags(tree)
	_, err := NewEngine(fieldProvider).Plan(context.Background(), tree, diags, Options{Mode: ModeID, TargetID: "nope"})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("want ErrNoFixes, got %v", err)
	}
	id := "unused-field-10-16-0"
	res, err := NewEngine(fieldProvider).Plan(context.Background(), tree, diags, Options{Mode: ModeID, TargetID: id})
	if err != nil || len(res.Applied) != 1 || res.Applied[0].ID != id {
		t.Fatalf("fix %s not applied: %v", id, err)
	}
}

func TestPlanAmbiguousLeavesSourceAlone(t *testing.T) {
	src := "class A {\n#if DEBUG\n    int x;\n#endif\n}\n"
	tree := parse(t, src)
	res, err := NewEngine(fieldProvider).Plan(context.Background(), tree, fieldDiags(tree), Options{Mode: ModeAll})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("want ErrNoFixes, got %v", err)
	}
	if res.Changed() || res.Content != nil {
		t.Fatalf("content must stay untouched")
	}
	if len(res.Skipped) != 1 {
		t.Fatalf("skipped: %v", res.Skipped)
	}
	if res.Diagnostics.Len() != 1 {
		t.Fatalf("want one fix diagnostic, got %d", res.Diagnostics.Len())
	}
	d := res.Diagnostics.At(0)
	if d.Code != diag.FixAmbiguousTrivia || d.RuleID != "unused-field" {
		t.Fatalf("unexpected fix diagnostic %s %s", d.Code.ID(), d.RuleID)
	}
	if tree.Text() != src {
		t.Fatalf("tree modified")
	}
}

func TestProviderIdempotent(t *testing.T) {
	tree := parse(t, "class A { int x; void M() { } }")
	d := fieldDiags(tree)[0]
	once, title, err := fieldProvider.Apply(tree, d)
	if err != nil || title != "Remove field" {
		t.Fatalf("apply: %q %v", title, err)
	}
	twice, _, err := fieldProvider.Apply(once, d)
	if err != nil {
		t.Fatalf("reapply: %v", err)
	}
	if twice != once {
		t.Fatalf("second application must return its input")
	}
}

func TestProviderIgnoresOtherRules(t *testing.T) {
	tree := parse(t, "class A { int x; }")
	d := fieldDiags(tree)[0]
	d.RuleID = "other"
	out, _, err := fieldProvider.Apply(tree, d)
	if err != nil || out != tree {
		t.Fatalf("foreign rule must be a no-op: %v", err)
	}
}

func TestSpansConflict(t *testing.T) {
	edit := func(s, e uint32) TextEdit { return TextEdit{Span: source.Span{Start: s, End: e}} }
	cases := []struct {
		a, b TextEdit
		want bool
	}{
		{edit(0, 5), edit(5, 8), false},
		{edit(0, 5), edit(4, 8), true},
		{edit(3, 3), edit(3, 3), false},
		{edit(3, 3), edit(0, 5), true},
		{edit(5, 5), edit(0, 5), false},
		{edit(2, 9), edit(3, 4), true},
	}
	for _, c := range cases {
		if got := spansConflict(c.a, c.b); got != c.want {
			t.Fatalf("spansConflict(%v, %v) = %v", c.a.Span, c.b.Span, got)
		}
	}
}

func TestTreeEditCoversRemovedTokens(t *testing.T) {
	before := parse(t, "class A { int x; int y; }")
	if _, changed := treeEdit(before, before); changed {
		t.Fatalf("identical trees produce an edit")
	}
	r, ok := before.Find(source.Span{File: before.File(), Start: 17, End: 23}, syntax.FieldDecl)
	if !ok {
		t.Fatalf("field y not found")
	}
	cut, err := before.Remove(r)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	e, changed := treeEdit(before, cut)
	if !changed {
		t.Fatalf("no edit")
	}
	if e.OldText != "int y; " || e.NewText != "" || e.Span.Start != 17 || e.Span.End != 24 {
		t.Fatalf("edit %+v", e)
	}
}

func TestCommitWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.cs")
	if err := os.WriteFile(path, []byte("class A {\n    int x;\n}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tree := parseFile(t, fs, id)
	res, err := NewEngine(fieldProvider).Plan(context.Background(), tree, fieldDiags(tree), Options{Mode: ModeAll})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	changes, err := Commit(fs, []*FileResult{res})
	if err != nil || len(changes) != 1 {
		t.Fatalf("commit: %v %v", changes, err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "class A {\n}\n" {
		t.Fatalf("written %q", got)
	}
	info, _ := os.Stat(path)
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode changed to %v", info.Mode())
	}
}

func TestCommitRefusesVirtual(t *testing.T) {
	fs := source.NewFileSet()
	tree := parseFile(t, fs, fs.AddVirtual("a.cs", []byte("class A { int x; }")))
	res, err := NewEngine(fieldProvider).Plan(context.Background(), tree, fieldDiags(tree), Options{Mode: ModeAll})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if _, err := Commit(fs, []*FileResult{res}); err == nil {
		t.Fatalf("virtual file must not be written")
	}
}
