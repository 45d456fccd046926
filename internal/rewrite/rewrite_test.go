package rewrite_test

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"lintel/internal/parser"
	"lintel/internal/rewrite"
	"lintel/internal/source"
	"lintel/internal/syntax"
)

func parse(t *testing.T, src string) *syntax.Tree {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.cs", []byte(src))
	res, err := parser.Parse(fs.Get(id), parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.HasErrors() {
		t.Fatalf("input has syntax errors: %v", res.Diagnostics)
	}
	return res.Tree
}

// nth returns the n-th node of kind in document order.
func nth(tree *syntax.Tree, kind syntax.Kind, n int) syntax.Ref {
	for r := range tree.Root().Preorder() {
		if r.Kind() != kind {
			continue
		}
		if n == 0 {
			return r
		}
		n--
	}
	return syntax.Ref{}
}

func section(a *txtar.Archive, name string) (string, bool) {
	for _, f := range a.Files {
		if f.Name == name {
			return string(f.Data), true
		}
	}
	return "", false
}

// targets reads lines of the form "Kind [index]".
func targets(t *testing.T, tree *syntax.Tree, list string) []syntax.Ref {
	t.Helper()
	var out []syntax.Ref
	for line := range strings.Lines(list) {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		kind, ok := syntax.KindByName(fields[0])
		if !ok {
			t.Fatalf("unknown kind %q", fields[0])
		}
		n := 0
		if len(fields) > 1 {
			var err error
			if n, err = strconv.Atoi(fields[1]); err != nil {
				t.Fatalf("bad index in %q", line)
			}
		}
		r := nth(tree, kind, n)
		if r.IsZero() {
			t.Fatalf("no %s #%d in input", kind, n)
		}
		out = append(out, r)
	}
	return out
}

func TestRemoveFixtures(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil || len(files) == 0 {
		t.Fatalf("no fixtures: %v", err)
	}
	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			a, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatalf("read fixture: %v", err)
			}
			input, _ := section(a, "input.cs")
			list, _ := section(a, "target")
			tree := parse(t, input)
			got, err := rewrite.RemoveNodes(tree, targets(t, tree, list))

			if want, ok := section(a, "error"); ok {
				if !errors.Is(err, rewrite.ErrAmbiguous) {
					t.Fatalf("want ambiguity error, got %v", err)
				}
				if !strings.Contains(err.Error(), strings.TrimSpace(want)) {
					t.Fatalf("error %q does not mention %q", err, strings.TrimSpace(want))
				}
				return
			}
			if err != nil {
				t.Fatalf("remove: %v", err)
			}
			want, _ := section(a, "want.cs")
			if got.Text() != want {
				t.Fatalf("got:\n%s\nwant:\n%s", got.Text(), want)
			}
			if tree.Text() != input {
				t.Fatalf("input tree was modified")
			}
			if len(got.Tags()) != 0 {
				t.Fatalf("annotations leaked: %v", got.Tags())
			}
		})
	}
}

func TestRemoveForeignRef(t *testing.T) {
	a := parse(t, "class A { int x; }")
	b := parse(t, "class A { int x; }")
	_, err := rewrite.RemoveNode(a, nth(b, syntax.FieldDecl, 0))
	if !errors.Is(err, syntax.ErrForeignRef) {
		t.Fatalf("want ErrForeignRef, got %v", err)
	}
}

func TestRemoveRoot(t *testing.T) {
	tree := parse(t, "class A { }")
	_, err := rewrite.RemoveNode(tree, tree.Root())
	if !errors.Is(err, syntax.ErrNotRemovable) {
		t.Fatalf("want ErrNotRemovable, got %v", err)
	}
}

func TestRemoveMandatorySlot(t *testing.T) {
	tree := parse(t, "class A { void M() { return 1 + 2; } }")
	_, err := rewrite.RemoveNode(tree, nth(tree, syntax.NumericLiteral, 0))
	if !errors.Is(err, syntax.ErrNotRemovable) {
		t.Fatalf("want ErrNotRemovable, got %v", err)
	}
}

func TestAmbiguityErrorDetails(t *testing.T) {
	tree := parse(t, "class A { void M() { F(a, /* x */ b); } }")
	_, err := rewrite.RemoveNode(tree, nth(tree, syntax.Argument, 0))
	var amb *rewrite.AmbiguityError
	if !errors.As(err, &amb) {
		t.Fatalf("want *AmbiguityError, got %v", err)
	}
	if amb.Kind != syntax.Argument || amb.Span.Start != 23 {
		t.Fatalf("unexpected details: %s at %d", amb.Kind, amb.Span.Start)
	}
}

func TestRemoveNothing(t *testing.T) {
	tree := parse(t, "class A { }")
	got, err := rewrite.RemoveNodes(tree, nil)
	if err != nil || got != tree {
		t.Fatalf("empty removal must return the input: %v", err)
	}
}
