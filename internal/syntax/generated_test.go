package syntax_test

import (
	"strings"
	"testing"

	"lintel/internal/syntax"
)

func TestIsGeneratedPath(t *testing.T) {
	for path, want := range map[string]bool{
		"Form1.Designer.cs":    true,
		"obj/Foo.g.cs":         true,
		"x/Model.generated.cs": true,
		"Program.cs":           false,
		"generated/Program.cs": false,
	} {
		if got := syntax.IsGeneratedPath(path); got != want {
			t.Fatalf("%s: got %v", path, got)
		}
	}
}

func TestGeneratedWholeFile(t *testing.T) {
	tree := parse(t, "a.cs", "// <auto-generated/>\nclass A { }")
	regions := syntax.GeneratedRegions(tree)
	if len(regions) != 1 || regions[0].Start != 0 || regions[0].End != uint32(len(tree.Text())) {
		t.Fatalf("regions = %v", regions)
	}
	if got := syntax.GeneratedRegions(parse(t, "A.g.cs", "class A { }")); len(got) != 1 {
		t.Fatalf("generated path not detected")
	}
}

func TestGeneratedRegionMarkers(t *testing.T) {
	src := "class A {\n// <auto-generated>\nint x;\n// </auto-generated>\nint y;\n// <auto-generated>\nint z;\n}\n"
	tree := parse(t, "a.cs", src)
	regions := syntax.GeneratedRegions(tree)
	if len(regions) != 2 {
		t.Fatalf("regions = %v", regions)
	}
	first := src[regions[0].Start:regions[0].End]
	if !strings.HasPrefix(first, "// <auto-generated>") || !strings.HasSuffix(first, "// </auto-generated>") {
		t.Fatalf("first region = %q", first)
	}
	if regions[1].End != uint32(len(src)) {
		t.Fatalf("unterminated region must run to EOF: %v", regions[1])
	}
	var fields []bool
	for r := range tree.Root().Preorder() {
		if r.Is(syntax.FieldDecl) {
			fields = append(fields, regions.Covers(r.Span()))
		}
	}
	if len(fields) != 3 || !fields[0] || fields[1] || !fields[2] {
		t.Fatalf("covers = %v", fields)
	}
	if len(syntax.GeneratedRegions(parse(t, "b.cs", "class A { }"))) != 0 {
		t.Fatalf("plain file has no regions")
	}
}
