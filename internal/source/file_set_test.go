package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("a.cs", []byte("class A {}"), 0)
	id2 := fs.Add("a.cs", []byte("class B {}"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.Lookup("./a.cs")
	if !ok || latest.ID != id2 {
		t.Fatalf("Lookup = %v,%v; want id %d", latest, ok, id2)
	}
	// старая версия всё ещё доступна
	if got := string(fs.Get(id1).Content); got != "class A {}" {
		t.Fatalf("old content = %q", got)
	}
	if fs.Len() != 2 {
		t.Fatalf("Len = %d, want 2", fs.Len())
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.cs", []byte("ab\ncd\n\nef"))
	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}},
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{8, LineCol{4, 2}},
	}
	for _, c := range cases {
		got, _ := fs.Resolve(Span{File: id, Start: c.off, End: c.off})
		if got != c.want {
			t.Fatalf("offset %d: got %+v, want %+v", c.off, got, c.want)
		}
	}
}

func TestGetLineStripsCR(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.cs", []byte("first\r\nsecond"))
	f := fs.Get(id)
	if f.Flags&FileHasCRLF == 0 {
		t.Fatalf("expected CRLF flag")
	}
	if got := f.GetLine(1); got != "first" {
		t.Fatalf("line 1 = %q", got)
	}
	if got := f.GetLine(2); got != "second" {
		t.Fatalf("line 2 = %q", got)
	}
	if got := f.GetLine(3); got != "" {
		t.Fatalf("line 3 = %q", got)
	}
}

func TestLoadKeepsLineEndingsAndStripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bom.cs")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("class A\r\n{\r\n}\r\n")...)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "class A\r\n{\r\n}\r\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Fatalf("expected BOM flag")
	}
	if got := f.RestoreBOM(f.Content); string(got) != string(raw) {
		t.Fatalf("RestoreBOM did not reproduce the original bytes")
	}
}

func TestSpanRelations(t *testing.T) {
	outer := Span{File: 1, Start: 10, End: 20}
	if !outer.Contains(Span{File: 1, Start: 12, End: 20}) {
		t.Fatalf("expected containment")
	}
	if outer.Contains(Span{File: 2, Start: 12, End: 13}) {
		t.Fatalf("spans of different files never contain each other")
	}
	if outer.Overlaps(Span{File: 1, Start: 20, End: 25}) {
		t.Fatalf("adjacent spans must not overlap")
	}
	if got := outer.Cover(Span{File: 1, Start: 5, End: 11}); got != (Span{File: 1, Start: 5, End: 20}) {
		t.Fatalf("Cover = %v", got)
	}
	if got := outer.Cover(Span{File: 2, Start: 0, End: 99}); got != outer {
		t.Fatalf("Cover across files must keep the span, got %v", got)
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "base")
	target := filepath.Join(tmp, "other", "file.cs")

	got, err := RelativePath(target, base)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatPathModes(t *testing.T) {
	f := &File{Path: "/very/long/absolute/path/that/goes/on/src/Program.cs"}
	if got := f.FormatPath("auto", ""); got != "Program.cs" {
		t.Fatalf("auto = %q", got)
	}
	if got := f.FormatPath("relative", "/very/long/absolute/path/that/goes/on"); got != "src/Program.cs" {
		t.Fatalf("relative = %q", got)
	}
	short := &File{Path: "src/A.cs"}
	if got := short.FormatPath("auto", ""); got != "src/A.cs" {
		t.Fatalf("auto short = %q", got)
	}
	if got := short.FormatPath("bogus", ""); got != "src/A.cs" {
		t.Fatalf("unknown mode = %q", got)
	}
}

func TestLineBlock(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("x.cs", []byte("a\nbb\nccc")))
	cases := []struct {
		from, to   uint32
		start, end uint32
	}{
		{1, 1, 0, 2},
		{2, 3, 2, 8},
		{3, 3, 5, 8},
		{9, 9, 8, 8},
	}
	for _, c := range cases {
		s, e := f.LineBlock(c.from, c.to)
		if s != c.start || e != c.end {
			t.Fatalf("LineBlock(%d,%d) = %d,%d; want %d,%d", c.from, c.to, s, e, c.start, c.end)
		}
	}
}
