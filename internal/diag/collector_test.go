package diag_test

import (
	"errors"
	"testing"

	"lintel/internal/diag"
	"lintel/internal/source"
)

func TestCollectorKeepsDuplicatesInOrder(t *testing.T) {
	var c diag.Collector
	sp := source.Span{File: 0, Start: 3, End: 7}
	first := diag.NewRule("a", diag.SevMajor, sp, "same")
	second := diag.NewRule("b", diag.SevMinor, sp, "same")
	for _, d := range []diag.Diagnostic{first, second, first} {
		if err := c.Report(d); err != nil {
			t.Fatalf("Report: %v", err)
		}
	}
	list := c.Seal()
	if list.Len() != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", list.Len())
	}
	if list.At(0).RuleID != "a" || list.At(1).RuleID != "b" || list.At(2).RuleID != "a" {
		t.Fatalf("discovery order lost: %+v", list.Items())
	}
}

func TestCollectorRejectsAfterSeal(t *testing.T) {
	var c diag.Collector
	_ = c.Report(diag.NewRule("a", diag.SevInfo, source.Span{}, "x"))
	list := c.Seal()
	err := c.Report(diag.NewRule("a", diag.SevInfo, source.Span{}, "y"))
	if !errors.Is(err, diag.ErrSealed) {
		t.Fatalf("expected ErrSealed, got %v", err)
	}
	if list.Len() != 1 || c.Len() != 1 {
		t.Fatalf("sealed list changed: list=%d collector=%d", list.Len(), c.Len())
	}
}

func TestListItemsIsACopy(t *testing.T) {
	l := diag.NewList([]diag.Diagnostic{diag.NewRule("a", diag.SevInfo, source.Span{}, "m")})
	items := l.Items()
	items[0].Message = "changed"
	if l.At(0).Message != "m" {
		t.Fatalf("List leaked its backing array")
	}
	n := 0
	for range diag.Concat(l, l).All() {
		n++
	}
	if n != 2 {
		t.Fatalf("Concat yielded %d items", n)
	}
}

func TestBagLimitAndSort(t *testing.T) {
	b := diag.NewBag(2)
	b.Add(diag.New(diag.SevMinor, diag.SynUnexpectedToken, source.Span{Start: 9, End: 10}, "late"))
	b.Add(diag.New(diag.SevCritical, diag.SynExpectToken, source.Span{Start: 1, End: 2}, "early"))
	if b.Add(diag.New(diag.SevInfo, diag.LexInfo, source.Span{}, "dropped")) {
		t.Fatalf("bag accepted diagnostic beyond its limit")
	}
	b.Sort()
	if b.Items()[0].Message != "early" {
		t.Fatalf("Sort did not order by position: %+v", b.Items())
	}
	if !b.HasAtLeast(diag.SevCritical) || b.HasAtLeast(diag.SevBlocker) {
		t.Fatalf("HasAtLeast misreports")
	}
}

func TestParseSeverity(t *testing.T) {
	for _, sev := range []diag.Severity{diag.SevInfo, diag.SevMinor, diag.SevMajor, diag.SevCritical, diag.SevBlocker} {
		got, err := diag.ParseSeverity(sev.String())
		if err != nil || got != sev {
			t.Fatalf("ParseSeverity(%q) = %v, %v", sev.String(), got, err)
		}
	}
	if _, err := diag.ParseSeverity("fatal"); err == nil {
		t.Fatalf("expected error for unknown severity")
	}
}
