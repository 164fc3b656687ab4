package diag

import (
	"testing"

	"glslgen/internal/ast"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     CodegenUnsupportedOperator,
			Message:  "another",
			Pos:      ast.Pos{Line: 2, Col: 1},
		},
		{
			Severity: SevError,
			Code:     HostCompileFailed,
			Message:  "first line\nsecond",
			Pos:      ast.Pos{Line: 1, Col: 1},
			Notes: []Note{
				{Pos: ast.Pos{Line: 2, Col: 1}, Msg: "note line"},
			},
		},
	}

	expected := "error HOST2001 1:1 first line second\n" +
		"note HOST2001 2:1 note line\n" +
		"warning CG1001 2:1 another"

	if got := FormatGoldenDiagnostics(diags, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBagLimitSortDedup(t *testing.T) {
	b := NewBag(3)
	late := NewError(HostCompileFailed, ast.Pos{Line: 9, Col: 1}, "late")
	early := New(SevWarning, CodegenUnsupportedOperator, ast.Pos{Line: 1, Col: 4}, "early")
	for _, d := range []Diagnostic{late, early, early} {
		if !b.Add(d) {
			t.Fatalf("Add(%v) rejected below the limit", d)
		}
	}
	if b.Add(late) {
		t.Fatal("Add accepted past the limit")
	}
	b.Dedup()
	b.Sort()
	items := b.Items()
	if len(items) != 2 || items[0].Message != "early" || items[1].Message != "late" {
		t.Fatalf("unexpected items %v", items)
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Error("severity queries")
	}
	if NewBag(-1).Cap() != 0 || NewBag(1<<20).Cap() != ^uint16(0) {
		t.Error("limit clamping")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	b := ReportWarning(r, CodegenUnsupportedOperator, ast.Pos{Line: 3, Col: 2}, "operator ',' has no runtime mapping").
		WithNote(ast.Pos{}, "emitted as an inert expression")
	b.Emit()
	b.Emit()
	ReportWarning(r, CodegenUnsupportedOperator, ast.Pos{Line: 3, Col: 2}, "operator ',' has no runtime mapping").Emit()
	if bag.Len() != 1 {
		t.Fatalf("bag has %d items, want 1", bag.Len())
	}
	if got := bag.Items()[0].String(); got != "warning CG1001 3:2 operator ',' has no runtime mapping" {
		t.Errorf("String() = %q", got)
	}
}
