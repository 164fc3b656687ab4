package visit

import (
	"errors"
	"strings"
	"testing"

	"glslgen/internal/ast"
)

func newNameDispatcher() *Dispatcher[*[]string, string] {
	table := Table[*[]string, string]{
		ast.TagIdentifier: func(seen *[]string, n ast.Node) (string, error) {
			id := n.(*ast.Identifier)
			*seen = append(*seen, id.Name)
			return id.Name, nil
		},
		ast.TagPreprocessor: Ignore[*[]string, string],
	}
	return New("names", table)
}

func TestVisitRoutesByTag(t *testing.T) {
	d := newNameDispatcher()
	var seen []string
	got, err := d.Visit(&seen, &ast.Identifier{Name: "a"})
	if err != nil {
		t.Fatalf("Visit: %v", err)
	}
	if got != "a" || len(seen) != 1 {
		t.Errorf("got %q, seen %v", got, seen)
	}
}

func TestVisitNil(t *testing.T) {
	d := newNameDispatcher()
	var seen []string
	got, err := d.Visit(&seen, nil)
	if err != nil || got != "" {
		t.Errorf("Visit(nil) = %q, %v", got, err)
	}
}

func TestVisitAll(t *testing.T) {
	d := newNameDispatcher()
	tests := []struct {
		name  string
		nodes []ast.Node
		want  []string
	}{
		{"nil input", nil, nil},
		{"empty input", []ast.Node{}, nil},
		{"ignored only", []ast.Node{&ast.Preprocessor{}}, nil},
		{"mixed", []ast.Node{
			&ast.Identifier{Name: "x"},
			&ast.Preprocessor{Directive: "#define"},
			&ast.Identifier{Name: "y"},
		}, []string{"x", "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen []string
			got, err := d.VisitAll(&seen, tt.nodes)
			if err != nil {
				t.Fatalf("VisitAll: %v", err)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") || (got == nil) != (tt.want == nil) {
				t.Errorf("VisitAll = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestUnsupportedTag(t *testing.T) {
	d := newNameDispatcher()
	var seen []string
	_, err := d.Visit(&seen, &ast.DiscardStatement{Pos: ast.Pos{Line: 4, Col: 2}})
	if !errors.Is(err, ErrUnsupportedNode) {
		t.Fatalf("expected ErrUnsupportedNode, got %v", err)
	}
	var ue *UnsupportedError
	if !errors.As(err, &ue) || ue.Tag != ast.TagDiscardStatement || ue.Component != "names" {
		t.Fatalf("unexpected error %#v", err)
	}
	if want := "names: DiscardStatement at 4:2: unsupported node"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestVisitAllStopsAtFirstError(t *testing.T) {
	d := newNameDispatcher()
	var seen []string
	_, err := d.VisitAll(&seen, []ast.Node{
		&ast.Identifier{Name: "a"},
		&ast.BreakStatement{},
		&ast.Identifier{Name: "b"},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(seen) != 1 {
		t.Errorf("visited %v after failure", seen)
	}
}
