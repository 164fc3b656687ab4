package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"glslgen/internal/diagfmt"
)

// printAndStore is:
//
//	uniform float time; varying vec2 color;
//	void main() { print(time); color = vec2(time); }
const printAndStore = `{"ast": {"type": "Program", "statements": [
  {"type": "FunctionDeclaration", "name": "main", "returnType": {"type": "Type", "name": "void"}, "parameters": [],
   "body": {"type": "Scope", "statements": [
     {"type": "ExpressionStatement", "expression": {"type": "FunctionCall", "function_name": "print",
       "parameters": [{"type": "Identifier", "name": "time"}]}},
     {"type": "ExpressionStatement", "expression": {"type": "BinaryExpression",
       "operator": {"type": "Operator", "operator": "="},
       "left": {"type": "Identifier", "name": "color"},
       "right": {"type": "FunctionCall", "function_name": "vec2", "parameters": [{"type": "Identifier", "name": "time"}]}}}
   ]}}]},
 "uniforms": ["time"], "varyings": ["color"]}`

// chainedLocals is `void main() { float x, y; x = y = 1.5; }`.
const chainedLocals = `{"ast": {"type": "Program", "statements": [
  {"type": "FunctionDeclaration", "name": "main", "returnType": {"type": "Type", "name": "void"}, "parameters": [],
   "body": {"type": "Scope", "statements": [
     {"type": "Declarator", "typeAttribute": {"type": "Type", "name": "float"}, "declarators": [
       {"type": "DeclaratorItem", "name": {"type": "Identifier", "name": "x"}},
       {"type": "DeclaratorItem", "name": {"type": "Identifier", "name": "y"}}]},
     {"type": "ExpressionStatement", "expression": {"type": "BinaryExpression",
       "operator": {"type": "Operator", "operator": "="},
       "left": {"type": "Identifier", "name": "x"},
       "right": {"type": "BinaryExpression", "operator": {"type": "Operator", "operator": "="},
         "left": {"type": "Identifier", "name": "y"}, "right": {"type": "FloatLiteral", "value": 1.5}}}}
   ]}}]}}`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "glslgen.toml", "[translate]\nstyle = \"py\"\n")
	values := writeFile(t, dir, "values.toml", "[globals]\ntime = 2.0\n")
	shader := writeFile(t, dir, "store.json", printAndStore)

	stdout, stderr, err := execute(t, "run", "--config", cfg, "--color", "off", "--env", values, "--values", shader)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, stderr)
	}
	want := strings.Join([]string{
		"2",
		"get time 2",
		"get time 2",
		"set color vec2(2, 2)",
		"color = vec2(2, 2)",
		"time = 2",
		"",
	}, "\n")
	if stdout != want {
		t.Errorf("stdout:\n%s\nwant:\n%s", stdout, want)
	}
}

func TestTranslateCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "glslgen.toml", "")
	shader := writeFile(t, dir, "store.json", printAndStore)
	out := filepath.Join(dir, "store.js")

	_, stderr, err := execute(t, "translate", "--config", cfg, "--style", "js", "--color", "off", "-o", out, shader)
	if err != nil {
		t.Fatalf("translate: %v\n%s", err, stderr)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"function(GLSL, env) {", "RT.print(env.get('time'));", "env.set('color', RT.Vec2(env.get('time')));"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output missing %q:\n%s", want, data)
		}
	}
}

func TestTranslateSoftFailure(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "glslgen.toml", "")
	shader := writeFile(t, dir, "chained.json", chainedLocals)

	_, stderr, err := execute(t, "translate", "--config", cfg, "--style", "py", "--color", "off", "-o", filepath.Join(dir, "x.py"), shader)
	if !errors.Is(err, errSoftFailure) {
		t.Fatalf("err = %v", err)
	}
	for _, want := range []string{"did not load", "V_x = V_y = 1.5", "CG1006"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
}

func TestTranslateJSONDiagnostics(t *testing.T) {
	t.Cleanup(func() { _ = rootCmd.PersistentFlags().Set("diagnostics-format", "pretty") })
	dir := t.TempDir()
	cfg := writeFile(t, dir, "glslgen.toml", "")
	shader := writeFile(t, dir, "chained.json", chainedLocals)

	_, stderr, err := execute(t, "translate", "--config", cfg, "--style", "py", "--color", "off",
		"--diagnostics-format", "json", "-o", filepath.Join(dir, "x.py"), shader)
	if !errors.Is(err, errSoftFailure) {
		t.Fatalf("err = %v", err)
	}
	var doc diagfmt.DiagnosticsOutput
	if err := json.NewDecoder(strings.NewReader(stderr)).Decode(&doc); err != nil {
		t.Fatalf("decode %q: %v", stderr, err)
	}
	if doc.Count != 1 || doc.Diagnostics[0].Code != "CG1006" || doc.Diagnostics[0].Location.File != "chained.json" {
		t.Errorf("doc = %+v", doc)
	}
}

func TestMemProfileFlag(t *testing.T) {
	t.Cleanup(func() { _ = rootCmd.PersistentFlags().Set("mem-profile", "") })
	dir := t.TempDir()
	cfg := writeFile(t, dir, "glslgen.toml", "")
	shader := writeFile(t, dir, "store.json", printAndStore)
	heap := filepath.Join(dir, "heap.pprof")

	_, stderr, err := execute(t, "translate", "--config", cfg, "--style", "js", "--color", "off",
		"--mem-profile", heap, "-o", filepath.Join(dir, "store.js"), shader)
	if err != nil {
		t.Fatalf("translate: %v\n%s", err, stderr)
	}
	if info, err := os.Stat(heap); err != nil || info.Size() == 0 {
		t.Errorf("heap profile not written: %v", err)
	}
}

func TestVersionJSON(t *testing.T) {
	stdout, _, err := execute(t, "version", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}
	if payload.Tool != "glslgen" || len(payload.Styles) != 2 {
		t.Errorf("payload = %+v", payload)
	}
}

func TestRenderSoftFailure(t *testing.T) {
	got := renderSoftFailure("a.json", "line one\nline two\n", "boom")
	for _, want := range []string{"a.json: generated source did not load", "1 line one", "2 line two", "boom"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "auto": uiModeAuto, "on": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("expected error")
	}
}
