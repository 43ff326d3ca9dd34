package environ

import (
	"os"
	"strings"
	"testing"
)

func TestComposePathFirst(t *testing.T) {
	t.Setenv("PATH", "/usr/bin:/bin")

	env := Compose("/x", []Var{{Key: "FOO", Value: "a;b"}, {Key: "BAR", Value: "c"}})

	want := []string{"PATH=/x:/usr/bin:/bin", "FOO=a;b", "BAR=c"}
	if len(env) != len(want) {
		t.Fatalf("expected %d entries, got %d: %v", len(want), len(env), env)
	}
	for i := range want {
		if env[i] != want[i] {
			t.Errorf("entry %d: got %q, want %q", i, env[i], want[i])
		}
	}
}

func TestComposeNoExtras(t *testing.T) {
	env := Compose("/cache/tools", nil)
	if len(env) != 1 {
		t.Fatalf("expected single PATH entry, got %v", env)
	}
	prefix := "PATH=/cache/tools" + string(os.PathListSeparator)
	if !strings.HasPrefix(env[0], prefix) {
		t.Errorf("got %q, want prefix %q", env[0], prefix)
	}
}

func TestParseAssignmentsRestoresSemicolon(t *testing.T) {
	vars, err := ParseAssignments([]string{"FOO=a" + SemicolonPlaceholder + "b", "BAR=c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vars) != 2 {
		t.Fatalf("expected 2 vars, got %d", len(vars))
	}
	if vars[0].Key != "FOO" || vars[0].Value != "a;b" {
		t.Errorf("first var: got %s=%s, want FOO=a;b", vars[0].Key, vars[0].Value)
	}
	if vars[1].String() != "BAR=c" {
		t.Errorf("second var: got %q, want BAR=c", vars[1].String())
	}
}

func TestParseAssignmentsPreservesOrder(t *testing.T) {
	in := []string{"C=3", "A=1", "B=2"}
	vars, err := ParseAssignments(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, raw := range in {
		if vars[i].String() != raw {
			t.Errorf("entry %d: got %q, want %q", i, vars[i].String(), raw)
		}
	}
}

func TestParseAssignmentsRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"NOVALUE", "=value", "  =x"} {
		if _, err := ParseAssignments([]string{raw}); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func TestParseAssignmentsEmpty(t *testing.T) {
	vars, err := ParseAssignments(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vars != nil {
		t.Errorf("expected nil vars, got %v", vars)
	}
}
