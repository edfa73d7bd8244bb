package shell

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistryGroups(t *testing.T) {
	r := NewRegistry()
	r.Register(Command{Name: "b", Category: "Second"})
	r.Register(Command{Name: "a", Category: "First"})
	r.Register(Command{Name: "c"})
	r.Register(Command{Name: "d", Category: "Second"})
	r.Register(Command{Name: "b", Category: "Second", Description: "replaced"})

	if r.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", r.Len())
	}

	var got [][]string
	for _, g := range r.Groups() {
		row := []string{g.Category}
		for _, c := range g.Commands {
			row = append(row, c.Name)
		}
		got = append(got, row)
	}
	want := [][]string{
		{"Second", "b", "d"},
		{"First", "a"},
		{DefaultCategory, "c"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Groups() mismatch (-want +got):\n%s", diff)
	}

	if cmd, _ := r.Lookup("b"); cmd.Description != "replaced" {
		t.Errorf("Lookup(b).Description = %q", cmd.Description)
	}
	if _, ok := r.Lookup("zzz"); ok {
		t.Error("Lookup(zzz) found a command")
	}
}
