package alias

import (
	"errors"
	"testing"
)

func TestTable_AddLookupRemove(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Add("ll", "ls -l"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got, ok := tbl.Lookup("ll"); !ok || got != "ls -l" {
		t.Fatalf("Lookup(ll)=%q,%v", got, ok)
	}
	if _, ok := tbl.Lookup("l"); ok {
		t.Fatalf("Lookup must match exactly")
	}
	if err := tbl.Remove("ll"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := tbl.Lookup("ll"); ok {
		t.Fatalf("alias still present after Remove")
	}
}

func TestTable_RejectsDuplicates(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Add("ll", "ls -l"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	err := tbl.Add("ll", "ls -la")
	if !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if got, _ := tbl.Lookup("ll"); got != "ls -l" {
		t.Fatalf("duplicate Add replaced value: %q", got)
	}
}

func TestTable_RemoveMissing(t *testing.T) {
	if err := NewTable().Remove("x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTable_ListKeepsInsertionOrder(t *testing.T) {
	tbl := NewTable()
	for _, name := range []string{"c", "a", "b"} {
		if err := tbl.Add(name, name+"!"); err != nil {
			t.Fatalf("Add(%s): %v", name, err)
		}
	}
	if err := tbl.Remove("a"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := tbl.Add("a", "again"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	got := tbl.List()
	want := []string{"c", "b", "a"}
	if len(got) != len(want) {
		t.Fatalf("List=%v", got)
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Fatalf("List[%d]=%s want %s", i, got[i].Name, want[i])
		}
	}

	got[0].Command = "mutated"
	if cmd, _ := tbl.Lookup("c"); cmd != "c!" {
		t.Fatalf("List must return a copy")
	}
}

func TestTable_RejectsEmptyName(t *testing.T) {
	if err := NewTable().Add("", "x"); err == nil {
		t.Fatalf("expected error for empty name")
	}
}
