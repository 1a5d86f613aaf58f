package alias

import (
	"errors"
	"fmt"
)

var (
	ErrExists   = errors.New("already exists")
	ErrNotFound = errors.New("unregistered alias")
)

type Alias struct {
	Name    string `json:"name"`
	Command string `json:"command"`
}

// Table maps alias names to replacement text. Names are unique and List
// reports entries in insertion order.
type Table struct {
	entries []Alias
}

func NewTable() *Table {
	return &Table{}
}

func (t *Table) Add(name, command string) error {
	if name == "" {
		return errors.New("empty alias name")
	}
	if _, ok := t.index(name); ok {
		return fmt.Errorf("%s: %w", name, ErrExists)
	}
	t.entries = append(t.entries, Alias{Name: name, Command: command})
	return nil
}

func (t *Table) Remove(name string) error {
	i, ok := t.index(name)
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	return nil
}

// Lookup matches name exactly.
func (t *Table) Lookup(name string) (string, bool) {
	i, ok := t.index(name)
	if !ok {
		return "", false
	}
	return t.entries[i].Command, true
}

func (t *Table) List() []Alias {
	out := make([]Alias, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Table) Len() int { return len(t.entries) }

func (t *Table) index(name string) (int, bool) {
	for i := range t.entries {
		if t.entries[i].Name == name {
			return i, true
		}
	}
	return -1, false
}
