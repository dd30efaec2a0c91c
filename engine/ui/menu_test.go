package ui

import "testing"

func TestMoveSelectionClamps(t *testing.T) {
	tests := []struct {
		name  string
		start int
		delta int
		want  int
	}{
		{"down", 0, 1, 1},
		{"past end", 2, 1, 2},
		{"up at top", 0, -1, 0},
		{"big jump", 1, 10, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMenu([]string{"Attack", "Defend", "Idle"})
			m.Selected = tt.start
			m.MoveSelection(tt.delta)
			if m.Selected != tt.want {
				t.Fatalf("Selected = %d, want %d", m.Selected, tt.want)
			}
		})
	}
}

func TestMoveSelectionEmpty(t *testing.T) {
	m := NewMenu(nil)
	m.MoveSelection(1)
	if m.Selected != 0 {
		t.Fatalf("Selected = %d, want 0", m.Selected)
	}
	if _, ok := m.SelectedOption(); ok {
		t.Fatal("empty menu has a selected option")
	}
}

func TestSizeAndSelectionRange(t *testing.T) {
	m := NewMenu([]string{"Heal", "Attack", "Idle", "Inspect"})
	m.Selected = 1
	w, h := m.Size()
	if w != 30*7 || h != 30*4 {
		t.Fatalf("Size() = %v, %v", w, h)
	}
	if got := m.SelectionRange(); got != [2]float32{0.25, 0.5} {
		t.Fatalf("SelectionRange() = %v", got)
	}
	if got, _ := m.SelectedOption(); got != "Attack" {
		t.Fatalf("SelectedOption() = %q", got)
	}
}

func TestNewMenuDefaults(t *testing.T) {
	m := NewMenu([]string{"a"})
	if m.MenuColor != DefaultMenuColor || m.SelectionColor != DefaultSelectionColor || m.FontSize != 30 || m.Selected != 0 {
		t.Fatalf("defaults = %+v", m)
	}
}
