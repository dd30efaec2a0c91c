package ui

import (
	"github.com/yohamta/donburi"

	"github.com/hubastard/skirmish/engine/colors"
)

// Menu is a vertical list of options drawn as a panel in world space.
type Menu struct {
	MenuColor      colors.Color
	SelectionColor colors.Color
	TextColor      colors.Color
	Options        []string
	Selected       int
	FontSize       float32
}

var Component = donburi.NewComponentType[Menu]()

const DefaultFontSize = 30

var (
	DefaultMenuColor      = colors.Color{0.5, 0.5, 0.5, 0.7}
	DefaultSelectionColor = colors.Color{0.7, 0.7, 0.7, 0.8}
)

func NewMenu(options []string) Menu {
	return Menu{
		MenuColor:      DefaultMenuColor,
		SelectionColor: DefaultSelectionColor,
		TextColor:      colors.Black,
		Options:        options,
		FontSize:       DefaultFontSize,
	}
}

// MoveSelection shifts the selection by delta, clamped to the options.
func (m *Menu) MoveSelection(delta int) {
	m.Selected = min(max(m.Selected+delta, 0), max(len(m.Options)-1, 0))
}

func (m *Menu) SelectedOption() (string, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Options) {
		return "", false
	}
	return m.Options[m.Selected], true
}

// Size is the panel size in local units: one font size per character of the
// longest option by one font size per option.
func (m *Menu) Size() (w, h float32) {
	longest := 0
	for _, o := range m.Options {
		longest = max(longest, len([]rune(o)))
	}
	return m.FontSize * float32(longest), m.FontSize * float32(len(m.Options))
}

// SelectionRange is the vertical band of the selected option, 0 at the top
// of the panel and 1 at the bottom.
func (m *Menu) SelectionRange() [2]float32 {
	n := len(m.Options)
	if n == 0 {
		return [2]float32{}
	}
	sel := float32(min(max(m.Selected, 0), n-1))
	step := 1 / float32(n)
	return [2]float32{sel * step, (sel + 1) * step}
}
