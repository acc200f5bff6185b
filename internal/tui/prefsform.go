package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tailtray/tailtray/internal/prefs"
)

// FieldType defines the type of a preference field.
type FieldType int

const (
	fieldText FieldType = iota
	fieldToggle
)

// PrefField is a single row of the preferences form.
type PrefField struct {
	Label     string
	Key       prefs.Key
	Value     string
	BoolValue bool
	Type      FieldType
}

// PrefsForm manages the preferences panel.
type PrefsForm struct {
	fields  []PrefField
	cursor  int
	editing bool
	loaded  bool
	input   textinput.Model
	width   int
	height  int
}

// NewPrefsForm creates an empty form.
func NewPrefsForm() *PrefsForm {
	ti := textinput.New()
	ti.CharLimit = 512
	return &PrefsForm{
		input: ti,
	}
}

// Load populates fields from a reconciled preference set. An edit in progress
// keeps its input.
func (f *PrefsForm) Load(set prefs.Set) {
	fields := make([]PrefField, 0, len(prefs.Keys))
	for _, key := range prefs.Keys {
		v, err := set.Value(key)
		if err != nil {
			continue
		}
		field := PrefField{Label: key.Label(), Key: key}
		switch v := v.(type) {
		case bool:
			field.Type = fieldToggle
			field.BoolValue = v
		case string:
			field.Type = fieldText
			field.Value = v
		}
		fields = append(fields, field)
	}
	f.fields = fields
	f.loaded = true
	if f.cursor >= len(f.fields) {
		f.cursor = len(f.fields) - 1
	}
	if f.cursor < 0 {
		f.cursor = 0
	}
}

// SetSize updates dimensions.
func (f *PrefsForm) SetSize(width, height int) {
	f.width = width
	f.height = height
	f.input.Width = width - 26
}

// MoveUp moves cursor up.
func (f *PrefsForm) MoveUp() {
	if !f.editing && f.cursor > 0 {
		f.cursor--
	}
}

// MoveDown moves cursor down.
func (f *PrefsForm) MoveDown() {
	if !f.editing && f.cursor < len(f.fields)-1 {
		f.cursor++
	}
}

// Toggle returns the flipped value of the boolean field under the cursor.
// The displayed value is left alone until the daemon confirms the write.
func (f *PrefsForm) Toggle() (ok bool, key prefs.Key, value bool) {
	if f.cursor < 0 || f.cursor >= len(f.fields) {
		return false, "", false
	}
	field := f.fields[f.cursor]
	if field.Type != fieldToggle {
		return false, "", false
	}
	return true, field.Key, !field.BoolValue
}

// StartEdit begins inline editing of the current text field.
func (f *PrefsForm) StartEdit() bool {
	if f.cursor < 0 || f.cursor >= len(f.fields) {
		return false
	}
	field := f.fields[f.cursor]
	if field.Type != fieldText {
		return false
	}
	f.editing = true
	f.input.SetValue(field.Value)
	f.input.CursorEnd()
	f.input.Focus()
	return true
}

// FinishEdit confirms the current edit.
func (f *PrefsForm) FinishEdit() (changed bool, key prefs.Key, value string) {
	if !f.editing {
		return false, "", ""
	}
	f.editing = false
	f.input.Blur()

	field := f.fields[f.cursor]
	newVal := strings.TrimSpace(f.input.Value())
	if newVal == field.Value {
		return false, "", ""
	}
	return true, field.Key, newVal
}

// CancelEdit cancels the current edit.
func (f *PrefsForm) CancelEdit() {
	f.editing = false
	f.input.Blur()
}

// IsEditing returns whether a field is being edited.
func (f *PrefsForm) IsEditing() bool {
	return f.editing
}

// UpdateInput forwards a message to the text input.
func (f *PrefsForm) UpdateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// View renders the preferences form.
func (f *PrefsForm) View() string {
	if !f.loaded {
		return lipgloss.NewStyle().Foreground(colorDim).Render("Loading preferences...")
	}

	var lines []string
	for i, field := range f.fields {
		var line string
		label := settingsLabelStyle.Render(field.Label + ":")

		if field.Type == fieldToggle {
			var val string
			if field.BoolValue {
				val = settingsToggleOn.Render("[ON]")
			} else {
				val = settingsToggleOff.Render("[OFF]")
			}
			line = label + " " + val
		} else {
			if f.editing && i == f.cursor {
				line = label + " " + f.input.View()
			} else {
				val := field.Value
				if val == "" {
					val = lipgloss.NewStyle().Foreground(colorDim).Render("(empty)")
				} else {
					val = settingsValueStyle.Render(val)
				}
				line = label + " " + val
			}
		}

		if i == f.cursor {
			line = settingsCursorStyle.Width(f.width).Render(line)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
