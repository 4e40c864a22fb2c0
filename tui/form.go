package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formField struct {
	label       string
	placeholder string
	limit       int
}

// form is a small stack of text inputs with one focused at a time.
type form struct {
	title  string
	inputs []textinput.Model
	focus  int
	err    string
}

func newForm(title string, fields ...formField) form {
	f := form{title: title}
	for _, field := range fields {
		in := textinput.New()
		in.Prompt = field.label + ": "
		in.Placeholder = field.placeholder
		in.CharLimit = field.limit
		f.inputs = append(f.inputs, in)
	}
	return f
}

func newBookingForm() form {
	return newForm("Book seats",
		formField{label: "Aisle", placeholder: "e.g. V1, S3, T2", limit: 6},
		formField{label: "Start seat", placeholder: "1", limit: 4},
		formField{label: "Number of seats", placeholder: "1", limit: 4},
	)
}

func newPriceForm() form {
	return newForm("Update the ticket costs",
		formField{label: "Zone", placeholder: "VIP, SEATING or STANDING", limit: 8},
		formField{label: "Left seats", placeholder: "0.0", limit: 10},
		formField{label: "Center seats", placeholder: "0.0", limit: 10},
		formField{label: "Right seats", placeholder: "0.0", limit: 10},
	)
}

func (f *form) setFocus(i int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	if i < 0 {
		i = len(f.inputs) - 1
	}
	if i >= len(f.inputs) {
		i = 0
	}
	f.inputs[f.focus].Blur()
	f.focus = i
	return f.inputs[i].Focus()
}

func (f *form) next() tea.Cmd { return f.setFocus(f.focus + 1) }
func (f *form) prev() tea.Cmd { return f.setFocus(f.focus - 1) }

func (f form) onLastField() bool {
	return f.focus == len(f.inputs)-1
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f form) values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

func (f form) view() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(f.title))
	b.WriteString("\n\n")
	for _, in := range f.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(f.err))
		b.WriteString("\n")
	}
	return b.String()
}
