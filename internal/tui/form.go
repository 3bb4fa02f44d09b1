package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldChoice
)

// formField describes one input. Forms are built from a slice of these so new content
// kinds only need a new descriptor list.
type formField struct {
	key         string
	label       string
	kind        fieldKind
	value       string   // initial text, or the preselected choice
	choices     []string // fieldChoice only
	placeholder string
	required    bool
}

type formModel struct {
	title  string
	fields []formField
	inputs []textinput.Model
	choice []int
	focus  int
	err    string
}

func newForm(title string, fields []formField) formModel {
	f := formModel{
		title:  title,
		fields: fields,
		inputs: make([]textinput.Model, len(fields)),
		choice: make([]int, len(fields)),
	}
	for i, fd := range fields {
		switch fd.kind {
		case fieldChoice:
			for j, c := range fd.choices {
				if c == fd.value {
					f.choice[i] = j
				}
			}
		default:
			ti := textinput.New()
			ti.Prompt = ""
			ti.Placeholder = fd.placeholder
			ti.CharLimit = 200
			ti.SetValue(fd.value)
			f.inputs[i] = ti
		}
	}
	f.setFocus(0)
	return f
}

func (f *formModel) setFocus(i int) {
	if len(f.fields) == 0 {
		return
	}
	i = (i + len(f.fields)) % len(f.fields)
	for j := range f.inputs {
		if f.fields[j].kind == fieldText {
			f.inputs[j].Blur()
		}
	}
	f.focus = i
	if f.fields[i].kind == fieldText {
		f.inputs[i].Focus()
		f.inputs[i].CursorEnd()
	}
}

// Values returns the trimmed value of each field by key.
func (f formModel) Values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for i, fd := range f.fields {
		switch fd.kind {
		case fieldChoice:
			if len(fd.choices) > 0 {
				out[fd.key] = fd.choices[f.choice[i]]
			} else {
				out[fd.key] = ""
			}
		default:
			out[fd.key] = strings.TrimSpace(f.inputs[i].Value())
		}
	}
	return out
}

// validate reports the first required field left empty.
func (f formModel) validate() string {
	vals := f.Values()
	for _, fd := range f.fields {
		if fd.required && vals[fd.key] == "" {
			return fd.label + " is required"
		}
	}
	return ""
}

type formResult int

const (
	formPending formResult = iota
	formSubmitted
	formCanceled
)

func (f formModel) Update(msg tea.Msg) (formModel, formResult, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc", "ctrl+g":
			return f, formCanceled, nil
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return f, formPending, nil
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return f, formPending, nil
		case "enter", "ctrl+s":
			if km.String() == "enter" && f.focus < len(f.fields)-1 {
				f.setFocus(f.focus + 1)
				return f, formPending, nil
			}
			if e := f.validate(); e != "" {
				f.err = e
				return f, formPending, nil
			}
			f.err = ""
			return f, formSubmitted, nil
		}
		if len(f.fields) > 0 && f.fields[f.focus].kind == fieldChoice {
			n := len(f.fields[f.focus].choices)
			switch km.String() {
			case "left", "h":
				if n > 0 {
					f.choice[f.focus] = (f.choice[f.focus] - 1 + n) % n
				}
			case "right", "l", " ":
				if n > 0 {
					f.choice[f.focus] = (f.choice[f.focus] + 1) % n
				}
			}
			return f, formPending, nil
		}
	}

	if len(f.fields) == 0 || f.fields[f.focus].kind != fieldText {
		return f, formPending, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, formPending, cmd
}

func (f formModel) View(width int) string {
	bodyW := modalBodyWidth(width)
	label := lipgloss.NewStyle().Bold(true)
	inputBox := lipgloss.NewStyle().Background(colorControlBg).Width(bodyW)

	var rows []string
	for i, fd := range f.fields {
		name := fd.label
		if fd.required {
			name += " *"
		}
		if i == f.focus {
			name = styleSectionTitle().Render("› " + name)
		} else {
			name = label.Render("  " + name)
		}
		rows = append(rows, name)

		switch fd.kind {
		case fieldChoice:
			val := "(none)"
			if len(fd.choices) > 0 {
				val = "‹ " + fd.choices[f.choice[i]] + " ›"
			}
			rows = append(rows, inputBox.Render(val))
		default:
			f.inputs[i].Width = bodyW - 1
			rows = append(rows, inputBox.Render(f.inputs[i].View()))
		}
		rows = append(rows, "")
	}
	if f.err != "" {
		rows = append(rows, styleStatus(statusError).Render(f.err), "")
	}
	rows = append(rows, styleMuted().Width(bodyW).Render("tab: next field   ←/→: change choice   enter: next/create   esc: cancel"))
	return renderModalBox(width, f.title, strings.Join(rows, "\n"))
}
