package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akyairhashvil/mvno/internal/config"
	"github.com/akyairhashvil/mvno/internal/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	editName = iota
	editResource
	editPercent
	editFieldCount
)

var editLabels = [editFieldCount]string{
	editName:     "Name",
	editResource: "Resource",
	editPercent:  "Progress %",
}

// EditForm edits the name, resource and progress of one task.
type EditForm struct {
	inputs [editFieldCount]textinput.Model
	focus  int
	err    string
}

func NewEditForm() EditForm {
	var f EditForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = config.EditPanelWidth - 16
		f.inputs[i] = ti
	}
	f.inputs[editName].CharLimit = config.MaxNameLength
	f.inputs[editResource].CharLimit = config.MaxResourceLength
	f.inputs[editPercent].CharLimit = 3
	f.inputs[editPercent].Placeholder = "0-100"
	return f
}

// Load fills the form from t and focuses the progress field.
func (f *EditForm) Load(t models.Task) tea.Cmd {
	f.inputs[editName].SetValue(t.Name)
	f.inputs[editResource].SetValue(t.Resource)
	f.inputs[editPercent].SetValue(strconv.Itoa(t.PercentComplete))
	f.err = ""
	return f.setFocus(editPercent)
}

func (f *EditForm) setFocus(i int) tea.Cmd {
	f.focus = (i + editFieldCount) % editFieldCount
	for j := range f.inputs {
		if j != f.focus {
			f.inputs[j].Blur()
		}
	}
	return f.inputs[f.focus].Focus()
}

// Update handles field navigation and forwards the rest to the focused input.
func (f EditForm) Update(msg tea.Msg) (EditForm, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			return f, f.setFocus(f.focus + 1)
		case "shift+tab", "up":
			return f, f.setFocus(f.focus - 1)
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// Result builds the partial update against orig. Unchanged fields are left
// out so the store only writes what the user touched.
func (f EditForm) Result(orig models.Task) (models.TaskUpdate, error) {
	var upd models.TaskUpdate
	name := strings.TrimSpace(f.inputs[editName].Value())
	if name == "" {
		return upd, fmt.Errorf("name is required")
	}
	if name != orig.Name {
		upd.Name = &name
	}
	resource := strings.TrimSpace(f.inputs[editResource].Value())
	if resource != orig.Resource {
		upd.Resource = &resource
	}
	raw := strings.TrimSpace(f.inputs[editPercent].Value())
	pct, err := strconv.Atoi(raw)
	if err != nil || pct < 0 || pct > 100 {
		return upd, fmt.Errorf("progress must be a number from 0 to 100")
	}
	if pct != orig.PercentComplete {
		upd.PercentComplete = &pct
	}
	return upd, nil
}

func (f *EditForm) SetError(msg string) { f.err = msg }

func (f EditForm) View(theme Theme, title string) string {
	var b strings.Builder
	b.WriteString(theme.ModalTitle.Render(title))
	b.WriteString("\n")
	for i, in := range f.inputs {
		label := fmt.Sprintf("%-11s", editLabels[i])
		if i == f.focus {
			label = theme.Highlight.Render(label)
		} else {
			label = theme.Dim.Render(label)
		}
		b.WriteString(label + " " + in.View() + "\n")
	}
	if f.err != "" {
		b.WriteString(theme.Error.Render(f.err) + "\n")
	}
	b.WriteString(theme.Dim.Render("[tab] next field  [enter] save  [esc] cancel"))
	return theme.Input.Width(config.EditPanelWidth).Render(lipgloss.NewStyle().Render(b.String()))
}
