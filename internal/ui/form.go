package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/inventory/internal/models"
)

const (
	nameField = iota
	priceField
	quantityField
)

var fieldLabels = [...]string{"Name*", "Price*", "Quantity*"}

// itemForm is the three-field editor shared by the entry and edit screens.
type itemForm struct {
	inputs []textinput.Model
	focus  int
	id     int64
}

func newItemForm(details models.ItemDetails, currencySymbol string) itemForm {
	inputs := make([]textinput.Model, len(fieldLabels))

	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 64
		ti.Width = 32
		inputs[i] = ti
	}

	inputs[nameField].Placeholder = "Item name"
	inputs[priceField].Placeholder = "Price (" + currencySymbol + ")"
	inputs[quantityField].Placeholder = "Quantity in stock"

	f := itemForm{inputs: inputs}
	f.setDetails(details)
	f.inputs[nameField].Focus()
	return f
}

// setDetails overwrites every field.
func (f *itemForm) setDetails(details models.ItemDetails) {
	f.id = details.ID
	f.inputs[nameField].SetValue(details.Name)
	f.inputs[priceField].SetValue(details.Price)
	f.inputs[quantityField].SetValue(details.Quantity)
}

// details returns the form contents.
func (f itemForm) details() models.ItemDetails {
	return models.ItemDetails{
		ID:       f.id,
		Name:     f.inputs[nameField].Value(),
		Price:    f.inputs[priceField].Value(),
		Quantity: f.inputs[quantityField].Value(),
	}
}

func (f *itemForm) next() tea.Cmd {
	return f.focusOn((f.focus + 1) % len(f.inputs))
}

func (f *itemForm) prev() tea.Cmd {
	return f.focusOn((f.focus - 1 + len(f.inputs)) % len(f.inputs))
}

func (f *itemForm) focusOn(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = i
	return f.inputs[f.focus].Focus()
}

// update forwards msg to the focused input.
func (f *itemForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f itemForm) View() string {
	var b strings.Builder
	for i, input := range f.inputs {
		cursor := "  "
		if i == f.focus {
			cursor = styles.ok.Render("> ")
		}
		b.WriteString(cursor + styles.label.Render(fieldLabels[i]) + " " + input.View() + "\n")
	}
	b.WriteString(styles.help.Render("*required fields"))
	return b.String()
}
