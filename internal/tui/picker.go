package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/studiowebux/voidrunner/internal/languages"
)

// languageItem is one selectable language in the picker
type languageItem struct {
	desc   languages.LanguageDescriptor
	active bool
}

func (i languageItem) Title() string {
	if i.active {
		return i.desc.Name + " (current)"
	}
	return i.desc.Name
}

func (i languageItem) Description() string {
	return fmt.Sprintf("%s, %s", i.desc.ID, i.desc.Extension)
}

func (i languageItem) FilterValue() string { return i.desc.Name + " " + i.desc.ID }

// newPicker builds the language list with the current language selected
func newPicker(catalog *languages.Catalog, current string) list.Model {
	all := catalog.All()
	items := make([]list.Item, 0, len(all))
	selected := 0
	for idx, desc := range all {
		if desc.ID == current {
			selected = idx
		}
		items = append(items, languageItem{desc: desc, active: desc.ID == current})
	}

	l := list.New(items, list.NewDefaultDelegate(), 40, 20)
	l.Title = "Select language"
	l.Styles.Title = styleTitle
	l.SetShowStatusBar(false)
	l.SetShowHelp(true)
	l.Select(selected)
	return l
}

func (m *Model) resizePicker() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.picker.SetSize(m.width, m.height-StatusBarHeight)
}

func (m *Model) renderPicker() string {
	return m.picker.View() + "\n" + styleSubtle.Render("enter: select  esc: cancel  /: filter")
}
