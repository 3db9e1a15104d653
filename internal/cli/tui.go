package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/catalogue/internal/model"
	"github.com/idilsaglam/catalogue/internal/ui"
)

// listItem adapts model.Item to bubbles/list.Item. key identifies the row
// for the lifetime of the list; item IDs in a file need not be unique.
type listItem struct {
	key  int
	item model.Item
}

func (i listItem) TitleText() string {
	box, text := i.parts()
	return box + " " + text
}

func (i listItem) parts() (box, text string) {
	box = ui.SymAvailable
	if i.item.Loaned() {
		box = ui.SymLoaned
	}
	text = fmt.Sprintf("[%s] %s", i.item.Kind.Label(), i.item.Title)
	if by := i.item.Creator(); by != "" {
		text += " — " + by
	}
	return box, text
}

// Implement list.Item interface
func (i listItem) Title() string       { return i.TitleText() }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.item.Title + " " + i.item.Creator() }

type modelTUI struct {
	list    list.Model
	nextKey int
	changed bool
	width   int
	height  int

	// Inline add
	adding   bool
	addIndex int             // insert position in the full list
	ti       textinput.Model // shared by add and edit
	addErr   string

	// Inline edit
	editing   bool
	editIndex int
	editErr   string

	// Undo support (single-level)
	canUndo   bool
	undoIndex int
	undoItem  *listItem
}

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	box, text := it.parts()

	boxStyled := ui.MutedStyle.Render(box)
	textStyled := text
	if it.item.Loaned() {
		boxStyled = ui.PendingStyle.Render(box)
		textStyled = ui.LoanedStyle.Render(text)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = ui.SelectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+boxStyled+" "+textStyled)
}

// runInteractiveList starts the Bubble Tea list and persists changes when
// quitting. When only is set the list shows one kind, and items of other
// kinds are kept as currently stored.
func (a *app) runInteractiveList(ctx context.Context, cat *model.Catalogue, only *model.Kind) error {
	entries := make([]list.Item, 0, cat.Len())
	for _, it := range cat.All() {
		if only != nil && it.Kind != *only {
			continue
		}
		entries = append(entries, listItem{item: it})
	}

	m := newModelTUI(entries)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	fm, ok := finalModel.(modelTUI)
	if !ok || !fm.changed {
		return nil
	}

	err = a.store.Update(ctx, func(cur *model.Catalogue) error {
		out := make([]model.Item, 0, cur.Len())
		for _, it := range fm.list.Items() {
			if li, ok := it.(listItem); ok {
				out = append(out, li.item)
			}
		}
		if only != nil {
			for _, it := range cur.All() {
				if it.Kind != *only {
					out = append(out, it)
				}
			}
		}
		cur.Replace(out)
		return nil
	})
	if err != nil {
		return err
	}
	ui.OK("saved")
	return nil
}

func newModelTUI(items []list.Item) modelTUI {
	for i, it := range items {
		if li, ok := it.(listItem); ok {
			li.key = i
			items[i] = li
		}
	}
	l := list.New(items, itemDelegate{}, 0, 0)

	l.Title = ui.TitleStyle.Render("Catalogue")
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.TitleStyle
	l.Styles.HelpStyle = ui.HelpStyle
	l.Styles.PaginationStyle = ui.HelpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	bindings := []key.Binding{
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "loan/return")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
	}
	l.AdditionalShortHelpKeys = func() []key.Binding { return bindings }
	l.AdditionalFullHelpKeys = func() []key.Binding { return bindings }

	m := modelTUI{list: l, nextKey: len(items), width: 80, height: 24}
	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.Placeholder = "New item title..."
	m.ti.CharLimit = 200
	return m
}

// Update and View implement Bubble Tea's Model on modelTUI
func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
	}

	if m.adding || m.editing {
		return m.updateInput(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc":
			if m.list.FilterState() == list.FilterApplied {
				m.list.ResetFilter()
				return m, nil
			}
			return m, tea.Quit
		case "q":
			return m, tea.Quit
		case " ", "space":
			if li, i, ok := m.selected(); ok {
				if li.item.Loaned() {
					li.item.Return()
				} else {
					li.item.Loan("", nil)
				}
				m.changed = true
				return m, m.list.SetItem(i, li)
			}
			return m, nil
		case "d":
			if li, i, ok := m.selected(); ok {
				// Removal indexes the full list; drop the filter first.
				m.list.ResetFilter()
				tmp := li
				m.undoItem = &tmp
				m.undoIndex = i
				m.canUndo = true
				m.list.RemoveItem(i)
				m.changed = true
			}
			return m, nil
		case "a":
			m.addIndex = len(m.list.Items())
			if _, i, ok := m.selected(); ok {
				m.addIndex = i + 1
			}
			m.adding = true
			m.addErr = ""
			m.ti.SetValue("")
			m.ti.Placeholder = "New item title..."
			m.ti.Focus()
			return m, nil
		case "e":
			if li, i, ok := m.selected(); ok {
				m.editing = true
				m.editErr = ""
				m.editIndex = i
				m.ti.SetValue(li.item.Title)
				m.ti.CursorEnd()
				m.ti.Placeholder = "Edit item title..."
				m.ti.Focus()
			}
			return m, nil
		case "u":
			if m.canUndo && m.undoItem != nil {
				m.list.ResetFilter()
				idx := min(max(m.undoIndex, 0), len(m.list.Items()))
				m.list.InsertItem(idx, *m.undoItem)
				m.changed = true
				m.canUndo = false
				m.undoItem = nil
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updateInput handles keys while the inline add or edit box is open.
func (m modelTUI) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if x, ok := msg.(tea.KeyMsg); ok {
		switch x.String() {
		case "enter":
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				if m.adding {
					m.addErr = "Title cannot be empty"
				} else {
					m.editErr = "Title cannot be empty"
				}
				return m, nil
			}
			var cmd tea.Cmd
			if m.adding {
				m.list.ResetFilter()
				idx := min(max(m.addIndex, 0), len(m.list.Items()))
				cmd = m.list.InsertItem(idx, listItem{key: m.nextKey, item: model.NewMiscellaneous(title)})
				m.nextKey++
				m.changed = true
			} else if m.editIndex >= 0 && m.editIndex < len(m.list.Items()) {
				if li, ok := m.list.Items()[m.editIndex].(listItem); ok {
					li.item.Title = title
					cmd = m.list.SetItem(m.editIndex, li)
					m.changed = true
				}
			}
			return m.closeInput(), cmd
		case "esc":
			return m.closeInput(), nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m modelTUI) closeInput() modelTUI {
	m.adding, m.editing = false, false
	m.ti.SetValue("")
	m.ti.Blur()
	return m
}

// selected returns the highlighted item and its position in the full item
// list. Index() counts visible rows only, so a filtered list is matched by key.
func (m modelTUI) selected() (listItem, int, bool) {
	sel, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return listItem{}, 0, false
	}
	for i, it := range m.list.Items() {
		if li, ok := it.(listItem); ok && li.key == sel.key {
			return li, i, true
		}
	}
	return listItem{}, 0, false
}

func (m modelTUI) View() string {
	listHeight := m.height - 4
	if m.adding || m.editing {
		listHeight = m.height - 6
	}
	m.list.SetSize(m.width-2, listHeight)

	content := m.list.View()
	if m.adding || m.editing {
		title := "Add new item"
		if m.editing {
			title = "Edit item"
		}
		if m.addErr != "" && m.adding {
			title += " — " + ui.ErrorStyle.Render(m.addErr)
		}
		if m.editErr != "" && m.editing {
			title += " — " + ui.ErrorStyle.Render(m.editErr)
		}
		content += "\n" + ui.PanelString(title+"\n"+m.ti.View())
	}
	return ui.PanelString(content)
}
