package cli

import (
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/catalogue/internal/model"
)

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func send(t *testing.T, m modelTUI, msgs ...tea.Msg) modelTUI {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(modelTUI)
		require.True(t, ok)
	}
	return m
}

func itemsOf(m modelTUI) []model.Item {
	var out []model.Item
	for _, it := range m.list.Items() {
		out = append(out, it.(listItem).item)
	}
	return out
}

func newTestModel() modelTUI {
	return newModelTUI([]list.Item{
		listItem{item: model.NewBook("Dune", model.BookDetails{Author: "Frank Herbert"})},
		listItem{item: model.NewVideo("Alien", model.VideoDetails{Publisher: "Fox"})},
	})
}

func TestTUIToggleLoan(t *testing.T) {
	m := send(t, newTestModel(), tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.changed)
	assert.True(t, itemsOf(m)[0].Loaned())

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, itemsOf(m)[0].Loaned())
}

func TestTUIFilteredToggleActsOnVisibleItem(t *testing.T) {
	m := newTestModel()
	m.list.SetFilterText("Alien")
	require.Equal(t, list.FilterApplied, m.list.FilterState())

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	items := itemsOf(m)
	assert.False(t, items[0].Loaned(), "Dune")
	assert.True(t, items[1].Loaned(), "Alien")
}

func TestTUIFilteredDeleteAndEdit(t *testing.T) {
	m := newTestModel()
	m.list.SetFilterText("Alien")
	m = send(t, m, keyRunes("e"))
	require.True(t, m.editing)
	m = send(t, m, keyRunes("s"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"Dune", "Aliens"}, titles(itemsOf(m)))

	m.list.SetFilterText("Aliens")
	m = send(t, m, keyRunes("d"))
	assert.Equal(t, []string{"Dune"}, titles(itemsOf(m)))
	assert.Equal(t, list.Unfiltered, m.list.FilterState())

	m = send(t, m, keyRunes("u"))
	assert.Equal(t, []string{"Dune", "Aliens"}, titles(itemsOf(m)))
}

func TestTUIEscClearsFilterBeforeQuitting(t *testing.T) {
	m := newTestModel()
	m.list.SetFilterText("Alien")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, list.Unfiltered, m.list.FilterState())
}

func titles(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}

func TestTUIDeleteAndUndo(t *testing.T) {
	m := send(t, newTestModel(), keyRunes("d"))
	require.Len(t, itemsOf(m), 1)
	assert.Equal(t, "Alien", itemsOf(m)[0].Title)

	m = send(t, m, keyRunes("u"))
	items := itemsOf(m)
	require.Len(t, items, 2)
	assert.Equal(t, "Dune", items[0].Title)
}

func TestTUIAddAndEdit(t *testing.T) {
	m := send(t, newTestModel(), keyRunes("a"))
	require.True(t, m.adding)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Title cannot be empty", m.addErr)

	m = send(t, m, keyRunes("Globe"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.adding)
	items := itemsOf(m)
	require.Len(t, items, 3)
	assert.Equal(t, model.KindMiscellaneous, items[1].Kind)
	assert.Equal(t, "Globe", items[1].Title)

	m = send(t, m, keyRunes("e"))
	require.True(t, m.editing)
	m = send(t, m, keyRunes("!"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Dune!", itemsOf(m)[0].Title)
}

func TestTUIView(t *testing.T) {
	m := send(t, newTestModel(), tea.WindowSizeMsg{Width: 100, Height: 20})
	view := m.View()
	assert.Contains(t, view, "Dune")
	assert.Contains(t, view, "Frank Herbert")
}
