package cli

import (
	"fmt"
	"strconv"

	"github.com/idilsaglam/catalogue/internal/model"
	"github.com/idilsaglam/catalogue/internal/ui"
)

var listHeaders = []string{"#", "Kind", "Title", "By", "Status", "Due"}

// -------------- rendering helpers --------------

type indexedItem struct {
	index int // 0-based position in the catalogue
	item  model.Item
}

func filterItems(cat *model.Catalogue, only *model.Kind) []indexedItem {
	out := make([]indexedItem, 0, cat.Len())
	for i, it := range cat.All() {
		if only != nil && it.Kind != *only {
			continue
		}
		out = append(out, indexedItem{index: i, item: it})
	}
	return out
}

func stats(items []indexedItem) (available, loaned int) {
	for _, e := range items {
		if e.item.Loaned() {
			loaned++
		} else {
			available++
		}
	}
	return
}

func listLines(cat *model.Catalogue, only *model.Kind, group bool) []string {
	items := filterItems(cat, only)
	av, ln := stats(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.TitleStyle.Render("Catalogue"),
		ui.SuccessStyle.Render(ui.SymAvailable), av,
		ui.PendingStyle.Render(ui.SymLoaned), ln,
		ui.AccentStyle.Render("Total"), len(items),
	)

	lines := []string{header, ui.MutedStyle.Render(ui.ProgressBar(ln, len(items), 28)), ""}
	if group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, tableLines(items)...)
	}
	lines = append(lines, "", ui.MutedStyle.Render("Tip: add with `catalogue add book -author \"Frank Herbert\" Dune`"))
	return lines
}

func tableLines(items []indexedItem) []string {
	if len(items) == 0 {
		return []string{ui.MutedStyle.Render("no items")}
	}
	rows := make([][]string, 0, len(items))
	today := model.Today()
	for _, e := range items {
		rows = append(rows, itemRow(e, today))
	}
	return []string{ui.RenderTable(listHeaders, rows, []ui.ColumnAlignment{ui.AlignRight})}
}

func groupLines(items []indexedItem) []string {
	var lines []string
	for i, kind := range model.Kinds {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, ui.AccentStyle.Render(kind.Label()))
		var bucket []indexedItem
		for _, e := range items {
			if e.item.Kind == kind {
				bucket = append(bucket, e)
			}
		}
		if len(bucket) == 0 {
			lines = append(lines, ui.MutedStyle.Render("(none)"))
			continue
		}
		lines = append(lines, tableLines(bucket)...)
	}
	return lines
}

func itemRow(e indexedItem, today model.Date) []string {
	it := e.item
	title := truncate(it.Title, 60)
	status := string(it.Status)
	if status == "" {
		status = string(model.StatusAvailable)
	}
	if it.Loaned() && it.Loanee != "" {
		status += " → " + it.Loanee
	}
	due := ""
	if it.DueDate != nil {
		due = it.DueDate.String()
		if it.Overdue(today) {
			due += " (overdue)"
		}
	}
	return []string{strconv.Itoa(e.index + 1), it.Kind.Label(), title, it.Creator(), status, due}
}

// truncate shortens s to at most n characters, ending in "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
