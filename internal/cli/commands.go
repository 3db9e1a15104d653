package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/idilsaglam/catalogue/internal/logging"
	"github.com/idilsaglam/catalogue/internal/model"
	"github.com/idilsaglam/catalogue/internal/store/jsonstore"
	"github.com/idilsaglam/catalogue/internal/ui"
)

// -------------- subcommand impls ----------------

func (a *app) doList(ctx context.Context, args []string) int {
	cat, err := a.store.Load(ctx)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}

	var only *model.Kind
	if len(args) > 0 {
		k, err := model.ParseKind(args[0])
		if err != nil {
			ui.Fail("ls: " + err.Error())
			return 2
		}
		only = &k
	}

	if ui.IsTTY() && !a.opt.Table {
		// Saves on quit if anything changed.
		if err := a.runInteractiveList(ctx, cat, only); err != nil {
			return a.fail("tui", err)
		}
		return 0
	}

	ui.Panel(listLines(cat, only, a.opt.Group))
	return 0
}

func (a *app) doAdd(ctx context.Context, args []string) int {
	if len(args) == 0 {
		ui.Fail("usage: catalogue add <kind> [flags] <title...>")
		return 2
	}
	kind, err := model.ParseKind(args[0])
	if err != nil {
		ui.Fail("add: " + err.Error())
		return 2
	}

	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	author := fs.String("author", "", "book author")
	isbn := fs.String("isbn", "", "book ISBN")
	publisher := fs.String("publisher", "", "publisher (book, magazine, video)")
	artist := fs.String("artist", "", "audio artist")
	edition := fs.String("edition", "", "magazine edition")
	duration := fs.Int("duration", 0, "running time in minutes (audio, video)")
	location := fs.String("location", "", "shelf or room")
	acquired := fs.String("acquired", "", "acquisition date YYYY-MM-DD")
	if err := fs.Parse(args[1:]); err != nil {
		ui.Fail("add: " + err.Error())
		return 2
	}

	title := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if title == "" {
		ui.Fail("add: empty title")
		return 2
	}
	if *duration < 0 {
		ui.Fail("add: duration must not be negative")
		return 2
	}

	var it model.Item
	switch kind {
	case model.KindAudio:
		it = model.NewAudio(title, model.AudioDetails{Artist: *artist, Duration: *duration})
	case model.KindBook:
		if strings.TrimSpace(*author) == "" {
			ui.Fail("add: books need -author")
			return 2
		}
		it = model.NewBook(title, model.BookDetails{Author: *author, ISBN: *isbn, Publisher: *publisher})
	case model.KindMagazine:
		it = model.NewMagazine(title, model.MagazineDetails{Publisher: *publisher, Edition: *edition})
	case model.KindVideo:
		it = model.NewVideo(title, model.VideoDetails{Publisher: *publisher, Duration: *duration})
	default:
		it = model.NewMiscellaneous(title)
	}
	it.Location = strings.TrimSpace(*location)
	if *acquired != "" {
		d, err := model.ParseDate(*acquired)
		if err != nil {
			ui.Fail("add: " + err.Error())
			return 2
		}
		it.Acquired = &d
	}

	err = a.store.Update(ctx, func(cat *model.Catalogue) error {
		cat.Add(it)
		return nil
	})
	if err != nil {
		return a.fail("add", err)
	}
	a.logger.Info("item added",
		logging.String(logging.FieldItemID, it.ID),
		logging.String(logging.FieldKind, it.Kind.Key()))
	ui.OK(fmt.Sprintf("added %s %q", kind, title))
	return 0
}

func (a *app) doRemove(ctx context.Context, args []string) int {
	if len(args) != 1 {
		ui.Fail("usage: catalogue rm <index>")
		return 2
	}
	return a.mutate(ctx, "rm", args[0], func(cat *model.Catalogue, idx int) (string, error) {
		it, err := cat.Remove(idx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("removed %q", it.Title), nil
	})
}

func (a *app) doLoan(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("loan", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	dueText := fs.String("due", "", "due date YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		ui.Fail("loan: " + err.Error())
		return 2
	}
	rest := fs.Args()
	if len(rest) < 2 {
		ui.Fail("usage: catalogue loan [-due YYYY-MM-DD] <index> <loanee...>")
		return 2
	}
	loanee := strings.TrimSpace(strings.Join(rest[1:], " "))

	var due *model.Date
	if *dueText != "" {
		d, err := model.ParseDate(*dueText)
		if err != nil {
			ui.Fail("loan: " + err.Error())
			return 2
		}
		due = &d
	}

	return a.mutate(ctx, "loan", rest[0], func(cat *model.Catalogue, idx int) (string, error) {
		it, err := cat.At(idx)
		if err != nil {
			return "", err
		}
		if it.Loaned() {
			return "", fmt.Errorf("%q is already loaned to %s", it.Title, it.Loanee)
		}
		it.Loan(loanee, due)
		if err := cat.Set(idx, it); err != nil {
			return "", err
		}
		return fmt.Sprintf("loaned %q to %s", it.Title, loanee), nil
	})
}

func (a *app) doReturn(ctx context.Context, args []string) int {
	if len(args) != 1 {
		ui.Fail("usage: catalogue return <index>")
		return 2
	}
	return a.mutate(ctx, "return", args[0], func(cat *model.Catalogue, idx int) (string, error) {
		it, err := cat.At(idx)
		if err != nil {
			return "", err
		}
		it.Return()
		if err := cat.Set(idx, it); err != nil {
			return "", err
		}
		return fmt.Sprintf("returned %q", it.Title), nil
	})
}

// mutate applies fn to the item at the 1-based userIndex inside one store
// update, so the change is saved only if fn succeeds.
func (a *app) mutate(ctx context.Context, name, userIndex string, fn func(*model.Catalogue, int) (string, error)) int {
	n, err := strconv.Atoi(userIndex)
	if err != nil {
		ui.Fail(name + ": not a number: " + userIndex)
		return 2
	}
	var msg string
	err = a.store.Update(ctx, func(cat *model.Catalogue) error {
		var err error
		msg, err = fn(cat, n-1)
		return err
	})
	if err != nil {
		return a.fail(name, err)
	}
	ui.OK(msg)
	return 0
}

// fail reports err for command name and returns the exit code.
func (a *app) fail(name string, err error) int {
	ui.Fail(name + ": " + err.Error())
	switch {
	case errors.Is(err, model.ErrIndexOutOfRange):
		ui.Hint("run `catalogue ls` to see valid indexes")
		return 2
	case errors.Is(err, jsonstore.ErrWouldDrop):
		ui.Hint("run `catalogue check` to list them, or pass -drop-invalid to remove them")
	}
	return 1
}

func (a *app) doExport(ctx context.Context) int {
	cat, err := a.store.Load(ctx)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	b, err := a.codec.Encode(cat)
	if err != nil {
		ui.Fail("export: " + err.Error())
		return 1
	}
	if _, err := ui.Stdout().Write(b); err != nil {
		ui.Fail("export: " + err.Error())
		return 1
	}
	return 0
}

func (a *app) doCheck(ctx context.Context) int {
	report, err := a.store.LoadReport(ctx)
	if err != nil {
		ui.Fail("check: " + err.Error())
		return 1
	}

	cat := model.NewCatalogue(report.Items...)
	counts := cat.Count()
	rows := make([][]string, 0, len(model.Kinds))
	for _, kind := range model.Kinds {
		rows = append(rows, []string{kind.Key(), strconv.Itoa(counts[kind])})
	}
	fmt.Fprintln(ui.Stdout(), a.store.Path())
	fmt.Fprintln(ui.Stdout(), ui.RenderTable([]string{"Field", "Items"}, rows, []ui.ColumnAlignment{ui.AlignLeft, ui.AlignRight}))

	for _, m := range report.Missing {
		fmt.Fprintln(ui.Stdout(), ui.PendingStyle.Render("missing: "+m.Field+" (read as empty)"))
	}
	for _, s := range report.Skipped {
		fmt.Fprintln(ui.Stdout(), ui.ErrorStyle.Render("skipped: "+s.Error()))
	}
	ui.OK(fmt.Sprintf("%d items readable", cat.Len()))
	return 0
}

func (a *app) doConfig() int {
	text, err := a.cfg.Encode()
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	state := "loaded"
	if !a.cfgExists {
		state = "not found, using defaults"
	}
	fmt.Fprintf(ui.Stdout(), "# config file: %s (%s)\n", a.cfgPath, state)
	fmt.Fprint(ui.Stdout(), text)
	return 0
}
