package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/idilsaglam/catalogue/internal/codec"
	"github.com/idilsaglam/catalogue/internal/config"
	"github.com/idilsaglam/catalogue/internal/logging"
	"github.com/idilsaglam/catalogue/internal/store/jsonstore"
	"github.com/idilsaglam/catalogue/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	Group      bool   // list grouped by kind
	Table      bool   // table output even on a terminal
	File       string // overrides storage.data_file
	ConfigPath string
	// DropInvalid lets commands save even when the load skipped entries.
	DropInvalid bool
}

// app is the per-invocation wiring shared by subcommands.
type app struct {
	cfg       *config.Config
	cfgPath   string
	cfgExists bool
	codec     *codec.Codec
	store     *jsonstore.Store
	logger    *slog.Logger
	opt       Options
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0
	}

	ap, err := newApp(opt)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}

	switch cmd {
	case "ls":
		return ap.doList(ctx, a)
	case "add":
		return ap.doAdd(ctx, a)
	case "rm":
		return ap.doRemove(ctx, a)
	case "loan":
		return ap.doLoan(ctx, a)
	case "return":
		return ap.doReturn(ctx, a)
	case "export":
		return ap.doExport(ctx)
	case "check":
		return ap.doCheck(ctx)
	case "config":
		return ap.doConfig()
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func newApp(opt Options) (*app, error) {
	var overrides []config.Override
	if opt.File != "" {
		overrides = append(overrides, config.WithDataFile(opt.File))
	}
	cfg, cfgPath, cfgExists, err := config.Load(opt.ConfigPath, overrides...)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	ui.SetColorMode(cfg.UI.Color)
	ui.SetTheme(cfg.UI.Theme)

	logger, err := logging.New(logging.Options{
		Level:    cfg.Logging.Level,
		Format:   cfg.Logging.Format,
		FilePath: cfg.Logging.File,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	logger.Debug("configuration loaded",
		logging.String(logging.FieldPath, cfgPath),
		logging.Bool("config_exists", cfgExists),
		logging.String("data_file", cfg.Storage.DataFile))

	c := codec.New(codec.Options{
		Indent:      cfg.Codec.Indent,
		Strict:      cfg.Codec.Strict,
		SkipInvalid: cfg.Codec.SkipInvalid,
		Logger:      logger,
	})
	store := jsonstore.New(cfg.Storage.DataFile, c,
		jsonstore.WithLockTimeout(cfg.LockTimeout()),
		jsonstore.WithDropInvalid(opt.DropInvalid),
		jsonstore.WithLogger(logger))

	return &app{
		cfg:       cfg,
		cfgPath:   cfgPath,
		cfgExists: cfgExists,
		codec:     c,
		store:     store,
		logger:    logger,
		opt:       opt,
	}, nil
}

func PrintHelp() {
	fmt.Printf(`catalogue - a small library catalogue

Usage:
  catalogue [-file path] [-config path] [-group] [-table] [-drop-invalid] <subcommand> [args]

Subcommands:
  add <kind> [flags] <title...>      Add an item (kind: audio, book, item, magazine, video)
      -author -isbn -publisher -artist -edition -duration -location -acquired
  ls [kind]                          List items (interactive on a terminal)
  rm <index>                         Remove item at 1-based index
  loan [-due YYYY-MM-DD] <index> <loanee...>
                                     Mark an item as loaned
  return <index>                     Mark an item as available again
  export                             Print the catalogue document
  check                              Decode the data file and report problems
  config                             Print the effective configuration

Examples:
  catalogue add book -author "Frank Herbert" Dune
  catalogue ls book
  catalogue loan -due 2024-06-01 2 alice
  catalogue return 2
`)
	if p, err := config.DefaultConfigPath(); err == nil {
		fmt.Printf("\nConfig file: %s (or ./catalogue.toml)\n", p)
	}
}
