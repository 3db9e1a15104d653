package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/idilsaglam/catalogue/internal/cli"
	"github.com/idilsaglam/catalogue/internal/config"
)

func main() {
	// Root flags (apply to every subcommand)
	file := flag.String("file", "", "catalogue document path (overrides config)")
	configPath := flag.String("config", "", "config file path")
	group := flag.Bool("group", false, "group list output by kind")
	table := flag.Bool("table", false, "print tables instead of the interactive list")
	dropInvalid := flag.Bool("drop-invalid", false, "allow saving when undecodable entries were skipped (removes them)")
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	config.LoadEnvFiles()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, args, cli.Options{
		Group:       *group,
		Table:       *table,
		File:        *file,
		ConfigPath:  *configPath,
		DropInvalid: *dropInvalid,
	})
	stop()
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
