package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/tada/internal/cli"
)

func main() {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", "", "path to config.yaml")
	backend := flag.String("store", "", "storage backend: json | sqlite | memory")
	themeName := flag.String("theme", "", "color theme: light | dark")
	groupPending := flag.Bool("group", false, "group printed output by pending/done")
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		ConfigPath: *configPath,
		Backend:    *backend,
		Theme:      *themeName,
		Group:      *groupPending,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
