package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/app"
	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/theme"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

// Options tune behavior from root flags. Empty fields fall back to the
// config file.
type Options struct {
	ConfigPath string
	Backend    string
	Dir        string
	Theme      string
	Group      bool // print grouped by pending/done

	Stdout, Stderr io.Writer
}

// closeTimeout bounds how long exit waits for queued writes.
const closeTimeout = 10 * time.Second

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	p := ui.New(opt.Stdout, opt.Stderr, theme.Light)

	if len(args) == 0 {
		PrintHelp(opt.Stdout)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return 0

	case "ls":
		return withState(opt, true, func(st *app.State, p *ui.Printer) int {
			if err := tui.Run(st); err != nil {
				p.Fail("tui: " + err.Error())
				return 1
			}
			return 0
		})

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(opt.Stderr)
		group := fs.Bool("group", opt.Group, "group output by pending/done")
		if err := fs.Parse(a); err != nil {
			return 2
		}
		if fs.NArg() > 0 {
			p.Fail("usage: todo print [-group]")
			return 2
		}
		return withState(opt, false, func(st *app.State, p *ui.Printer) int {
			p.Panel(p.ListLines(st.Todos.Items(), *group))
			return 0
		})

	case "config":
		if len(a) != 0 {
			p.Fail("usage: todo config")
			return 2
		}
		return doConfig(opt, p)

	case "add":
		if len(a) == 0 {
			p.Fail("usage: todo add <title...>")
			return 2
		}
		return withState(opt, false, func(st *app.State, p *ui.Printer) int {
			return doAdd(st, p, strings.Join(a, " "))
		})

	case "done", "rm":
		if len(a) != 1 {
			p.Fail(fmt.Sprintf("usage: todo %s <id>", cmd))
			return 2
		}
		id, err := strconv.Atoi(a[0])
		if err != nil {
			p.Fail(cmd + ": not a number: " + a[0])
			return 2
		}
		return withState(opt, false, func(st *app.State, p *ui.Printer) int {
			if cmd == "done" {
				return doToggle(st, p, id)
			}
			return doRemove(st, p, id)
		})
	}

	p.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(opt.Stderr)
	PrintHelp(opt.Stderr)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `todo - a tiny persistent todo list

Usage:
  todo [flags] <subcommand> [args]

Subcommands:
  ls                 Interactive list (a add, space toggle, d delete, t theme, q quit)
  print [-group]     Print the list, optionally grouped by pending/done
  add <title...>     Add a new item (title can be multiple words)
  done <id>          Toggle done for the item with this id
  rm <id>            Remove the item with this id
  config             Write the effective config file if none exists yet

Flags:
  -config <path>     Config file (default $XDG_CONFIG_HOME/tada/config.yaml)
  -store <backend>   json | sqlite | memory
  -theme <name>      light | dark
  -group             Group printed output by pending/done (also accepted after print)

Examples:
  todo add "Buy milk"
  todo print -group
  todo done 2
  todo rm 3
`)
}

// withState loads config, builds the application state, loads the list and
// runs fn. Queued writes are flushed before returning.
func withState(opt Options, interactive bool, fn func(*app.State, *ui.Printer) int) int {
	fail := ui.New(opt.Stdout, opt.Stderr, theme.Light).Fail

	cfg, err := config.Load(opt.ConfigPath)
	if err != nil {
		fail("config: " + err.Error())
		return 1
	}
	if opt.Backend != "" {
		cfg.Storage.Backend = opt.Backend
	}
	if opt.Dir != "" {
		cfg.Storage.Dir = opt.Dir
	}
	if opt.Theme != "" {
		cfg.Theme = opt.Theme
	}

	logger, closeLog, err := openLogger(cfg, opt, interactive)
	if err != nil {
		fail("log: " + err.Error())
		return 1
	}
	defer closeLog()

	ctx := context.Background()
	st, err := app.New(ctx, cfg, app.WithLogger(logger))
	if err != nil {
		fail(err.Error())
		return 1
	}
	st.Load(ctx)

	code := fn(st, ui.New(opt.Stdout, opt.Stderr, st.Scheme()))

	closeCtx, cancel := context.WithTimeout(ctx, closeTimeout)
	defer cancel()
	if err := st.Close(closeCtx); err != nil {
		logger.Error("close", "err", err)
	}
	return code
}

// openLogger sends the operator log to a file while the TUI owns the
// terminal, and to stderr otherwise.
func openLogger(cfg *config.Config, opt Options, interactive bool) (*log.Logger, func(), error) {
	level := logging.ParseLevel(cfg.Log.Level)
	if interactive || cfg.Log.File != "" {
		logger, f, err := logging.OpenFile(cfg.LogPath(), level)
		if err != nil {
			return nil, nil, err
		}
		return logger, func() { f.Close() }, nil
	}
	return logging.New(opt.Stderr, level), func() {}, nil
}

// -------------- subcommand impls ----------------

// doConfig writes the effective configuration so it can be edited. An
// existing file is left untouched.
func doConfig(opt Options, p *ui.Printer) int {
	path, err := config.Path(opt.ConfigPath)
	if err != nil {
		p.Fail("config: " + err.Error())
		return 1
	}
	if _, err := os.Stat(path); err == nil {
		p.OK("config already exists: " + path)
		return 0
	}
	cfg, err := config.Load(path)
	if err != nil {
		p.Fail("config: " + err.Error())
		return 1
	}
	if err := cfg.Save(path); err != nil {
		p.Fail("config: " + err.Error())
		return 1
	}
	p.OK("wrote " + path)
	return 0
}

func doAdd(st *app.State, p *ui.Printer, title string) int {
	if !st.Todos.Add(title) {
		p.Fail("add: empty title")
		return 2
	}
	it := st.Todos.Items()[0]
	p.OK(fmt.Sprintf("added #%d", it.ID))
	return 0
}

func doToggle(st *app.State, p *ui.Printer, id int) int {
	if !st.Todos.Toggle(id) {
		p.Fail(fmt.Sprintf("no item with id %d", id))
		p.Hint("Hint: run `todo print` to see ids")
		return 2
	}
	it, _ := st.Todos.Get(id)
	if it.Completed {
		p.OK(fmt.Sprintf("#%d done", id))
	} else {
		p.OK(fmt.Sprintf("#%d pending", id))
	}
	return 0
}

func doRemove(st *app.State, p *ui.Printer, id int) int {
	if !st.Todos.Delete(id) {
		p.Fail(fmt.Sprintf("no item with id %d", id))
		p.Hint("Hint: run `todo print` to see ids")
		return 2
	}
	p.OK(fmt.Sprintf("removed #%d", id))
	return 0
}
