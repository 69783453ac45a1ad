package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/tui"
)

const pathUsage = "Config file path (default: ~/.config/frameless/config.yaml)"

var configCommands = map[string]func(args []string) int{
	"validate": configValidate,
	"print":    configPrint,
	"path":     configPath,
	"explain":  configExplain,
	"edit":     configEdit,
}

func printConfigUsage() {
	fmt.Fprint(os.Stderr, `Usage:
  frameless config validate [--path PATH]
  frameless config print [--path PATH] [--defaults]
  frameless config path
  frameless config explain [--path PATH] <key.path>
  frameless config edit [--path PATH]
`)
}

func runConfig(args []string) int {
	if len(args) == 0 {
		printConfigUsage()
		return 2
	}
	cmd, ok := configCommands[args[0]]
	if !ok {
		if args[0] != "help" && args[0] != "-h" && args[0] != "--help" {
			fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		}
		printConfigUsage()
		return 2
	}
	return cmd(args[1:])
}

// pathFlags parses the --path flag shared by the config subcommands.
func pathFlags(name string, args []string, extra func(*flag.FlagSet)) (*flag.FlagSet, string, bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", pathUsage)
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return fs, "", false
	}
	return fs, *path, true
}

func fail(err error) int {
	fmt.Fprintln(os.Stderr, err)
	return 1
}

func configValidate(args []string) int {
	_, path, ok := pathFlags("validate", args, nil)
	if !ok {
		return 2
	}
	res, err := loadConfig(path)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("config: ok (%d file(s))\n", len(res.Files))
	return 0
}

func configPrint(args []string) int {
	var defaults *bool
	_, path, ok := pathFlags("print", args, func(fs *flag.FlagSet) {
		defaults = fs.Bool("defaults", false, "Print built-in defaults and ignore config files")
	})
	if !ok {
		return 2
	}

	cfg := config.DefaultConfig()
	if !*defaults {
		res, err := loadConfig(path)
		if err != nil {
			return fail(err)
		}
		for _, f := range res.Files {
			fmt.Printf("# loaded: %s\n", f)
		}
		cfg = res.Config
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fail(err)
	}
	os.Stdout.Write(data)
	return 0
}

func configPath(args []string) int {
	path, err := config.DefaultConfigPath()
	if err != nil {
		return fail(err)
	}
	fmt.Println(path)
	return 0
}

func configExplain(args []string) int {
	fs, path, ok := pathFlags("explain", args, nil)
	if !ok {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "explain requires exactly one <key.path>, e.g. window.panel.width")
		return 2
	}
	key := fs.Arg(0)

	res, err := loadConfig(path)
	if err != nil {
		return fail(err)
	}
	value, src, err := config.Explain(res, key)
	if err != nil {
		return fail(err)
	}
	out, err := yaml.Marshal(value)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("path: %s\nsource: %s\nvalue:\n%s", key, tui.FormatSource(src), out)
	return 0
}

func configEdit(args []string) int {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", pathUsage)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, `Usage: frameless config edit [--path PATH]

Interactive editor for the engine and window settings, with a live
hit-test map of the configured window.

Keybindings:
  1-4, Tab   Switch tabs
  e          Edit the current tab
  Ctrl+S     Review and save changes
  q          Quit
`)
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if err := tui.Run(*path); err != nil {
		return fail(err)
	}
	return 0
}
