package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/1broseidon/frameless/internal/ipc"
	"github.com/1broseidon/frameless/internal/runtimepath"
)

// controlFlags registers the flags shared by the control commands.
func controlFlags(fs *flag.FlagSet) (socket, host *string) {
	socket = fs.String("socket", "", "Control socket path (overrides --host)")
	host = fs.String("host", "frameless", "Host to control: frameless or frameless-ebiten")
	return socket, host
}

func controlClient(socket, host string) (*ipc.Client, error) {
	if socket != "" {
		return ipc.NewClient(socket), nil
	}
	path, err := runtimepath.SocketPath(host)
	if err != nil {
		return nil, err
	}
	return ipc.NewClient(path), nil
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	socket, host := controlFlags(fs)
	jsonOut := fs.Bool("json", false, "Output status as JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: frameless status [--host NAME] [--socket PATH] [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the geometry and interaction phase of every managed window.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	client, err := controlClient(*socket, *host)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	fmt.Printf("host: %s (pid %d, up %ds)\n", status.Host, status.PID, status.UptimeSeconds)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROLE\tID\tGEOMETRY\tPHASE\tDIRECTION\tRESIZE\tMOVE")
	for _, w := range status.Windows {
		fmt.Fprintf(tw, "%s\t%#x\t%dx%d+%d+%d\t%s\t%s\t%s\t%s\n",
			w.Role, w.ID, w.Width, w.Height, w.X, w.Y,
			w.Phase, w.Direction, onOff(w.ResizeEnabled), onOff(w.MoveEnabled))
	}
	tw.Flush()
	return 0
}

func runToggle(what string, args []string) int {
	fs := flag.NewFlagSet(what, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	socket, host := controlFlags(fs)
	role := fs.String("role", "", "Window role to change: window or panel (default: all)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: frameless %s [--host NAME] [--socket PATH] [--role ROLE] on|off\n", what)
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	var enabled bool
	switch fs.Arg(0) {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		fmt.Fprintf(os.Stderr, "expected on or off, got %q\n", fs.Arg(0))
		return 2
	}

	client, err := controlClient(*socket, *host)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if what == "resize" {
		err = client.SetResize(*role, enabled)
	} else {
		err = client.SetMove(*role, enabled)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("%s: %s\n", what, onOff(enabled))
	return 0
}

func runQuit(args []string) int {
	fs := flag.NewFlagSet("quit", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	socket, host := controlFlags(fs)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	client, err := controlClient(*socket, *host)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := client.Quit(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
