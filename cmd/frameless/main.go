package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/term"

	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/frameless"
	"github.com/1broseidon/frameless/internal/geometry"
	"github.com/1broseidon/frameless/internal/ipc"
	"github.com/1broseidon/frameless/internal/platform"
	"github.com/1broseidon/frameless/internal/runtimepath"
	"github.com/1broseidon/frameless/internal/x11"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runWindow(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "resize", "move":
		os.Exit(runToggle(os.Args[1], os.Args[2:]))
	case "quit":
		os.Exit(runQuit(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: frameless <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Open an undecorated X11 window (foreground)")
	fmt.Fprintln(w, "  status              Show the interaction state of a running window")
	fmt.Fprintln(w, "  resize on|off       Toggle edge resizing at runtime")
	fmt.Fprintln(w, "  move on|off         Toggle moving at runtime")
	fmt.Fprintln(w, "  quit                Close a running window")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config path         Print the default config path")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "  config edit         Open the interactive config editor")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'frameless <command> --help' for command-specific options.")
}

// newLogger writes text to a terminal and JSON otherwise.
func newLogger(level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

// movePolicy is the policy used while moves are enabled.
func movePolicy(cfg *config.Config, frame func() geometry.Rect) frameless.MovePolicy {
	if cfg.Window.TitleBarHeight > 0 {
		return frameless.TitleBarPolicy(frame, cfg.Window.TitleBarHeight)
	}
	return frameless.MoveAnywhere
}

func useNativeDrag(mode config.NativeDragMode, conn *x11.Connection) bool {
	switch mode {
	case config.NativeDragOn:
		return true
	case config.NativeDragOff:
		return false
	default:
		return conn.Supports("_NET_WM_MOVERESIZE")
	}
}

// initialBounds resolves negative coordinates by centering on the monitor
// under the pointer.
func initialBounds(conn *x11.Connection, w config.WindowConfig, logger *slog.Logger) geometry.Rect {
	bounds := geometry.Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}
	if bounds.X >= 0 && bounds.Y >= 0 {
		return bounds
	}

	mon, err := conn.PointerMonitor()
	if err != nil {
		logger.Warn("failed to query monitors, placing window at origin", "error", err)
		bounds.X, bounds.Y = max(bounds.X, 0), max(bounds.Y, 0)
		return bounds
	}
	centered := x11.CenterIn(mon.Bounds, w.Width, w.Height)
	if bounds.X < 0 {
		bounds.X = centered.X
	}
	if bounds.Y < 0 {
		bounds.Y = centered.Y
	}
	return bounds
}

func runWindow(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/frameless/config.yaml)")
	socket := fs.String("socket", "", "Control socket path (default: $XDG_RUNTIME_DIR/frameless.sock)")
	noIPC := fs.Bool("no-ipc", false, "Do not open the control socket")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: frameless run [--path PATH] [--socket PATH] [--no-ipc]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open an undecorated window that can be moved and resized with the pointer.")
		fmt.Fprintln(os.Stderr, "The quit key (default Escape) closes it; the maximize key toggles maximized.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}
	cfg := res.Config
	logger := newLogger(cfg.SlogLevel())

	if cfg.Display != "" {
		os.Setenv("DISPLAY", cfg.Display)
	}
	conn, err := x11.NewConnection()
	if err != nil {
		log.Printf("Failed to connect to display: %v", err)
		return 1
	}
	defer conn.Close()

	wc := cfg.Window
	top, err := conn.CreateFramelessWindow(x11.WindowSpec{
		Title:      wc.Title,
		Bounds:     initialBounds(conn, wc, logger),
		MinWidth:   wc.MinWidth,
		MinHeight:  wc.MinHeight,
		Background: cfg.BackgroundRGB(),
	})
	if err != nil {
		log.Printf("Failed to create window: %v", err)
		return 1
	}
	defer top.Destroy()

	cursors := x11.NewCursorOverride(conn, logger)
	defer cursors.Free()
	cursors.Register(top.Id)

	mailbox := frameless.NewMailbox(frameless.NewCursorBroker(cursors), logger)
	dispatcher := frameless.NewDispatcher(frameless.DispatcherConfig{Sink: mailbox, Logger: logger})

	native := useNativeDrag(cfg.NativeDrag, conn)
	topWin := platform.NewX11Window(conn, top.Id, wc.MinWidth, wc.MinHeight)
	policy := movePolicy(cfg, topWin.FrameRect)
	ctrl := frameless.Attach(dispatcher, topWin, frameless.Options{
		BorderThickness: cfg.BorderThickness,
		DisableResize:   !cfg.ResizeEnabled,
		Policy:          policy,
		NativeDrag:      native,
	})
	defer ctrl.Detach()
	x11.BindPointer(conn, top.Id, ctrl)
	managed := []*ipc.Managed{ipc.NewManaged("window", ctrl, policy, cfg.MoveEnabled)}

	if p := wc.Panel; p.Enabled {
		child, err := conn.CreateChildWindow(top.Id, x11.WindowSpec{
			Bounds:     geometry.Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height},
			Background: panelBackground(cfg.BackgroundRGB()),
		})
		if err != nil {
			log.Printf("Failed to create panel: %v", err)
			return 1
		}
		cursors.Register(child.Id)

		panelWin := platform.NewEmbeddedX11Window(conn, child.Id, topWin, p.MinWidth, p.MinHeight)
		panel := frameless.Attach(dispatcher, panelWin, frameless.Options{
			BorderThickness: cfg.BorderThickness,
			DisableResize:   !cfg.ResizeEnabled,
			Policy:          frameless.MoveAnywhere,
		})
		defer panel.Detach()
		x11.BindPointer(conn, child.Id, panel)
		managed = append(managed, ipc.NewManaged("panel", panel, frameless.MoveAnywhere, cfg.MoveEnabled))
		logger.Debug("panel attached", "window", child.Id)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := x11.BindKey(conn, top.Id, cfg.QuitKey, stop); err != nil {
		logger.Warn("failed to bind quit key", "key", cfg.QuitKey, "error", err)
	}
	if cfg.MaximizeKey != "" {
		if err := x11.BindKey(conn, top.Id, cfg.MaximizeKey, func() {
			if err := conn.ToggleMaximized(top.Id); err != nil {
				logger.Warn("failed to toggle maximized", "error", err)
			}
		}); err != nil {
			logger.Warn("failed to bind maximize key", "key", cfg.MaximizeKey, "error", err)
		}
	}

	if !*noIPC {
		server, err := startControlServer(*socket, "frameless", managed, stop, logger)
		if err != nil {
			logger.Warn("control socket disabled", "error", err)
		} else {
			defer server.Stop()
		}
	}

	logger.Info("frameless window started",
		"window", top.Id,
		"border", cfg.BorderThickness,
		"native_drag", native,
		"config", res.Files,
	)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		dispatcher.Run(ctx)
	}()

	conn.EventLoop(ctx, mailbox)
	stop()
	wg.Wait()

	logger.Info("frameless window closed")
	return 0
}

// panelBackground lightens rgb so the panel stands out from its window.
func panelBackground(rgb uint32) uint32 {
	var out uint32
	for shift := 0; shift <= 16; shift += 8 {
		c := (rgb >> shift) & 0xff
		c += (0xff - c) / 6
		out |= c << shift
	}
	return out
}

func startControlServer(socket, host string, managed []*ipc.Managed, quit func(), logger *slog.Logger) (*ipc.Server, error) {
	if socket == "" {
		p, err := runtimepath.SocketPath(host)
		if err != nil {
			return nil, err
		}
		socket = p
	}
	server := ipc.NewServer(ipc.ServerConfig{
		SocketPath: socket,
		Host:       host,
		Windows:    managed,
		Quit:       quit,
		Logger:     logger,
	})
	if err := server.Start(); err != nil {
		return nil, err
	}
	return server, nil
}
