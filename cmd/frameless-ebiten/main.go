package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/term"

	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/ebitenhost"
	"github.com/1broseidon/frameless/internal/frameless"
	"github.com/1broseidon/frameless/internal/geometry"
	"github.com/1broseidon/frameless/internal/ipc"
	"github.com/1broseidon/frameless/internal/runtimepath"
)

const (
	windowID = 1
	panelID  = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("frameless-ebiten", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/frameless/config.yaml)")
	socket := fs.String("socket", "", "Control socket path (default: $XDG_RUNTIME_DIR/frameless-ebiten.sock)")
	noIPC := fs.Bool("no-ipc", false, "Do not open the control socket")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: frameless-ebiten [--path PATH] [--socket PATH] [--no-ipc]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open an undecorated ebiten window that can be moved and resized with the pointer.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	var (
		res *config.LoadResult
		err error
	)
	if *path == "" {
		res, err = config.LoadWithSources()
	} else {
		res, err = config.LoadFromPath(*path)
	}
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}
	cfg := res.Config

	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var logger *slog.Logger
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}

	wc := cfg.Window
	ebiten.SetWindowTitle(wc.Title)
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(wc.Width, wc.Height)
	ebiten.SetWindowSizeLimits(sizeLimit(wc.MinWidth), sizeLimit(wc.MinHeight), -1, -1)
	// ebiten centers the window unless told otherwise.
	if wc.X >= 0 && wc.Y >= 0 {
		ebiten.SetWindowPosition(wc.X, wc.Y)
	}

	quitKey, err := parseKey(cfg.QuitKey)
	if err != nil {
		logger.Warn("invalid quit key, using Escape", "key", cfg.QuitKey, "error", err)
		quitKey = ebiten.KeyEscape
	}
	var maximizeKey *ebiten.Key
	if cfg.MaximizeKey != "" {
		if k, err := parseKey(cfg.MaximizeKey); err != nil {
			logger.Warn("invalid maximize key, ignoring", "key", cfg.MaximizeKey, "error", err)
		} else {
			maximizeKey = &k
		}
	}

	sys := ebitenhost.EbitenSystem{}
	win := ebitenhost.NewWindow(sys, windowID, wc.MinWidth, wc.MinHeight)

	mailbox := frameless.NewMailbox(frameless.NewCursorBroker(ebitenhost.NewCursor(sys)), logger)
	dispatcher := frameless.NewDispatcher(frameless.DispatcherConfig{Sink: mailbox, Logger: logger})

	policy := movePolicy(cfg, win.FrameRect)
	ctrl := frameless.Attach(dispatcher, win, frameless.Options{
		BorderThickness: cfg.BorderThickness,
		DisableResize:   !cfg.ResizeEnabled,
		Policy:          policy,
	})
	defer ctrl.Detach()
	managed := []*ipc.Managed{ipc.NewManaged("window", ctrl, policy, cfg.MoveEnabled)}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameCfg := ebitenhost.GameConfig{
		Mailbox:         mailbox,
		Window:          win,
		Controller:      ctrl,
		BorderThickness: cfg.BorderThickness,
		TitleBarHeight:  wc.TitleBarHeight,
		Background:      rgba(cfg.BackgroundRGB()),
		Highlight:       cfg.HighlightBorder,
		QuitKey:         quitKey,
		MaximizeKey:     maximizeKey,
		Done:            ctx.Done(),
		Logger:          logger,
	}

	if p := wc.Panel; p.Enabled {
		local := geometry.Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
		panel := ebitenhost.NewPanel(win, panelID, local, p.MinWidth, p.MinHeight)
		gameCfg.Panel = panel
		gameCfg.PanelController = frameless.Attach(dispatcher, panel, frameless.Options{
			BorderThickness: cfg.BorderThickness,
			DisableResize:   !cfg.ResizeEnabled,
			Policy:          frameless.MoveAnywhere,
		})
		defer gameCfg.PanelController.Detach()
		managed = append(managed, ipc.NewManaged("panel", gameCfg.PanelController, frameless.MoveAnywhere, cfg.MoveEnabled))
	}

	if !*noIPC {
		if *socket == "" {
			if p, err := runtimepath.SocketPath("frameless-ebiten"); err == nil {
				*socket = p
			}
		}
		server := ipc.NewServer(ipc.ServerConfig{
			SocketPath: *socket,
			Host:       "frameless-ebiten",
			Windows:    managed,
			Quit:       stop,
			Logger:     logger,
		})
		if err := server.Start(); err != nil {
			logger.Warn("control socket disabled", "error", err)
		} else {
			defer server.Stop()
		}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		dispatcher.Run(ctx)
	}()

	logger.Info("frameless window started", "border", cfg.BorderThickness, "config", res.Files)
	runErr := ebiten.RunGame(ebitenhost.NewGame(gameCfg))
	stop()
	wg.Wait()

	if runErr != nil {
		logger.Error("game loop failed", "error", runErr)
		return 1
	}
	logger.Info("frameless window closed")
	return 0
}

func parseKey(name string) (ebiten.Key, error) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return 0, err
	}
	return k, nil
}

// sizeLimit maps an unset minimum to ebiten's "no limit".
func sizeLimit(v int) int {
	if v <= 0 {
		return -1
	}
	return v
}

func rgba(rgb uint32) color.RGBA {
	return color.RGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 0xff}
}

// movePolicy is the policy used while moves are enabled.
func movePolicy(cfg *config.Config, frame func() geometry.Rect) frameless.MovePolicy {
	if cfg.Window.TitleBarHeight > 0 {
		return frameless.TitleBarPolicy(frame, cfg.Window.TitleBarHeight)
	}
	return frameless.MoveAnywhere
}
