package ebitenhost

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/1broseidon/frameless/internal/frameless"
	"github.com/1broseidon/frameless/internal/geometry"
)

var (
	titleBarColor = color.RGBA{R: 0x31, G: 0x32, B: 0x44, A: 0xff}
	panelColor    = color.RGBA{R: 0x45, G: 0x47, B: 0x5a, A: 0xff}
	edgeColor     = color.RGBA{R: 0x58, G: 0x5b, B: 0x70, A: 0xff}
	accentColor   = color.RGBA{R: 0x89, G: 0xb4, B: 0xfa, A: 0xff}
)

// GameConfig wires a window, its controllers and the mailbox into a Game.
type GameConfig struct {
	Mailbox    *frameless.Mailbox
	Window     *Window
	Controller *frameless.Controller

	// Panel and PanelController are optional.
	Panel           *Panel
	PanelController *frameless.Controller

	BorderThickness int
	TitleBarHeight  int
	Background      color.RGBA
	Highlight       bool

	QuitKey     ebiten.Key
	MaximizeKey *ebiten.Key

	// Done, when closed, ends the game on the next tick.
	Done <-chan struct{}

	Logger *slog.Logger
}

// Game is the ebiten game loop of the demo window.
type Game struct {
	cfg    GameConfig
	router *Router
	logger *slog.Logger

	windowGlow Highlight
	panelGlow  Highlight
}

var _ ebiten.Game = (*Game)(nil)

// NewGame builds the game. The panel, when present, is routed in front of
// the window.
func NewGame(cfg GameConfig) *Game {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BorderThickness <= 0 {
		cfg.BorderThickness = geometry.DefaultBorderThickness
	}

	var targets []Target
	if cfg.Panel != nil && cfg.PanelController != nil {
		targets = append(targets, Target{Handler: cfg.PanelController, Frame: cfg.Panel.FrameRect})
	}
	targets = append(targets, Target{Handler: cfg.Controller, Frame: cfg.Window.FrameRect})

	return &Game{
		cfg:    cfg,
		router: NewRouter(targets...),
		logger: logger,
	}
}

// Update polls input, feeds the controllers and runs pending window
// commands.
func (g *Game) Update() error {
	select {
	case <-g.cfg.Done:
		return ebiten.Termination
	default:
	}

	g.cfg.Window.Sync()

	if inpututil.IsKeyJustPressed(g.cfg.QuitKey) {
		g.logger.Info("quit key pressed")
		return ebiten.Termination
	}
	if k := g.cfg.MaximizeKey; k != nil && inpututil.IsKeyJustPressed(*k) && !g.router.Captured() {
		if ebiten.IsWindowMaximized() {
			ebiten.RestoreWindow()
		} else {
			ebiten.MaximizeWindow()
		}
	}

	g.router.Step(PointerState{
		Global:       g.cfg.Window.PointerPosition(),
		Down:         ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		Focused:      ebiten.IsFocused(),
	})

	g.cfg.Mailbox.Drain()

	dt := 1 / float32(ebiten.TPS())
	g.windowGlow.Set(g.cfg.Highlight && onBorder(g.cfg.Controller.State()))
	g.windowGlow.Update(dt)
	if g.cfg.PanelController != nil {
		g.panelGlow.Set(g.cfg.Highlight && onBorder(g.cfg.PanelController.State()))
		g.panelGlow.Update(dt)
	}
	return nil
}

// onBorder reports whether the pointer is over, or dragging, a resize band.
func onBorder(st frameless.State) bool {
	return st.Direction != geometry.None
}

// Draw paints the window chrome.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Background)
	bounds := screen.Bounds()
	client := geometry.Rect{Width: bounds.Dx(), Height: bounds.Dy()}

	if h := g.cfg.TitleBarHeight; h > 0 {
		fillRect(screen, geometry.Rect{Width: client.Width, Height: h}, titleBarColor)
	}
	drawBorder(screen, client, g.cfg.BorderThickness, mix(edgeColor, accentColor, g.windowGlow.Alpha()))

	if g.cfg.Panel != nil {
		local := g.cfg.Panel.Local()
		fillRect(screen, local, panelColor)
		drawBorder(screen, local, g.cfg.BorderThickness, mix(edgeColor, accentColor, g.panelGlow.Alpha()))
	}

	st := g.cfg.Controller.State()
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("%s  %s", st.Phase(), st.Direction),
		g.cfg.BorderThickness+4, g.cfg.BorderThickness+4)
}

// Layout keeps one screen pixel per window pixel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func fillRect(dst *ebiten.Image, r geometry.Rect, c color.Color) {
	if r.Empty() {
		return
	}
	sub := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height).Intersect(dst.Bounds())
	if sub.Empty() {
		return
	}
	dst.SubImage(sub).(*ebiten.Image).Fill(c)
}

// borderBands returns the four edge bands of r, each border pixels thick.
func borderBands(r geometry.Rect, border int) []geometry.Rect {
	if r.Empty() || border <= 0 {
		return nil
	}
	bw := min(border, r.Width)
	bh := min(border, r.Height)
	return []geometry.Rect{
		{X: r.X, Y: r.Y, Width: r.Width, Height: bh},
		{X: r.X, Y: r.Y + r.Height - bh, Width: r.Width, Height: bh},
		{X: r.X, Y: r.Y, Width: bw, Height: r.Height},
		{X: r.X + r.Width - bw, Y: r.Y, Width: bw, Height: r.Height},
	}
}

func drawBorder(dst *ebiten.Image, r geometry.Rect, border int, c color.Color) {
	for _, band := range borderBands(r, border) {
		fillRect(dst, band, c)
	}
}

// mix blends from a to b by t in [0, 1].
func mix(a, b color.RGBA, t float32) color.RGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	lerp := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t + 0.5)
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}
