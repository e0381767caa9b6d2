package render

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/smasonuk/geosphere"
)

// dragSensitivity converts mouse movement in pixels into camera radians.
const dragSensitivity = 1.0 / 200.0

type Options struct {
	Title     string
	Width     int
	Height    int
	FPS       int
	Wireframe bool
}

// FrameFunc runs once per tick before the frame is drawn. It is where
// transforms are advanced.
type FrameFunc func(s *geosphere.Scene) error

// Game adapts a scene to ebiten's Update/Draw/Layout loop.
type Game struct {
	scene  *geosphere.Scene
	ctx    *Context
	opts   Options
	update FrameFunc

	dragging     bool
	lastX, lastY int
	err          error
}

// NewGame drives scene with update, or with Scene.Update when update is
// nil.
func NewGame(scene *geosphere.Scene, opts Options, update FrameFunc) *Game {
	if update == nil {
		update = func(s *geosphere.Scene) error {
			s.Update()
			return nil
		}
	}
	ctx := NewContext()
	ctx.Wireframe = opts.Wireframe
	return &Game{
		scene:  scene,
		ctx:    ctx,
		opts:   opts,
		update: update,
	}
}

func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		g.ctx.Wireframe = !g.ctx.Wireframe
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dragging = true
		g.lastX, g.lastY = ebiten.CursorPosition()
	}
	if g.dragging {
		x, y := ebiten.CursorPosition()
		dx := float32(x-g.lastX) * dragSensitivity
		dy := float32(y-g.lastY) * dragSensitivity
		g.scene.Camera.AddAngle(dy, dx, 0)
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragging = false
	}

	return g.update(g.scene)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	g.ctx.SetTarget(screen)
	if err := g.scene.Draw(g.ctx); err != nil && g.err == nil {
		g.err = err
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f", ebiten.ActualFPS()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.opts.Width, g.opts.Height
}

// Run opens the window and blocks until it is closed. The loop ticks at
// opts.FPS; a draw or shader failure stops it and is returned.
func Run(scene *geosphere.Scene, opts Options, update FrameFunc) error {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetTPS(opts.FPS)

	slog.Info("starting render loop", "width", opts.Width, "height", opts.Height, "fps", opts.FPS)
	err := ebiten.RunGame(NewGame(scene, opts, update))
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
