package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cavewalk/internal/pathfind"
	"github.com/samdwyer/cavewalk/internal/telemetry"
	"github.com/samdwyer/cavewalk/internal/ui"
	"github.com/samdwyer/cavewalk/internal/world"
)

// walkDelay paces auto-walk so each step is visible.
const walkDelay = 40 * time.Millisecond

// keyDirections maps vi-style keys to directions.
var keyDirections = map[rune]world.Direction{
	'k': world.North,
	'j': world.South,
	'h': world.West,
	'l': world.East,
	'y': world.NorthWest,
	'u': world.NorthEast,
	'b': world.SouthWest,
	'n': world.SouthEast,
}

// mouseState tracks the hovered map cell.
type mouseState struct {
	pos    world.Point
	active bool
}

// Game holds the entire game state.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	world    *World

	mouse    mouseState
	path     pathfind.Path
	autoWalk bool
	running  bool
}

// New creates a game on the real terminal.
func New(ctx context.Context, cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	g, err := NewWithScreen(ctx, cfg, screen)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

// NewWithScreen creates a game drawing to screen.
func NewWithScreen(ctx context.Context, cfg Config, screen *ui.Screen, opts ...Option) (*Game, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	w, err := NewWorld(ctx, cfg, opts...)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	player := w.Player().Position
	span.SetAttributes(
		attribute.Int64("game.seed", w.Seed()),
		attribute.Int("player.start_x", player.X),
		attribute.Int("player.start_y", player.Y),
	)
	slog.Info("game initialized", "seed", w.Seed(), "width", cfg.Width, "height", cfg.Height)

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		world:    w,
		running:  true,
	}, nil
}

// World returns the game's world.
func (g *Game) World() *World { return g.world }

// Run executes the main game loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	for g.running {
		g.render()

		if g.autoWalk && !g.screen.HasPendingEvent() {
			g.stepAutoWalk()
			time.Sleep(walkDelay)
			continue
		}

		g.handleEvent(ctx, g.screen.PollEvent())
	}

	slog.Info("game over", "turns", g.world.Turn())
	return nil
}

func (g *Game) render() {
	w := g.world
	g.renderer.Render(ui.Frame{
		Level:        w.Level(),
		Player:       w.Player(),
		NPCs:         w.Entities(),
		Visible:      w.Visible(),
		Path:         g.path,
		Cursor:       g.mouse.pos,
		CursorActive: g.mouse.active,
		HUD:          g.hud(),
	})
}

func (g *Game) hud() []string {
	w := g.world
	p := w.Player().Position
	return []string{
		fmt.Sprintf("Position %d - %d", p.X, p.Y),
		fmt.Sprintf("Mouse %d - %d", g.mouse.pos.X, g.mouse.pos.Y),
		fmt.Sprintf("Turn %d", w.Turn()),
		fmt.Sprintf("Seed %d", w.Seed()),
		fmt.Sprintf("Map %s", w.Strategy()),
		fmt.Sprintf("In view %d/%d", len(w.VisibleEntities()), len(w.Entities())),
		"",
		"arrows/hjkl: move",
		"mouse: plan, click",
		"space: new level",
		"q: quit",
	}
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventMouse:
		g.handleMouseEvent(ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.playerMove(world.North)
	case tcell.KeyDown:
		g.playerMove(world.South)
	case tcell.KeyLeft:
		g.playerMove(world.West)
	case tcell.KeyRight:
		g.playerMove(world.East)

	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q', 'Q':
			g.running = false
		case ' ':
			g.regenerate(ctx)
		default:
			if dir, ok := keyDirections[r]; ok {
				g.playerMove(dir)
			}
		}
	}
}

// handleMouseEvent replans when the hovered cell changes and starts walking on click.
func (g *Game) handleMouseEvent(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pos := ui.ScreenToMap(x, y)

	if !g.mouse.active || pos != g.mouse.pos {
		g.mouse.pos = pos
		g.path = g.world.FindPath(pos)
	}
	g.mouse.active = true

	if ev.Buttons()&tcell.Button1 != 0 && len(g.path) > 0 {
		g.autoWalk = true
	}
}

// playerMove is a manual step. It cancels any walk in progress and hides the cursor.
func (g *Game) playerMove(dir world.Direction) {
	g.autoWalk = false
	g.mouse.active = false
	g.path = nil
	g.takeTurn(dir)
}

// stepAutoWalk follows the planned path by one step.
func (g *Game) stepAutoWalk() {
	if len(g.path) == 0 {
		g.autoWalk = false
		return
	}

	next := g.path[0]
	dir := world.Orientation(next.Sub(g.world.Player().Position))
	if !g.takeTurn(dir) {
		// Blocked or no longer adjacent.
		g.autoWalk = false
		g.path = nil
		return
	}
	g.path = g.path[1:]
	if len(g.path) == 0 {
		g.autoWalk = false
	}
}

func (g *Game) takeTurn(dir world.Direction) bool {
	if !g.world.Move(dir) {
		return false
	}
	g.world.EndTurn()
	return true
}

func (g *Game) regenerate(ctx context.Context) {
	g.autoWalk = false
	g.path = nil
	g.world.Regenerate(ctx, g.world.Strategy())
}
