package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/cavewalk/internal/entity"
	"github.com/samdwyer/cavewalk/internal/fov"
	"github.com/samdwyer/cavewalk/internal/gamedata"
	"github.com/samdwyer/cavewalk/internal/movement"
	"github.com/samdwyer/cavewalk/internal/pathfind"
	"github.com/samdwyer/cavewalk/internal/telemetry"
	"github.com/samdwyer/cavewalk/internal/world"
)

// placementAttempts is how many random samples are tried before scanning for a
// free tile to put the player on.
const placementAttempts = 100

// World is the in-process API over one level and the actors on it.
// It is not safe for concurrent use.
type World struct {
	cfg      Config
	seed     int64
	rng      *rand.Rand
	gen      *world.Generator
	registry *gamedata.CreatureRegistry
	tracer   trace.Tracer

	level    *world.Level
	player   *entity.Entity
	npcs     []*entity.Entity
	visible  mapset.Set[world.Point]
	strategy world.Strategy

	phase Phase
	turn  int
}

// Option customises a World.
type Option func(*World)

// WithTracer replaces the tracer used for world spans.
func WithTracer(t trace.Tracer) Option {
	return func(w *World) { w.tracer = t }
}

// WithRegistry replaces the embedded creature registry.
func WithRegistry(r *gamedata.CreatureRegistry) Option {
	return func(w *World) { w.registry = r }
}

// NewWorld builds a world and generates its first level with cfg.Strategy.
func NewWorld(ctx context.Context, cfg Config, opts ...Option) (*World, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid level size %dx%d", cfg.Width, cfg.Height)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	w := &World{
		cfg:    cfg,
		seed:   seed,
		rng:    rng,
		gen:    world.NewGenerator(rng),
		tracer: telemetry.Tracer("world"),
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.registry == nil {
		registry, err := gamedata.LoadCreatureRegistry()
		if err != nil {
			return nil, fmt.Errorf("loading creatures: %w", err)
		}
		w.registry = registry
	}
	slog.Debug("creature registry ready", "kinds", w.registry.Count())

	w.Regenerate(ctx, cfg.Strategy)
	return w, nil
}

// Seed returns the seed the world's random source was created with.
func (w *World) Seed() int64 { return w.seed }

// Level returns the current level.
func (w *World) Level() *world.Level { return w.level }

// Strategy returns the strategy the current level was generated with.
func (w *World) Strategy() world.Strategy { return w.strategy }

// Phase returns whose move it is.
func (w *World) Phase() Phase { return w.phase }

// Turn returns the number of completed monster turns.
func (w *World) Turn() int { return w.turn }

// TileAt returns the tile at p and whether p lies on the level.
func (w *World) TileAt(p world.Point) (world.Tile, bool) {
	return w.level.TileAt(p)
}

// Player returns the player entity.
func (w *World) Player() *entity.Entity { return w.player }

// Entities returns the NPCs on the level. The player is not included.
func (w *World) Entities() []*entity.Entity { return w.npcs }

// Visible returns the tiles seen by the last ComputeFOV.
func (w *World) Visible() mapset.Set[world.Point] { return w.visible }

// ComputeFOV recomputes the player's field of view.
func (w *World) ComputeFOV() mapset.Set[world.Point] {
	w.visible = fov.Compute(w.level, w.player.Position, w.cfg.FOVRadius)
	return w.visible
}

// VisibleEntities returns the NPCs standing on currently visible tiles.
func (w *World) VisibleEntities() []*entity.Entity {
	var seen []*entity.Entity
	for _, npc := range w.npcs {
		if w.visible.Has(npc.Position) {
			seen = append(seen, npc)
		}
	}
	return seen
}

// FindPath plans a route for the player across explored tiles.
func (w *World) FindPath(goal world.Point) pathfind.Path {
	return pathfind.FindPath(w.level, w.player.Position, goal)
}

// Move steps the player in dir. It does nothing outside the player phase or
// when the destination is blocked; a successful move hands over to the monsters.
func (w *World) Move(dir world.Direction) bool {
	if w.phase != PhasePlayer {
		return false
	}
	if !movement.TryMove(w.level, w.player, dir) {
		return false
	}
	w.phase = PhaseMonsters
	return true
}

// EndTurn lets every NPC wander one step, advances the turn counter and
// recomputes the field of view. It reports false if the player has not moved.
func (w *World) EndTurn() bool {
	if w.phase != PhaseMonsters {
		return false
	}
	for _, npc := range w.npcs {
		movement.Wander(w.level, npc, w.rng)
	}
	w.turn++
	w.phase = PhasePlayer
	w.ComputeFOV()
	return true
}

// Regenerate replaces the level, places the player, spawns a fresh set of
// NPCs and recomputes the field of view. The configured connectivity policy
// decides what happens to disconnected pockets.
func (w *World) Regenerate(ctx context.Context, strategy world.Strategy) {
	ctx, span := w.tracer.Start(ctx, "world.regenerate")
	defer span.End()

	var level *world.Level
	switch w.cfg.Connectivity {
	case world.ConnectivityRetry:
		var err error
		level, err = w.gen.GenerateConnected(ctx, w.cfg.Width, w.cfg.Height, strategy)
		if err != nil {
			slog.Warn("keeping poorly connected level", "error", err)
			span.RecordError(err)
		}
	default:
		level = w.gen.Generate(ctx, w.cfg.Width, w.cfg.Height, strategy)
	}

	start, ok := level.RandomCrossable(w.rng, placementAttempts)
	if !ok {
		start = world.Point{X: level.Width / 2, Y: level.Height / 2}
		slog.Warn("no open tile for the player, using the centre", "pos", start.String())
	}

	sealed := 0
	if w.cfg.Connectivity == world.ConnectivitySeal && ok {
		sealed = level.SealUnreachable(start, w.rng)
	}

	w.level = level
	w.strategy = strategy
	if def := w.registry.GetByID(string(entity.KindPlayer)); def != nil {
		w.player = entity.NewFromDef(def, start, w.rng)
	} else {
		w.player = entity.New(entity.KindPlayer, start, w.rng)
	}
	w.npcs = entity.Spawn(level, w.cfg.SpawnCount, w.rng, w.registry)
	w.phase = PhasePlayer
	w.ComputeFOV()

	span.SetAttributes(
		attribute.String("world.strategy", strategy.String()),
		attribute.String("world.connectivity", w.cfg.Connectivity.String()),
		attribute.Int("world.npcs", len(w.npcs)),
		attribute.Int("world.sealed", sealed),
		attribute.Int("player.x", start.X),
		attribute.Int("player.y", start.Y),
	)
	slog.Info("level ready",
		"strategy", strategy.String(),
		"fingerprint", fmt.Sprintf("%016x", level.Fingerprint()),
		"npcs", len(w.npcs),
		"sealed", sealed,
		"player", start.String(),
	)
}
