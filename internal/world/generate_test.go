package world

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

// levelFromRows builds a level from an ASCII layout: '#' is mud wall, anything else floor.
func levelFromRows(rows ...string) *Level {
	grid := NewGrid(len(rows[0]), len(rows))
	kinds := make([]TerrainKind, 0, grid.Size())
	for _, row := range rows {
		for _, ch := range row {
			if ch == '#' {
				kinds = append(kinds, MudWall)
			} else {
				kinds = append(kinds, StoneFloor)
			}
		}
	}
	return NewLevel(grid, kinds, rand.New(rand.NewSource(1)))
}

func TestGenerateReproducibility(t *testing.T) {
	ctx := context.Background()
	for _, strategy := range []Strategy{StrategyCave, StrategyRandom, StrategyFloor} {
		t.Run(strategy.String(), func(t *testing.T) {
			g1 := NewGenerator(rand.New(rand.NewSource(12345)))
			g2 := NewGenerator(rand.New(rand.NewSource(12345)))

			l1 := g1.Generate(ctx, DefaultWidth, DefaultHeight, strategy)
			l2 := g2.Generate(ctx, DefaultWidth, DefaultHeight, strategy)

			if l1.Fingerprint() != l2.Fingerprint() {
				t.Fatalf("Fingerprint mismatch: %x != %x", l1.Fingerprint(), l2.Fingerprint())
			}
			for i := range l1.Tiles {
				if l1.Tiles[i] != l2.Tiles[i] {
					t.Fatalf("Tile mismatch at %v: %+v != %+v", l1.Tiles[i].Position, l1.Tiles[i], l2.Tiles[i])
				}
			}
		})
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	ctx := context.Background()
	l1 := NewGenerator(rand.New(rand.NewSource(12345))).Generate(ctx, DefaultWidth, DefaultHeight, StrategyCave)
	l2 := NewGenerator(rand.New(rand.NewSource(54321))).Generate(ctx, DefaultWidth, DefaultHeight, StrategyCave)

	if l1.Fingerprint() == l2.Fingerprint() {
		t.Error("Caves with different seeds should not be identical")
	}
}

func TestCaveSeedingBeforeGrowth(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := NewGenerator(rand.New(rand.NewSource(seed)))
		g.Cave.Cycles = 0
		level := g.Generate(context.Background(), 48, 32, StrategyCave)

		for _, s := range CaveSectors(level.Grid, g.Cave) {
			found := 0
			for _, tile := range level.Tiles {
				if tile.Kind == StoneFloor && s.Contains(tile.Position) {
					found++
				}
			}
			if found != 1 {
				t.Errorf("seed %d: sector %+v holds %d floor seeds, want 1", seed, s, found)
			}
			if !s.Contains(Point{X: s.X, Y: s.Y}) || s.Contains(Point{X: s.X + s.Width, Y: s.Y}) {
				t.Errorf("sector %+v bounds are not half-open", s)
			}
		}

		walls := level.CountKind(MudWall)
		if walls*2 < level.Size() {
			t.Errorf("seed %d: %d of %d tiles are mud wall, want at least half", seed, walls, level.Size())
		}
		if floors := level.CountKind(StoneFloor); floors != len(CaveSectors(level.Grid, g.Cave)) {
			t.Errorf("seed %d: %d floor tiles before growth, want one per sector", seed, floors)
		}
	}
}

func TestCaveGrowthKeepsSeeds(t *testing.T) {
	seeded := NewGenerator(rand.New(rand.NewSource(7)))
	seeded.Cave.Cycles = 0
	before := seeded.Generate(context.Background(), 48, 32, StrategyCave)

	grown := NewGenerator(rand.New(rand.NewSource(7)))
	after := grown.Generate(context.Background(), 48, 32, StrategyCave)

	for i := range before.Tiles {
		if before.Tiles[i].Kind == StoneFloor && after.Tiles[i].Kind != StoneFloor {
			t.Errorf("seed at %v was lost during growth", before.Tiles[i].Position)
		}
	}
	if after.CountKind(StoneFloor) <= before.CountKind(StoneFloor) {
		t.Error("growth cycles should add floor tiles")
	}
	for i := range after.Tiles {
		kind := after.Tiles[i].Kind
		if kind != StoneFloor && kind != MudWall {
			t.Fatalf("cave produced unexpected terrain %v", kind)
		}
	}
}

func TestGenerateFloor(t *testing.T) {
	level := NewGenerator(rand.New(rand.NewSource(1))).Generate(context.Background(), 10, 10, StrategyFloor)
	if got := level.CrossableCount(); got != 100 {
		t.Errorf("CrossableCount() = %d, want 100", got)
	}
}

func TestGenerateRandomWallChance(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(3)))
	g.WallPercent = 10
	level := g.Generate(context.Background(), 100, 100, StrategyRandom)

	walls := level.CountKind(StoneWall)
	if walls == 0 || walls > 2000 {
		t.Errorf("got %d stone walls in 10000 tiles at 10%%, want roughly 1000", walls)
	}
	if walls+level.CountKind(StoneFloor) != level.Size() {
		t.Error("random strategy produced terrain other than stone floor and wall")
	}
}

func TestGenerateConnected(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(99)))
	g.MinCoverage = 1.0
	level, err := g.GenerateConnected(context.Background(), 20, 20, StrategyFloor)
	if err != nil {
		t.Fatalf("GenerateConnected(floor) error: %v", err)
	}
	if level.LargestRegionShare() != 1.0 {
		t.Errorf("LargestRegionShare() = %v, want 1", level.LargestRegionShare())
	}
}

func TestGenerateConnectedGivesUp(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(5)))
	// Tiny sectors with no growth leave every seed isolated.
	g.Cave = CaveParams{SectorsX: 8, SectorsY: 6, Cycles: 0}
	g.MinCoverage = 0.5
	g.MaxTries = 3

	level, err := g.GenerateConnected(context.Background(), 48, 32, StrategyCave)
	if !errors.Is(err, ErrPoorlyConnected) {
		t.Fatalf("GenerateConnected error = %v, want ErrPoorlyConnected", err)
	}
	if level == nil {
		t.Fatal("GenerateConnected should still return the last level")
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		input string
		want  Strategy
		valid bool
	}{
		{"cave", StrategyCave, true},
		{"random", StrategyRandom, true},
		{"floor", StrategyFloor, true},
		{"maze", StrategyCave, false},
	}

	for _, tt := range tests {
		got, err := ParseStrategy(tt.input)
		if tt.valid && (err != nil || got != tt.want) {
			t.Errorf("ParseStrategy(%q) = %v, %v; want %v", tt.input, got, err, tt.want)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseStrategy(%q) should fail", tt.input)
		}
	}
}

func TestParseConnectivity(t *testing.T) {
	for _, c := range []Connectivity{ConnectivityAccept, ConnectivityRetry, ConnectivitySeal} {
		got, err := ParseConnectivity(c.String())
		if err != nil || got != c {
			t.Errorf("ParseConnectivity(%q) = %v, %v; want %v", c.String(), got, err, c)
		}
	}
	if _, err := ParseConnectivity("flood"); err == nil {
		t.Error("ParseConnectivity(\"flood\") should fail")
	}
}
