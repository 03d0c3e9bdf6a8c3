package level

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mfeld/cavegen/pkg/cave"
	"github.com/mfeld/cavegen/pkg/grid"
	"github.com/mfeld/cavegen/pkg/physics"
	"github.com/mfeld/cavegen/pkg/placement"
	"github.com/mfeld/cavegen/pkg/rng"
)

// Phase names for derived RNG streams. Keeping each pipeline phase on its
// own stream means a local change to one phase (an extra draw, a reordered
// loop) cannot perturb the output of any other.
const (
	masterPhase   = "master"
	corridorPhase = "corridor-seed"
	platformPhase = "platform-seed"
	coinPhase     = "coin-seed"
	enemyPhase    = "enemy-seed"
)

// forbiddenRadius is the half-width of the 5x5 window shielded from
// platform stamping around the spawn, each main point, and each coin.
const forbiddenRadius = 2

// mainPointDiscRadius is the floor disc reopened around each main point
// after corridor carving.
const mainPointDiscRadius = 2

// Generator composes the full pipeline into a single Generate call.
// Generation is single-threaded, stateless across calls, and deterministic:
// identical configs produce bitwise-identical levels.
type Generator struct {
	log *logrus.Entry
}

// NewGenerator creates a generator logging through the standard logger.
func NewGenerator() *Generator {
	return NewGeneratorWithLogger(logrus.StandardLogger())
}

// NewGeneratorWithLogger creates a generator that logs stage progress to the
// given logger.
func NewGeneratorWithLogger(logger *logrus.Logger) *Generator {
	return &Generator{
		log: logger.WithFields(logrus.Fields{"component": "generator"}),
	}
}

// Generate runs the whole pipeline: cave synthesis, spawn, platforms, goal,
// coins, a coin-seeded platform refinement pass, and enemies.
//
// Configuration faults and degenerate caves (no spawn, no goal, reachable
// fraction under the coin placer's floor) surface as errors; callers retry
// degenerate caves with a different seed. Context cancellation stops
// generation between phases.
func (gen *Generator) Generate(ctx context.Context, cfg *Config) (*Level, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configHash := cfg.Hash()
	master := rng.NewRNG(cfg.Seed, masterPhase, configHash)
	corridorRNG := rng.NewRNG(cfg.Seed, corridorPhase, configHash)
	platformRNG := rng.NewRNG(cfg.Seed, platformPhase, configHash)
	coinRNG := rng.NewRNG(cfg.Seed, coinPhase, configHash)
	enemyRNG := rng.NewRNG(cfg.Seed, enemyPhase, configHash)

	phys := physics.NewAnalyzer(cfg.Physics)
	stats := Stats{}

	// Phase 1: cave synthesis.
	g, mainPoints, err := gen.synthesize(ctx, cfg, master, corridorRNG, &stats)
	if err != nil {
		return nil, err
	}

	if err := checkCancel(ctx); err != nil {
		return nil, err
	}

	// Phase 2: spawn.
	var warnings []string
	spawnResult, err := placement.PlaceSpawn(g, cfg.Spawn, master)
	if err != nil {
		return nil, fmt.Errorf("spawn placement failed: %w", err)
	}
	spawn := spawnResult.Position
	if spawnResult.FallbackUsed {
		warnings = append(warnings, spawnResult.Warning)
		gen.log.WithFields(logrus.Fields{"warning": spawnResult.Warning}).Warn("spawn fallback")
	}
	gen.log.WithFields(logrus.Fields{"x": spawn.X, "y": spawn.Y}).Debug("spawn placed")

	if err := checkCancel(ctx); err != nil {
		return nil, err
	}

	// Phase 3: platforms, from the spawn and then from each main point.
	platformCfg := cfg.Platforms
	placer := placement.NewPlatformPlacer(platformCfg, phys, platformRNG)

	forbidden := make(map[grid.Position]bool)
	placement.ForbiddenWindow(forbidden, spawn, forbiddenRadius)
	for _, mp := range mainPoints {
		placement.ForbiddenWindow(forbidden, mp, forbiddenRadius)
	}

	var platforms []placement.Platform
	platforms = append(platforms, placer.Place(g, spawn, spawn, forbidden)...)
	for _, mp := range mainPoints {
		if len(platforms) >= platformCfg.MaxPlatforms {
			break
		}
		if g.AtPos(mp) != grid.Floor {
			continue
		}
		platforms = append(platforms, placer.Place(g, mp, spawn, forbidden)...)
	}
	gen.log.WithFields(logrus.Fields{"platforms": len(platforms)}).Debug("platform pass complete")

	if err := checkCancel(ctx); err != nil {
		return nil, err
	}

	// Phase 4: goal. The working grid already has platforms stamped as
	// wall, so a goal candidate can never sit inside a platform.
	goalCfg := cfg.Goal
	goalCfg.MinDistance = float64(cfg.MinStartGoalDistance)
	goalResult, err := placement.PlaceGoal(g, spawn, goalCfg, master)
	if err != nil {
		return nil, fmt.Errorf("goal placement failed: %w", err)
	}
	goal := goalResult.Position
	if goalResult.FallbackUsed {
		warnings = append(warnings, goalResult.Warning)
		gen.log.WithFields(logrus.Fields{"warning": goalResult.Warning}).Warn("goal fallback")
	}
	gen.log.WithFields(logrus.Fields{"x": goal.X, "y": goal.Y}).Debug("goal placed")

	if err := checkCancel(ctx); err != nil {
		return nil, err
	}

	// Phase 5: coins.
	coinCfg := cfg.Coins
	coinCfg.Count = cfg.CoinCount
	coinPlacer, err := placement.NewCoinPlacer(coinCfg, phys)
	if err != nil {
		return nil, fmt.Errorf("coin placer: %w", err)
	}
	coins, err := coinPlacer.Place(g, spawn, platforms, coinRNG)
	if err != nil {
		return nil, fmt.Errorf("coin placement failed: %w", err)
	}
	gen.log.WithFields(logrus.Fields{"coins": len(coins)}).Debug("coins placed")

	if err := checkCancel(ctx); err != nil {
		return nil, err
	}

	// Phase 6: coin-seeded platform refinement. Coin pockets and the goal
	// join the forbidden set so refinement cannot bury either.
	for _, c := range coins {
		placement.ForbiddenWindow(forbidden, c, forbiddenRadius)
	}
	placement.ForbiddenWindow(forbidden, goal, forbiddenRadius)
	for _, c := range coins {
		if len(platforms) >= platformCfg.MaxPlatforms {
			break
		}
		if g.AtPos(c) != grid.Floor {
			continue
		}
		platforms = append(platforms, placer.Place(g, c, spawn, forbidden)...)
	}

	if err := checkCancel(ctx); err != nil {
		return nil, err
	}

	// Phase 7: enemies.
	enemyCfg := cfg.Enemies
	enemyCfg.MaxEnemies = cfg.EnemyCount
	analyzer := placement.NewEnemyAnalyzer(cfg.Analyzer)
	enemyPlacer := placement.NewEnemyPlacer(enemyCfg, analyzer)
	enemies := enemyPlacer.Place(g, spawn, goal, coins, platforms, enemyRNG)
	gen.log.WithFields(logrus.Fields{"enemies": len(enemies)}).Debug("enemies placed")

	// Final metrics over the finished grid.
	finalReach := phys.ReachableFrom(g, spawn, physics.Unlimited)
	stats.FloorTiles = g.FloorCount()
	stats.ReachableTiles = finalReach.Count()
	nonWall := g.Width()*g.Height() - g.WallCount()
	if nonWall > 0 {
		stats.ReachableFraction = float64(finalReach.Count()) / float64(nonWall)
	}

	return &Level{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Seed:      cfg.Seed,
		Grid:      g,
		Spawn:     spawn,
		Goal:      goal,
		Coins:     coins,
		Enemies:   enemies,
		Platforms: platforms,
		Warnings:  warnings,
		Stats:     stats,
	}, nil
}

// synthesize runs the terrain passes: seeding, smoothing, pruning,
// connecting, thickening, and diagonal repair.
func (gen *Generator) synthesize(ctx context.Context, cfg *Config, master, corridorRNG *rng.RNG, stats *Stats) (*grid.Grid, []grid.Position, error) {
	seederCfg := cfg.Seeder
	seederCfg.WallRatio = cfg.InitialWallRatio
	seeder := cave.NewSeeder(seederCfg)

	g, err := seeder.Seed(cfg.Width, cfg.Height, master)
	if err != nil {
		return nil, nil, fmt.Errorf("seeding failed: %w", err)
	}
	mainPoints := seeder.MainPoints()

	if err := checkCancel(ctx); err != nil {
		return nil, nil, err
	}

	automata := cave.Automata{
		Steps:             cfg.SimulationSteps,
		BirthThreshold:    cfg.BirthThreshold,
		SurvivalThreshold: cfg.SurvivalThreshold,
	}
	automata.Run(g)
	g.CloseBorder()

	pruned := cave.FillSmallRegions(g, cfg.MinRoomSize)
	regions := cave.DetectRegions(g)
	stats.Regions = regions.Count()
	gen.log.WithFields(logrus.Fields{
		"regions": regions.Count(),
		"pruned":  pruned,
	}).Debug("cave smoothed")

	carver := cave.NewCarver(corridorRNG)
	stats.CorridorsCarved = carver.Connect(g)

	for _, mp := range mainPoints {
		cave.OpenDisc(g, mp, mainPointDiscRadius)
	}
	cave.ThickenCorridors(g)
	g.CloseBorder()

	report := cave.FixDiagonalFaults(g)
	stats.DiagonalIssues = report.IssuesFound
	stats.DiagonalFixes = report.FixesApplied
	gen.log.WithFields(logrus.Fields{
		"corridors":     stats.CorridorsCarved,
		"diagonalFixes": report.FixesApplied,
	}).Debug("cave connected")

	return g, mainPoints, nil
}

func checkCancel(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
