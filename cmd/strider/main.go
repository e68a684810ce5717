package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Versifine/strider/internal/config"
	"github.com/Versifine/strider/internal/debug"
	"github.com/Versifine/strider/internal/event"
	"github.com/Versifine/strider/internal/locomotion"
	"github.com/Versifine/strider/internal/logger"
	"github.com/Versifine/strider/internal/mover"
	"github.com/Versifine/strider/internal/world"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("Failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = config.Default()
	}
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: "console",
		File:   cfg.Logging.File,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	grid, zones := buildArena(cfg.Sandbox)
	box := mover.New(grid, mgl32.Vec3{0, cfg.Sandbox.SpawnHeight, 0}, cfg.Movement.StandingHeight, cfg.Sandbox.CapsuleRadius)

	console := debug.NewConsole(cfg.Sandbox.TickRate)
	ctrl := locomotion.New(&cfg.Movement, box, console, console)
	console.Bind(ctrl)
	logEvents(ctrl.Bus())

	watcher, err := config.NewWatcher(*configPath)
	if err != nil {
		slog.Warn("Config watching disabled", "error", err)
	} else {
		defer watcher.Close()
	}

	// Zone transitions and config reloads are applied between ticks, on the
	// tick goroutine, so the controller never sees them mid-update.
	var inZone *world.Zone
	console.OnTick = func() {
		if watcher != nil {
			select {
			case next := <-watcher.Configs:
				ctrl.SetConfig(next.Movement)
				slog.Info("Reloaded movement config")
			case err := <-watcher.Errors:
				slog.Warn("Config reload failed", "error", err)
			default:
			}
		}

		min, max := box.Bounds()
		zone := zones.FirstOverlapping(min, max)
		if zone == inZone {
			return
		}
		if inZone != nil {
			if obj, ok := inZone.Payload.(locomotion.Vaultable); ok {
				ctrl.ExitVaultZone(obj)
			}
		}
		if zone != nil {
			if obj, ok := zone.Payload.(locomotion.Vaultable); ok {
				ctrl.EnterVaultZone(obj)
			}
		}
		inZone = zone
	}

	slog.Info("Sandbox ready", "tick_rate", cfg.Sandbox.TickRate, "arena", cfg.Sandbox.ArenaSize)
	if err := console.Start(ctx); err != nil {
		slog.Error("Console failed", "error", err)
		os.Exit(1)
	}
}

// buildArena lays out a flat floor, a perimeter wall, a stepped slope and a
// waist-high vaultable barrier east of the spawn.
func buildArena(sc config.SandboxConfig) (*world.Grid, *world.ZoneSet) {
	half := sc.ArenaSize / 2
	grid := world.NewGrid()
	grid.FillFloor(-half, half, -half, half, -1)

	// Perimeter wall, two cells high.
	for y := 0; y <= 1; y++ {
		grid.FillBox(world.Pos{X: -half, Y: y, Z: -half}, world.Pos{X: half, Y: y, Z: -half})
		grid.FillBox(world.Pos{X: -half, Y: y, Z: half}, world.Pos{X: half, Y: y, Z: half})
		grid.FillBox(world.Pos{X: -half, Y: y, Z: -half}, world.Pos{X: -half, Y: y, Z: half})
		grid.FillBox(world.Pos{X: half, Y: y, Z: -half}, world.Pos{X: half, Y: y, Z: half})
	}

	// Stairs up to a platform in the north-west corner.
	for step := 0; step < 4; step++ {
		grid.FillBox(
			world.Pos{X: -half + 2 + step, Y: step, Z: half - 6},
			world.Pos{X: -half + 2 + step, Y: step, Z: half - 2},
		)
	}

	// Vaultable barrier: one block high, east of spawn.
	barrier := world.Pos{X: 6, Y: 0, Z: 0}
	grid.FillBox(world.Pos{X: barrier.X, Y: 0, Z: -3}, world.Pos{X: barrier.X, Y: 0, Z: 3})

	zones := world.NewZoneSet()
	zones.Add(&world.Zone{
		ID:  "barrier-east",
		Min: mgl32.Vec3{float32(barrier.X) - 1.5, 0, -3},
		Max: mgl32.Vec3{float32(barrier.X) + 2.5, 2, 4},
		Payload: &world.Obstacle{
			Center:         mgl32.Vec3{float32(barrier.X) + 0.5, 0, 0.5},
			Height:         1.0,
			VaultDuration:  0.6,
			TravelDistance: 2.5,
		},
	})
	return grid, zones
}

func logEvents(bus *event.Bus) {
	for _, kind := range []event.Kind{
		event.Jump, event.Land,
		event.CrouchStart, event.CrouchEnd,
		event.SlideStart, event.SlideEnd,
		event.VaultStart, event.VaultEnd,
	} {
		k := kind
		bus.Subscribe(k, func(evt any) {
			if evt != nil {
				slog.Debug(fmt.Sprintf("Event %s", k), "detail", fmt.Sprintf("%+v", evt))
				return
			}
			slog.Debug(fmt.Sprintf("Event %s", k))
		})
	}
}
