package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/profile"

	"github.com/vovakirdan/jage/internal/config"
	"github.com/vovakirdan/jage/internal/core"
	"github.com/vovakirdan/jage/internal/engine"
	"github.com/vovakirdan/jage/internal/logging"
	"github.com/vovakirdan/jage/internal/platform"
	"github.com/vovakirdan/jage/internal/scene"
	"github.com/vovakirdan/jage/internal/sprite"
	"github.com/vovakirdan/jage/internal/storage"
)

// enemyColor is used when enemy.yaml cannot be loaded.
var enemyColor = core.RGBA{R: 0xff, A: 0xff}

// run executes one game session and returns the process exit status.
// Everything it opens is closed before it returns.
func run(ctx context.Context, dir string, stderr io.Writer) int {
	if err := config.CheckDataDir(dir); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	cfg, cfgErr := config.Load(dir)
	reset := cfg.Validate()
	requested := cfg.Backend
	cfg.Backend = resolveBackend(requested)
	game := gameID(dir)

	// The terminal backend draws on stderr's terminal, so keep logs in the file
	lg, err := logging.Open(dir, game, cfg.Backend != "terminal")
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer lg.Close()
	logger := lg.Logger

	if err := logging.SetLevel(logger, cfg.LogLevel); err != nil {
		logger.Warn("invalid log level, using info", "level", cfg.LogLevel, "err", err)
	}
	logging.SystemInfo(logger, version)

	if cfgErr != nil {
		logger.Warn("using default configuration", "err", cfgErr)
	}
	if len(reset) > 0 {
		logger.Warn("invalid config values reset to defaults", "keys", strings.Join(reset, ","))
	}
	if requested != cfg.Backend {
		logger.Warn("unknown backend, using default", "backend", requested, "using", cfg.Backend, "available", backendIDs())
	}

	if p := startProfile(logger, dir, cfg.Profile); p != nil {
		defer p.Stop()
	}

	backend, err := platform.Create(cfg.Backend, platform.Options{
		Logger:      logger,
		SSHAddress:  cfg.SSH.Address,
		HostKeyPath: config.ResolvePath(dir, cfg.SSH.HostKey),
	})
	if err != nil {
		logger.Error("failed to create window backend", "backend", cfg.Backend, "err", err)
		return 1
	}

	player := loadSprite(logger, filepath.Join(dir, "player.yaml"), "player", core.White)
	enemy := loadSprite(logger, filepath.Join(dir, "enemy.yaml"), "enemy", enemyColor)
	rw, rh := float64(cfg.RenderWidth), float64(cfg.RenderHeight)
	player.SetPosition(core.V(rw/2, rh*3/4))
	enemy.SetPosition(core.V(rw/2, rh/4))

	eng, err := engine.New(engine.Options{
		Window:   backend,
		Input:    backend,
		Scene:    scene.New(player, enemy),
		Player:   player,
		Config:   cfg.WindowConfig(),
		DeadZone: cfg.DeadZone,
		KeySpeed: cfg.KeySpeed,
		UpdateHz: cfg.UpdateHz,
		RenderHz: cfg.RenderHz,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("failed to create engine", "err", err)
		return 1
	}

	stats := openStats(logger, dir, cfg)
	if stats != nil {
		defer stats.Close()
		logHistory(logger, stats, game)
	}

	runErr := platform.Host(backend, func() error {
		return eng.Run(ctx)
	})

	if stats != nil && !eng.Stats().Started.IsZero() {
		saveSession(logger, stats, game, cfg.Backend, eng)
	}

	if runErr != nil {
		logger.Error("game stopped with error", "err", runErr)
		if errors.Is(runErr, platform.ErrCreateWindow) {
			return 1
		}
	}
	logger.Info("goodbye")
	return 0
}

// loadSprite reads a sprite file, falling back to a plain coloured square.
func loadSprite(logger *log.Logger, path, name string, col core.RGBA) *sprite.Sprite {
	sp, err := sprite.Load(path)
	if err != nil {
		logger.Warn("using default sprite", "sprite", name, "err", err)
		return sprite.Default(name, col)
	}
	return sp
}

// startProfile starts the profiler selected by mode, or returns nil.
func startProfile(logger *log.Logger, dir, mode string) interface{ Stop() } {
	var opt func(*profile.Profile)
	switch mode {
	case "":
		return nil
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfile
	case "trace":
		opt = profile.TraceProfile
	case "block":
		opt = profile.BlockProfile
	case "mutex":
		opt = profile.MutexProfile
	default:
		logger.Warn("unknown profile mode, profiling disabled", "profile", mode)
		return nil
	}

	logger.Info("profiling enabled", "profile", mode, "dir", dir)
	return profile.Start(opt, profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet)
}

func openStats(logger *log.Logger, dir string, cfg config.Config) *storage.Store {
	if cfg.Stats == "" {
		return nil
	}
	st, err := storage.Open(config.ResolvePath(dir, cfg.Stats))
	if err != nil {
		logger.Warn("session statistics disabled", "err", err)
		return nil
	}
	return st
}

// logHistory reports how often the game was played and how the last run went.
func logHistory(logger *log.Logger, st *storage.Store, game string) {
	count, err := st.SessionCount(game)
	if err != nil || count == 0 {
		return
	}
	recent, err := st.RecentSessions(game, 1)
	if err != nil || len(recent) == 0 {
		return
	}
	last := recent[0]
	logger.Info("previous sessions",
		"count", count,
		"last", last.StartedAt.Format(time.DateTime),
		"duration", last.Duration.Round(time.Second),
		"avgFrameMS", last.AvgFrameMS)
}

func saveSession(logger *log.Logger, st *storage.Store, game, backend string, eng *engine.Engine) {
	s := eng.Stats()
	ws := eng.WindowState()

	sess := storage.Session{
		Game:        game,
		Backend:     backend,
		StartedAt:   s.Started,
		Duration:    s.Stopped.Sub(s.Started),
		Updates:     s.Updates,
		AvgUpdateMS: float64(s.AvgUpdate) / float64(time.Millisecond),
		Frames:      s.Frames,
		AvgFrameMS:  float64(s.AvgFrame) / float64(time.Millisecond),
		Width:       ws.Width,
		Height:      ws.Height,
		Fullscreen:  ws.Fullscreen,
	}
	if _, err := st.SaveSession(sess); err != nil {
		logger.Warn("failed to save session statistics", "err", err)
	}
}

func backendIDs() string {
	var ids []string
	for _, b := range platform.List() {
		ids = append(ids, b.ID)
	}
	return strings.Join(ids, ",")
}

// gameID names the log file and the statistics of a data directory. The
// config name is only a window title and may contain anything.
func gameID(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return filepath.Base(dir)
}

// resolveBackend returns id if it is registered and the default backend
// otherwise.
func resolveBackend(id string) string {
	if platform.Exists(id) {
		return id
	}
	return config.Default().Backend
}
