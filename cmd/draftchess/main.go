package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/park285/draft-chess/internal/adapter/snapshot"
	appcfg "github.com/park285/draft-chess/internal/config"
	"github.com/park285/draft-chess/internal/draft"
	"github.com/park285/draft-chess/internal/msgcat"
	"github.com/park285/draft-chess/internal/obslog"
	"github.com/park285/draft-chess/internal/render"
	"github.com/park285/draft-chess/internal/tui"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", os.Getenv(appcfg.EnvPrefix+"CONFIG"), "path to a YAML config file")
	flag.Parse()

	cfg, err := appcfg.Load(*configPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	if _, err := obslog.Init(obslog.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		File:    cfg.Log.File,
		ToFile:  cfg.Log.ToFile,
		Console: cfg.Log.Console,
		Caller:  cfg.Log.Caller,
	}); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("draftchess_exit", zap.Error(err))
		log.Fatalf("draftchess: %v", err)
	}
}

func run(cfg *appcfg.AppConfig, logger *zap.Logger) error {
	rules, err := cfg.DraftRules()
	if err != nil {
		return err
	}
	game, err := draft.New(rules, draft.WithLogger(logger))
	if err != nil {
		return err
	}
	cat, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sink, session, err := openSink(ctx, cfg.Snapshot)
	if err != nil {
		return err
	}
	if c, ok := sink.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}
	presenter := snapshot.NewPresenter(render.NewPNGRenderer(), sink, logger)
	logger.Info("draftchess_start",
		zap.String("session", session),
		zap.Int("light_budget", game.Budget(draft.Light)),
		zap.Int("dark_budget", game.Budget(draft.Dark)),
	)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	app := tui.New(screen, game,
		tui.WithCatalog(cat),
		tui.WithSnapshots(presenter),
		tui.WithMouse(cfg.UI.Mouse),
		tui.WithLogger(logger),
	)
	return app.Run(ctx)
}

func openSink(ctx context.Context, cfg appcfg.SnapshotConfig) (snapshot.Sink, string, error) {
	if cfg.RedisURL == "" {
		fs := snapshot.NewFileSink(cfg.Dir)
		return fs, fs.Session(), nil
	}
	rs, err := snapshot.NewRedisSink(ctx, cfg.RedisURL, cfg.TTL)
	if err != nil {
		return nil, "", err
	}
	return rs, rs.Session(), nil
}
