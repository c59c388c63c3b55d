package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/pagenav"
	"git.home.luguber.info/inful/docnav/internal/server"
	"git.home.luguber.info/inful/docnav/internal/watch"
)

// ServeCmd serves the navigation API and reloads on content or config changes.
type ServeCmd struct {
	Addr      string `name:"addr" help:"Listen address (overrides server.addr)"`
	Watch     bool   `name:"watch" help:"Reload on file changes" xor:"watch"`
	NoWatch   bool   `name:"no-watch" help:"Disable reloading even when server.watch is set" xor:"watch"`
	NoMetrics bool   `name:"no-metrics" help:"Disable the metrics endpoint"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	logger := root.configureLogging(cfg)

	addr := cfg.Server.Addr
	if s.Addr != "" {
		addr = s.Addr
	}
	watchEnabled := (cfg.Server.Watch || s.Watch) && !s.NoWatch
	metricsEnabled := cfg.Server.Metrics && !s.NoMetrics

	opts := server.Options{Logger: logger, MetricsPath: cfg.Server.MetricsPath}
	var rec metrics.Recorder = metrics.NoopRecorder{}
	if metricsEnabled {
		reg := prom.NewRegistry()
		rec = metrics.NewPrometheusRecorder(reg)
		opts.Registry = reg
	}
	opts.Recorder = rec

	// Reloads run serially, so the loader state needs no locking. The first
	// snapshot reuses the config loaded above; later ones re-read it and
	// report a moved content directory to the watcher.
	contentDirs := make(chan string, 1)
	first, contentDir := true, cfg.Site.ContentDir
	srv := server.New(func(context.Context) (*pagenav.Builder, error) {
		if first {
			first = false
			return buildFromConfig(cfg, logger, rec)
		}
		next, err := config.Load(root.Config)
		if err != nil {
			return nil, err
		}
		b, err := buildFromConfig(next, logger, rec)
		if err != nil {
			return nil, err
		}
		if watchEnabled && next.Site.ContentDir != contentDir {
			contentDir = next.Site.ContentDir
			select {
			case <-contentDirs:
			default:
			}
			contentDirs <- contentDir
		}
		return b, nil
	}, opts)
	if err := srv.Reload(ctx); err != nil {
		return err
	}

	if watchEnabled {
		newWatcher := func(dir string) (*watch.Watcher, error) {
			return watch.New(watch.Options{
				ContentDir: dir,
				ConfigPath: root.Config,
				Debounce:   cfg.Server.DebounceDuration(),
				Logger:     logger,
				OnChange: func(ctx context.Context) {
					// Failures are logged and counted by Reload.
					_ = srv.Reload(ctx)
				},
			})
		}
		w, err := newWatcher(cfg.Site.ContentDir)
		if err != nil {
			return err
		}
		go superviseWatch(ctx, w, contentDirs, newWatcher, logger)
	}

	return srv.ListenAndServe(ctx, addr)
}

// superviseWatch runs w until ctx is done. Each directory received on dirs
// replaces the running watcher with one built for that directory.
func superviseWatch(ctx context.Context, w *watch.Watcher, dirs <-chan string, newWatcher func(dir string) (*watch.Watcher, error), logger *slog.Logger) {
	for {
		wctx, stop := context.WithCancel(ctx)
		if w != nil {
			go func(w *watch.Watcher) {
				if err := w.Run(wctx); err != nil {
					logger.Error("File watcher stopped", logfields.Error(err))
				}
			}(w)
		}

		select {
		case <-ctx.Done():
			stop()
			return
		case dir := <-dirs:
			stop()
			logger.Info("Content directory changed, restarting watcher", logfields.Path(dir))
			next, err := newWatcher(dir)
			if err != nil {
				logger.Error("Failed to watch new content directory", logfields.Path(dir), logfields.Error(err))
			}
			w = next
		}
	}
}
