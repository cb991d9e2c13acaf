package main

import (
	"context"
	"flag"
	"net/http"
	"net/http/pprof"
	"os"
	"time"

	"github.com/matst80/listing-filters/pkg/common"
	"github.com/matst80/listing-filters/pkg/config"
	"github.com/matst80/listing-filters/pkg/logger"
	"github.com/matst80/listing-filters/pkg/server"
	"github.com/matst80/listing-filters/pkg/storage"
	"github.com/matst80/listing-filters/pkg/tracking"
)

var enableProfiling = flag.Bool("profiling", false, "enable profiling endpoints on the debug address")
var configDir = flag.String("config", "", "directory holding config.yaml")

func main() {
	flag.Parse()
	os.Exit(run())
}

// run returns the process exit code once every deferred cleanup has run.
func run() int {
	var paths []string
	if *configDir != "" {
		paths = append(paths, *configDir)
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		logger.NewStructured("info", "json").WithError(err).Error("could not load config", nil)
		return 1
	}
	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = log.Zap().Sync() }()

	var handoff server.HandoffStore
	if cfg.Redis.Address != "" {
		store := storage.NewHandoffStore(storage.NewRedisClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB), cfg.Redis.HandoffTTL)
		defer store.Close()
		handoff = store
	} else {
		log.Warn("no redis address, handoff disabled", nil)
	}

	var trk tracking.Tracking = tracking.NopTracking{}
	if cfg.Rabbit.URL != "" {
		rt, err := tracking.NewRabbitTracking(cfg.Rabbit.URL, cfg.Rabbit.Prefix, cfg.Rabbit.Country, log)
		if err != nil {
			log.WithError(err).Error("could not connect to rabbit, tracking disabled", nil)
		} else {
			trk = rt
		}
	}
	defer trk.Close()

	disk := storage.NewDiskStorage(cfg.Storage.DataDir)
	sessions := server.NewRegistry(nil)
	if snaps, err := disk.LoadSessions(); err != nil {
		log.WithError(err).Warn("could not load session snapshot", nil)
	} else {
		skipped := sessions.Load(snaps)
		if skipped > 0 {
			log.Warn("sessions restored with default filters", logger.Fields{"skipped": skipped})
		}
		log.Info("loaded sessions", logger.Fields{"count": len(snaps)})
	}

	ws := server.NewWebServer(sessions, handoff, trk, log, cfg.DefaultStatus())
	ws.AllowedOrigins = cfg.Server.AllowedOrigins

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ws.EvictIdle(ctx, cfg.Server.SessionIdle, time.Minute)

	if cfg.Server.DebugAddress != "" {
		go serveDebug(cfg.Server.DebugAddress, log)
	}

	saveSessions := func(context.Context) error {
		snaps, err := sessions.Snapshot()
		if err != nil {
			return err
		}
		log.Info("saving sessions", logger.Fields{"count": len(snaps)})
		return disk.SaveSessions(snaps)
	}

	srv := common.NewServerWithTimeouts(&http.Server{Addr: cfg.Server.ListenAddress, Handler: ws.Handler()}, cfg.Timeouts)
	if err := common.RunServerWithShutdown(srv, log, "filter api", cfg.Timeouts, saveSessions); err != nil {
		return 1
	}
	return 0
}

func serveDebug(addr string, log logger.Logger) {
	debugMux := http.NewServeMux()
	if *enableProfiling {
		log.Info("profiling enabled", nil)
		debugMux.HandleFunc("/debug/pprof/", pprof.Index)
		debugMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		debugMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		debugMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		debugMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	log.Info("starting debug server", logger.Fields{"addr": addr})
	if err := http.ListenAndServe(addr, debugMux); err != nil {
		log.WithError(err).Error("debug server stopped", nil)
	}
}
