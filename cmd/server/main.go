package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"voxelquest.ai/internal/gen"
	"voxelquest.ai/internal/persistence/indexdb"
	persistlog "voxelquest.ai/internal/persistence/log"
	"voxelquest.ai/internal/persistence/snapshot"
	"voxelquest.ai/internal/sim/catalogs"
	"voxelquest.ai/internal/sim/tuning"
	"voxelquest.ai/internal/sim/world"
	"voxelquest.ai/internal/transport/ws"
)

func main() {
	var (
		addr        = flag.String("addr", ":8080", "http listen address")
		worldID     = flag.String("world", "world_1", "world id")
		seed        = flag.Int64("seed", 1337, "world seed (used only when starting a fresh world)")
		configDir   = flag.String("configs", "./configs", "config directory")
		dataDir     = flag.String("data", "./data", "runtime data directory")
		tuningPath  = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		contentPath = flag.String("content", "", "path to generated content bundle (json)")
		snapPath    = flag.String("snapshot", "", "path to snapshot to load (optional)")
		loadLatest  = flag.Bool("load_latest_snapshot", true, "load latest snapshot from data dir if present (when -snapshot is empty)")
		disableDB   = flag.Bool("disable_db", false, "disable the sqlite index (snapshot metadata + event stats)")
		disableLog  = flag.Bool("disable_event_log", false, "disable the zstd event log")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cats, err := catalogs.Load(*configDir)
	if err != nil {
		logger.Fatalf("load catalogs: %v", err)
	}

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tun, err := tuning.Load(tp)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("load tuning: %v", err)
		}
		tun = tuning.Default()
		logger.Printf("no tuning.yaml at %s, using defaults", tp)
	}

	worldDir := filepath.Join(*dataDir, "worlds", *worldID)
	_ = os.MkdirAll(worldDir, 0o755)
	snapDir := filepath.Join(worldDir, "snapshots")

	// Resolve the snapshot to resume from, if any.
	resume := strings.TrimSpace(*snapPath)
	if resume == "" && *loadLatest {
		resume = snapshot.LatestPath(snapDir)
	}

	cfg := world.Config{ID: *worldID, Seed: *seed}
	var resumeSnap *snapshot.SnapshotV1
	if resume != "" {
		s, err := snapshot.ReadSnapshot(resume)
		if err != nil {
			logger.Printf("snapshot %s unreadable (%v), starting fresh", resume, err)
		} else {
			cfg.Seed = s.Seed
			resumeSnap = &s
		}
	}

	w, err := world.New(cfg, tun, cats)
	if err != nil {
		logger.Fatalf("world.New: %v", err)
	}

	switch {
	case resumeSnap != nil:
		if err := w.ImportSnapshot(*resumeSnap); err != nil {
			logger.Fatalf("import snapshot %s: %v", resume, err)
		}
		logger.Printf("resumed world %s at tick %d (%d entities)",
			*worldID, resumeSnap.Header.Tick, len(resumeSnap.Entities))
	case strings.TrimSpace(*contentPath) != "":
		raw, err := os.ReadFile(*contentPath)
		if err != nil {
			logger.Fatalf("read content: %v", err)
		}
		bundle, errs := gen.DecodeBundle(raw)
		for _, e := range errs {
			logger.Printf("content: skipped: %v", e)
		}
		for _, e := range w.LoadContent(bundle) {
			logger.Printf("content: spawn failed: %v", e)
		}
		logger.Printf("loaded content %q: %d entities, %d chunks",
			bundle.Theme, len(bundle.Entities), len(bundle.Chunks))
	default:
		logger.Printf("starting empty world %s (no content, no snapshot)", *worldID)
	}

	// Optional read-model index; does not affect sim determinism.
	var idx *indexdb.SQLiteIndex
	if !*disableDB {
		idx, err = indexdb.Open(worldDir, *worldID)
		if err != nil {
			logger.Fatalf("open index: %v", err)
		}
		defer idx.Close()
		w.AddSink(idx)
	}

	if !*disableLog {
		evlog := persistlog.NewEventLogWriter(filepath.Join(worldDir, "events"), "events")
		defer evlog.Close()
		w.AddSink(evlog)
	}

	// Off-thread snapshot writing.
	snapCh := make(chan snapshot.SnapshotV1, 1)
	w.SetSnapshotSink(snapCh)
	go func() {
		for s := range snapCh {
			path := snapshot.PathFor(snapDir, s.Header.Tick)
			if err := snapshot.WriteSnapshot(path, s); err != nil {
				logger.Printf("write snapshot: %v", err)
				continue
			}
			if idx != nil {
				idx.RecordSnapshot(indexdb.SnapshotMeta{
					Tick:     s.Header.Tick,
					Path:     path,
					Seed:     s.Seed,
					Entities: len(s.Entities),
					Loot:     len(s.Loot),
				})
			}
		}
	}()

	wsServer := ws.NewServer(w, logger)
	w.AddSink(wsServer)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", wsServer.Handler())
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
		_, _ = rw.Write([]byte("ok"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		logger.Printf("shutting down")
		cancel()
	}()

	go w.Run(ctx)

	srv := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	logger.Printf("listening on %s (world %s, seed %d, %d hz)",
		*addr, *worldID, cfg.Seed, tun.TickRateHz)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("http: %v", err)
	}
}
