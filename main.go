package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/andronedrei/arena-battle/internal/sim"
	"github.com/andronedrei/arena-battle/logging"
	"github.com/andronedrei/arena-battle/logging/sinks"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	layoutPath := flag.String("layout", "", "wall layout JSON file (empty uses the stock arena)")
	flag.Parse()

	logCfg := logging.ConfigFromEnv()
	router, err := buildRouter(logCfg)
	if err != nil {
		log.Fatalf("logging setup: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		router.Close(ctx)
	}()

	cfg := sim.DefaultConfig()
	walls, err := loadWalls(*layoutPath, cfg)
	if err != nil {
		log.Fatalf("wall layout: %v", err)
	}

	hub := newHub(cfg, walls, router)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.handleWS)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.HandleFunc("/diagnostics", func(w http.ResponseWriter, _ *http.Request) {
		stats := router.Stats()
		payload := map[string]any{
			"counters":      telemetry.snapshot(),
			"logEvents":     stats.EventsTotal,
			"logDropped":    stats.DroppedTotal,
			"wallCellCount": walls.CellCount(),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	})

	log.Printf("arena server listening on %s", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatalf("listen: %v", err)
	}
}

func buildRouter(cfg logging.Config) (*logging.Router, error) {
	var named []logging.NamedSink
	if cfg.HasSink("console") {
		named = append(named, logging.NamedSink{
			Name: "console",
			Sink: sinks.NewConsoleSink(os.Stdout, cfg.Console),
		})
	}
	if cfg.HasSink("json") && cfg.JSON.FilePath != "" {
		f, err := os.OpenFile(cfg.JSON.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open json log %s: %w", cfg.JSON.FilePath, err)
		}
		named = append(named, logging.NamedSink{
			Name: "json",
			Sink: sinks.NewJSON(f, cfg.JSON.FlushInterval),
		})
	}
	if cfg.HasSink("memory") {
		named = append(named, logging.NamedSink{Name: "memory", Sink: sinks.NewMemorySink()})
	}
	return logging.NewRouter(nil, cfg, named), nil
}

func loadWalls(path string, cfg sim.Config) (*sim.Walls, error) {
	if path == "" {
		return sim.WallsFromLayout(sim.DefaultLayout())
	}
	walls, err := sim.LoadLayout(path)
	if err != nil {
		return nil, err
	}
	width, height := walls.Bounds()
	if width != cfg.WorldWidth || height != cfg.WorldHeight {
		return nil, fmt.Errorf("layout is %gx%g but the world is %gx%g", width, height, cfg.WorldWidth, cfg.WorldHeight)
	}
	return walls, nil
}
