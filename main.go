package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lguibr/eggchef/audio"
	"github.com/lguibr/eggchef/bollywood"
	"github.com/lguibr/eggchef/server"
	"github.com/lguibr/eggchef/utils"
)

const (
	shutdownTimeout = 5 * time.Second
	mixerPeriod     = 100 * time.Millisecond
)

func main() {
	configPath := flag.String("config", "", "YAML config file, reloaded on change")
	addr := flag.String("addr", "", "listen address (overrides listenAddr)")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	log := newLogger(*logLevel)
	slog.SetDefault(log)
	bollywood.SetLogger(log)
	audio.SetLogger(log)
	utils.SetLogger(log)
	server.SetLogger(log)

	if err := run(*configPath, *addr, log); err != nil {
		log.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(configPath, addr string, log *slog.Logger) error {
	engine := bollywood.NewEngine(bollywood.WithLogger(log))
	var manager *bollywood.PID

	cfg := utils.DefaultConfig()
	var watcher *utils.Watcher
	if configPath != "" {
		var err error
		watcher, err = utils.NewWatcher(configPath, 0, func(c utils.Config) {
			engine.Send(manager, server.UpdateConfig{Config: c}, nil)
		})
		if err != nil {
			return err
		}
		cfg = watcher.Current()
	}
	if addr != "" {
		cfg.ListenAddr = addr
	}

	synth, err := audio.NewSynth(cfg.SampleRate, cfg.Volume)
	if err != nil {
		return err
	}
	props, err := server.NewSessionManagerProps(server.SessionManagerInput{Config: cfg, Player: synth})
	if err != nil {
		return err
	}
	manager = engine.Spawn(props)

	if watcher != nil {
		if err := watcher.Start(); err != nil {
			return err
		}
		defer watcher.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// No sound card on the server: drain the mixer in real time.
	go func() {
		ticker := time.NewTicker(mixerPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				synth.Advance(mixerPeriod)
			}
		}
	}()

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.New(engine, manager, synth, cfg.AskTimeout).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server listening", "addr", cfg.ListenAddr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		engine.Shutdown(shutdownTimeout)
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = httpServer.Shutdown(shutdownCtx)
	// Websocket connections are hijacked; stopping the actors closes them.
	engine.Shutdown(shutdownTimeout)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
