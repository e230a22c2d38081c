// Command typedkv wires config -> logger -> WAL -> engine -> TCP server and
// coordinates graceful shutdown. It is the process entry point spec.md §1
// scopes out of the core: it builds the WAL and engine, hands the engine to
// the server, and drives the server's Start/Stop.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"typedkv/internal/config"
	"typedkv/internal/engine"
	"typedkv/internal/keyspace"
	"typedkv/internal/server"
	"typedkv/internal/wal"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		walPath    string
		fsyncMode  string
		listenAddr string
		logPath    string
	)

	cmd := &cobra.Command{
		Use:   "typedkv",
		Short: "In-memory typed key-value server with a write-ahead log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("wal-path") {
				cfg.WALPath = walPath
			}
			if cmd.Flags().Changed("fsync") {
				cfg.Fsync = fsyncMode
			}
			if cmd.Flags().Changed("listen") {
				cfg.ListenAddr = listenAddr
			}
			if cmd.Flags().Changed("log-path") {
				cfg.LogPath = logPath
			}
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&walPath, "wal-path", "", "write-ahead log file path (overrides config)")
	flags.StringVar(&fsyncMode, "fsync", "", `fsync policy: "always" or "os-buffered" (overrides config)`)
	flags.StringVar(&listenAddr, "listen", "", "TCP listen address (overrides config)")
	flags.StringVar(&logPath, "log-path", "", "server log file path; empty logs to stderr")

	return cmd
}

func newLogger(logPath string) *zap.Logger {
	if logPath == "" {
		l, _ := zap.NewProduction()
		return l
	}

	rotator := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     28,
		Compress:   true,
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(rotator),
		zap.InfoLevel,
	)
	return zap.New(core)
}

func run(cfg config.Config) error {
	logger := newLogger(cfg.LogPath)
	defer logger.Sync()

	logger.Info("starting typedkv",
		zap.String("wal_path", cfg.WALPath),
		zap.String("fsync", cfg.Fsync),
		zap.String("listen_addr", cfg.ListenAddr),
	)

	w, err := wal.Open(wal.Config{Path: cfg.WALPath, SyncPolicy: cfg.SyncPolicy()}, logger)
	if err != nil {
		return fmt.Errorf("open wal: %w", err)
	}
	defer w.Close()

	eng, err := engine.New(keyspace.NewSharded(16), w, logger)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	srv := server.New(cfg.ListenAddr, eng, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received, stopping server")
		srv.Stop()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		return err
	}
	return nil
}
