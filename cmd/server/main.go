package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/weaveloop/combat-server-go/internal/combat"
	"github.com/weaveloop/combat-server-go/internal/config"
	"github.com/weaveloop/combat-server-go/internal/server"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting combat server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	sessionCfg, err := cfg.SessionConfig()
	if err != nil {
		logger.Fatal("invalid combat configuration", zap.Error(err))
	}

	session := combat.NewSession(sessionCfg, logger)
	logger.Info("combat session initialized",
		zap.String("session_id", session.ID()),
		zap.Int("tick_rate", cfg.Server.TickRate),
	)

	// Create context that listens for termination signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	hub := server.NewHub(logger)
	go hub.Run(ctx)

	// Start WebSocket server
	go func() {
		if wsErr := server.Start(ctx, cfg.Server.WebSocket.Address, hub, logger); wsErr != nil {
			logger.Error("WebSocket server error", zap.Error(wsErr))
		}
	}()

	go runSimulation(ctx, session, hub, cfg.Server.TickRate, logger)

	logger.Info("combat server initialized",
		zap.String("websocket_address", cfg.Server.WebSocket.Address),
	)

	// Wait for termination signal
	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	logger.Info("shutting down gracefully...")
	cancel()

	logger.Info("combat server stopped")
}

// runSimulation drives the session at a fixed rate. Commands that arrived
// since the last tick become that tick's raw intents, in arrival order with
// duplicates collapsed.
func runSimulation(ctx context.Context, session *combat.Session, hub *server.Hub, tickRate int, logger *zap.Logger) {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	dt := interval.Seconds()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			intents, reset := drainCommands(hub.Commands())
			if reset {
				session.Reset()
			}
			events := session.Step(dt, intents)
			hub.BroadcastState(session.View(), events)

		case <-ctx.Done():
			return
		}
	}
}

func drainCommands(commands <-chan server.Command) (intents []combat.AbilityID, reset bool) {
	seen := map[combat.AbilityID]bool{}
	for {
		select {
		case cmd := <-commands:
			switch cmd.Type {
			case server.CommandReset:
				reset = true
			case server.CommandAbility:
				if !seen[cmd.Ability] {
					seen[cmd.Ability] = true
					intents = append(intents, cmd.Ability)
				}
			}
		default:
			return intents, reset
		}
	}
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
