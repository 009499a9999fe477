package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mwhitten/castle-siege-backend/internal/config"
	"github.com/mwhitten/castle-siege-backend/internal/httpapi"
	"github.com/mwhitten/castle-siege-backend/internal/hub"
	"github.com/mwhitten/castle-siege-backend/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	mode, err := cfg.GameMode()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	h := hub.NewHub(ctx, session.Config{
		Mode:       mode,
		TeamSize:   cfg.TeamSize,
		MinPlayers: cfg.MinPlayers,
	}, logger)

	// Build the router *with* the hub injected
	handler := httpapi.SetupRoutes(h, logger)

	ln, port, err := listen(cfg.Port, cfg.PortScanMax)
	if err != nil {
		logger.Fatal("no free port", zap.Error(err))
	}

	logger.Info("listening",
		zap.Int("port", port),
		zap.String("mode", string(mode)),
		zap.Int("team_size", cfg.TeamSize))
	if err := http.Serve(ln, handler); err != nil {
		logger.Fatal("serve", zap.Error(err))
	}
}

// listen scans upward from the base port until one binds, so a second server
// instance on the same host just takes the next port.
func listen(base, attempts int) (net.Listener, int, error) {
	var lastErr error
	for port := base; port < base+attempts; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			return ln, port, nil
		}
		lastErr = err
	}
	return nil, 0, fmt.Errorf("no free port in %d..%d: %w", base, base+attempts-1, lastErr)
}

func buildLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zcfg.Build()
}
