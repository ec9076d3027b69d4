// Package main implements the PGN import server: a RESTful API that
// validates third-party game records and stores the verified games.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"chessimport/cmd/importd/cli"
	"chessimport/internal/server/http"
	"chessimport/internal/server/service"
	"chessimport/internal/server/storage"
)

const gracefulShutdownTimeout = time.Second * 5

func main() {
	// Check for CLI database commands
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := cli.Run(os.Args[2:]); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		os.Exit(0)
	}

	// Command-line flags
	var (
		apiHost     = flag.String("api-host", "localhost", "API server host")
		apiPort     = flag.Int("api-port", 8080, "API server port")
		dev         = flag.Bool("dev", false, "Development mode (relaxed rate limits, verbose logs)")
		storagePath = flag.String("storage-path", "", "Path to SQLite database file (disables persistence if empty)")
	)
	flag.Parse()

	logger, err := newLogger(*dev)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	// 1. Initialize Storage (optional)
	var store *storage.Store
	if *storagePath != "" {
		sugar.Infof("initializing persistent storage at %s", *storagePath)
		store, err = storage.NewStore(*storagePath, *dev, sugar)
		if err != nil {
			sugar.Fatalf("failed to initialize storage: %v", err)
		}
		if err := store.InitDB(); err != nil {
			sugar.Fatalf("failed to initialize schema: %v", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				sugar.Warnf("failed to close storage cleanly: %v", err)
			}
		}()
	} else {
		sugar.Info("persistent storage disabled (use -storage-path to enable)")
	}

	// 2. Initialize service and HTTP server
	svc := service.New(store, sugar)
	app := http.NewFiberApp(svc, *dev)

	// 3. Start serving
	addr := fmt.Sprintf("%s:%d", *apiHost, *apiPort)
	errChan := make(chan error, 1)
	go func() {
		sugar.Infof("import API listening on %s", addr)
		errChan <- app.Listen(addr)
	}()

	// 4. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		sugar.Fatalf("server error: %v", err)
	case sig := <-sigChan:
		sugar.Infof("received %v, shutting down", sig)
	}

	if err := app.ShutdownWithTimeout(gracefulShutdownTimeout); err != nil {
		sugar.Warnf("shutdown incomplete: %v", err)
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
