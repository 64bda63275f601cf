// Copyright 2026 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command assetserve serves the pre-built, optionally pre-compressed static
// assets of a frontend build from a directory, optionally as an SPA.
package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/thediveo/assetserve"
	"github.com/thediveo/assetserve/internal/accesslog"
	"github.com/thediveo/assetserve/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfgFile := flag.String("config", "", "TOML configuration file")
	dotEnv := flag.String("dotenv", ".env", "file with environment variable assignments")
	flag.Parse()

	cfg, err := config.Load(config.LoadOptions{File: *cfgFile, DotEnv: *dotEnv})
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	// The asset index is built exactly once; without it, nothing can be served.
	index, err := assetserve.NewAssetIndexFromDir(cfg.Root)
	if err != nil {
		logger.Fatal("cannot index assets", zap.String("root", cfg.Root), zap.Error(err))
	}
	handler, err := assetserve.NewAssetHandler(os.DirFS(cfg.Root),
		assetserve.WithIndex(index),
		assetserve.WithSPAFallback(cfg.SPA),
		assetserve.WithNotFoundHeaderFields(cfg.NotFoundHeaders))
	if err != nil {
		logger.Fatal("cannot create asset handler", zap.Error(err))
	}
	logger.Debug("indexed assets", zap.Strings("paths", index.Paths()))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           accesslog.Middleware(logger, handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		logger.Fatal("cannot listen", zap.String("addr", srv.Addr), zap.Error(err))
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	banner(cfg, index.Len())
	logger.Info("serving assets",
		zap.String("addr", srv.Addr),
		zap.String("root", cfg.Root),
		zap.Int("assets", index.Len()),
		zap.Bool("spa", cfg.SPA))
	if err := serve(ctx, srv, ln, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("stopped")
}

// shutdownTimeout limits how long in-flight requests may take to complete
// after shutdown has been requested.
const shutdownTimeout = 5 * time.Second

// serve serves HTTP requests on the specified listener until the context gets
// cancelled. It then shuts down the server and only returns after all
// in-flight requests have completed or the shutdown timeout has passed.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, logger *zap.Logger) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown incomplete", zap.Error(err))
		}
	}()
	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}

// newLogger returns a production JSON logger, or a development console logger
// for the "debug" level.
func newLogger(level string) *zap.Logger {
	var zcfg zap.Config
	if level == "debug" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// banner prints a short, human-readable startup notice to stdout.
func banner(cfg config.Config, assets int) {
	mode := "static"
	if cfg.SPA {
		mode = "SPA"
	}
	color.New(color.FgGreen, color.Bold).Printf("🌐 Serving %s", cfg.Root)
	color.New(color.FgHiBlack).Printf(" (%d assets, %s mode)", assets, mode)
	color.New(color.FgCyan).Printf(" at http://localhost%s\n", cfg.Addr())
	color.New(color.FgHiBlack).Println("Press Ctrl+C to stop")
}
