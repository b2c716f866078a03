package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"loanscreen/config"
	lhttp "loanscreen/http"
	"loanscreen/loan"
	"loanscreen/logger"
	"loanscreen/ml"
)

var configPaths = []string{"config.yaml", filepath.Join("..", "config.yaml")}

func main() {
	// 1. Load config
	cfg, err := loadConfig(configPaths)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Logger
	logg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logg.Sync()

	// 3. Model, loaded once and shared read-only
	model, err := ml.LoadModel(cfg.Model.Type, cfg.Model.Path)
	if err != nil {
		logg.Fatal("failed to load model", zap.String("path", cfg.Model.Path), zap.Error(err))
	}
	if cfg.Model.CacheSize > 0 {
		if model, err = ml.NewCachedModel(model, cfg.Model.CacheSize); err != nil {
			logg.Fatal("failed to build prediction cache", zap.Error(err))
		}
	}
	logg.Info("model loaded", zap.String("type", cfg.Model.Type), zap.String("path", cfg.Model.Path))

	// 4. Templates
	renderer, err := lhttp.NewRenderer(cfg.HTTP.TemplatesDir, logg)
	if err != nil {
		logg.Fatal("failed to load templates", zap.Error(err))
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.HTTP.Debug && cfg.HTTP.TemplatesDir != "" {
		if err := renderer.Watch(ctx); err != nil {
			logg.Fatal("failed to watch templates", zap.Error(err))
		}
	}

	// 5. Start HTTP server
	serverConfig := lhttp.DefaultServerConfig()
	serverConfig.Addr = cfg.Addr()
	serverConfig.MaxBodyBytes = cfg.HTTP.MaxBodyBytes
	server := lhttp.NewServer(serverConfig, loan.NewService(model, logg), renderer, logg)

	errs := make(chan error, 1)
	go func() {
		errs <- server.Start()
	}()

	// 6. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errs:
		if err != nil {
			logg.Error("http server failed", zap.Error(err))
		}
		return
	}

	if err := server.Stop(); err != nil {
		logg.Error("server forced to shutdown", zap.Error(err))
	}
	logg.Info("exiting")
}

// loadConfig reads the first config file that exists. Relative paths in it
// are taken relative to the file. With no file at all the defaults apply.
func loadConfig(paths []string) (*config.Config, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		cfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		dir := filepath.Dir(path)
		cfg.Model.Path = relativeTo(dir, cfg.Model.Path)
		cfg.HTTP.TemplatesDir = relativeTo(dir, cfg.HTTP.TemplatesDir)
		cfg.Log.File = relativeTo(dir, cfg.Log.File)
		return cfg, nil
	}
	return config.Default(), nil
}

func relativeTo(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
