// README: Entry point; loads config, wires providers and services, starts HTTP server.
package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Loganocm/Parlor/internal/ai"
	"github.com/Loganocm/Parlor/internal/config"
	httptransport "github.com/Loganocm/Parlor/internal/http"
	"github.com/Loganocm/Parlor/internal/logger"
	"github.com/Loganocm/Parlor/internal/maps"
	"github.com/Loganocm/Parlor/internal/modules/recommend"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog := logger.New(cfg.LogLevel, cfg.Environment)
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	placesSvc, err := maps.NewPlacesService(cfg.Places.APIKey, cfg.BaseURL, zlog)
	if err != nil {
		log.Fatalf("places init: %v", err)
	}

	gemini, err := ai.NewGeminiProvider(ctx, cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer gemini.Close()
	aiSvc := ai.NewService(gemini, zlog)

	store := recommend.NewStore()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	recommendSvc := recommend.NewService(placesSvc, aiSvc, store, rng, zlog)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Recommend:   recommendSvc,
		Places:      placesSvc,
		CORSOrigins: cfg.CORSOrigins,
		Environment: cfg.Environment,
		Logger:      zlog,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zlog.Error("server shutdown", zap.Error(err))
		}
	}()

	zlog.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
