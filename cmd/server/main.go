package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vyaparhub/backend/internal/config"
	"vyaparhub/backend/internal/httpapi"
	"vyaparhub/backend/internal/kv"
	"vyaparhub/backend/internal/ledger"
	"vyaparhub/backend/internal/service"
	"vyaparhub/backend/internal/tools"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var store kv.Store
	closers := make([]func() error, 0, 1)

	switch {
	case cfg.DatabaseURL != "":
		pg, err := kv.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres unavailable (%v) and DATABASE_URL is set; refusing to start with a file fallback", err)
		}
		store = pg
		closers = append(closers, pg.Close)
		log.Println("storage: postgres")
	case cfg.RedisAddr != "":
		rs := kv.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, "vyaparhub")
		if err := rs.Ping(ctx); err != nil {
			log.Printf("redis unavailable (%v), falling back to file storage", err)
			fs, err := kv.NewFileStore(cfg.DataDir)
			if err != nil {
				log.Fatalf("file storage unavailable: %v", err)
			}
			store = fs
			log.Println("storage: file")
		} else {
			store = rs
			closers = append(closers, rs.Close)
			log.Println("storage: redis")
		}
	default:
		fs, err := kv.NewFileStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("file storage unavailable: %v", err)
		}
		store = fs
		log.Println("storage: file")
	}

	book, err := ledger.Open(ctx, store)
	if err != nil {
		log.Fatalf("ledger unavailable: %v", err)
	}

	weather := tools.NewWeatherService(time.Duration(cfg.WeatherLatencyMS) * time.Millisecond)
	svc := service.New(book, weather)
	auth := httpapi.NewAuthManager(cfg.AuthSecret, time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute, cfg.OwnerPassword)
	api := httpapi.New(svc, auth, cfg.AllowedOrigin)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("dashboard backend listening on %s", cfg.Address())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Printf("close error: %v", err)
		}
	}

	log.Println("server stopped")
}
