package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"rocketshoes/internal/catalogapi"
	"rocketshoes/internal/config"
	"rocketshoes/internal/httpserver"
	"rocketshoes/internal/notify"
	cartsvc "rocketshoes/internal/service/cart"
	"rocketshoes/internal/service/listing"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	store, closeStore, err := openStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open storage backend=%s: %v", cfg.StorageBackend, err)
	}
	defer closeStore()

	catalog := catalogapi.New(cfg.APIURL, cfg.APITimeout, logger)
	feed := notify.NewFeed(cfg.NotificationBuffer, logger)
	cartService := cartsvc.New(catalog, store, feed, cfg.StorageKey, logger)
	if err := cartService.Load(ctx); err != nil {
		logger.Fatalf("load cart: %v", err)
	}
	listingService := listing.New(catalog, cartService)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Listing:       listingService,
		Cart:          cartService,
		Notifications: feed,
		Storage:       store,
	}, httpserver.Options{CORSOrigins: cfg.CORSOrigins})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s (catalog %s, storage %s)", cfg.HTTPAddr, cfg.APIURL, cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
