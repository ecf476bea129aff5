package main

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"testing"

	"rocketshoes/internal/config"
)

func TestOpenStorage_LocalBackends(t *testing.T) {
	ctx := context.Background()
	logger := log.New(io.Discard, "", 0)
	dir := t.TempDir()

	for _, backend := range []string{"file", "sqlite"} {
		cfg := config.Config{
			StorageBackend: backend,
			StorageDir:     dir,
			SQLitePath:     filepath.Join(dir, "cart.db"),
		}
		repo, closeFn, err := openStorage(ctx, cfg, logger)
		if err != nil {
			t.Fatalf("%s: %v", backend, err)
		}
		if err := repo.Set(ctx, "@RocketShoes:cart", "[]"); err != nil {
			t.Fatalf("%s set: %v", backend, err)
		}
		closeFn()
	}
}

func TestOpenStorage_UnknownBackend(t *testing.T) {
	_, _, err := openStorage(context.Background(), config.Config{StorageBackend: "mongo"}, log.New(io.Discard, "", 0))
	if err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
