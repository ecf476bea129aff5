package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"rocketshoes/internal/domain"
)

const fileName = "local-storage.json"

type fileRepo struct {
	mu     sync.Mutex
	path   string
	logger *log.Logger
}

// NewFile stores every slot in a single JSON object under dir.
func NewFile(dir string, logger *log.Logger) (Repository, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create dir %s: %w", dir, err)
	}
	return &fileRepo{path: filepath.Join(dir, fileName), logger: logger}, nil
}

func (r *fileRepo) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slots, err := r.read()
	if err != nil {
		r.logger.Printf("storage file: get key=%s error=%v", key, err)
		return "", err
	}
	v, ok := slots[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

func (r *fileRepo) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slots, err := r.read()
	if err != nil {
		r.logger.Printf("storage file: set key=%s read error=%v", key, err)
		return err
	}
	slots[key] = value

	data, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(r.path), fileName+".*")
	if err != nil {
		return fmt.Errorf("storage: temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("storage: write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("storage: replace %s: %w", r.path, err)
	}
	r.logger.Printf("storage file: set key=%s bytes=%d", key, len(value))
	return nil
}

func (r *fileRepo) Ping(_ context.Context) error {
	_, err := os.Stat(filepath.Dir(r.path))
	return err
}

func (r *fileRepo) read() (map[string]string, error) {
	slots := map[string]string{}
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return slots, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return slots, nil
	}
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("storage: parse %s: %w", r.path, err)
	}
	return slots, nil
}
