package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ruminaider/sso-profiles/internal/config"
	"github.com/ruminaider/sso-profiles/internal/paths"
	"github.com/ruminaider/sso-profiles/internal/storage"
	"github.com/ruminaider/sso-profiles/internal/store"
)

// Env is everything a command needs: the data directory, its configuration
// and the store opened on the configured backend.
type Env struct {
	Dir    string
	Config config.Config
	Store  *store.Store
	Logger *slog.Logger

	storagePath string
	closer      io.Closer
}

// Open loads the configuration of dir (the default data directory when
// empty) and opens the profile store on the configured backend.
func Open(dir string, logger *slog.Logger) (*Env, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dir = paths.Resolve(dir)

	cfg, err := config.Load(paths.ConfigFile(dir))
	if err != nil {
		return nil, err
	}

	path := cfg.Storage.Path
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		path = ""
	case config.BackendSQLite:
		if path == "" {
			path = paths.ProfilesDB(dir)
		}
	default:
		if path == "" {
			path = paths.ProfilesFile(dir)
		}
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	backend, closer, err := storage.Open(cfg.Storage.Backend, path)
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", cfg.Storage.Backend, err)
	}
	logger.Debug("opened profile storage", "backend", cfg.Storage.Backend, "path", path)

	return &Env{
		Dir:         dir,
		Config:      cfg,
		Store:       store.New(backend, store.WithLogger(logger)),
		Logger:      logger,
		storagePath: path,
		closer:      closer,
	}, nil
}

// StoragePath is the file holding the collection, or "" for the memory
// backend.
func (e *Env) StoragePath() string {
	return e.storagePath
}

// Close releases the backend.
func (e *Env) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// SaveConfig persists e.Config to the data directory.
func (e *Env) SaveConfig() error {
	return config.Save(paths.ConfigFile(e.Dir), e.Config)
}
