package config

import (
	"fmt"

	"github.com/lgbarn/ascii-chess-go/internal/errors"
)

// StorageConfig holds settings for the game archive.
type StorageConfig struct {
	// Dir is the Badger directory. Empty disables the archive unless
	// InMemory is set.
	Dir string

	// InMemory keeps the archive in memory only; used by tests.
	InMemory bool

	// SyncWrites makes every write durable before it returns.
	SyncWrites bool
}

// NewStorageConfig creates a StorageConfig with the archive disabled.
func NewStorageConfig() *StorageConfig {
	return &StorageConfig{}
}

// Enabled reports whether an archive should be opened.
func (s *StorageConfig) Enabled() bool {
	return s.InMemory || s.Dir != ""
}

// Validate checks that the storage configuration is consistent.
func (s *StorageConfig) Validate() error {
	if s.InMemory && s.Dir != "" {
		return invalid("archive directory %q given for an in-memory archive", s.Dir)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, errors.ErrInvalidConfig)...)
}
